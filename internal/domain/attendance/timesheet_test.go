package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ts(hour, min int) time.Time {
	return time.Date(2025, 3, 10, hour, min, 0, 0, time.UTC)
}

func tsPtr(hour, min int) *time.Time {
	t := ts(hour, min)
	return &t
}

func TestMinutesBetween(t *testing.T) {
	cases := []struct {
		name string
		from time.Time
		to   time.Time
		want int
	}{
		{"full day shift", ts(9, 0), ts(18, 0), 540},
		{"half hour", ts(12, 0), ts(12, 30), 30},
		{"zero", ts(9, 0), ts(9, 0), 0},
		{"truncates seconds", ts(9, 0), ts(9, 0).Add(59 * time.Second), 0},
		{"negative floors to zero", ts(10, 0), ts(9, 0), 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, MinutesBetween(c.from, c.to))
		})
	}
}

func TestWorkedMinutes_ClosedRecord(t *testing.T) {
	// Check-in 09:00, break 12:00-12:30, check-out 18:00 => 510 (8h 30m)
	rec := Record{
		CheckIn:      tsPtr(9, 0),
		CheckOut:     tsPtr(18, 0),
		BreakMinutes: 30,
	}
	assert.Equal(t, 510, rec.WorkedMinutes(ts(23, 0)))
	assert.Equal(t, "8h 30m", rec.FormatWorkingHours(ts(23, 0)))
}

func TestWorkedMinutes_ImmediateCheckOut(t *testing.T) {
	rec := Record{
		CheckIn:  tsPtr(9, 0),
		CheckOut: tsPtr(9, 0),
	}
	assert.Equal(t, 0, rec.WorkedMinutes(ts(9, 0)))
	assert.Equal(t, "0h 0m", rec.FormatWorkingHours(ts(9, 0)))
}

func TestWorkedMinutes_NoBreakEqualsElapsed(t *testing.T) {
	rec := Record{
		CheckIn:  tsPtr(9, 0),
		CheckOut: tsPtr(17, 15),
	}
	assert.Equal(t, MinutesBetween(ts(9, 0), ts(17, 15)), rec.WorkedMinutes(ts(18, 0)))
}

func TestWorkedMinutes_NeverNegative(t *testing.T) {
	rec := Record{
		CheckIn:      tsPtr(9, 0),
		CheckOut:     tsPtr(9, 10),
		BreakMinutes: 120,
	}
	assert.Equal(t, 0, rec.WorkedMinutes(ts(10, 0)))
}

func TestWorkedMinutes_OpenRecordTracksNow(t *testing.T) {
	rec := Record{CheckIn: tsPtr(9, 0)}

	assert.Equal(t, 60, rec.WorkedMinutes(ts(10, 0)))
	assert.Equal(t, 120, rec.WorkedMinutes(ts(11, 0)))

	// Idempotent: repeated calls with the same now agree
	assert.Equal(t, rec.WorkedMinutes(ts(11, 0)), rec.WorkedMinutes(ts(11, 0)))
}

func TestWorkedMinutes_RunningBreakCountsUpToNow(t *testing.T) {
	rec := Record{
		CheckIn:        tsPtr(9, 0),
		BreakStartedAt: tsPtr(12, 0),
		BreakMinutes:   10,
	}
	// At 12:20 the running break has consumed 20 more minutes.
	assert.Equal(t, 180-10-20, rec.WorkedMinutes(ts(12, 20)))
	assert.True(t, rec.OnBreak())
}

func TestFormatWorkingHours_NoCheckIn(t *testing.T) {
	rec := Record{}
	assert.Equal(t, NoDataDisplay, rec.FormatWorkingHours(ts(12, 0)))
}

func TestRecordStateHelpers(t *testing.T) {
	open := Record{CheckIn: tsPtr(9, 0)}
	assert.True(t, open.Open())
	assert.False(t, open.OnBreak())

	closed := Record{CheckIn: tsPtr(9, 0), CheckOut: tsPtr(17, 0)}
	assert.False(t, closed.Open())

	// A stale break marker on a closed record does not count as on-break.
	closed.BreakStartedAt = tsPtr(12, 0)
	assert.False(t, closed.OnBreak())
}

func TestNormalize(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Jakarta")
	assert.NoError(t, err)

	// 2025-03-10 20:00 UTC is already 2025-03-11 03:00 in Jakarta.
	at := time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC)
	day := Normalize(at, loc)
	assert.Equal(t, time.Date(2025, 3, 11, 0, 0, 0, 0, loc), day)

	utcDay := Normalize(at, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), utcDay)
}

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"PRESENT", "ABSENT", "ON_LEAVE", "HALF_DAY"} {
		status, ok := ParseStatus(valid)
		assert.True(t, ok)
		assert.Equal(t, Status(valid), status)
	}
	for _, invalid := range []string{"present", "LATE", "", "SICK"} {
		_, ok := ParseStatus(invalid)
		assert.False(t, ok)
	}
}
