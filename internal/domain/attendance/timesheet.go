package attendance

import (
	"fmt"
	"time"
)

// NoDataDisplay is rendered for records without a check-in.
const NoDataDisplay = "--"

// MinutesBetween returns the whole minutes elapsed from `from` to `to`,
// truncating toward zero and never negative. Callers feeding user-supplied
// timestamps rely on the floor at zero so that an inconsistent pair can
// never shrink an accumulated total.
func MinutesBetween(from, to time.Time) int {
	d := to.Sub(from)
	if d < 0 {
		return 0
	}
	return int(d / time.Minute)
}

// WorkedMinutes derives net productive minutes at the instant `now`:
// elapsed check-in to check-out (or `now` while the record is open)
// minus accumulated break minutes, floored at zero. A running break is
// counted up to `now` as well, so the value is live while on break.
// Pure and idempotent; safe to call repeatedly from dashboards.
func (r *Record) WorkedMinutes(now time.Time) int {
	if r.CheckIn == nil {
		return 0
	}

	end := now
	if r.CheckOut != nil {
		end = *r.CheckOut
	}

	breakMinutes := r.BreakMinutes
	if r.OnBreak() {
		breakMinutes += MinutesBetween(*r.BreakStartedAt, now)
	}

	worked := MinutesBetween(*r.CheckIn, end) - breakMinutes
	if worked < 0 {
		return 0
	}
	return worked
}

// FormatWorkingHours renders worked time as "<hours>h <minutes>m",
// or the no-data sentinel when the user never checked in.
func (r *Record) FormatWorkingHours(now time.Time) string {
	if r.CheckIn == nil {
		return NoDataDisplay
	}
	worked := r.WorkedMinutes(now)
	return fmt.Sprintf("%dh %dm", worked/60, worked%60)
}

// Normalize truncates t to midnight in loc; the result identifies the
// calendar day the record belongs to.
func Normalize(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// SameDay reports whether a and b label the same calendar day. Dates
// scanned back from DATE columns carry UTC midnight while normalized
// days carry the configured zone's midnight, so the instants never
// compare equal even when both mean the same day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
