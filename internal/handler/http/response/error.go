package response

import (
	"errors"
	"net/http"

	"github.com/officehub/officehub-backend-go/internal/domain/attendance"
	"github.com/officehub/officehub-backend-go/internal/domain/auth"
	"github.com/officehub/officehub-backend-go/internal/domain/cabin"
	"github.com/officehub/officehub-backend-go/internal/domain/event"
	"github.com/officehub/officehub-backend-go/internal/domain/leave"
	"github.com/officehub/officehub-backend-go/internal/domain/user"
	"github.com/officehub/officehub-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrUnauthenticated):
		Unauthorized(w, "Authentication required")
	case errors.Is(err, auth.ErrOAuthStateMismatch):
		Unauthorized(w, "OAuth state mismatch")
	case errors.Is(err, auth.ErrOAuthEmailNotFound):
		Forbidden(w, "No account registered for this Google account")

	// User domain errors
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "Account is deactivated")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		BadRequest(w, "Not checked in today", nil)
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out today")
	case errors.Is(err, attendance.ErrAlreadyOnBreak):
		Conflict(w, "Break already running")
	case errors.Is(err, attendance.ErrNotOnBreak):
		BadRequest(w, "No break running", nil)
	case errors.Is(err, attendance.ErrConcurrentUpdate):
		Conflict(w, "Attendance record was modified concurrently")
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrOverlappingLeave):
		Conflict(w, "Overlapping leave request exists")
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, "Invalid date range", nil)

	// Cabin domain errors
	case errors.Is(err, cabin.ErrCabinNotFound):
		NotFound(w, "Cabin not found")
	case errors.Is(err, cabin.ErrCabinNameExists):
		Conflict(w, "Cabin name already exists")
	case errors.Is(err, cabin.ErrCabinInactive):
		BadRequest(w, "Cabin is not active", nil)
	case errors.Is(err, cabin.ErrBookingNotFound):
		NotFound(w, "Booking not found")
	case errors.Is(err, cabin.ErrBookingConflict):
		Conflict(w, "Time slot already booked")
	case errors.Is(err, cabin.ErrNotBookingOwner):
		Forbidden(w, "Not the booking owner")
	case errors.Is(err, cabin.ErrBookingCancelled):
		Conflict(w, "Booking is cancelled")
	case errors.Is(err, cabin.ErrOutsideOpenHours):
		BadRequest(w, "Requested slot is outside cabin open hours", nil)
	case errors.Is(err, cabin.ErrBookingTooLong):
		BadRequest(w, "Requested slot exceeds the maximum booking duration", nil)
	case errors.Is(err, cabin.ErrInvalidTimeWindow):
		BadRequest(w, "end_time must be after start_time", nil)

	// Event domain errors
	case errors.Is(err, event.ErrEventNotFound):
		NotFound(w, "Event not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
