package leave

import (
	"context"
	"log/slog"
	"time"

	"github.com/officehub/officehub-backend-go/internal/domain/auth"
	"github.com/officehub/officehub-backend-go/internal/domain/leave"
	"github.com/officehub/officehub-backend-go/internal/pkg/email"
	"github.com/officehub/officehub-backend-go/internal/pkg/validator"
)

type LeaveServiceImpl struct {
	repo  leave.Repository
	email email.EmailService
}

func NewLeaveService(repo leave.Repository, emailService email.EmailService) leave.Service {
	return &LeaveServiceImpl{
		repo:  repo,
		email: emailService,
	}
}

// Create implements leave.Service.
func (s *LeaveServiceImpl) Create(ctx context.Context, req leave.CreateRequest) (leave.Response, error) {
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return leave.Response{}, err
	}

	if err := req.Validate(); err != nil {
		return leave.Response{}, err
	}

	leaveType, _ := leave.ParseType(req.Type)
	startDate, _ := validator.IsValidDate(req.StartDate)
	endDate, _ := validator.IsValidDate(req.EndDate)

	overlaps, err := s.repo.HasOverlapping(ctx, identity.UserID, startDate, endDate)
	if err != nil {
		return leave.Response{}, err
	}
	if overlaps {
		return leave.Response{}, leave.ErrOverlappingLeave
	}

	created, err := s.repo.Create(ctx, leave.LeaveRequest{
		UserID:    identity.UserID,
		Type:      leaveType,
		StartDate: startDate,
		EndDate:   endDate,
		Reason:    req.Reason,
		Status:    leave.StatusPending,
	})
	if err != nil {
		return leave.Response{}, err
	}

	return leave.NewResponse(created), nil
}

// ListMine implements leave.Service.
func (s *LeaveServiceImpl) ListMine(ctx context.Context) ([]leave.Response, error) {
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return nil, err
	}

	requests, err := s.repo.ListByUser(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}

	responses := make([]leave.Response, 0, len(requests))
	for _, req := range requests {
		responses = append(responses, leave.NewResponse(req))
	}
	return responses, nil
}

// List implements leave.Service.
func (s *LeaveServiceImpl) List(ctx context.Context, filter leave.Filter) ([]leave.Response, int64, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	requests, total, err := s.repo.ListAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]leave.Response, 0, len(requests))
	for _, req := range requests {
		responses = append(responses, leave.NewResponse(req))
	}
	return responses, total, nil
}

// Get implements leave.Service.
func (s *LeaveServiceImpl) Get(ctx context.Context, id string) (leave.Response, error) {
	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return leave.Response{}, err
	}
	return leave.NewResponse(req), nil
}

// Decide implements leave.Service. The store guards the PENDING to
// decided transition; a second decision gets ErrAlreadyProcessed and
// sends nothing.
func (s *LeaveServiceImpl) Decide(ctx context.Context, req leave.DecideRequest) (leave.Response, error) {
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return leave.Response{}, err
	}

	if err := req.Validate(); err != nil {
		return leave.Response{}, err
	}

	status := leave.Status(req.Status)

	if err := s.repo.Decide(ctx, req.ID, status, identity.UserID, time.Now()); err != nil {
		return leave.Response{}, err
	}

	decided, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return leave.Response{}, err
	}

	// Best effort: the decision stands even if the mail bounces.
	if decided.UserEmail != nil {
		name := ""
		if decided.UserName != nil {
			name = *decided.UserName
		}
		if err := s.email.SendLeaveDecision(
			*decided.UserEmail,
			name,
			string(decided.Type),
			decided.StartDate.Format("2006-01-02"),
			decided.EndDate.Format("2006-01-02"),
			string(decided.Status),
		); err != nil {
			slog.Error("failed to send leave decision email",
				"leave_request_id", decided.ID,
				"error", err,
			)
		}
	}

	return leave.NewResponse(decided), nil
}
