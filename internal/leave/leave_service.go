package leave

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"dayflow-hrms/internal/events"
	leaveerrors "dayflow-hrms/internal/leave/errors"
	"dayflow-hrms/internal/messaging/kafka"
	"dayflow-hrms/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type Service interface {
	Apply(ctx context.Context, employeeID string, req ApplyLeaveRequest) (LeaveResponse, error)
	GetMine(ctx context.Context, employeeID string, filter ListFilter) ([]LeaveResponse, int64, error)
	GetAll(ctx context.Context, filter ListFilter) ([]LeaveResponse, int64, error)
	Approve(ctx context.Context, reviewerID, id string, req ReviewLeaveRequest) (LeaveResponse, error)
	Reject(ctx context.Context, reviewerID, id string, req ReviewLeaveRequest) (LeaveResponse, error)
	Cancel(ctx context.Context, employeeID, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, outbox kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{db: db, repo: repo, outbox: outbox, now: time.Now, logger: l}
}

func (s *service) Apply(ctx context.Context, employeeID string, req ApplyLeaveRequest) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger).With(zap.String("employee_id", employeeID))
	log.Debug("apply leave requested",
		zap.String("leave_type", req.LeaveType),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	empID, err := uuid.Parse(employeeID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrEmployeeNotFound
	}
	startDate, endDate, err := s.validateApply(req)
	if err != nil {
		log.Warn("apply leave validation failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("apply leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.EmployeeExists(ctx, employeeID)
	if err != nil {
		return LeaveResponse{}, err
	}
	if !exists {
		return LeaveResponse{}, leaveerrors.ErrEmployeeNotFound
	}

	overlap, err := qtx.HasOverlappingPeriod(ctx, employeeID, startDate, endDate)
	if err != nil {
		log.Error("apply leave overlap check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if overlap {
		log.Warn("apply leave overlap detected")
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	l := recomputeTotalDays(&Leave{
		ID:         uuid.New(),
		EmployeeID: empID,
		LeaveType:  req.LeaveType,
		StartDate:  startDate,
		EndDate:    endDate,
		Reason:     strings.TrimSpace(req.Reason),
		Status:     StatusPending,
		AppliedOn:  s.now().UTC(),
	})

	if err := qtx.Create(ctx, l); err != nil {
		log.Error("apply leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		log.Error("apply leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	log.Info("apply leave success", zap.String("leave_id", l.ID.String()), zap.Int("total_days", l.TotalDays))
	return mapToResponse(*l), nil
}

func (s *service) validateApply(req ApplyLeaveRequest) (time.Time, time.Time, error) {
	if !IsValidLeaveType(req.LeaveType) {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidLeaveType
	}
	if strings.TrimSpace(req.Reason) == "" {
		return time.Time{}, time.Time{}, leaveerrors.ErrReasonRequired
	}
	start, err := time.Parse(dateLayout, strings.TrimSpace(req.StartDate))
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateFormat.WithDetails(map[string]string{"field": "startDate"})
	}
	end, err := time.Parse(dateLayout, strings.TrimSpace(req.EndDate))
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateFormat.WithDetails(map[string]string{"field": "endDate"})
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	if start.Before(s.now().UTC().Truncate(24 * time.Hour)) {
		return time.Time{}, time.Time{}, leaveerrors.ErrStartDateInPast
	}
	return start, end, nil
}

func (s *service) GetMine(ctx context.Context, employeeID string, filter ListFilter) ([]LeaveResponse, int64, error) {
	filter.EmployeeID = employeeID
	filter.LeaveType = ""
	return s.GetAll(ctx, filter)
}

func (s *service) GetAll(ctx context.Context, filter ListFilter) ([]LeaveResponse, int64, error) {
	leaves, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return mapToListResponse(leaves), total, nil
}

func (s *service) Approve(ctx context.Context, reviewerID, id string, req ReviewLeaveRequest) (LeaveResponse, error) {
	return s.review(ctx, reviewerID, id, StatusApproved, req.ReviewComments)
}

func (s *service) Reject(ctx context.Context, reviewerID, id string, req ReviewLeaveRequest) (LeaveResponse, error) {
	return s.review(ctx, reviewerID, id, StatusRejected, req.ReviewComments)
}

// review moves a pending request to decision and queues a leave.reviewed
// event in the same transaction.
func (s *service) review(ctx context.Context, reviewerID, id, decision, comments string) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger).With(
		zap.String("leave_id", id),
		zap.String("reviewer_id", reviewerID),
		zap.String("decision", decision),
	)

	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("review leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}
	if err != nil {
		return LeaveResponse{}, err
	}
	if l.Status != StatusPending {
		log.Warn("review leave rejected", zap.String("current_status", l.Status))
		return LeaveResponse{}, leaveerrors.ErrAlreadyReviewed
	}

	reviewedOn := s.now().UTC()
	l.Status = decision
	l.ReviewedOn = &reviewedOn
	l.ReviewComments = strings.TrimSpace(comments)
	if rid, err := uuid.Parse(reviewerID); err == nil {
		l.ReviewedBy = &rid
	}

	if err := qtx.Review(ctx, l); err != nil {
		if errors.Is(err, leaveerrors.ErrAlreadyReviewed) {
			log.Warn("review leave lost race", zap.Error(err))
			return LeaveResponse{}, err
		}
		log.Error("review leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if s.outbox != nil {
		requestID := contextutil.GetRequestID(ctx)
		payload := events.LeaveReviewedEvent{
			EventType:  events.LeaveReviewed,
			RequestID:  requestID,
			LeaveID:    l.ID.String(),
			EmployeeID: l.EmployeeID.String(),
			LeaveType:  l.LeaveType,
			StartDate:  l.StartDate.Format(dateLayout),
			EndDate:    l.EndDate.Format(dateLayout),
			TotalDays:  l.TotalDays,
			Status:     l.Status,
			ReviewedBy: reviewerID,
			Comments:   l.ReviewComments,
			OccurredAt: reviewedOn,
		}
		if l.Employee != nil {
			payload.EmployeeName = l.Employee.FullName()
			payload.EmployeeEmail = l.Employee.Email
		}

		event, err := kafka.NewOutboxEvent("leave", l.ID.String(), events.LeaveReviewed, events.LeaveReviewTopic, requestID, payload)
		if err != nil {
			log.Error("review leave build event failed", zap.Error(err))
			return LeaveResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
			log.Error("review leave outbox persist failed", zap.Error(err))
			return LeaveResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("review leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	log.Info("review leave success")
	return mapToResponse(*l), nil
}

func (s *service) Cancel(ctx context.Context, employeeID, id string) error {
	log := contextutil.GetLogger(ctx, s.logger).With(zap.String("leave_id", id))

	if _, err := uuid.Parse(id); err != nil {
		return leaveerrors.ErrLeaveNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrLeaveNotFound
	}
	if err != nil {
		return err
	}
	// another employee's request is reported as missing
	if l.EmployeeID.String() != employeeID {
		return leaveerrors.ErrLeaveNotFound
	}
	if l.Status != StatusPending {
		return leaveerrors.ErrCannotCancelReviewed
	}

	if err := qtx.DeletePending(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leaveerrors.ErrLeaveNotFound
		}
		log.Error("cancel leave delete failed", zap.Error(err))
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	log.Info("cancel leave success")
	return nil
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:             l.ID.String(),
		EmployeeID:     l.EmployeeID.String(),
		LeaveType:      l.LeaveType,
		StartDate:      l.StartDate.Format(dateLayout),
		EndDate:        l.EndDate.Format(dateLayout),
		TotalDays:      l.TotalDays,
		Reason:         l.Reason,
		Status:         l.Status,
		AppliedOn:      l.AppliedOn.UTC().Format(time.RFC3339),
		ReviewComments: l.ReviewComments,
	}
	if l.ReviewedBy != nil {
		v := l.ReviewedBy.String()
		resp.ReviewedBy = &v
	}
	if l.ReviewedOn != nil {
		v := l.ReviewedOn.UTC().Format(time.RFC3339)
		resp.ReviewedOn = &v
	}
	if l.Employee != nil {
		resp.EmployeeName = l.Employee.FullName()
		resp.EmployeeCode = l.Employee.EmployeeCode
	}
	return resp
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	out := make([]LeaveResponse, 0, len(leaves))
	for _, l := range leaves {
		out = append(out, mapToResponse(l))
	}
	return out
}
