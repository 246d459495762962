package attendance

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	attendanceerrors "dayflow-hrms/internal/attendance/errors"
	"dayflow-hrms/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	CheckIn(ctx context.Context, employeeID string) (AttendanceResponse, error)
	CheckOut(ctx context.Context, employeeID string) (AttendanceResponse, error)
	// GetToday returns nil when the employee has no record for today.
	GetToday(ctx context.Context, employeeID string) (*AttendanceResponse, error)
	GetAll(ctx context.Context, filter Filter) ([]AttendanceResponse, int64, error)
	// Mark reports created=true when no record existed for the day.
	Mark(ctx context.Context, req MarkAttendanceRequest) (resp AttendanceResponse, created bool, err error)
	Summary(ctx context.Context, filter Filter) ([]StatusCount, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{db: db, repo: repo, now: time.Now, logger: l}
}

func (s *service) today() (time.Time, time.Time) {
	now := s.now().UTC()
	return now, now.Truncate(24 * time.Hour)
}

func (s *service) CheckIn(ctx context.Context, employeeID string) (AttendanceResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger).With(zap.String("employee_id", employeeID))

	empID, err := uuid.Parse(employeeID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrEmployeeNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now, day := s.today()

	row, err := qtx.FindByEmployeeAndDate(ctx, employeeID, day)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		row = &Attendance{
			ID:         uuid.New(),
			EmployeeID: empID,
			Date:       day,
			CheckIn:    &now,
			Status:     StatusPresent,
		}
		err = qtx.Create(ctx, row)
	case err != nil:
		log.Error("check-in lookup failed", zap.Error(err))
		return AttendanceResponse{}, err
	case row.CheckIn != nil:
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedIn
	default:
		// marked by hr before the employee arrived
		row.CheckIn = &now
		row.Status = StatusPresent
		err = qtx.Update(ctx, recomputeWorkHours(row))
	}
	if err != nil {
		log.Warn("check-in persist failed", zap.Error(err))
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}

	log.Info("checked in", zap.String("attendance_id", row.ID.String()))
	return mapToResponse(*row), nil
}

func (s *service) CheckOut(ctx context.Context, employeeID string) (AttendanceResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger).With(zap.String("employee_id", employeeID))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now, day := s.today()

	row, err := qtx.FindByEmployeeAndDate(ctx, employeeID, day)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceResponse{}, attendanceerrors.ErrNoCheckIn
	}
	if err != nil {
		return AttendanceResponse{}, err
	}
	if row.CheckIn == nil {
		return AttendanceResponse{}, attendanceerrors.ErrNoCheckIn
	}
	if row.CheckOut != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedOut
	}

	row.CheckOut = &now
	if err := qtx.Update(ctx, recomputeWorkHours(row)); err != nil {
		log.Error("check-out persist failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}

	log.Info("checked out",
		zap.String("attendance_id", row.ID.String()),
		zap.String("work_hours", row.WorkHours.StringFixed(2)),
	)
	return mapToResponse(*row), nil
}

func (s *service) GetToday(ctx context.Context, employeeID string) (*AttendanceResponse, error) {
	_, day := s.today()
	row, err := s.repo.FindByEmployeeAndDate(ctx, employeeID, day)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	resp := mapToResponse(*row)
	return &resp, nil
}

func (s *service) GetAll(ctx context.Context, filter Filter) ([]AttendanceResponse, int64, error) {
	if err := validateRange(filter); err != nil {
		return nil, 0, err
	}
	rows, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]AttendanceResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, mapToResponse(r))
	}
	return out, total, nil
}

func (s *service) Mark(ctx context.Context, req MarkAttendanceRequest) (AttendanceResponse, bool, error) {
	log := contextutil.GetLogger(ctx, s.logger).With(
		zap.String("employee_id", req.EmployeeID),
		zap.String("date", req.Date),
	)

	if !IsValidStatus(req.Status) {
		return AttendanceResponse{}, false, attendanceerrors.ErrInvalidStatus
	}
	empID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return AttendanceResponse{}, false, attendanceerrors.ErrEmployeeNotFound
	}
	day, err := time.Parse(dateLayout, strings.TrimSpace(req.Date))
	if err != nil {
		return AttendanceResponse{}, false, attendanceerrors.ErrInvalidDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, false, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.EmployeeExists(ctx, req.EmployeeID)
	if err != nil {
		return AttendanceResponse{}, false, err
	}
	if !exists {
		return AttendanceResponse{}, false, attendanceerrors.ErrEmployeeNotFound
	}

	created := false
	row, err := qtx.FindByEmployeeAndDate(ctx, req.EmployeeID, day)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		created = true
		row = &Attendance{
			ID:         uuid.New(),
			EmployeeID: empID,
			Date:       day,
			Status:     req.Status,
			Remarks:    req.Remarks,
		}
		err = qtx.Create(ctx, row)
	case err != nil:
		return AttendanceResponse{}, false, err
	default:
		row.Status = req.Status
		row.Remarks = req.Remarks
		err = qtx.Update(ctx, recomputeWorkHours(row))
	}
	if err != nil {
		log.Error("mark attendance persist failed", zap.Bool("created", created), zap.Error(err))
		return AttendanceResponse{}, false, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, false, err
	}

	log.Info("attendance marked", zap.String("status", row.Status), zap.Bool("created", created))
	return mapToResponse(*row), created, nil
}

func (s *service) Summary(ctx context.Context, filter Filter) ([]StatusCount, error) {
	if err := validateRange(filter); err != nil {
		return nil, err
	}
	counts, err := s.repo.CountByStatus(ctx, filter)
	if err != nil {
		return nil, err
	}
	if counts == nil {
		counts = []StatusCount{}
	}
	return counts, nil
}

func validateRange(f Filter) error {
	if f.StartDate != nil && f.EndDate != nil && f.StartDate.After(*f.EndDate) {
		return attendanceerrors.ErrInvalidDateRange
	}
	return nil
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:         a.ID.String(),
		EmployeeID: a.EmployeeID.String(),
		Date:       a.Date.Format(dateLayout),
		Status:     a.Status,
		WorkHours:  a.WorkHours,
		Remarks:    a.Remarks,
	}
	if a.CheckIn != nil {
		v := a.CheckIn.UTC().Format(time.RFC3339)
		resp.CheckIn = &v
	}
	if a.CheckOut != nil {
		v := a.CheckOut.UTC().Format(time.RFC3339)
		resp.CheckOut = &v
	}
	if a.Employee != nil {
		resp.EmployeeName = strings.TrimSpace(a.Employee.FirstName + " " + a.Employee.LastName)
		resp.EmployeeCode = a.Employee.EmployeeCode
	}
	return resp
}
