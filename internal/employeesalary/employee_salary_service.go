package employeesalary

import (
	"context"
	"database/sql"

	employeesalaryerrors "dayflow-hrms/internal/employeesalary/errors"
	"dayflow-hrms/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=employee_salary_service.go -destination=mock/employee_salary_service_mock.go -package=mock
type Service interface {
	GetSalaryProfile(ctx context.Context, employeeID string) (SalaryProfileResponse, error)
	UpdateSalaryProfile(ctx context.Context, employeeID string, req UpdateSalaryProfileRequest) (SalaryProfileResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("employeesalary.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employeesalary.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) GetSalaryProfile(ctx context.Context, employeeID string) (SalaryProfileResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return SalaryProfileResponse{}, employeesalaryerrors.ErrEmployeeNotFound
	}

	row, err := s.repo.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		return SalaryProfileResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*row), nil
}

// UpdateSalaryProfile loads the stored profile, applies the change through
// SalaryInfo.Apply and writes the result back. Concurrent updates to the
// same employee are last-write-wins.
func (s *service) UpdateSalaryProfile(
	ctx context.Context,
	employeeID string,
	req UpdateSalaryProfileRequest,
) (SalaryProfileResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger).With(zap.String("employee_id", employeeID))

	if _, err := uuid.Parse(employeeID); err != nil {
		return SalaryProfileResponse{}, employeesalaryerrors.ErrEmployeeNotFound
	}

	update := req.ToUpdate()
	log.Debug("update salary profile requested", zap.Bool("recompute", update.MonthWage != nil))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin tx", zap.Error(err))
		return SalaryProfileResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		return SalaryProfileResponse{}, mapRepositoryError(err)
	}

	if err := row.SalaryInfo.Apply(update); err != nil {
		log.Warn("salary update rejected", zap.Error(err))
		return SalaryProfileResponse{}, err
	}

	if err := qtx.UpdateSalaryInfo(ctx, employeeID, row.SalaryInfo); err != nil {
		log.Error("failed to persist salary info", zap.Error(err))
		return SalaryProfileResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit salary update", zap.Error(err))
		return SalaryProfileResponse{}, err
	}

	log.Info("salary profile updated", zap.String("month_wage", row.SalaryInfo.Profile().MonthWage.StringFixed(2)))
	return mapToResponse(*row), nil
}
