package payroll

import (
	"errors"

	payrollerrors "dayflow-hrms/internal/payroll/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return payrollerrors.ErrPayrollNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return payrollerrors.ErrPayrollAlreadyExists
		case "23503":
			return payrollerrors.ErrEmployeeNotFound
		}
	}

	return err
}
