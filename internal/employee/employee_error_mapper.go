package employee

import (
	"errors"

	employeeerrors "dayflow-hrms/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "uq_employee_code":
			return employeeerrors.ErrEmployeeCodeAlreadyExists
		case "uq_employee_login_id", "idx_users_login_id":
			return employeeerrors.ErrLoginIDAlreadyExists
		default:
			return employeeerrors.ErrEmployeeAlreadyExists
		}
	}

	return err
}
