package employeesalary

import (
	"errors"

	employeesalaryerrors "dayflow-hrms/internal/employeesalary/errors"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeesalaryerrors.ErrEmployeeNotFound
	}

	return err
}
