package employeesalaryerrors

import (
	"net/http"

	"dayflow-hrms/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)

	ErrEmptyUpdate = apperror.New(
		apperror.CodeInvalidInput,
		"At least one salary field must be provided",
		http.StatusBadRequest,
	)

	ErrOverrideWithWage = apperror.New(
		apperror.CodeInvalidInput,
		"Component overrides cannot be combined with a monthWage change",
		http.StatusBadRequest,
	)

	ErrUnknownComponent = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown salary component",
		http.StatusBadRequest,
	)

	ErrInvalidSalaryValue = apperror.New(
		apperror.CodeInvalidInput,
		"Salary value out of range",
		http.StatusBadRequest,
	)
)
