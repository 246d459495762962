package rbacerrors

import (
	"net/http"

	"dayflow-hrms/internal/shared/apperror"
)

var (
	ErrUnknownRole = apperror.New(
		apperror.CodeForbidden,
		"role is not recognised",
		http.StatusForbidden,
	)
	ErrFieldsNotWritable = apperror.New(
		apperror.CodeForbidden,
		"you are not allowed to change one or more fields",
		http.StatusForbidden,
	)
)
