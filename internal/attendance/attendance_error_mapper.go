package attendance

import (
	"errors"

	attendanceerrors "dayflow-hrms/internal/attendance/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// mapRepositoryError translates constraint violations raised while writing an
// attendance row. Not-found is handled at each call site.
func mapRepositoryError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return attendanceerrors.ErrAlreadyCheckedIn
		case "23503":
			return attendanceerrors.ErrEmployeeNotFound
		}
	}
	return err
}
