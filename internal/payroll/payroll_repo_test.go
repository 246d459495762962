package payroll_test

import (
	"context"
	"testing"

	"dayflow-hrms/internal/payroll"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupRepoTest(t *testing.T) (payroll.Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)

	return payroll.NewRepository(gdb), mock
}

func TestPayrollRepository_EmployeeExists(t *testing.T) {
	repo, mock := setupRepoTest(t)
	id := uuid.NewString()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "employees" WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	ok, err := repo.EmployeeExists(context.Background(), id)

	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPayrollRepository_FindByEmployeeID_NotFound(t *testing.T) {
	repo, mock := setupRepoTest(t)

	mock.ExpectQuery(`SELECT .* FROM "payrolls" WHERE employee_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByEmployeeID(context.Background(), uuid.NewString())

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPayrollRepository_Delete(t *testing.T) {
	t.Run("deletes by id", func(t *testing.T) {
		repo, mock := setupRepoTest(t)
		id := uuid.NewString()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "payrolls" WHERE id = \$1`).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.Delete(context.Background(), id))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row", func(t *testing.T) {
		repo, mock := setupRepoTest(t)

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "payrolls"`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		assert.ErrorIs(t, repo.Delete(context.Background(), uuid.NewString()), gorm.ErrRecordNotFound)
	})
}
