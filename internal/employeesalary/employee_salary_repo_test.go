package employeesalary_test

import (
	"context"
	"testing"
	"time"

	"dayflow-hrms/internal/employeesalary"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupRepoTest(t *testing.T) (employeesalary.Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)

	return employeesalary.NewRepository(gdb), mock
}

func TestEmployeeSalaryRepository_FindByEmployeeID(t *testing.T) {
	repo, mock := setupRepoTest(t)
	id := uuid.New()
	stored := withWage(t, "50000")

	rows := sqlmock.NewRows([]string{"id", "salary_info", "updated_at"}).
		AddRow(id.String(), []byte(profileJSON(t, stored)), time.Now())
	mock.ExpectQuery(`SELECT .* FROM "employees" WHERE id = \$1`).
		WillReturnRows(rows)

	row, err := repo.FindByEmployeeID(context.Background(), id.String())

	require.NoError(t, err)
	assert.Equal(t, id, row.EmployeeID)
	assertAmount(t, "25000", row.SalaryInfo.Profile().SalaryComponents.BasicSalary.Amount, "basic")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeSalaryRepository_UpdateSalaryInfo(t *testing.T) {
	t.Run("updates the jsonb column", func(t *testing.T) {
		repo, mock := setupRepoTest(t)
		id := uuid.NewString()

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "employees" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.UpdateSalaryInfo(context.Background(), id, withWage(t, "1000"))

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row is not found", func(t *testing.T) {
		repo, mock := setupRepoTest(t)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "employees" SET`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		err := repo.UpdateSalaryInfo(context.Background(), uuid.NewString(), employeesalary.DefaultSalaryInfo())

		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}
