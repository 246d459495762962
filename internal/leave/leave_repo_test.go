package leave_test

import (
	"context"
	"testing"
	"time"

	"dayflow-hrms/internal/leave"
	leaveerrors "dayflow-hrms/internal/leave/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupRepoTest(t *testing.T) (leave.Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return leave.NewRepository(gormDB), mock
}

func reviewedLeave() *leave.Leave {
	now := time.Now().UTC()
	reviewer := uuid.New()
	return &leave.Leave{
		ID:             uuid.New(),
		Status:         leave.StatusApproved,
		ReviewedBy:     &reviewer,
		ReviewedOn:     &now,
		ReviewComments: "ok",
	}
}

func TestLeaveRepository_Review(t *testing.T) {
	t.Run("pending row is updated", func(t *testing.T) {
		repo, mock := setupRepoTest(t)
		l := reviewedLeave()

		mock.ExpectExec(`UPDATE "leaves" SET .* WHERE id = \$6 AND status = \$7`).
			WithArgs("ok", sqlmock.AnyArg(), sqlmock.AnyArg(), leave.StatusApproved, sqlmock.AnyArg(), l.ID.String(), leave.StatusPending).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Review(context.Background(), l))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("row no longer pending", func(t *testing.T) {
		repo, mock := setupRepoTest(t)

		mock.ExpectExec(`UPDATE "leaves" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Review(context.Background(), reviewedLeave())

		assert.ErrorIs(t, err, leaveerrors.ErrAlreadyReviewed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLeaveRepository_DeletePending(t *testing.T) {
	t.Run("pending row is removed", func(t *testing.T) {
		repo, mock := setupRepoTest(t)
		id := uuid.NewString()

		mock.ExpectExec(`DELETE FROM "leaves" WHERE id = \$1 AND status = \$2`).
			WithArgs(id, leave.StatusPending).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.DeletePending(context.Background(), id))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reviewed row is kept", func(t *testing.T) {
		repo, mock := setupRepoTest(t)

		mock.ExpectExec(`DELETE FROM "leaves"`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.DeletePending(context.Background(), uuid.NewString())

		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
