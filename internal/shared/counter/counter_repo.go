package counter

import (
	"context"
	"database/sql"

	"dayflow-hrms/internal/shared/connection"

	"gorm.io/gorm"
)

const (
	TypeEmployeeCode = "employee_code"
	TypeLoginID      = "login_id"
)

// SequenceCounter backs the sequence_counters table.
type SequenceCounter struct {
	Scope       string `gorm:"primaryKey;type:varchar(64)"`
	CounterType string `gorm:"primaryKey;type:varchar(64)"`
	LastValue   int64  `gorm:"not null;default:0"`
	UpdatedAt   int64  `gorm:"autoUpdateTime"`
}

//go:generate mockgen -destination=mock/counter_repo_mock.go -package=mock . Repository
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	GetNextValue(ctx context.Context, scope string, counterType string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: connection.BindTx(r.db, tx)}
}

// GetNextValue atomically increments and returns the counter for (scope, type).
// The first call for a pair returns 1.
func (r *repository) GetNextValue(ctx context.Context, scope string, counterType string) (int64, error) {
	var nextValue int64

	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO sequence_counters (scope, counter_type, last_value, updated_at)
		VALUES (?, ?, 1, extract(epoch from now())::bigint)
		ON CONFLICT (scope, counter_type) DO UPDATE
		SET last_value = sequence_counters.last_value + 1,
			updated_at = extract(epoch from now())::bigint
		RETURNING last_value
	`, scope, counterType).Scan(&nextValue).Error

	if err != nil {
		return 0, err
	}

	return nextValue, nil
}
