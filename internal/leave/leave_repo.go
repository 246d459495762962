package leave

import (
	"context"
	"database/sql"
	"time"

	leaveerrors "dayflow-hrms/internal/leave/errors"
	"dayflow-hrms/internal/shared/connection"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Leave) error
	FindByID(ctx context.Context, id string) (*Leave, error)
	FindAll(ctx context.Context, filter ListFilter) ([]Leave, int64, error)
	Review(ctx context.Context, l *Leave) error
	DeletePending(ctx context.Context, id string) error
	EmployeeExists(ctx context.Context, employeeID string) (bool, error)
	HasOverlappingPeriod(ctx context.Context, employeeID string, startDate, endDate time.Time) (bool, error)
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

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Omit("Employee").Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Leave, error) {
	var l Leave
	err := r.db.WithContext(ctx).
		Preload("Employee").
		First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]Leave, int64, error) {
	var (
		leaves []Leave
		total  int64
	)

	scope := func(db *gorm.DB) *gorm.DB {
		if filter.EmployeeID != "" {
			db = db.Where("employee_id = ?", filter.EmployeeID)
		}
		if filter.Status != "" {
			db = db.Where("status = ?", filter.Status)
		}
		if filter.LeaveType != "" {
			db = db.Where("leave_type = ?", filter.LeaveType)
		}
		return db
	}

	if err := r.db.WithContext(ctx).Model(&Leave{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Scopes(scope).
		Preload("Employee").
		Order("applied_on DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&leaves).Error
	return leaves, total, err
}

// Review stores the decision on l only while the row is still pending.
func (r *repository) Review(ctx context.Context, l *Leave) error {
	res := r.db.WithContext(ctx).
		Model(&Leave{}).
		Where("id = ?", l.ID).
		Where("status = ?", StatusPending).
		Updates(map[string]any{
			"status":          l.Status,
			"reviewed_by":     l.ReviewedBy,
			"reviewed_on":     l.ReviewedOn,
			"review_comments": l.ReviewComments,
			"updated_at":      time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return leaveerrors.ErrAlreadyReviewed
	}
	return nil
}

// DeletePending removes a request that has not been reviewed yet.
func (r *repository) DeletePending(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Where("status = ?", StatusPending).
		Delete(&Leave{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&LeaveEmployee{}).
		Where("id = ?", employeeID).
		Count(&count).Error
	return count > 0, err
}

// HasOverlappingPeriod checks pending and approved requests only.
func (r *repository) HasOverlappingPeriod(ctx context.Context, employeeID string, startDate, endDate time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Leave{}).
		Where("employee_id = ?", employeeID).
		Where("status IN ?", []string{StatusPending, StatusApproved}).
		Where("start_date <= ? AND end_date >= ?", endDate.Format(dateLayout), startDate.Format(dateLayout)).
		Count(&count).Error
	return count > 0, err
}
