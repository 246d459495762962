package attendance

import (
	"context"
	"database/sql"
	"time"

	"dayflow-hrms/internal/shared/connection"

	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	Update(ctx context.Context, a *Attendance) error
	FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)
	FindAll(ctx context.Context, filter Filter) ([]Attendance, int64, error)
	CountByStatus(ctx context.Context, filter Filter) ([]StatusCount, error)
	EmployeeExists(ctx context.Context, employeeID string) (bool, error)
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

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Omit("Employee").Create(a).Error
}

func (r *repository) Update(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Omit("Employee", "created_at").Save(a).Error
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("date = ?", date.Format(dateLayout)).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindAll(ctx context.Context, filter Filter) ([]Attendance, int64, error) {
	var (
		rows  []Attendance
		total int64
	)

	q := r.db.WithContext(ctx).Model(&Attendance{}).Scopes(applyFilter(filter))
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Scopes(applyFilter(filter)).
		Preload("Employee").
		Order("date DESC, created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&rows).Error
	return rows, total, err
}

func (r *repository) CountByStatus(ctx context.Context, filter Filter) ([]StatusCount, error) {
	var out []StatusCount
	err := r.db.WithContext(ctx).
		Model(&Attendance{}).
		Scopes(applyFilter(Filter{EmployeeID: filter.EmployeeID, StartDate: filter.StartDate, EndDate: filter.EndDate, Date: filter.Date})).
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("status").
		Scan(&out).Error
	return out, err
}

func (r *repository) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&EmployeeRef{}).
		Where("id = ?", employeeID).
		Count(&count).Error
	return count > 0, err
}

func applyFilter(f Filter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.EmployeeID != "" {
			db = db.Where("employee_id = ?", f.EmployeeID)
		}
		switch {
		case f.Date != nil:
			db = db.Where("date = ?", f.Date.Format(dateLayout))
		case f.StartDate != nil && f.EndDate != nil:
			db = db.Where("date BETWEEN ? AND ?", f.StartDate.Format(dateLayout), f.EndDate.Format(dateLayout))
		}
		if f.Status != "" {
			db = db.Where("status = ?", f.Status)
		}
		return db
	}
}
