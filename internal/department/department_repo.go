package department

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	FindAll(ctx context.Context) ([]Summary, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindAll(ctx context.Context) ([]Summary, error) {
	var out []Summary
	err := r.db.WithContext(ctx).
		Table("employees").
		Select("job_department AS name, COUNT(*) AS headcount, COUNT(*) FILTER (WHERE status = ?) AS active", "active").
		Where("job_department <> ''").
		Group("job_department").
		Order("job_department").
		Scan(&out).Error
	return out, err
}
