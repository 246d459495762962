package employeesalary

import (
	"context"
	"database/sql"
	"time"

	"dayflow-hrms/internal/shared/connection"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EmployeeSalary is the salary slice of an employees row.
type EmployeeSalary struct {
	EmployeeID uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	SalaryInfo SalaryInfo `gorm:"column:salary_info;type:jsonb"`
	UpdatedAt  time.Time
}

func (EmployeeSalary) TableName() string {
	return "employees"
}

//go:generate mockgen -source=employee_salary_repo.go -destination=mock/employee_salary_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindByEmployeeID(ctx context.Context, employeeID string) (*EmployeeSalary, error)
	UpdateSalaryInfo(ctx context.Context, employeeID string, info SalaryInfo) error
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

func (r *repository) FindByEmployeeID(ctx context.Context, employeeID string) (*EmployeeSalary, error) {
	var row EmployeeSalary
	err := r.db.WithContext(ctx).
		Select("id", "salary_info", "updated_at").
		Where("id = ?", employeeID).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) UpdateSalaryInfo(ctx context.Context, employeeID string, info SalaryInfo) error {
	res := r.db.WithContext(ctx).
		Model(&EmployeeSalary{}).
		Where("id = ?", employeeID).
		Updates(map[string]any{
			"salary_info": info,
			"updated_at":  time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
