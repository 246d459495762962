package user

import (
	"time"

	"github.com/google/uuid"
)

// User is the login account attached to an employee. Tokens are issued
// elsewhere; this service only creates and maintains the account.
type User struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"column:employee_id;type:uuid;not null;uniqueIndex"`
	LoginID    string    `gorm:"column:login_id;type:varchar(32);not null;uniqueIndex"`
	Email      string    `gorm:"column:email;type:text;not null;uniqueIndex"`
	Password   string    `gorm:"column:password;type:text;not null"`
	Role       string    `gorm:"column:role;type:varchar(20);not null;default:employee"`
	IsActive   bool      `gorm:"column:is_active;default:true"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
