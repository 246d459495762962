package leave

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"

	TypePaid   = "paid"
	TypeSick   = "sick"
	TypeUnpaid = "unpaid"
	TypeCasual = "casual"
)

func IsValidLeaveType(t string) bool {
	switch t {
	case TypePaid, TypeSick, TypeUnpaid, TypeCasual:
		return true
	}
	return false
}

type Leave struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID      `gorm:"type:uuid;not null;index:idx_leaves_employee_applied,priority:1"`
	Employee   *LeaveEmployee `gorm:"foreignKey:EmployeeID;references:ID;constraint:OnDelete:CASCADE"`

	LeaveType string    `gorm:"type:varchar(10);not null"`
	StartDate time.Time `gorm:"type:date;not null;index:idx_leaves_dates,priority:1"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_leaves_dates,priority:2"`
	TotalDays int       `gorm:"not null"`
	Reason    string    `gorm:"type:text;not null"`

	Status         string     `gorm:"type:varchar(10);not null;default:pending;index"`
	AppliedOn      time.Time  `gorm:"not null;index:idx_leaves_employee_applied,priority:2,sort:desc"`
	ReviewedBy     *uuid.UUID `gorm:"type:uuid"`
	ReviewedOn     *time.Time
	ReviewComments string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type LeaveEmployee struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeCode string
	FirstName    string `gorm:"column:personal_first_name"`
	LastName     string `gorm:"column:personal_last_name"`
	Email        string `gorm:"column:personal_email"`
}

func (LeaveEmployee) TableName() string {
	return "employees"
}

func (e LeaveEmployee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

// recomputeTotalDays counts calendar days with both ends included.
func recomputeTotalDays(l *Leave) *Leave {
	if l.EndDate.Before(l.StartDate) {
		l.TotalDays = 0
		return l
	}
	l.TotalDays = int(l.EndDate.Sub(l.StartDate).Hours()/24) + 1
	return l
}
