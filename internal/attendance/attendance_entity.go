package attendance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusHalfDay = "half-day"
	StatusLeave   = "leave"
)

func IsValidStatus(status string) bool {
	switch status {
	case StatusPresent, StatusAbsent, StatusHalfDay, StatusLeave:
		return true
	}
	return false
}

var secondsPerHour = decimal.NewFromInt(3600)

// Attendance holds one employee's record for one calendar day.
type Attendance struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_employee_date,priority:1"`
	Employee   *EmployeeRef    `gorm:"foreignKey:EmployeeID;references:ID;constraint:OnDelete:CASCADE"`
	Date       time.Time       `gorm:"type:date;not null;index;uniqueIndex:uq_attendance_employee_date,priority:2"`
	CheckIn    *time.Time      `gorm:"type:timestamptz"`
	CheckOut   *time.Time      `gorm:"type:timestamptz"`
	Status     string          `gorm:"type:varchar(20);not null"`
	WorkHours  decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0"`
	Remarks    string          `gorm:"type:text"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type EmployeeRef struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeCode string
	FirstName    string `gorm:"column:personal_first_name"`
	LastName     string `gorm:"column:personal_last_name"`
	Department   string `gorm:"column:job_department"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}

// recomputeWorkHours sets WorkHours from CheckIn and CheckOut when both are
// present. Write paths call it right before persisting.
func recomputeWorkHours(a *Attendance) *Attendance {
	if a.CheckIn == nil || a.CheckOut == nil {
		return a
	}
	d := a.CheckOut.Sub(*a.CheckIn)
	if d < 0 {
		d = 0
	}
	a.WorkHours = decimal.NewFromInt(int64(d / time.Second)).Div(secondsPerHour).Round(2)
	return a
}
