package employee

import (
	"strings"
	"time"

	"dayflow-hrms/internal/employeesalary"

	"github.com/google/uuid"
)

const (
	StatusActive     = "active"
	StatusInactive   = "inactive"
	StatusTerminated = "terminated"
)

func IsValidStatus(status string) bool {
	switch status {
	case StatusActive, StatusInactive, StatusTerminated:
		return true
	}
	return false
}

type BankDetails struct {
	AccountNumber string `gorm:"type:varchar(34)"`
	BankName      string `gorm:"type:varchar(100)"`
	IFSCCode      string `gorm:"column:ifsc_code;type:varchar(11)"`
	PANNo         string `gorm:"column:pan_no;type:varchar(10)"`
	UANNo         string `gorm:"column:uan_no;type:varchar(12)"`
}

type PersonalDetails struct {
	FirstName     string `gorm:"type:varchar(100);not null"`
	LastName      string `gorm:"type:varchar(100);not null"`
	Email         string `gorm:"type:text;not null;uniqueIndex:uq_employee_email"`
	Phone         string `gorm:"type:varchar(20)"`
	Address       string `gorm:"type:text"`
	DateOfBirth   *time.Time
	Gender        string      `gorm:"type:varchar(20)"`
	MaritalStatus string      `gorm:"type:varchar(20)"`
	Nationality   string      `gorm:"type:varchar(60)"`
	BankDetails   BankDetails `gorm:"embedded;embeddedPrefix:bank_"`
}

type JobDetails struct {
	Designation    string    `gorm:"type:varchar(100);not null"`
	Department     string    `gorm:"type:varchar(100);not null;index"`
	JoiningDate    time.Time `gorm:"type:date;not null"`
	EmploymentType string    `gorm:"type:varchar(20);not null;default:full-time"`
	Manager        string    `gorm:"type:varchar(150)"`
	Location       string    `gorm:"type:varchar(150)"`
}

type Employee struct {
	ID              uuid.UUID                 `gorm:"type:uuid;primaryKey"`
	EmployeeCode    string                    `gorm:"type:varchar(20);not null;uniqueIndex:uq_employee_code"`
	LoginID         string                    `gorm:"type:varchar(32);not null;uniqueIndex:uq_employee_login_id"`
	PersonalDetails PersonalDetails           `gorm:"embedded;embeddedPrefix:personal_"`
	JobDetails      JobDetails                `gorm:"embedded;embeddedPrefix:job_"`
	Status          string                    `gorm:"type:varchar(20);not null;default:active;index"`
	SalaryInfo      employeesalary.SalaryInfo `gorm:"column:salary_info;type:jsonb"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (e Employee) FullName() string {
	return strings.TrimSpace(e.PersonalDetails.FirstName + " " + e.PersonalDetails.LastName)
}
