package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const DefaultCurrency = "INR"

type Allowances struct {
	HRA       decimal.Decimal `gorm:"column:hra;type:numeric(14,2);not null;default:0"`
	Transport decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Medical   decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Other     decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
}

func (a Allowances) Total() decimal.Decimal {
	return a.HRA.Add(a.Transport).Add(a.Medical).Add(a.Other)
}

type Deductions struct {
	Tax           decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	ProvidentFund decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Other         decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
}

func (d Deductions) Total() decimal.Decimal {
	return d.Tax.Add(d.ProvidentFund).Add(d.Other)
}

// Payroll is the single pay record of an employee. NetSalary is derived and
// must only be set by recomputeNetSalary.
type Payroll struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey"`
	EmployeeID    uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:uq_payroll_employee"`
	Employee      *PayrollEmployee `gorm:"foreignKey:EmployeeID;references:ID;constraint:OnDelete:CASCADE"`
	BasicSalary   decimal.Decimal  `gorm:"type:numeric(14,2);not null"`
	Allowances    Allowances       `gorm:"embedded;embeddedPrefix:allowance_"`
	Deductions    Deductions       `gorm:"embedded;embeddedPrefix:deduction_"`
	NetSalary     decimal.Decimal  `gorm:"type:numeric(14,2);not null"`
	EffectiveFrom time.Time        `gorm:"type:date;not null"`
	Currency      string           `gorm:"type:varchar(3);not null;default:INR"`
	CreatedAt     time.Time        `gorm:"index"`
	UpdatedAt     time.Time
}

// PayrollEmployee is the read-only slice of an employee a payslip prints.
type PayrollEmployee struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeCode string
	FirstName    string `gorm:"column:personal_first_name"`
	LastName     string `gorm:"column:personal_last_name"`
	Email        string `gorm:"column:personal_email"`
	Department   string `gorm:"column:job_department"`
	Designation  string `gorm:"column:job_designation"`
	BankAccount  string `gorm:"column:personal_bank_account_number"`
	BankName     string `gorm:"column:personal_bank_bank_name"`
	PANNo        string `gorm:"column:personal_bank_pan_no"`
}

func (PayrollEmployee) TableName() string {
	return "employees"
}

// recomputeNetSalary derives NetSalary from the other stored amounts. Every
// write path calls it immediately before persisting.
func recomputeNetSalary(p *Payroll) *Payroll {
	p.NetSalary = p.BasicSalary.
		Add(p.Allowances.Total()).
		Sub(p.Deductions.Total()).
		Round(2)
	return p
}
