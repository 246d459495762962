package employeesalary

import (
	"dayflow-hrms/internal/wage"

	"github.com/shopspring/decimal"
)

type ComponentOverride struct {
	Amount     *decimal.Decimal `json:"amount"`
	Percentage *decimal.Decimal `json:"percentage"`
}

// UpdateSalaryProfileRequest is the body of PUT /employees/:id/salary.
// salaryComponents is keyed by component name (basicSalary, hra, ...).
type UpdateSalaryProfileRequest struct {
	MonthWage        *decimal.Decimal             `json:"monthWage"`
	WorkingDays      *int                         `json:"workingDays"`
	BreakTime        *decimal.Decimal             `json:"breakTime"`
	SalaryComponents map[string]ComponentOverride `json:"salaryComponents"`
	PFEmployee       *ComponentOverride           `json:"pfEmployee"`
	PFEmployer       *ComponentOverride           `json:"pfEmployer"`
	ProfessionalTax  *ComponentOverride           `json:"professionalTax"`
}

func (r UpdateSalaryProfileRequest) ToUpdate() Update {
	u := Update{
		MonthWage:   r.MonthWage,
		WorkingDays: r.WorkingDays,
		BreakTime:   r.BreakTime,
	}

	add := func(c wage.Component, o *ComponentOverride) {
		if o == nil {
			return
		}
		if u.Components == nil {
			u.Components = make(map[wage.Component]ValueUpdate)
		}
		u.Components[c] = ValueUpdate{Amount: o.Amount, Percentage: o.Percentage}
	}

	for name, o := range r.SalaryComponents {
		add(wage.Component(name), &o)
	}
	add(wage.PFEmployee, r.PFEmployee)
	add(wage.PFEmployer, r.PFEmployer)
	add(wage.ProfessionalTax, r.ProfessionalTax)

	return u
}

type SalaryProfileResponse struct {
	EmployeeID    string          `json:"employeeId"`
	GrossEarnings decimal.Decimal `json:"grossEarnings"`
	Profile
}

func mapToResponse(row EmployeeSalary) SalaryProfileResponse {
	p := row.SalaryInfo.Profile()
	c := p.SalaryComponents
	return SalaryProfileResponse{
		EmployeeID: row.EmployeeID.String(),
		GrossEarnings: decimal.Sum(
			c.BasicSalary.Amount,
			c.HRA.Amount,
			c.StandardAllowance.Amount,
			c.PerformanceBonus.Amount,
			c.LTA.Amount,
			c.FixedAllowance.Amount,
		),
		Profile: p,
	}
}
