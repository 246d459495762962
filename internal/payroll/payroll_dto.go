package payroll

import "github.com/shopspring/decimal"

type AllowancesInput struct {
	HRA       *decimal.Decimal `json:"hra"`
	Transport *decimal.Decimal `json:"transport"`
	Medical   *decimal.Decimal `json:"medical"`
	Other     *decimal.Decimal `json:"other"`
}

type DeductionsInput struct {
	Tax           *decimal.Decimal `json:"tax"`
	ProvidentFund *decimal.Decimal `json:"providentFund"`
	Other         *decimal.Decimal `json:"other"`
}

// UpsertPayrollRequest creates the employee's payroll or merges into the
// existing one. Omitted fields keep their stored values.
type UpsertPayrollRequest struct {
	EmployeeID    string           `json:"employeeId" binding:"required,uuid"`
	BasicSalary   *decimal.Decimal `json:"basicSalary"`
	Allowances    *AllowancesInput `json:"allowances"`
	Deductions    *DeductionsInput `json:"deductions"`
	EffectiveFrom *string          `json:"effectiveFrom"`
	Currency      *string          `json:"currency" binding:"omitempty,len=3,alpha"`
}

type AllowancesResponse struct {
	HRA       decimal.Decimal `json:"hra"`
	Transport decimal.Decimal `json:"transport"`
	Medical   decimal.Decimal `json:"medical"`
	Other     decimal.Decimal `json:"other"`
}

type DeductionsResponse struct {
	Tax           decimal.Decimal `json:"tax"`
	ProvidentFund decimal.Decimal `json:"providentFund"`
	Other         decimal.Decimal `json:"other"`
}

type PayrollResponse struct {
	ID            string             `json:"id"`
	EmployeeID    string             `json:"employeeId"`
	EmployeeName  string             `json:"employeeName,omitempty"`
	BasicSalary   decimal.Decimal    `json:"basicSalary"`
	Allowances    AllowancesResponse `json:"allowances"`
	Deductions    DeductionsResponse `json:"deductions"`
	NetSalary     decimal.Decimal    `json:"netSalary"`
	EffectiveFrom string             `json:"effectiveFrom"`
	Currency      string             `json:"currency"`
	CreatedAt     string             `json:"createdAt"`
	UpdatedAt     string             `json:"updatedAt"`
}

type ListFilter struct {
	Page  int
	Limit int
}
