package employeesalary

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	employeesalaryerrors "dayflow-hrms/internal/employeesalary/errors"
	"dayflow-hrms/internal/wage"

	"github.com/shopspring/decimal"
)

const (
	DefaultWorkingDays = 5
	minWorkingDays     = 1
	maxWorkingDays     = 7
)

var (
	DefaultBreakTime = decimal.NewFromInt(1)
	yearMonths       = decimal.NewFromInt(12)
	hundred          = decimal.NewFromInt(100)
)

type Components struct {
	BasicSalary       wage.ComponentValue `json:"basicSalary"`
	HRA               wage.ComponentValue `json:"hra"`
	StandardAllowance wage.ComponentValue `json:"standardAllowance"`
	PerformanceBonus  wage.ComponentValue `json:"performanceBonus"`
	LTA               wage.ComponentValue `json:"lta"`
	FixedAllowance    wage.ComponentValue `json:"fixedAllowance"`
}

// Profile is a read-only snapshot of an employee's salary information.
type Profile struct {
	MonthWage        decimal.Decimal     `json:"monthWage"`
	YearlyWage       decimal.Decimal     `json:"yearlyWage"`
	WorkingDays      int                 `json:"workingDays"`
	BreakTime        decimal.Decimal     `json:"breakTime"`
	SalaryComponents Components          `json:"salaryComponents"`
	PFEmployee       wage.ComponentValue `json:"pfEmployee"`
	PFEmployer       wage.ComponentValue `json:"pfEmployer"`
	ProfessionalTax  wage.ComponentValue `json:"professionalTax"`
}

// SalaryInfo is embedded in the employee record. The only way to change it
// is Apply, which keeps monthWage and its derived components in step.
type SalaryInfo struct {
	p Profile
}

// ValueUpdate overrides one component. Nil fields keep the stored value.
type ValueUpdate struct {
	Amount     *decimal.Decimal
	Percentage *decimal.Decimal
}

// Update describes a salary change. When MonthWage is set every component is
// recomputed from it and Components must be empty.
type Update struct {
	MonthWage   *decimal.Decimal
	WorkingDays *int
	BreakTime   *decimal.Decimal
	Components  map[wage.Component]ValueUpdate
}

func (u Update) IsEmpty() bool {
	return u.MonthWage == nil && u.WorkingDays == nil && u.BreakTime == nil && len(u.Components) == 0
}

func DefaultSalaryInfo() SalaryInfo {
	var info SalaryInfo
	info.p.WorkingDays = DefaultWorkingDays
	info.p.BreakTime = DefaultBreakTime
	info.replaceComponents(decimal.Zero)
	return info
}

func (s SalaryInfo) Profile() Profile {
	return s.p
}

// Apply validates u and then mutates s. On error s is unchanged.
func (s *SalaryInfo) Apply(u Update) error {
	if err := u.validate(); err != nil {
		return err
	}

	next := s.p
	if u.WorkingDays != nil {
		next.WorkingDays = *u.WorkingDays
	}
	if u.BreakTime != nil {
		next.BreakTime = u.BreakTime.Round(2)
	}

	if u.MonthWage != nil {
		s.p = next
		s.replaceComponents(*u.MonthWage)
		return nil
	}

	for c, vu := range u.Components {
		target := next.component(c)
		if vu.Amount != nil {
			target.Amount = vu.Amount.Round(2)
		}
		if vu.Percentage != nil {
			target.Percentage = vu.Percentage.Round(2)
		}
	}

	s.p = next
	return nil
}

// replaceComponents swaps the whole derived set in one assignment.
func (s *SalaryInfo) replaceComponents(monthWage decimal.Decimal) {
	monthWage = monthWage.Round(2)
	b := wage.Compute(monthWage)

	s.p.MonthWage = monthWage
	s.p.YearlyWage = monthWage.Mul(yearMonths)
	s.p.SalaryComponents = Components{
		BasicSalary:       b.BasicSalary,
		HRA:               b.HRA,
		StandardAllowance: b.StandardAllowance,
		PerformanceBonus:  b.PerformanceBonus,
		LTA:               b.LTA,
		FixedAllowance:    b.FixedAllowance,
	}
	s.p.PFEmployee = b.PFEmployee
	s.p.PFEmployer = b.PFEmployer
	s.p.ProfessionalTax = b.ProfessionalTax
}

func (p *Profile) component(c wage.Component) *wage.ComponentValue {
	switch c {
	case wage.BasicSalary:
		return &p.SalaryComponents.BasicSalary
	case wage.HRA:
		return &p.SalaryComponents.HRA
	case wage.StandardAllowance:
		return &p.SalaryComponents.StandardAllowance
	case wage.PerformanceBonus:
		return &p.SalaryComponents.PerformanceBonus
	case wage.LTA:
		return &p.SalaryComponents.LTA
	case wage.FixedAllowance:
		return &p.SalaryComponents.FixedAllowance
	case wage.PFEmployee:
		return &p.PFEmployee
	case wage.PFEmployer:
		return &p.PFEmployer
	case wage.ProfessionalTax:
		return &p.ProfessionalTax
	}
	return nil
}

func (u Update) validate() error {
	if u.IsEmpty() {
		return employeesalaryerrors.ErrEmptyUpdate
	}
	if u.MonthWage != nil && len(u.Components) > 0 {
		return employeesalaryerrors.ErrOverrideWithWage
	}
	if u.MonthWage != nil && u.MonthWage.IsNegative() {
		return invalidValue("monthWage", "must not be negative")
	}
	if u.WorkingDays != nil && (*u.WorkingDays < minWorkingDays || *u.WorkingDays > maxWorkingDays) {
		return invalidValue("workingDays", "must be between 1 and 7")
	}
	if u.BreakTime != nil && u.BreakTime.IsNegative() {
		return invalidValue("breakTime", "must not be negative")
	}

	var probe Profile
	for c, vu := range u.Components {
		if probe.component(c) == nil {
			return employeesalaryerrors.ErrUnknownComponent.WithDetails(map[string]string{"component": string(c)})
		}
		if vu.Amount != nil && vu.Amount.IsNegative() {
			return invalidValue(string(c)+".amount", "must not be negative")
		}
		if vu.Percentage != nil && (vu.Percentage.IsNegative() || vu.Percentage.GreaterThan(hundred)) {
			return invalidValue(string(c)+".percentage", "must be between 0 and 100")
		}
	}
	return nil
}

func invalidValue(field, rule string) error {
	return employeesalaryerrors.ErrInvalidSalaryValue.WithDetails(map[string]string{
		"field": field,
		"rule":  rule,
	})
}

func (s SalaryInfo) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.p)
}

func (s *SalaryInfo) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &s.p)
}

// Value stores the profile as jsonb.
func (s SalaryInfo) Value() (driver.Value, error) {
	b, err := json.Marshal(s.p)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *SalaryInfo) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*s = DefaultSalaryInfo()
		return nil
	case []byte:
		return json.Unmarshal(v, &s.p)
	case string:
		return json.Unmarshal([]byte(v), &s.p)
	default:
		return fmt.Errorf("salary info: unsupported source type %T", src)
	}
}

// GormDataType lets AutoMigrate create the column as jsonb.
func (SalaryInfo) GormDataType() string {
	return "jsonb"
}
