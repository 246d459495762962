package wage

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

type Component string

const (
	BasicSalary       Component = "basicSalary"
	HRA               Component = "hra"
	StandardAllowance Component = "standardAllowance"
	PerformanceBonus  Component = "performanceBonus"
	LTA               Component = "lta"
	FixedAllowance    Component = "fixedAllowance"
	PFEmployee        Component = "pfEmployee"
	PFEmployer        Component = "pfEmployer"
	ProfessionalTax   Component = "professionalTax"
)

// Basis says what a rule's percentage is applied to.
type Basis int

const (
	PercentOfWage Basis = iota
	PercentOfBasic
	FixedAmount
	// Remainder takes whatever the earning rules before it left of the wage,
	// floored at zero.
	Remainder
)

type Rule struct {
	Component  Component
	Basis      Basis
	Percentage decimal.Decimal
	Amount     decimal.Decimal
	Earning    bool
}

type Table []Rule

var (
	hundred = decimal.NewFromInt(100)

	// DefaultTable is the company salary structure. Earnings sum to the wage
	// once the wage covers the fixed standard allowance.
	DefaultTable = Table{
		{Component: BasicSalary, Basis: PercentOfWage, Percentage: decimal.NewFromInt(50), Earning: true},
		{Component: HRA, Basis: PercentOfBasic, Percentage: decimal.NewFromInt(50), Earning: true},
		{Component: StandardAllowance, Basis: FixedAmount, Amount: decimal.NewFromInt(4167), Earning: true},
		{Component: PerformanceBonus, Basis: PercentOfBasic, Percentage: decimal.RequireFromString("8.33"), Earning: true},
		{Component: LTA, Basis: PercentOfBasic, Percentage: decimal.RequireFromString("8.33"), Earning: true},
		{Component: FixedAllowance, Basis: Remainder, Earning: true},
		{Component: PFEmployee, Basis: PercentOfBasic, Percentage: decimal.NewFromInt(10)},
		{Component: PFEmployer, Basis: PercentOfBasic, Percentage: decimal.NewFromInt(12)},
		{Component: ProfessionalTax, Basis: FixedAmount, Amount: decimal.NewFromInt(200)},
	}
)

var ErrInvalidTable = errors.New("invalid wage table")

// Validate checks the ordering constraints Compute relies on.
func (t Table) Validate() error {
	seen := make(map[Component]bool, len(t))
	basicSeen := false
	remainderSeen := false

	for _, r := range t {
		if seen[r.Component] {
			return fmt.Errorf("%w: duplicate component %s", ErrInvalidTable, r.Component)
		}
		seen[r.Component] = true

		if r.Percentage.IsNegative() || r.Amount.IsNegative() {
			return fmt.Errorf("%w: negative value for %s", ErrInvalidTable, r.Component)
		}

		switch r.Basis {
		case PercentOfWage:
			if r.Component == BasicSalary {
				basicSeen = true
			}
		case PercentOfBasic:
			if !basicSeen {
				return fmt.Errorf("%w: %s depends on %s which is not defined before it", ErrInvalidTable, r.Component, BasicSalary)
			}
		case Remainder:
			if remainderSeen {
				return fmt.Errorf("%w: more than one remainder component", ErrInvalidTable)
			}
			if !r.Earning {
				return fmt.Errorf("%w: remainder component %s must be an earning", ErrInvalidTable, r.Component)
			}
			remainderSeen = true
		case FixedAmount:
		default:
			return fmt.Errorf("%w: unknown basis for %s", ErrInvalidTable, r.Component)
		}
	}

	if !basicSeen {
		return fmt.Errorf("%w: %s must be a percentage of wage", ErrInvalidTable, BasicSalary)
	}
	return nil
}
