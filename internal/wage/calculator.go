package wage

import "github.com/shopspring/decimal"

const moneyPlaces = 2

type ComponentValue struct {
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
}

type Breakdown struct {
	BasicSalary       ComponentValue `json:"basicSalary"`
	HRA               ComponentValue `json:"hra"`
	StandardAllowance ComponentValue `json:"standardAllowance"`
	PerformanceBonus  ComponentValue `json:"performanceBonus"`
	LTA               ComponentValue `json:"lta"`
	FixedAllowance    ComponentValue `json:"fixedAllowance"`
	PFEmployee        ComponentValue `json:"pfEmployee"`
	PFEmployer        ComponentValue `json:"pfEmployer"`
	ProfessionalTax   ComponentValue `json:"professionalTax"`
}

// TotalEarnings sums the six earning components.
func (b Breakdown) TotalEarnings() decimal.Decimal {
	return decimal.Sum(
		b.BasicSalary.Amount,
		b.HRA.Amount,
		b.StandardAllowance.Amount,
		b.PerformanceBonus.Amount,
		b.LTA.Amount,
		b.FixedAllowance.Amount,
	)
}

func (b *Breakdown) set(c Component, v ComponentValue) {
	switch c {
	case BasicSalary:
		b.BasicSalary = v
	case HRA:
		b.HRA = v
	case StandardAllowance:
		b.StandardAllowance = v
	case PerformanceBonus:
		b.PerformanceBonus = v
	case LTA:
		b.LTA = v
	case FixedAllowance:
		b.FixedAllowance = v
	case PFEmployee:
		b.PFEmployee = v
	case PFEmployer:
		b.PFEmployer = v
	case ProfessionalTax:
		b.ProfessionalTax = v
	}
}

// Compute derives every component of monthWage with the default table.
func Compute(monthWage decimal.Decimal) Breakdown {
	return DefaultTable.Compute(monthWage)
}

// Compute applies the table in order. Amounts are rounded half away from
// zero to two places; percentage-of-basic rules use the rounded basic.
// Fixed components keep their amount when the wage is zero.
func (t Table) Compute(monthWage decimal.Decimal) Breakdown {
	var (
		out      Breakdown
		basic    = decimal.Zero
		earnings = decimal.Zero
	)

	for _, r := range t {
		v := ComponentValue{Percentage: r.Percentage}

		switch r.Basis {
		case PercentOfWage:
			v.Amount = percentOf(monthWage, r.Percentage)
		case PercentOfBasic:
			v.Amount = percentOf(basic, r.Percentage)
		case FixedAmount:
			v.Amount = r.Amount.Round(moneyPlaces)
		case Remainder:
			v.Amount = decimal.Max(decimal.Zero, monthWage.Sub(earnings)).Round(moneyPlaces)
			v.Percentage = shareOf(v.Amount, monthWage)
		}

		if r.Component == BasicSalary {
			basic = v.Amount
		}
		if r.Earning {
			earnings = earnings.Add(v.Amount)
		}
		out.set(r.Component, v)
	}

	return out
}

func percentOf(base, pct decimal.Decimal) decimal.Decimal {
	return base.Mul(pct).Div(hundred).Round(moneyPlaces)
}

func shareOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Mul(hundred).Div(whole).Round(moneyPlaces)
}
