package distribution

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type PlanType string

const (
	PlanSplit701515 PlanType = "70/15/15"
	PlanSplit503020 PlanType = "50/30/20"
	PlanCustom      PlanType = "custom"
)

type Category string

const (
	Spend      Category = "spend"
	Investment Category = "investment"
	Savings    Category = "savings"
)

// Categories lists every bucket in display order.
var Categories = []Category{Spend, Investment, Savings}

var hundred = decimal.NewFromInt(100)

// Plan describes how income is split across the three buckets.
// The percentage fields are only read for custom plans.
type Plan struct {
	Type       PlanType
	Spend      decimal.Decimal
	Investment decimal.Decimal
	Savings    decimal.Decimal
}

type Distribution struct {
	SpendPercentage      decimal.Decimal
	InvestmentPercentage decimal.Decimal
	SavingsPercentage    decimal.Decimal
	SpendAmount          decimal.Decimal
	InvestmentAmount     decimal.Decimal
	SavingsAmount        decimal.Decimal
}

func Split701515() Plan {
	return Plan{Type: PlanSplit701515}
}

func Split503020() Plan {
	return Plan{Type: PlanSplit503020}
}

func Custom(spend, investment, savings decimal.Decimal) Plan {
	return Plan{Type: PlanCustom, Spend: spend, Investment: investment, Savings: savings}
}

// NewPlan builds a plan of the given type. Custom percentages are ignored for fixed splits.
func NewPlan(planType PlanType, spend, investment, savings decimal.Decimal) Plan {
	if planType == PlanCustom {
		return Custom(spend, investment, savings)
	}
	return Plan{Type: planType}
}

// Percentages returns the spend, investment and savings percentages of the plan.
// An unknown plan type yields all zeros.
func (p Plan) Percentages() (spend, investment, savings decimal.Decimal) {
	switch p.Type {
	case PlanSplit701515:
		return decimal.NewFromInt(70), decimal.NewFromInt(15), decimal.NewFromInt(15)
	case PlanSplit503020:
		return decimal.NewFromInt(50), decimal.NewFromInt(30), decimal.NewFromInt(20)
	case PlanCustom:
		return p.Spend, p.Investment, p.Savings
	default:
		return decimal.Zero, decimal.Zero, decimal.Zero
	}
}

// Distribute allocates income across the three buckets of the plan.
// Percentages are not validated here, see ValidatePlan.
func Distribute(income decimal.Decimal, plan Plan) Distribution {
	spend, investment, savings := plan.Percentages()
	return Distribution{
		SpendPercentage:      spend,
		InvestmentPercentage: investment,
		SavingsPercentage:    savings,
		SpendAmount:          share(income, spend),
		InvestmentAmount:     share(income, investment),
		SavingsAmount:        share(income, savings),
	}
}

func share(income, percentage decimal.Decimal) decimal.Decimal {
	return income.Mul(percentage).Div(hundred)
}

// Amount returns the bucket amount for the category.
func (d Distribution) Amount(c Category) decimal.Decimal {
	switch c {
	case Spend:
		return d.SpendAmount
	case Investment:
		return d.InvestmentAmount
	case Savings:
		return d.SavingsAmount
	}
	panic(fmt.Sprintf("unknown category %q", c))
}

// Percentage returns the bucket percentage for the category.
func (d Distribution) Percentage(c Category) decimal.Decimal {
	switch c {
	case Spend:
		return d.SpendPercentage
	case Investment:
		return d.InvestmentPercentage
	case Savings:
		return d.SavingsPercentage
	}
	panic(fmt.Sprintf("unknown category %q", c))
}

// Total is the sum of the three bucket amounts.
func (d Distribution) Total() decimal.Decimal {
	return d.SpendAmount.Add(d.InvestmentAmount).Add(d.SavingsAmount)
}
