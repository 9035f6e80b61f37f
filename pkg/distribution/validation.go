package distribution

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidIncome = errors.New("income must be greater than zero")
var ErrPercentagesSum = errors.New("percentages must add up to 100")
var ErrNegativePercentage = errors.New("percentages must not be negative")
var ErrUnknownPlanType = errors.New("unknown plan type")
var ErrUnknownCategory = errors.New("unknown category")

// ValidateIncome rejects zero and negative income before anything is persisted.
func ValidateIncome(income decimal.Decimal) error {
	if !income.IsPositive() {
		return fmt.Errorf("%w: %s", ErrInvalidIncome, income.String())
	}
	return nil
}

// ValidatePlan checks a plan at the boundary, before any budget is created from it.
// Fixed splits are always valid, custom percentages must be non-negative and sum to exactly 100.
func ValidatePlan(plan Plan) error {
	switch plan.Type {
	case PlanSplit701515, PlanSplit503020:
		return nil
	case PlanCustom:
		for _, p := range []decimal.Decimal{plan.Spend, plan.Investment, plan.Savings} {
			if p.IsNegative() {
				return ErrNegativePercentage
			}
		}
		sum := plan.Spend.Add(plan.Investment).Add(plan.Savings)
		if !sum.Equal(hundred) {
			return fmt.Errorf("%w, got %s", ErrPercentagesSum, sum.String())
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPlanType, plan.Type)
	}
}

func ParsePlanType(s string) (PlanType, error) {
	switch PlanType(strings.TrimSpace(s)) {
	case PlanSplit701515:
		return PlanSplit701515, nil
	case PlanSplit503020:
		return PlanSplit503020, nil
	case PlanCustom:
		return PlanCustom, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPlanType, s)
}

func ParseCategory(s string) (Category, error) {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case Spend:
		return Spend, nil
	case Investment:
		return Investment, nil
	case Savings:
		return Savings, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}
