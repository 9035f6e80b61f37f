package distribution

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidateIncome(t *testing.T) {
	assert.NoError(t, ValidateIncome(dec("0.01")))
	assert.ErrorIs(t, ValidateIncome(decimal.Zero), ErrInvalidIncome)
	assert.ErrorIs(t, ValidateIncome(dec("-10")), ErrInvalidIncome)
}

func TestValidatePlan(t *testing.T) {
	tests := []struct {
		name    string
		plan    Plan
		wantErr error
	}{
		{"70/15/15", Split701515(), nil},
		{"50/30/20", Split503020(), nil},
		{"custom summing to 100", Custom(dec("40"), dec("40"), dec("20")), nil},
		{"custom with decimals", Custom(dec("33.33"), dec("33.33"), dec("33.34")), nil},
		{"custom below 100", Custom(dec("40"), dec("40"), dec("10")), ErrPercentagesSum},
		{"custom above 100", Custom(dec("50"), dec("40"), dec("20")), ErrPercentagesSum},
		{"custom with negative", Custom(dec("120"), dec("-10"), dec("-10")), ErrNegativePercentage},
		{"unknown type", Plan{Type: "60/20/20"}, ErrUnknownPlanType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePlan(tt.plan)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParsePlanType(t *testing.T) {
	planType, err := ParsePlanType("50/30/20")
	assert.NoError(t, err)
	assert.Equal(t, PlanSplit503020, planType)

	planType, err = ParsePlanType(" custom ")
	assert.NoError(t, err)
	assert.Equal(t, PlanCustom, planType)

	_, err = ParsePlanType("80/10/10")
	assert.ErrorIs(t, err, ErrUnknownPlanType)
}

func TestParseCategory(t *testing.T) {
	category, err := ParseCategory("Savings")
	assert.NoError(t, err)
	assert.Equal(t, Savings, category)

	_, err = ParseCategory("groceries")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}
