package summary

import (
	"testing"

	"github.com/budgetflow/budgetflow/pkg/aggregation"
	"github.com/budgetflow/budgetflow/pkg/user"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCsvSummaryRenderer_RenderExpenses(t *testing.T) {
	renderer := NewCsvSummaryRenderer()

	t.Run("should render rows and total", func(t *testing.T) {
		// given
		summary := ExpenseSummary{
			Year:     2025,
			Currency: user.CurrencyUSD,
			Rollup: aggregation.Rollup{
				Rows: []aggregation.RollupRow{
					{
						BudgetId: uuid.New(), Month: 1, Year: 2025,
						Spent: aggregation.CategoryAmounts{Spend: dec("10.5"), Investment: dec("0"), Savings: dec("4")},
						Total: dec("14.5"), Count: 2,
					},
					{
						BudgetId: uuid.New(), Month: 3, Year: 2025,
						Spent: aggregation.CategoryAmounts{Spend: dec("1"), Investment: dec("2"), Savings: dec("0")},
						Total: dec("3"), Count: 2,
					},
				},
				Total: dec("17.5"),
				Count: 4,
			},
			BudgetedVsSpent: aggregation.BudgetedSpent{
				Spent: aggregation.CategoryAmounts{Spend: dec("11.5"), Investment: dec("2"), Savings: dec("4")},
			},
		}

		// when
		csv, err := renderer.RenderExpenses(summary)

		// then
		require.NoError(t, err)
		expected := "Month,Spend,Investment,Savings,Total,Count,Currency\n" +
			"January 2025,10.50,0.00,4.00,14.50,2,USD\n" +
			"March 2025,1.00,2.00,0.00,3.00,2,USD\n" +
			"Total,11.50,2.00,4.00,17.50,4,USD\n"
		assert.Equal(t, expected, csv)
	})

	t.Run("should render only header and zero total for empty year", func(t *testing.T) {
		csv, err := renderer.RenderExpenses(ExpenseSummary{Year: 2025, Currency: user.CurrencyNGN, Rollup: aggregation.Rollup{Total: decimal.Zero}})

		require.NoError(t, err)
		assert.Equal(t, "Month,Spend,Investment,Savings,Total,Count,Currency\nTotal,0.00,0.00,0.00,0.00,0,NGN\n", csv)
	})
}
