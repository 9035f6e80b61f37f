package cmd

import (
	"fmt"
	"io"

	"github.com/budgetflow/budgetflow/pkg/distribution"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	flagIncome     string
	flagPlan       string
	flagSpend      string
	flagInvestment string
	flagSavings    string
)

var distributeCmd = &cobra.Command{
	Use:   "distribute",
	Short: "Print how an income is split by a plan",
	Example: `  budgetflow distribute --income 5000 --plan 50/30/20
  budgetflow distribute --income 1000 --plan custom --spend 40 --investment 40 --savings 20`,
	RunE: runDistribute,
}

func init() {
	distributeCmd.Flags().StringVar(&flagIncome, "income", "", "Income to split")
	distributeCmd.Flags().StringVar(&flagPlan, "plan", string(distribution.PlanSplit701515), "70/15/15, 50/30/20 or custom")
	distributeCmd.Flags().StringVar(&flagSpend, "spend", "0", "Spend percentage of a custom plan")
	distributeCmd.Flags().StringVar(&flagInvestment, "investment", "0", "Investment percentage of a custom plan")
	distributeCmd.Flags().StringVar(&flagSavings, "savings", "0", "Savings percentage of a custom plan")
	_ = distributeCmd.MarkFlagRequired("income")
	rootCmd.AddCommand(distributeCmd)
}

func runDistribute(cmd *cobra.Command, _ []string) error {
	income, err := decimal.NewFromString(flagIncome)
	if err != nil {
		return fmt.Errorf("%w: %q", distribution.ErrInvalidIncome, flagIncome)
	}
	if err := distribution.ValidateIncome(income); err != nil {
		return err
	}
	plan, err := parsePlan(flagPlan, flagSpend, flagInvestment, flagSavings)
	if err != nil {
		return err
	}
	printDistribution(cmd.OutOrStdout(), distribution.Distribute(income, plan))
	return nil
}

func parsePlan(planType, spend, investment, savings string) (distribution.Plan, error) {
	t, err := distribution.ParsePlanType(planType)
	if err != nil {
		return distribution.Plan{}, err
	}
	percentages := make([]decimal.Decimal, 0, 3)
	for _, p := range []string{spend, investment, savings} {
		value, err := decimal.NewFromString(p)
		if err != nil {
			return distribution.Plan{}, fmt.Errorf("invalid percentage %q: %w", p, err)
		}
		percentages = append(percentages, value)
	}
	plan := distribution.NewPlan(t, percentages[0], percentages[1], percentages[2])
	if err := distribution.ValidatePlan(plan); err != nil {
		return distribution.Plan{}, err
	}
	return plan, nil
}

func printDistribution(w io.Writer, d distribution.Distribution) {
	for _, c := range distribution.Categories {
		fmt.Fprintf(w, "%-11s %6s%% %14s\n", c, d.Percentage(c).StringFixed(2), d.Amount(c).StringFixed(2))
	}
	fmt.Fprintf(w, "%-11s %7s %14s\n", "total", "", d.Total().StringFixed(2))
}
