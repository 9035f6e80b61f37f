package summary

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type Renderer interface {
	RenderExpenses(summary ExpenseSummary) (string, error)
}

type CsvSummaryRendererImpl struct {
}

func NewCsvSummaryRenderer() *CsvSummaryRendererImpl {
	return &CsvSummaryRendererImpl{}
}

// RenderExpenses writes one line per budget month and a closing Total line.
func (t *CsvSummaryRendererImpl) RenderExpenses(summary ExpenseSummary) (string, error) {
	data := make([][]string, 0, len(summary.Rollup.Rows)+2)
	data = append(data, []string{"Month", "Spend", "Investment", "Savings", "Total", "Count", "Currency"})

	currency := string(summary.Currency)
	for _, row := range summary.Rollup.Rows {
		data = append(data, []string{
			time.Month(row.Month).String() + " " + strconv.Itoa(row.Year),
			amountToString(row.Spent.Spend),
			amountToString(row.Spent.Investment),
			amountToString(row.Spent.Savings),
			amountToString(row.Total),
			strconv.Itoa(row.Count),
			currency,
		})
	}

	spent := summary.BudgetedVsSpent.Spent
	data = append(data, []string{
		"Total",
		amountToString(spent.Spend),
		amountToString(spent.Investment),
		amountToString(spent.Savings),
		amountToString(summary.Rollup.Total),
		strconv.Itoa(summary.Rollup.Count),
		currency,
	})

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		if err := writer.Write(row); err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}

func amountToString(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
