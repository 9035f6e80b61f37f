package reminder

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/budgetflow/budgetflow/pkg/distribution"
	"github.com/budgetflow/budgetflow/pkg/user"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindBudgetCreated Kind = "budget_created"
	KindIncomeAdded   Kind = "income_added"
)

// Reminder asks the user to move money into the three buckets. Amounts are those of the
// income that triggered it, not of the whole budget.
type Reminder struct {
	Id          uuid.UUID       `json:"id"`
	Kind        Kind            `json:"kind"`
	UserId      int             `json:"userId"`
	BudgetId    uuid.UUID       `json:"budgetId"`
	EntryId     *uuid.UUID      `json:"entryId,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Spend       decimal.Decimal `json:"spend"`
	Investment  decimal.Decimal `json:"investment"`
	Savings     decimal.Decimal `json:"savings"`
	Currency    user.Currency   `json:"currency"`
	ScheduledAt time.Time       `json:"scheduledAt"`
}

func newReminder(kind Kind, userId int, budgetId uuid.UUID, amount decimal.Decimal, d distribution.Distribution, currency user.Currency, scheduledAt time.Time) Reminder {
	return Reminder{
		Id:          uuid.New(),
		Kind:        kind,
		UserId:      userId,
		BudgetId:    budgetId,
		Amount:      amount,
		Spend:       d.SpendAmount,
		Investment:  d.InvestmentAmount,
		Savings:     d.SavingsAmount,
		Currency:    currency,
		ScheduledAt: scheduledAt,
	}
}

// Title and Body are the notification text shown to the user.
func (r Reminder) Title() string {
	return "Time to distribute your income"
}

func (r Reminder) Body() string {
	return fmt.Sprintf("Spend: %s %s, Investment: %s %s, Savings: %s %s",
		r.Currency, r.Spend.StringFixed(2),
		r.Currency, r.Investment.StringFixed(2),
		r.Currency, r.Savings.StringFixed(2))
}

func (r Reminder) ToJSON() ([]byte, error) {
	return json.Marshal(r)
}
