package reminder

import (
	"time"

	"github.com/budgetflow/budgetflow/internal/event_bus"
	"github.com/budgetflow/budgetflow/internal/utils"
	"github.com/budgetflow/budgetflow/pkg/user"
	log "github.com/sirupsen/logrus"
)

// Subscriber turns budget and income events into reminders scheduled delay after the event.
type Subscriber struct {
	publisher Publisher
	clock     utils.Clock
	delay     time.Duration
}

func NewSubscriber(publisher Publisher, clock utils.Clock, delay time.Duration) *Subscriber {
	return &Subscriber{publisher: publisher, clock: clock, delay: delay}
}

// Register subscribes to the event bus and returns a function removing both subscriptions.
func (s *Subscriber) Register(bus *event_bus.EventBus) (unsubscribe func()) {
	budgetCreated := event_bus.SubscribeTyped(bus, event_bus.BudgetCreatedType, s.onBudgetCreated)
	incomeAdded := event_bus.SubscribeTyped(bus, event_bus.IncomeEntryCreatedType, s.onIncomeEntryCreated)
	return func() {
		budgetCreated()
		incomeAdded()
	}
}

func (s *Subscriber) onBudgetCreated(e event_bus.EventT[event_bus.BudgetCreated]) error {
	r := newReminder(KindBudgetCreated, e.Data.UserId, e.Data.BudgetId, e.Data.Income, e.Data.Distribution,
		user.CurrentCurrency(e.Context()), s.clock.Now().Add(s.delay))
	s.publish(e.Event, r)
	return nil
}

func (s *Subscriber) onIncomeEntryCreated(e event_bus.EventT[event_bus.IncomeEntryCreated]) error {
	r := newReminder(KindIncomeAdded, e.Data.UserId, e.Data.BudgetId, e.Data.Amount, e.Data.Distribution,
		user.CurrentCurrency(e.Context()), s.clock.Now().Add(s.delay))
	entryId := e.Data.EntryId
	r.EntryId = &entryId
	s.publish(e.Event, r)
	return nil
}

// publish never fails the event, the budget or entry is already stored.
func (s *Subscriber) publish(e event_bus.Event, r Reminder) {
	if err := s.publisher.Publish(e.Context(), r); err != nil {
		log.Errorf("failed to publish reminder for budget %s: %v", r.BudgetId, err)
	}
}
