package app

import (
	"github.com/budgetflow/budgetflow/internal/config"
	"github.com/budgetflow/budgetflow/internal/event_bus"
	"github.com/budgetflow/budgetflow/internal/utils"
	"github.com/budgetflow/budgetflow/pkg/budget"
	"github.com/budgetflow/budgetflow/pkg/expense"
	"github.com/budgetflow/budgetflow/pkg/income"
	"github.com/budgetflow/budgetflow/pkg/reminder"
	"github.com/budgetflow/budgetflow/pkg/summary"
	"github.com/budgetflow/budgetflow/pkg/user"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Clock    utils.Clock
	EventBus *event_bus.EventBus

	UserService user.Service
	UserHandler *user.Handler

	BudgetRepo    budget.Repository
	BudgetService *budget.ServiceImpl
	BudgetHandler *budget.Handler

	IncomeService *income.ServiceImpl
	IncomeHandler *income.Handler

	ExpenseService *expense.ServiceImpl
	ExpenseHandler *expense.Handler

	SummaryService  *summary.ServiceImpl
	SummaryRenderer *summary.CsvSummaryRendererImpl
	SummaryHandler  *summary.Handler

	ReminderPublisher  reminder.Publisher
	ReminderSubscriber *reminder.Subscriber
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *pgxpool.Pool, cfg config.Application, publisher reminder.Publisher) *Dependencies {
	deps := &Dependencies{}

	deps.Clock = &utils.SystemClock{}
	deps.EventBus = event_bus.NewEventBus()

	deps.UserService = user.NewUserService(user.NewUserRepo(db))
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.BudgetRepo = budget.NewBudgetRepo(db)
	deps.BudgetService = budget.NewBudgetService(deps.BudgetRepo, deps.EventBus)
	deps.BudgetHandler = budget.NewBudgetHandler(deps.BudgetService, deps.Clock)

	deps.IncomeService = income.NewIncomeService(income.NewIncomeRepo(db), deps.BudgetRepo, income.NewPgTransactor(db), deps.EventBus, deps.Clock)
	deps.IncomeHandler = income.NewIncomeHandler(deps.IncomeService)

	deps.ExpenseService = expense.NewExpenseService(expense.NewExpenseRepo(db), deps.BudgetRepo, deps.Clock)
	deps.ExpenseHandler = expense.NewExpenseHandler(deps.ExpenseService)

	deps.SummaryService = summary.NewSummaryService(deps.BudgetService, deps.IncomeService, deps.ExpenseService)
	deps.SummaryRenderer = summary.NewCsvSummaryRenderer()
	deps.SummaryHandler = summary.NewSummaryHandler(deps.SummaryService, deps.SummaryRenderer, deps.Clock)

	deps.ReminderPublisher = publisher
	deps.ReminderSubscriber = reminder.NewSubscriber(publisher, deps.Clock, cfg.Reminder.Delay)
	deps.ReminderSubscriber.Register(deps.EventBus)

	return deps
}
