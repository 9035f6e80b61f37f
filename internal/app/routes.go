package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Budgets
	r.HandleFunc("/api/budget", deps.BudgetHandler.ListBudgets).Methods("GET")
	r.HandleFunc("/api/budget", deps.BudgetHandler.CreateBudget).Methods("POST")
	r.HandleFunc("/api/budget/available-months", deps.BudgetHandler.AvailableMonths).Methods("GET")
	r.HandleFunc("/api/budget/{budgetId}", deps.SummaryHandler.GetBudget).Methods("GET")
	r.HandleFunc("/api/budget/{budgetId}", deps.BudgetHandler.DeleteBudget).Methods("DELETE")

	// Income entries
	r.HandleFunc("/api/budget/{budgetId}/income", deps.IncomeHandler.ListIncome).Methods("GET")
	r.HandleFunc("/api/budget/{budgetId}/income", deps.IncomeHandler.AddIncome).Methods("POST")

	// Expenses
	r.HandleFunc("/api/budget/{budgetId}/expense", deps.ExpenseHandler.ListExpenses).Methods("GET")
	r.HandleFunc("/api/budget/{budgetId}/expense", deps.ExpenseHandler.AddExpense).Methods("POST")

	// Distribution preview
	r.HandleFunc("/api/distribution", deps.BudgetHandler.PreviewDistribution).Methods("GET")

	// Summaries
	r.HandleFunc("/api/summary/totals", deps.SummaryHandler.GetTotals).Methods("GET")
	r.HandleFunc("/api/summary/expenses", deps.SummaryHandler.GetExpenses).Methods("GET")

	// User management
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")
	r.HandleFunc("/api/user/current/currency", deps.UserHandler.UpdateCurrency).Methods("PUT")
	r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST")
}
