package expense

import (
	"context"
	"fmt"

	"github.com/budgetflow/budgetflow/internal/database"
	"github.com/budgetflow/budgetflow/pkg/budget"
	"github.com/budgetflow/budgetflow/pkg/distribution"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	Store(ctx context.Context, userId int, expense budget.Expense) (budget.Expense, error)
	ListByBudget(ctx context.Context, userId int, budgetId uuid.UUID) ([]budget.Expense, error)
	// ListByBudgets groups the expenses of the given budgets by budget id. Budgets without expenses are absent.
	ListByBudgets(ctx context.Context, userId int, budgetIds []uuid.UUID) (map[uuid.UUID][]budget.Expense, error)
}

type RepositoryImpl struct {
	db database.Querier
}

func NewExpenseRepo(db database.Querier) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Store(ctx context.Context, userId int, expense budget.Expense) (budget.Expense, error) {
	query := `INSERT INTO expenses (id, budget_id, user_id, category, amount, description, date)
				VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING created_at`

	err := r.db.QueryRow(ctx, query,
		expense.Id,
		expense.BudgetId,
		userId,
		string(expense.Category),
		expense.Amount,
		expense.Description,
		expense.Date,
	).Scan(&expense.CreatedAt)
	if err != nil {
		err := fmt.Errorf("could not store expense: %w", err)
		log.Error(err)
		return budget.Expense{}, err
	}
	expense.UserId = userId
	return expense, nil
}

func (r *RepositoryImpl) ListByBudget(ctx context.Context, userId int, budgetId uuid.UUID) ([]budget.Expense, error) {
	query := `SELECT id, budget_id, user_id, category, amount, description, date, created_at
				FROM expenses
				WHERE user_id = $1 AND budget_id = $2
				ORDER BY date DESC, created_at DESC`
	rows, err := r.db.Query(ctx, query, userId, budgetId)
	if err != nil {
		err := fmt.Errorf("could not query expenses: %w", err)
		log.Error(err)
		return nil, err
	}
	return collectExpenses(rows)
}

func (r *RepositoryImpl) ListByBudgets(ctx context.Context, userId int, budgetIds []uuid.UUID) (map[uuid.UUID][]budget.Expense, error) {
	result := make(map[uuid.UUID][]budget.Expense)
	if len(budgetIds) == 0 {
		return result, nil
	}

	query := `SELECT id, budget_id, user_id, category, amount, description, date, created_at
				FROM expenses
				WHERE user_id = $1 AND budget_id = ANY($2::uuid[])
				ORDER BY date DESC, created_at DESC`
	rows, err := r.db.Query(ctx, query, userId, database.UUIDStrings(budgetIds))
	if err != nil {
		err := fmt.Errorf("could not query expenses: %w", err)
		log.Error(err)
		return nil, err
	}
	expenses, err := collectExpenses(rows)
	if err != nil {
		return nil, err
	}
	for _, expense := range expenses {
		result[expense.BudgetId] = append(result[expense.BudgetId], expense)
	}
	return result, nil
}

func collectExpenses(rows pgx.Rows) ([]budget.Expense, error) {
	defer rows.Close()

	var expenses []budget.Expense
	for rows.Next() {
		var expense budget.Expense
		var category string
		err := rows.Scan(
			&expense.Id,
			&expense.BudgetId,
			&expense.UserId,
			&category,
			&expense.Amount,
			&expense.Description,
			&expense.Date,
			&expense.CreatedAt,
		)
		if err != nil {
			err := fmt.Errorf("error scanning row: %w", err)
			log.Error(err)
			return nil, err
		}
		expense.Category, err = distribution.ParseCategory(category)
		if err != nil {
			log.Errorf("expense %s has invalid category: %v", expense.Id, err)
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return expenses, nil
}
