package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/budgetflow/budgetflow/internal/database"
	"github.com/budgetflow/budgetflow/pkg/distribution"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"
)

var ErrBudgetNotFound = errors.New("budget not found")
var ErrBudgetExists = errors.New("budget already exists for this month")

type Repository interface {
	Store(ctx context.Context, userId int, budget Budget) (Budget, error)
	Get(ctx context.Context, userId int, id uuid.UUID) (Budget, error)
	// GetForUpdate reads the budget and locks its row until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, userId int, id uuid.UUID) (Budget, error)
	// ListByYear returns the budgets of a year ordered by month.
	ListByYear(ctx context.Context, userId int, year int) ([]Budget, error)
	// UpdateAmounts overwrites the three bucket amounts of the budget.
	UpdateAmounts(ctx context.Context, userId int, budget Budget) (bool, error)
	Delete(ctx context.Context, userId int, id uuid.UUID) (bool, error)
}

type RepositoryImpl struct {
	db database.Querier
}

func NewBudgetRepo(db database.Querier) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const budgetColumns = `id, user_id, month, year, income, plan_type,
				spend_percentage, investment_percentage, savings_percentage,
				spend_amount, investment_amount, savings_amount,
				created_at, updated_at`

func (r *RepositoryImpl) Store(ctx context.Context, userId int, budget Budget) (Budget, error) {
	query := `INSERT INTO budgets (
					id,
					user_id,
					month,
					year,
					income,
					plan_type,
					spend_percentage,
					investment_percentage,
					savings_percentage,
					spend_amount,
					investment_amount,
					savings_amount
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING created_at, updated_at`

	d := budget.Distribution
	err := r.db.QueryRow(ctx, query,
		budget.Id,
		userId,
		budget.Month,
		budget.Year,
		budget.Income,
		string(budget.Plan.Type),
		d.SpendPercentage,
		d.InvestmentPercentage,
		d.SavingsPercentage,
		d.SpendAmount,
		d.InvestmentAmount,
		d.SavingsAmount,
	).Scan(&budget.CreatedAt, &budget.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return Budget{}, fmt.Errorf("%w: %d/%d", ErrBudgetExists, budget.Month, budget.Year)
		}
		err := fmt.Errorf("could not store budget: %w", err)
		log.Error(err)
		return Budget{}, err
	}
	budget.UserId = userId
	return budget, nil
}

func (r *RepositoryImpl) Get(ctx context.Context, userId int, id uuid.UUID) (Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE user_id = $1 AND id = $2`
	return r.getOne(ctx, query, userId, id)
}

func (r *RepositoryImpl) GetForUpdate(ctx context.Context, userId int, id uuid.UUID) (Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE user_id = $1 AND id = $2 FOR UPDATE`
	return r.getOne(ctx, query, userId, id)
}

func (r *RepositoryImpl) getOne(ctx context.Context, query string, userId int, id uuid.UUID) (Budget, error) {
	budget, err := scanBudget(r.db.QueryRow(ctx, query, userId, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Budget{}, ErrBudgetNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not get budget %s: %w", id, err)
		log.Error(err)
		return Budget{}, err
	}
	return budget, nil
}

func (r *RepositoryImpl) ListByYear(ctx context.Context, userId int, year int) ([]Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE user_id = $1 AND year = $2 ORDER BY month`
	rows, err := r.db.Query(ctx, query, userId, year)
	if err != nil {
		err := fmt.Errorf("could not query budgets: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	budgets := make([]Budget, 0, 12)
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			err := fmt.Errorf("error scanning row: %w", err)
			log.Error(err)
			return nil, err
		}
		budgets = append(budgets, budget)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return budgets, nil
}

func (r *RepositoryImpl) UpdateAmounts(ctx context.Context, userId int, budget Budget) (bool, error) {
	query := `UPDATE budgets SET
					spend_amount = $1,
					investment_amount = $2,
					savings_amount = $3,
					updated_at = now()
				WHERE user_id = $4 AND id = $5`

	d := budget.Distribution
	tag, err := r.db.Exec(ctx, query, d.SpendAmount, d.InvestmentAmount, d.SavingsAmount, userId, budget.Id)
	if err != nil {
		err := fmt.Errorf("could not update budget amounts: %w", err)
		log.Error(err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// Delete removes the budget. Income entries and expenses are removed by the ON DELETE CASCADE constraints.
func (r *RepositoryImpl) Delete(ctx context.Context, userId int, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM budgets WHERE user_id = $1 AND id = $2`, userId, id)
	if err != nil {
		err := fmt.Errorf("could not delete budget: %w", err)
		log.Error(err)
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func scanBudget(row pgx.Row) (Budget, error) {
	var budget Budget
	var planType string
	var d distribution.Distribution
	err := row.Scan(
		&budget.Id,
		&budget.UserId,
		&budget.Month,
		&budget.Year,
		&budget.Income,
		&planType,
		&d.SpendPercentage,
		&d.InvestmentPercentage,
		&d.SavingsPercentage,
		&d.SpendAmount,
		&d.InvestmentAmount,
		&d.SavingsAmount,
		&budget.CreatedAt,
		&budget.UpdatedAt,
	)
	if err != nil {
		return Budget{}, err
	}
	budget.Plan = distribution.NewPlan(distribution.PlanType(planType), d.SpendPercentage, d.InvestmentPercentage, d.SavingsPercentage)
	budget.Distribution = d
	return budget, nil
}
