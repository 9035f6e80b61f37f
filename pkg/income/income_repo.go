package income

import (
	"context"
	"fmt"

	"github.com/budgetflow/budgetflow/internal/database"
	"github.com/budgetflow/budgetflow/pkg/budget"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	Store(ctx context.Context, userId int, entry budget.IncomeEntry) (budget.IncomeEntry, error)
	ListByBudget(ctx context.Context, userId int, budgetId uuid.UUID) ([]budget.IncomeEntry, error)
	// ListByBudgets groups the entries of the given budgets by budget id. Budgets without entries are absent.
	ListByBudgets(ctx context.Context, userId int, budgetIds []uuid.UUID) (map[uuid.UUID][]budget.IncomeEntry, error)
}

// Transactor runs fn with repositories bound to a single transaction.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(entries Repository, budgets budget.Repository) error) error
}

type RepositoryImpl struct {
	db database.Querier
}

func NewIncomeRepo(db database.Querier) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Store(ctx context.Context, userId int, entry budget.IncomeEntry) (budget.IncomeEntry, error) {
	query := `INSERT INTO income_entries (id, budget_id, user_id, amount, description, date)
				VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at`

	err := r.db.QueryRow(ctx, query,
		entry.Id,
		entry.BudgetId,
		userId,
		entry.Amount,
		entry.Description,
		entry.Date,
	).Scan(&entry.CreatedAt)
	if err != nil {
		err := fmt.Errorf("could not store income entry: %w", err)
		log.Error(err)
		return budget.IncomeEntry{}, err
	}
	entry.UserId = userId
	return entry, nil
}

func (r *RepositoryImpl) ListByBudget(ctx context.Context, userId int, budgetId uuid.UUID) ([]budget.IncomeEntry, error) {
	query := `SELECT id, budget_id, user_id, amount, description, date, created_at
				FROM income_entries
				WHERE user_id = $1 AND budget_id = $2
				ORDER BY date, created_at`
	rows, err := r.db.Query(ctx, query, userId, budgetId)
	if err != nil {
		err := fmt.Errorf("could not query income entries: %w", err)
		log.Error(err)
		return nil, err
	}
	return collectEntries(rows)
}

func (r *RepositoryImpl) ListByBudgets(ctx context.Context, userId int, budgetIds []uuid.UUID) (map[uuid.UUID][]budget.IncomeEntry, error) {
	result := make(map[uuid.UUID][]budget.IncomeEntry)
	if len(budgetIds) == 0 {
		return result, nil
	}

	query := `SELECT id, budget_id, user_id, amount, description, date, created_at
				FROM income_entries
				WHERE user_id = $1 AND budget_id = ANY($2::uuid[])
				ORDER BY date, created_at`
	rows, err := r.db.Query(ctx, query, userId, database.UUIDStrings(budgetIds))
	if err != nil {
		err := fmt.Errorf("could not query income entries: %w", err)
		log.Error(err)
		return nil, err
	}
	entries, err := collectEntries(rows)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		result[entry.BudgetId] = append(result[entry.BudgetId], entry)
	}
	return result, nil
}

func collectEntries(rows pgx.Rows) ([]budget.IncomeEntry, error) {
	defer rows.Close()

	var entries []budget.IncomeEntry
	for rows.Next() {
		var entry budget.IncomeEntry
		err := rows.Scan(
			&entry.Id,
			&entry.BudgetId,
			&entry.UserId,
			&entry.Amount,
			&entry.Description,
			&entry.Date,
			&entry.CreatedAt,
		)
		if err != nil {
			err := fmt.Errorf("error scanning row: %w", err)
			log.Error(err)
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return entries, nil
}

type PgTransactor struct {
	pool *pgxpool.Pool
}

func NewPgTransactor(pool *pgxpool.Pool) *PgTransactor {
	return &PgTransactor{pool: pool}
}

func (t *PgTransactor) WithTransaction(ctx context.Context, fn func(entries Repository, budgets budget.Repository) error) error {
	return database.InTx(ctx, t.pool, func(tx pgx.Tx) error {
		return fn(NewIncomeRepo(tx), budget.NewBudgetRepo(tx))
	})
}
