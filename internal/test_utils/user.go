package test_utils

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InsertUser stores a bare user row so repository tests can satisfy the user_id foreign keys.
func InsertUser(ctx context.Context, db *pgxpool.Pool, username string) (int, error) {
	var id int
	err := db.QueryRow(ctx,
		`INSERT INTO users (uid, username, display_name) VALUES ($1, $2, $2) RETURNING id`,
		uuid.NewString(), username,
	).Scan(&id)
	return id, err
}
