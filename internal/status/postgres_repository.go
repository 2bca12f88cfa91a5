package status

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
	CREATE TABLE IF NOT EXISTS status_checks (
		id          UUID PRIMARY KEY,
		client_name TEXT NOT NULL,
		timestamp   TIMESTAMPTZ NOT NULL
	)
`

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL status repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// EnsureSchema creates the status_checks table if it does not exist.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create status_checks table: %w", err)
	}
	return nil
}

// Create stores a new check.
func (r *PostgresRepository) Create(ctx context.Context, check *Check) error {
	query := `
		INSERT INTO status_checks (id, client_name, timestamp)
		VALUES ($1, $2, $3)
	`

	_, err := r.pool.Exec(ctx, query, check.ID, check.ClientName, check.Timestamp)
	return err
}

// List returns checks oldest first.
func (r *PostgresRepository) List(ctx context.Context, limit int) ([]*Check, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	query := `
		SELECT id, client_name, timestamp
		FROM status_checks
		ORDER BY timestamp ASC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var checks []*Check
	for rows.Next() {
		var c Check
		if err := rows.Scan(&c.ID, &c.ClientName, &c.Timestamp); err != nil {
			return nil, err
		}
		checks = append(checks, &c)
	}

	return checks, rows.Err()
}
