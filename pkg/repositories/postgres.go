package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/cbodonnell/swipeduel/pkg/log"
	"github.com/cbodonnell/swipeduel/pkg/repositories/models"
	"github.com/jackc/pgx/v5"
)

type PostgresRepository struct {
	conn *pgx.Conn
}

// NewPostgresRepository connects to the database and applies the migrations in migrations.
// The caller is responsible for calling Close() on the repository.
func NewPostgresRepository(ctx context.Context, connStr string, migrations string) (Repository, error) {
	conn, err := pgx.Connect(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %v", err)
	}

	var username string
	var database string
	err = conn.QueryRow(ctx, "SELECT current_user, current_database()").Scan(&username, &database)
	if err != nil {
		conn.Close(ctx)
		return nil, fmt.Errorf("unable to query database: %v", err)
	}
	log.Info("Connected to %s as %s", database, username)

	statements, err := readMigrations(migrations)
	if err != nil {
		conn.Close(ctx)
		return nil, err
	}
	for i, statement := range statements {
		if _, err := conn.Exec(ctx, statement); err != nil {
			conn.Close(ctx)
			return nil, fmt.Errorf("failed to execute migration %d: %v", i+1, err)
		}
	}

	return &PostgresRepository{
		conn: conn,
	}, nil
}

func (r *PostgresRepository) Close(ctx context.Context) error {
	return r.conn.Close(ctx)
}

func (r *PostgresRepository) SaveRoundResult(ctx context.Context, result *models.RoundResult) error {
	q := `
	INSERT INTO round_results (round_id, role, outcome, local_count, opponent_count, finished_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (round_id) DO UPDATE SET role = $2, outcome = $3, local_count = $4, opponent_count = $5, finished_at = $6;
	`
	_, err := r.conn.Exec(ctx, q, result.RoundID, result.Role, result.Outcome, result.LocalCount, result.OpponentCount, result.FinishedAt)
	if err != nil {
		return fmt.Errorf("failed to insert round result: %v", err)
	}

	return nil
}

func (r *PostgresRepository) ListRoundResults(ctx context.Context, limit int) ([]*models.RoundResult, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	q := `
	SELECT round_id::text, role, outcome, local_count, opponent_count, finished_at
	FROM round_results ORDER BY finished_at DESC LIMIT $1;
	`
	rows, err := r.conn.Query(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query round results: %v", err)
	}
	defer rows.Close()

	results := []*models.RoundResult{}
	for rows.Next() {
		result := &models.RoundResult{}
		if err := rows.Scan(&result.RoundID, &result.Role, &result.Outcome, &result.LocalCount, &result.OpponentCount, &result.FinishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan round result: %v", err)
		}
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate round results: %v", err)
	}

	return results, nil
}

func (r *PostgresRepository) GetRoundResult(ctx context.Context, roundID string) (*models.RoundResult, error) {
	q := `
	SELECT round_id::text, role, outcome, local_count, opponent_count, finished_at
	FROM round_results WHERE round_id::text = $1;
	`
	result := &models.RoundResult{}
	err := r.conn.QueryRow(ctx, q, roundID).Scan(&result.RoundID, &result.Role, &result.Outcome, &result.LocalCount, &result.OpponentCount, &result.FinishedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &ErrNotFound{}
		}
		return nil, fmt.Errorf("failed to scan round result: %v", err)
	}

	return result, nil
}
