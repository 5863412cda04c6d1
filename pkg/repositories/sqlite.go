package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cbodonnell/swipeduel/pkg/repositories/models"
	_ "github.com/mattn/go-sqlite3"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(ctx context.Context, path string, migrations string) (Repository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	statements, err := readMigrations(migrations)
	if err != nil {
		db.Close()
		return nil, err
	}
	for i, statement := range statements {
		if _, err := db.ExecContext(ctx, statement); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to execute migration %d: %v", i+1, err)
		}
	}

	return &SQLiteRepository{
		db: db,
	}, nil
}

func (r *SQLiteRepository) Close(ctx context.Context) error {
	return r.db.Close()
}

func (r *SQLiteRepository) SaveRoundResult(ctx context.Context, result *models.RoundResult) error {
	q := `
	INSERT OR REPLACE INTO round_results (round_id, role, outcome, local_count, opponent_count, finished_at)
	VALUES (?, ?, ?, ?, ?, ?);
	`
	_, err := r.db.ExecContext(ctx, q, result.RoundID, result.Role, result.Outcome, result.LocalCount, nullableCount(result.OpponentCount), result.FinishedAt)
	if err != nil {
		return fmt.Errorf("failed to insert round result: %v", err)
	}

	return nil
}

func (r *SQLiteRepository) ListRoundResults(ctx context.Context, limit int) ([]*models.RoundResult, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	q := `
	SELECT round_id, role, outcome, local_count, opponent_count, finished_at
	FROM round_results ORDER BY finished_at DESC LIMIT ?;
	`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query round results: %v", err)
	}
	defer rows.Close()

	results := []*models.RoundResult{}
	for rows.Next() {
		result, err := scanRoundResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate round results: %v", err)
	}

	return results, nil
}

func (r *SQLiteRepository) GetRoundResult(ctx context.Context, roundID string) (*models.RoundResult, error) {
	q := `
	SELECT round_id, role, outcome, local_count, opponent_count, finished_at
	FROM round_results WHERE round_id = ?;
	`
	result, err := scanRoundResult(r.db.QueryRowContext(ctx, q, roundID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &ErrNotFound{}
		}
		return nil, err
	}

	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRoundResult(row scanner) (*models.RoundResult, error) {
	result := &models.RoundResult{}
	var opponentCount sql.NullInt64
	if err := row.Scan(&result.RoundID, &result.Role, &result.Outcome, &result.LocalCount, &opponentCount, &result.FinishedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan round result: %v", err)
	}
	if opponentCount.Valid {
		count := int(opponentCount.Int64)
		result.OpponentCount = &count
	}
	return result, nil
}

func nullableCount(count *int) sql.NullInt64 {
	if count == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*count), Valid: true}
}
