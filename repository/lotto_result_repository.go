package repository

import (
	"context"
	"errors"
	"fmt"

	"lotto645/apperrors"
	"lotto645/database"
	"lotto645/domain/entities"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolationCode = "23505"

// LottoResultRepository implements draw archive data access over the
// wide lotto_results table (draw_no, number1..number6, bonus_number).
type LottoResultRepository struct {
	q Queryable
}

// NewLottoResultRepository creates a repository backed by the pool.
func NewLottoResultRepository(db *database.DB) *LottoResultRepository {
	return &LottoResultRepository{q: db.Pool}
}

// NewLottoResultRepositoryWithTx creates a repository bound to a
// transaction.
func NewLottoResultRepositoryWithTx(tx Queryable) *LottoResultRepository {
	return &LottoResultRepository{q: tx}
}

const drawColumns = `draw_no, number1, number2, number3, number4, number5, number6, bonus_number, created_at`

func scanDraw(row pgx.Row) (*entities.DrawRecord, error) {
	var record entities.DrawRecord
	err := row.Scan(
		&record.DrawNo,
		&record.Numbers[0],
		&record.Numbers[1],
		&record.Numbers[2],
		&record.Numbers[3],
		&record.Numbers[4],
		&record.Numbers[5],
		&record.Bonus,
		&record.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ListAll returns every archived draw, ascending by draw number.
func (r *LottoResultRepository) ListAll(ctx context.Context) ([]*entities.DrawRecord, error) {
	query := `
		SELECT ` + drawColumns + `
		FROM lotto_results
		ORDER BY draw_no ASC
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list lotto results: %w", err)
	}
	defer rows.Close()

	return collectDraws(rows)
}

// ListRecent returns the most recent n draws, ascending by draw number.
// n <= 0 returns the whole archive.
func (r *LottoResultRepository) ListRecent(ctx context.Context, n int) ([]*entities.DrawRecord, error) {
	if n <= 0 {
		return r.ListAll(ctx)
	}

	query := `
		SELECT ` + drawColumns + `
		FROM (
			SELECT ` + drawColumns + `
			FROM lotto_results
			ORDER BY draw_no DESC
			LIMIT $1
		) recent
		ORDER BY draw_no ASC
	`

	rows, err := r.q.Query(ctx, query, n)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent lotto results: %w", err)
	}
	defer rows.Close()

	return collectDraws(rows)
}

// GetLatest returns the highest-numbered draw, or nil when the archive
// is empty.
func (r *LottoResultRepository) GetLatest(ctx context.Context) (*entities.DrawRecord, error) {
	query := `
		SELECT ` + drawColumns + `
		FROM lotto_results
		ORDER BY draw_no DESC
		LIMIT 1
	`

	record, err := scanDraw(r.q.QueryRow(ctx, query))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest lotto result: %w", err)
	}

	return record, nil
}

// Create appends a new draw record. Inserting an existing draw number
// reports a ConflictError.
func (r *LottoResultRepository) Create(ctx context.Context, record *entities.DrawRecord) error {
	query := `
		INSERT INTO lotto_results (draw_no, number1, number2, number3, number4, number5, number6, bonus_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`

	err := r.q.QueryRow(ctx, query,
		record.DrawNo,
		record.Numbers[0],
		record.Numbers[1],
		record.Numbers[2],
		record.Numbers[3],
		record.Numbers[4],
		record.Numbers[5],
		record.Bonus,
	).Scan(&record.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return &apperrors.ConflictError{
			Message: fmt.Sprintf("draw %d already exists", record.DrawNo),
		}
	}
	if err != nil {
		return fmt.Errorf("failed to create lotto result %d: %w", record.DrawNo, err)
	}

	return nil
}

// CountAll returns the number of archived draws.
func (r *LottoResultRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM lotto_results`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count lotto results: %w", err)
	}
	return count, nil
}

func collectDraws(rows pgx.Rows) ([]*entities.DrawRecord, error) {
	var records []*entities.DrawRecord
	for rows.Next() {
		record, err := scanDraw(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lotto result: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate lotto results: %w", err)
	}

	return records, nil
}
