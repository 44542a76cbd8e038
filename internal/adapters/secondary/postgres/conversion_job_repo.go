package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"statement-converter-service/internal/core/domain"
	ports "statement-converter-service/internal/core/ports/output"
)

type conversionJobRepo struct {
	pool *pgxpool.Pool
}

func NewConversionJobRepository(pool *pgxpool.Pool) ports.ConversionJobRepository {
	return &conversionJobRepo{pool: pool}
}

func (r *conversionJobRepo) Create(ctx context.Context, job *domain.ConversionJob) error {
	query := `
		INSERT INTO conversion_job
			(id, created_at, bank, format, source_filename, account_number,
			 statement_number, transaction_count, opening_balance,
			 closing_balance, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`
	_, err := r.pool.Exec(ctx, query,
		job.ID, job.CreatedAt, job.Bank, string(job.Format),
		job.SourceFilename, job.AccountNumber, job.StatementNumber,
		job.TransactionCount, job.OpeningBalance, job.ClosingBalance,
		string(job.Status),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("conversion job %s already recorded", job.ID)
		}
		return fmt.Errorf("create conversion job: %w", err)
	}
	return nil
}

func (r *conversionJobRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ConversionJob, error) {
	query := `
		SELECT id, created_at, bank, format, source_filename, account_number,
			   statement_number, transaction_count, opening_balance,
			   closing_balance, status
		FROM conversion_job
		WHERE id = $1
	`
	job, err := scanJob(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("get conversion job by id: %w", err)
	}
	return job, nil
}

func (r *conversionJobRepo) List(ctx context.Context, filter ports.JobListFilter) ([]*domain.ConversionJob, int, error) {
	conditions := []string{}
	args := []interface{}{}
	argPos := 1

	if filter.Bank != "" {
		conditions = append(conditions, fmt.Sprintf("bank = $%d", argPos))
		args = append(args, filter.Bank)
		argPos++
	}

	whereClause := "1=1"
	if len(conditions) > 0 {
		whereClause = strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM conversion_job WHERE %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count conversion jobs: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, created_at, bank, format, source_filename, account_number,
			   statement_number, transaction_count, opening_balance,
			   closing_balance, status
		FROM conversion_job
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argPos, argPos+1)

	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list conversion jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*domain.ConversionJob
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan conversion job row: %w", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate conversion job rows: %w", err)
	}

	return jobs, total, nil
}

func scanJob(row pgx.Row) (*domain.ConversionJob, error) {
	job := &domain.ConversionJob{}
	err := row.Scan(
		&job.ID, &job.CreatedAt, &job.Bank, &job.Format,
		&job.SourceFilename, &job.AccountNumber, &job.StatementNumber,
		&job.TransactionCount, &job.OpeningBalance, &job.ClosingBalance,
		&job.Status,
	)
	if err != nil {
		return nil, err
	}
	return job, nil
}
