package customer

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"pix-limit-service/internal/domain"
)

const recordColumns = `storage_key, document_key, id, document_number, name, email, account, ledger_entries, active, created_at, updated_at, version`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	const q = `
SELECT ` + recordColumns + `
FROM customers
WHERE storage_key = $1
`
	return r.scanCustomer(r.pool.QueryRow(ctx, q, CustomerKey(id)))
}

func (r *postgresRepo) GetByDocumentNumber(ctx context.Context, documentNumber string) (*domain.Customer, error) {
	const q = `
SELECT ` + recordColumns + `
FROM customers
WHERE document_key = $1
`
	return r.scanCustomer(r.pool.QueryRow(ctx, q, DocumentKey(documentNumber)))
}

func (r *postgresRepo) Add(ctx context.Context, c *domain.Customer) error {
	rec, err := toRecord(c)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO customers (storage_key, document_key, id, document_number, name, email, account, ledger_entries, active, created_at, updated_at, version)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
`
	_, err = r.pool.Exec(ctx, q,
		rec.StorageKey,
		rec.DocumentKey,
		rec.ID,
		rec.DocumentNumber,
		rec.Name,
		rec.Email,
		rec.Account,
		rec.Ledger,
		rec.Active,
		rec.CreatedAt,
		rec.UpdatedAt,
		rec.Version,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrAlreadyExists
		}
		r.logger.Printf("customer repo: add key=%s error=%v", rec.StorageKey, err)
		return err
	}
	r.logger.Printf("customer repo: added key=%s version=%d", rec.StorageKey, rec.Version)
	return nil
}

func (r *postgresRepo) Update(ctx context.Context, c *domain.Customer) error {
	rec, err := toRecord(c)
	if err != nil {
		return err
	}
	// The version condition is the whole concurrency story: exactly one
	// writer moves the row from version-1 to version.
	const q = `
UPDATE customers
SET document_key = $2,
    document_number = $3,
    name = $4,
    email = $5,
    account = $6,
    ledger_entries = $7,
    active = $8,
    updated_at = $9,
    version = $10
WHERE storage_key = $1 AND version = $10 - 1
`
	cmd, err := r.pool.Exec(ctx, q,
		rec.StorageKey,
		rec.DocumentKey,
		rec.DocumentNumber,
		rec.Name,
		rec.Email,
		rec.Account,
		rec.Ledger,
		rec.Active,
		rec.UpdatedAt,
		rec.Version,
	)
	if err != nil {
		r.logger.Printf("customer repo: update key=%s error=%v", rec.StorageKey, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		var exists bool
		if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM customers WHERE storage_key = $1)`, rec.StorageKey).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.ErrNotFound
		}
		r.logger.Printf("customer repo: update key=%s version=%d lost the race", rec.StorageKey, rec.Version)
		return domain.ErrConcurrencyConflict
	}
	return nil
}

func (r *postgresRepo) List(ctx context.Context, opts ListOptions) (*Page, error) {
	if opts.PageSize < 1 || opts.PageSize > 100 {
		return nil, domain.NewValidationError("page size must be between 1 and 100, got %d", opts.PageSize)
	}
	afterKey := ""
	if opts.Cursor != "" {
		key, err := DecodeCursor(opts.Cursor)
		if err != nil {
			return nil, err
		}
		afterKey = key
	}

	q := `
SELECT ` + recordColumns + `
FROM customers
WHERE storage_key > $1
`
	if !opts.IncludeInactive {
		q += "  AND active\n"
	}
	q += "ORDER BY storage_key\nLIMIT $2"

	// One extra row decides whether a continuation cursor is needed.
	rows, err := r.pool.Query(ctx, q, afterKey, opts.PageSize+1)
	if err != nil {
		r.logger.Printf("customer repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var (
		customers []domain.Customer
		lastKey   string
	)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		if len(customers) == opts.PageSize {
			return &Page{Customers: customers, NextCursor: EncodeCursor(lastKey)}, nil
		}
		c, err := rec.toCustomer()
		if err != nil {
			return nil, err
		}
		customers = append(customers, *c)
		lastKey = rec.StorageKey
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("customer repo: list rows error=%v", err)
		return nil, err
	}
	return &Page{Customers: customers}, nil
}

func (r *postgresRepo) scanCustomer(row pgx.Row) (*domain.Customer, error) {
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("customer repo: scan error=%v", err)
		return nil, err
	}
	return rec.toCustomer()
}

func scanRecord(row pgx.Row) (record, error) {
	var rec record
	err := row.Scan(
		&rec.StorageKey,
		&rec.DocumentKey,
		&rec.ID,
		&rec.DocumentNumber,
		&rec.Name,
		&rec.Email,
		&rec.Account,
		&rec.Ledger,
		&rec.Active,
		&rec.CreatedAt,
		&rec.UpdatedAt,
		&rec.Version,
	)
	return rec, err
}
