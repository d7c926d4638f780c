package customer

import (
	"context"

	"pix-limit-service/internal/domain"
)

// ListOptions bounds a paginated scan. PageSize must be in [1,100]; Cursor is
// the opaque continuation token from a previous page, empty for the first.
type ListOptions struct {
	PageSize        int
	Cursor          string
	IncludeInactive bool
}

// Page is one slice of a scan. NextCursor is empty when the scan is done.
type Page struct {
	Customers  []domain.Customer
	NextCursor string
}

// Repository persists and fetches customer aggregates.
//
// Add never overwrites: a key collision fails with domain.ErrAlreadyExists.
// Update is a conditional write: the stored version must equal
// aggregate.Version-1, otherwise it fails with domain.ErrConcurrencyConflict.
// Callers bump Version before calling Update.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	GetByDocumentNumber(ctx context.Context, documentNumber string) (*domain.Customer, error)
	Add(ctx context.Context, c *domain.Customer) error
	Update(ctx context.Context, c *domain.Customer) error
	List(ctx context.Context, opts ListOptions) (*Page, error)
}
