package customer

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"pix-limit-service/internal/domain"
	custrepo "pix-limit-service/internal/repository/customer"
)

// Service handles the customer lifecycle: creation, limit adjustments,
// activation transitions and lookups. Every mutation is a load-mutate-store
// round with a version-checked write; conflicts propagate to the caller,
// the service never retries on its own.
type Service struct {
	repo custrepo.Repository
}

// New creates a Service.
func New(repo custrepo.Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput captures fields expected by the create endpoint.
type CreateInput struct {
	DocumentNumber          string
	Name                    string
	Email                   string
	AgencyCode              string
	AccountNumber           string
	InitialLimitAmount      *decimal.Decimal
	InitialLimitDescription string
}

// Create registers a new customer aggregate at version 1.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Customer, error) {
	account, err := domain.NewAccount(in.AgencyCode, in.AccountNumber)
	if err != nil {
		return nil, err
	}
	c, err := domain.NewCustomer(in.DocumentNumber, in.Name, in.Email, account, in.InitialLimitAmount, in.InitialLimitDescription)
	if err != nil {
		return nil, err
	}

	// Uniqueness check on the business key; the storage-level secondary
	// index backstops the race window.
	if _, err := s.repo.GetByDocumentNumber(ctx, c.DocumentNumber); err == nil {
		return nil, domain.ErrAlreadyExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	if err := s.repo.Add(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// AdjustLimit appends a signed ledger entry to the customer's limit history.
func (s *Service) AdjustLimit(ctx context.Context, customerID string, amount decimal.Decimal, description string) (*domain.Customer, error) {
	c, err := s.repo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if err := c.AdjustLimit(amount, description); err != nil {
		return nil, err
	}
	c.Version++
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Deactivate turns a customer off.
func (s *Service) Deactivate(ctx context.Context, customerID, reason, actor string) (*domain.Customer, error) {
	c, err := s.repo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if err := c.Deactivate(reason, actor); err != nil {
		return nil, err
	}
	c.Version++
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Reactivate turns a deactivated customer back on.
func (s *Service) Reactivate(ctx context.Context, customerID, reason, actor string) (*domain.Customer, error) {
	c, err := s.repo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if err := c.Reactivate(reason, actor); err != nil {
		return nil, err
	}
	c.Version++
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ReplaceAccount swaps the customer's account as a whole unit.
func (s *Service) ReplaceAccount(ctx context.Context, customerID, agencyCode, accountNumber string) (*domain.Customer, error) {
	account, err := domain.NewAccount(agencyCode, accountNumber)
	if err != nil {
		return nil, err
	}
	c, err := s.repo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if err := c.ReplaceAccount(account); err != nil {
		return nil, err
	}
	c.Version++
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Get resolves a customer by id.
func (s *Service) Get(ctx context.Context, customerID string) (*domain.Customer, error) {
	return s.repo.GetByID(ctx, customerID)
}

// GetByDocument resolves a customer through the document-number index.
func (s *Service) GetByDocument(ctx context.Context, documentNumber string) (*domain.Customer, error) {
	doc, err := domain.NormalizeDocument(documentNumber)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByDocumentNumber(ctx, doc)
}

// List returns one page of customers.
func (s *Service) List(ctx context.Context, opts custrepo.ListOptions) (*custrepo.Page, error) {
	return s.repo.List(ctx, opts)
}
