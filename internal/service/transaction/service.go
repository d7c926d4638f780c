package transaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"pix-limit-service/internal/domain"
	custrepo "pix-limit-service/internal/repository/customer"
)

// Service is the authorization engine: it resolves the merchant's customer
// aggregate, decides against the derived limit and persists the debit on
// approval. Denials are structured decisions, never errors, and never touch
// the ledger.
type Service struct {
	repo custrepo.Repository
}

// New creates a Service.
func New(repo custrepo.Repository) *Service {
	return &Service{repo: repo}
}

// Execute runs the transaction-decision algorithm for a merchant document
// and a strictly positive value. Non-positive values are a validation error
// raised before any lookup. A concurrent writer between load and store
// surfaces as domain.ErrConcurrencyConflict; re-deciding is the caller's
// responsibility.
func (s *Service) Execute(ctx context.Context, merchantDocument string, value decimal.Decimal) (*domain.AuthorizationDecision, error) {
	if !value.IsPositive() {
		return nil, domain.NewValidationError("transaction value must be positive, got %s", value)
	}
	doc, err := domain.NormalizeDocument(merchantDocument)
	if err != nil {
		return nil, err
	}

	c, err := s.repo.GetByDocumentNumber(ctx, doc)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.AuthorizationDecision{
				Authorized:       false,
				Reason:           domain.ReasonCustomerNotFound,
				TransactionValue: value,
			}, nil
		}
		return nil, err
	}

	limit := c.CurrentLimit()
	if !c.Active {
		return &domain.AuthorizationDecision{
			Authorized:       false,
			Reason:           domain.ReasonCustomerInactive,
			RemainingLimit:   &limit,
			TransactionValue: value,
		}, nil
	}

	// Inclusive threshold: spending the exact limit is approved and drives
	// it to zero.
	if value.GreaterThan(limit) {
		return &domain.AuthorizationDecision{
			Authorized:       false,
			Reason:           domain.ReasonInsufficientLimit,
			RemainingLimit:   &limit,
			TransactionValue: value,
		}, nil
	}

	if err := c.AdjustLimit(value.Neg(), fmt.Sprintf("PIX transaction debit of %s", value)); err != nil {
		return nil, err
	}
	c.Version++
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	remaining := c.CurrentLimit()
	return &domain.AuthorizationDecision{
		Authorized:       true,
		Reason:           domain.ReasonAuthorized,
		RemainingLimit:   &remaining,
		TransactionValue: value,
	}, nil
}
