package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LimitEntry is one immutable, signed adjustment in a customer's limit
// ledger. Positive amounts raise the limit, negative amounts consume it.
type LimitEntry struct {
	Amount      decimal.Decimal
	Description string
	CreatedAt   time.Time
}

// Customer is the aggregate root: identity, account, the append-only limit
// ledger and the lifecycle flag. The PIX limit is always derived from the
// ledger, never cached.
type Customer struct {
	ID             string
	DocumentNumber string
	Name           string
	Email          string
	Account        Account
	LedgerEntries  []LimitEntry
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Version        int64
}

// NewCustomer builds an active customer at version 1, optionally seeded with
// one initial ledger entry.
func NewCustomer(documentNumber, name, email string, account Account, initialLimit *decimal.Decimal, initialDescription string) (*Customer, error) {
	doc, err := NormalizeDocument(documentNumber)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewValidationError("name is required")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, NewValidationError("email %q is invalid", email)
	}

	now := time.Now().UTC()
	c := &Customer{
		ID:             uuid.NewString(),
		DocumentNumber: doc,
		Name:           name,
		Email:          email,
		Account:        account,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
		Version:        1,
	}
	if initialLimit != nil {
		if strings.TrimSpace(initialDescription) == "" {
			return nil, NewValidationError("initial limit description is required")
		}
		c.LedgerEntries = append(c.LedgerEntries, LimitEntry{
			Amount:      *initialLimit,
			Description: strings.TrimSpace(initialDescription),
			CreatedAt:   now,
		})
	}
	return c, nil
}

// CurrentLimit sums every ledger entry. The ledger is the single source of
// truth for the limit value.
func (c *Customer) CurrentLimit() decimal.Decimal {
	total := decimal.Zero
	for _, e := range c.LedgerEntries {
		total = total.Add(e.Amount)
	}
	return total
}

// AdjustLimit appends a signed ledger entry. Zero and negative amounts are
// recorded facts; only transaction execution enforces a floor.
func (c *Customer) AdjustLimit(amount decimal.Decimal, description string) error {
	if !c.Active {
		return NewInvariantError("customer %s is inactive", c.ID)
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return NewValidationError("description is required")
	}
	now := time.Now().UTC()
	c.LedgerEntries = append(c.LedgerEntries, LimitEntry{
		Amount:      amount,
		Description: description,
		CreatedAt:   now,
	})
	c.UpdatedAt = now
	return nil
}

// Deactivate turns the customer off. Deactivating an already-inactive
// customer is an invariant breach, not a no-op.
func (c *Customer) Deactivate(reason, actor string) error {
	if strings.TrimSpace(reason) == "" {
		return NewValidationError("deactivation reason is required")
	}
	if !c.Active {
		return NewInvariantError("customer %s is already inactive", c.ID)
	}
	_ = actor
	c.Active = false
	c.UpdatedAt = time.Now().UTC()
	return nil
}

// Reactivate is the symmetric transition; fails when already active.
func (c *Customer) Reactivate(reason, actor string) error {
	if strings.TrimSpace(reason) == "" {
		return NewValidationError("reactivation reason is required")
	}
	if c.Active {
		return NewInvariantError("customer %s is already active", c.ID)
	}
	_ = actor
	c.Active = true
	c.UpdatedAt = time.Now().UTC()
	return nil
}

// ReplaceAccount swaps the account as a whole unit.
func (c *Customer) ReplaceAccount(account Account) error {
	if !c.Active {
		return NewInvariantError("customer %s is inactive", c.ID)
	}
	c.Account = account
	c.UpdatedAt = time.Now().UTC()
	return nil
}

// NormalizeDocument strips CPF/CNPJ punctuation and checks the digit shape.
// The checksum routine itself is applied upstream at the request boundary.
func NormalizeDocument(raw string) (string, error) {
	cleaned := strings.NewReplacer(".", "", "-", "", "/", "", " ", "").Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return "", NewValidationError("document number is required")
	}
	if !allDigits(cleaned) {
		return "", NewValidationError("document number %q contains non-digits", raw)
	}
	if len(cleaned) != 11 && len(cleaned) != 14 {
		return "", NewValidationError("document number %q must have 11 or 14 digits", raw)
	}
	return cleaned, nil
}
