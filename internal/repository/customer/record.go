package customer

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"pix-limit-service/internal/domain"
)

// record is the storage-facing shape of one aggregate: flat identity columns
// plus the account and ledger serialized as embedded blobs.
type record struct {
	StorageKey     string
	DocumentKey    string
	ID             string
	DocumentNumber string
	Name           string
	Email          string
	Account        []byte
	Ledger         []byte
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Version        int64
}

type accountBlob struct {
	AgencyCode    string `json:"agencyCode"`
	AccountNumber string `json:"accountNumber"`
	CreatedAt     string `json:"createdAt"`
}

type ledgerEntryBlob struct {
	Amount      string `json:"amount"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
}

// toRecord serializes an aggregate for storage.
func toRecord(c *domain.Customer) (record, error) {
	accountJSON, err := json.Marshal(accountBlob{
		AgencyCode:    string(c.Account.AgencyCode),
		AccountNumber: c.Account.Number.String(),
		CreatedAt:     c.Account.CreatedAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return record{}, err
	}

	entries := make([]ledgerEntryBlob, 0, len(c.LedgerEntries))
	for _, e := range c.LedgerEntries {
		entries = append(entries, ledgerEntryBlob{
			Amount:      e.Amount.String(),
			Description: e.Description,
			CreatedAt:   e.CreatedAt.UTC().Format(time.RFC3339Nano),
		})
	}
	ledgerJSON, err := json.Marshal(entries)
	if err != nil {
		return record{}, err
	}

	return record{
		StorageKey:     CustomerKey(c.ID),
		DocumentKey:    DocumentKey(c.DocumentNumber),
		ID:             c.ID,
		DocumentNumber: c.DocumentNumber,
		Name:           c.Name,
		Email:          c.Email,
		Account:        accountJSON,
		Ledger:         ledgerJSON,
		Active:         c.Active,
		CreatedAt:      c.CreatedAt.UTC(),
		UpdatedAt:      c.UpdatedAt.UTC(),
		Version:        c.Version,
	}, nil
}

// toCustomer reconstructs the aggregate. Any malformed embedded blob means
// the stored record is corrupt, not retryable.
func (r record) toCustomer() (*domain.Customer, error) {
	var acc accountBlob
	if err := json.Unmarshal(r.Account, &acc); err != nil {
		return nil, fmt.Errorf("%w: account blob for %s: %v", domain.ErrCorruptRecord, r.StorageKey, err)
	}
	agency, err := domain.ParseAgencyCode(acc.AgencyCode)
	if err != nil {
		return nil, fmt.Errorf("%w: agency code %q for %s", domain.ErrCorruptRecord, acc.AgencyCode, r.StorageKey)
	}
	number, err := domain.ParseAccountNumber(acc.AccountNumber)
	if err != nil {
		return nil, fmt.Errorf("%w: account number %q for %s", domain.ErrCorruptRecord, acc.AccountNumber, r.StorageKey)
	}
	accountCreated, err := time.Parse(time.RFC3339Nano, acc.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: account createdAt %q for %s", domain.ErrCorruptRecord, acc.CreatedAt, r.StorageKey)
	}

	var blobs []ledgerEntryBlob
	if len(r.Ledger) > 0 {
		if err := json.Unmarshal(r.Ledger, &blobs); err != nil {
			return nil, fmt.Errorf("%w: ledger blob for %s: %v", domain.ErrCorruptRecord, r.StorageKey, err)
		}
	}
	entries := make([]domain.LimitEntry, 0, len(blobs))
	for i, b := range blobs {
		amount, err := decimal.NewFromString(b.Amount)
		if err != nil {
			return nil, fmt.Errorf("%w: ledger entry %d amount %q for %s", domain.ErrCorruptRecord, i, b.Amount, r.StorageKey)
		}
		createdAt, err := time.Parse(time.RFC3339Nano, b.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: ledger entry %d createdAt %q for %s", domain.ErrCorruptRecord, i, b.CreatedAt, r.StorageKey)
		}
		entries = append(entries, domain.LimitEntry{
			Amount:      amount,
			Description: b.Description,
			CreatedAt:   createdAt,
		})
	}

	return &domain.Customer{
		ID:             r.ID,
		DocumentNumber: r.DocumentNumber,
		Name:           r.Name,
		Email:          r.Email,
		Account: domain.Account{
			AgencyCode: agency,
			Number:     number,
			CreatedAt:  accountCreated,
		},
		LedgerEntries: entries,
		Active:        r.Active,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
		Version:       r.Version,
	}, nil
}
