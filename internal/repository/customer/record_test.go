package customer

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"pix-limit-service/internal/domain"
)

func testAggregate(t *testing.T) *domain.Customer {
	t.Helper()
	account, err := domain.NewAccount("0001", "123456-7")
	if err != nil {
		t.Fatalf("new account: %v", err)
	}
	seed := decimal.RequireFromString("1000.50")
	c, err := domain.NewCustomer("52998224725", "Maria Silva", "maria@example.com", account, &seed, "initial limit")
	if err != nil {
		t.Fatalf("new customer: %v", err)
	}
	if err := c.AdjustLimit(decimal.RequireFromString("-0.5"), "rounding test"); err != nil {
		t.Fatalf("adjust: %v", err)
	}
	return c
}

func TestRecordRoundTrip(t *testing.T) {
	original := testAggregate(t)

	rec, err := toRecord(original)
	if err != nil {
		t.Fatalf("toRecord: %v", err)
	}
	if rec.StorageKey != CustomerKey(original.ID) || rec.DocumentKey != DocumentKey(original.DocumentNumber) {
		t.Fatalf("derived keys wrong: %+v", rec)
	}

	restored, err := rec.toCustomer()
	if err != nil {
		t.Fatalf("toCustomer: %v", err)
	}
	if restored.ID != original.ID || restored.DocumentNumber != original.DocumentNumber {
		t.Fatalf("identity mismatch %+v", restored)
	}
	if restored.Account.AgencyCode != original.Account.AgencyCode || restored.Account.Number != original.Account.Number {
		t.Fatalf("account mismatch %+v", restored.Account)
	}
	if len(restored.LedgerEntries) != len(original.LedgerEntries) {
		t.Fatalf("ledger length mismatch: %d vs %d", len(restored.LedgerEntries), len(original.LedgerEntries))
	}
	for i := range restored.LedgerEntries {
		if !restored.LedgerEntries[i].Amount.Equal(original.LedgerEntries[i].Amount) {
			t.Fatalf("entry %d amount %s != %s", i, restored.LedgerEntries[i].Amount, original.LedgerEntries[i].Amount)
		}
	}
	if !restored.CurrentLimit().Equal(original.CurrentLimit()) {
		t.Fatalf("derived limit changed across round trip: %s vs %s", restored.CurrentLimit(), original.CurrentLimit())
	}
	if restored.Version != original.Version || restored.Active != original.Active {
		t.Fatalf("version/active mismatch %+v", restored)
	}
}

func TestToCustomer_CorruptAccountBlob(t *testing.T) {
	rec, err := toRecord(testAggregate(t))
	if err != nil {
		t.Fatalf("toRecord: %v", err)
	}

	cases := map[string][]byte{
		"not json":            []byte(`{`),
		"unknown agency":      []byte(`{"agencyCode":"9999","accountNumber":"123456-7","createdAt":"2024-01-02T03:04:05Z"}`),
		"one-part number":     []byte(`{"agencyCode":"0001","accountNumber":"1234567","createdAt":"2024-01-02T03:04:05Z"}`),
		"bad createdAt":       []byte(`{"agencyCode":"0001","accountNumber":"123456-7","createdAt":"yesterday"}`),
		"non-numeric account": []byte(`{"agencyCode":"0001","accountNumber":"12345a-7","createdAt":"2024-01-02T03:04:05Z"}`),
	}
	for name, blob := range cases {
		broken := rec
		broken.Account = blob
		if _, err := broken.toCustomer(); !errors.Is(err, domain.ErrCorruptRecord) {
			t.Fatalf("%s: expected ErrCorruptRecord, got %v", name, err)
		}
	}
}

func TestToCustomer_CorruptLedgerBlob(t *testing.T) {
	rec, err := toRecord(testAggregate(t))
	if err != nil {
		t.Fatalf("toRecord: %v", err)
	}

	cases := map[string][]byte{
		"not json":   []byte(`[`),
		"bad amount": []byte(`[{"amount":"a lot","description":"x","createdAt":"2024-01-02T03:04:05Z"}]`),
		"bad time":   []byte(`[{"amount":"10","description":"x","createdAt":"soon"}]`),
	}
	for name, blob := range cases {
		broken := rec
		broken.Ledger = blob
		if _, err := broken.toCustomer(); !errors.Is(err, domain.ErrCorruptRecord) {
			t.Fatalf("%s: expected ErrCorruptRecord, got %v", name, err)
		}
	}
}

func TestToCustomer_EmptyLedger(t *testing.T) {
	account, err := domain.NewAccount("0002", "111111-1")
	if err != nil {
		t.Fatalf("new account: %v", err)
	}
	c, err := domain.NewCustomer("12345678000195", "Loja Centro", "loja@example.com", account, nil, "")
	if err != nil {
		t.Fatalf("new customer: %v", err)
	}
	rec, err := toRecord(c)
	if err != nil {
		t.Fatalf("toRecord: %v", err)
	}
	restored, err := rec.toCustomer()
	if err != nil {
		t.Fatalf("toCustomer: %v", err)
	}
	if len(restored.LedgerEntries) != 0 || !restored.CurrentLimit().Equal(decimal.Zero) {
		t.Fatalf("empty ledger should restore empty, got %+v", restored.LedgerEntries)
	}
}
