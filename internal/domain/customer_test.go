package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func newTestCustomer(t *testing.T, initial string) *Customer {
	t.Helper()
	account, err := NewAccount("0001", "123456-7")
	if err != nil {
		t.Fatalf("new account: %v", err)
	}
	var seed *decimal.Decimal
	if initial != "" {
		v := decimal.RequireFromString(initial)
		seed = &v
	}
	c, err := NewCustomer("529.982.247-25", "  Maria Silva ", " Maria@Example.COM ", account, seed, "initial limit")
	if err != nil {
		t.Fatalf("new customer: %v", err)
	}
	return c
}

func TestNewCustomer_NormalizesFields(t *testing.T) {
	c := newTestCustomer(t, "1000")

	if c.DocumentNumber != "52998224725" {
		t.Fatalf("document not normalized: %q", c.DocumentNumber)
	}
	if c.Name != "Maria Silva" {
		t.Fatalf("name not trimmed: %q", c.Name)
	}
	if c.Email != "maria@example.com" {
		t.Fatalf("email not lower-cased: %q", c.Email)
	}
	if c.Version != 1 {
		t.Fatalf("version should start at 1, got %d", c.Version)
	}
	if !c.Active {
		t.Fatalf("new customer should be active")
	}
	if len(c.LedgerEntries) != 1 || !c.LedgerEntries[0].Amount.Equal(decimal.RequireFromString("1000")) {
		t.Fatalf("unexpected seed ledger %+v", c.LedgerEntries)
	}
}

func TestNewCustomer_RequiresDescriptionForSeedEntry(t *testing.T) {
	account, err := NewAccount("0001", "123456-7")
	if err != nil {
		t.Fatalf("new account: %v", err)
	}
	seed := decimal.RequireFromString("500")
	_, err = NewCustomer("52998224725", "Maria", "maria@example.com", account, &seed, "   ")
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCurrentLimit_IsAlwaysTheLedgerSum(t *testing.T) {
	c := newTestCustomer(t, "1000")

	if err := c.AdjustLimit(decimal.RequireFromString("500"), "raise"); err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if got := c.CurrentLimit(); !got.Equal(decimal.RequireFromString("1500")) {
		t.Fatalf("limit after raise = %s, want 1500", got)
	}

	if err := c.AdjustLimit(decimal.RequireFromString("-1500"), "cut"); err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if got := c.CurrentLimit(); !got.Equal(decimal.Zero) {
		t.Fatalf("limit after cut = %s, want 0", got)
	}
	if len(c.LedgerEntries) != 3 {
		t.Fatalf("ledger should keep every entry, got %d", len(c.LedgerEntries))
	}
}

func TestAdjustLimit_AllowsZeroAndNegativeResults(t *testing.T) {
	c := newTestCustomer(t, "")

	if err := c.AdjustLimit(decimal.Zero, "noop adjustment"); err != nil {
		t.Fatalf("zero amount should be permitted: %v", err)
	}
	if err := c.AdjustLimit(decimal.RequireFromString("-250"), "manual cut"); err != nil {
		t.Fatalf("negative ledger value should be permitted: %v", err)
	}
	if got := c.CurrentLimit(); !got.Equal(decimal.RequireFromString("-250")) {
		t.Fatalf("limit = %s, want -250", got)
	}
}

func TestAdjustLimit_RejectsEmptyDescription(t *testing.T) {
	c := newTestCustomer(t, "")
	err := c.AdjustLimit(decimal.RequireFromString("10"), "  ")
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(c.LedgerEntries) != 0 {
		t.Fatalf("rejected adjustment must not append, ledger %+v", c.LedgerEntries)
	}
}

func TestAdjustLimit_RejectsInactiveCustomer(t *testing.T) {
	c := newTestCustomer(t, "1000")
	if err := c.Deactivate("fraud", "ops"); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	err := c.AdjustLimit(decimal.RequireFromString("10"), "raise")
	if !IsInvariant(err) {
		t.Fatalf("expected invariant error, got %v", err)
	}
}

func TestDeactivate_RejectsSecondCall(t *testing.T) {
	c := newTestCustomer(t, "")
	if err := c.Deactivate("fraud", "ops"); err != nil {
		t.Fatalf("first deactivate: %v", err)
	}
	err := c.Deactivate("fraud again", "ops")
	if !IsInvariant(err) {
		t.Fatalf("second deactivate should fail with invariant error, got %v", err)
	}
	if c.Active {
		t.Fatalf("flag must stay false after rejected deactivate")
	}
}

func TestReactivate_IsSymmetric(t *testing.T) {
	c := newTestCustomer(t, "")

	if err := c.Reactivate("oops", "ops"); !IsInvariant(err) {
		t.Fatalf("reactivating an active customer should fail, got %v", err)
	}
	if err := c.Deactivate("fraud", "ops"); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if err := c.Reactivate("cleared", "ops"); err != nil {
		t.Fatalf("reactivate: %v", err)
	}
	if !c.Active {
		t.Fatalf("customer should be active again")
	}
}

func TestReplaceAccount_WholeUnitSwap(t *testing.T) {
	c := newTestCustomer(t, "")
	next, err := NewAccount("0002", "765432-1")
	if err != nil {
		t.Fatalf("new account: %v", err)
	}
	if err := c.ReplaceAccount(next); err != nil {
		t.Fatalf("replace account: %v", err)
	}
	if c.Account.AgencyCode != AgencyRioDeJaneiro || c.Account.Number.String() != "765432-1" {
		t.Fatalf("account not replaced: %+v", c.Account)
	}

	if err := c.Deactivate("closing", "ops"); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if err := c.ReplaceAccount(next); !IsInvariant(err) {
		t.Fatalf("replace on inactive customer should fail, got %v", err)
	}
}

func TestNormalizeDocument(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "529.982.247-25", want: "52998224725"},
		{in: "12.345.678/0001-95", want: "12345678000195"},
		{in: " 52998224725 ", want: "52998224725"},
		{in: "", wantErr: true},
		{in: "abc.def.ghi-jk", wantErr: true},
		{in: "12345", wantErr: true},
	}
	for _, tc := range cases {
		got, err := NormalizeDocument(tc.in)
		if tc.wantErr {
			if !IsValidation(err) {
				t.Fatalf("NormalizeDocument(%q) expected validation error, got %v", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("NormalizeDocument(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("NormalizeDocument(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
