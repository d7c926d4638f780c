package domain

import (
	"fmt"
	"strings"
	"time"
)

// AgencyCode is the closed set of branch codes accepted by the service.
// Unknown values are rejected at the boundary, not range-checked at runtime.
type AgencyCode string

const (
	AgencySaoPaulo     AgencyCode = "0001"
	AgencyRioDeJaneiro AgencyCode = "0002"
	AgencyBeloHorizont AgencyCode = "0003"
	AgencyCuritiba     AgencyCode = "0004"
)

// ParseAgencyCode validates raw against the closed enumeration.
func ParseAgencyCode(raw string) (AgencyCode, error) {
	code := AgencyCode(strings.TrimSpace(raw))
	switch code {
	case AgencySaoPaulo, AgencyRioDeJaneiro, AgencyBeloHorizont, AgencyCuritiba:
		return code, nil
	}
	return "", NewValidationError("unknown agency code %q", raw)
}

// AccountNumber is the two-part structural form of an account number:
// a digit sequence plus a single check digit, written as "NNNNNN-D".
type AccountNumber struct {
	Sequence   string
	CheckDigit string
}

// ParseAccountNumber splits raw into its two structural parts.
func ParseAccountNumber(raw string) (AccountNumber, error) {
	trimmed := strings.TrimSpace(raw)
	seq, digit, ok := strings.Cut(trimmed, "-")
	if !ok || seq == "" || len(digit) != 1 {
		return AccountNumber{}, NewValidationError("malformed account number %q", raw)
	}
	if !allDigits(seq) || !allDigits(digit) {
		return AccountNumber{}, NewValidationError("malformed account number %q", raw)
	}
	return AccountNumber{Sequence: seq, CheckDigit: digit}, nil
}

// String renders the canonical "NNNNNN-D" form.
func (n AccountNumber) String() string {
	return fmt.Sprintf("%s-%s", n.Sequence, n.CheckDigit)
}

// Account is the banking account owned by a customer. Immutable once built;
// it is replaced as a whole unit, never field-patched.
type Account struct {
	AgencyCode AgencyCode
	Number     AccountNumber
	CreatedAt  time.Time
}

// NewAccount builds an Account from boundary input.
func NewAccount(agencyCode, accountNumber string) (Account, error) {
	agency, err := ParseAgencyCode(agencyCode)
	if err != nil {
		return Account{}, err
	}
	number, err := ParseAccountNumber(accountNumber)
	if err != nil {
		return Account{}, err
	}
	return Account{
		AgencyCode: agency,
		Number:     number,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
