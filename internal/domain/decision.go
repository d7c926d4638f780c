package domain

import "github.com/shopspring/decimal"

// Denial reasons reported to callers. Denials are decisions, not errors.
const (
	ReasonCustomerNotFound  = "Customer not found"
	ReasonCustomerInactive  = "Customer account is inactive"
	ReasonInsufficientLimit = "Insufficient limit"
	ReasonAuthorized        = "Transaction authorized"
)

// AuthorizationDecision is the structured outcome of executing a transaction
// against a customer's limit. RemainingLimit is nil when the customer could
// not be resolved at all.
type AuthorizationDecision struct {
	Authorized       bool
	Reason           string
	RemainingLimit   *decimal.Decimal
	TransactionValue decimal.Decimal
}
