package customer

import (
	"encoding/base64"
	"strings"

	"pix-limit-service/internal/domain"
)

// Storage keys are derived, never stored business data: the primary key from
// the aggregate id, the secondary key from the normalized document number.
const (
	customerKeyPrefix = "CUSTOMER#"
	documentKeyPrefix = "DOC#"

	cursorVersion = "v1"
)

// CustomerKey derives the primary storage key for an aggregate id.
func CustomerKey(id string) string {
	return customerKeyPrefix + id
}

// DocumentKey derives the secondary-index key for a document number.
func DocumentKey(documentNumber string) string {
	return documentKeyPrefix + documentNumber
}

// EncodeCursor wraps the last-seen storage key into an opaque, versioned
// continuation token.
func EncodeCursor(lastKey string) string {
	if lastKey == "" {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString([]byte(cursorVersion + "|" + lastKey))
}

// DecodeCursor unwraps a continuation token back into the storage key it
// encodes. Malformed input is a validation error, never a crash.
func DecodeCursor(cursor string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return "", domain.NewValidationError("invalid cursor")
	}
	version, key, ok := strings.Cut(string(raw), "|")
	if !ok || version != cursorVersion || key == "" {
		return "", domain.NewValidationError("invalid cursor")
	}
	return key, nil
}
