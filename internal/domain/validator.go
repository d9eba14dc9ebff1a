package domain

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// MaxNameLength defines maximum item name length in bytes
	MaxNameLength = 256
)

var (
	// controlCharPattern detects control characters, including line breaks
	controlCharPattern = regexp.MustCompile(`[\x00-\x1F\x7F]`)
)

// ValidationError reports invalid user input for a named field
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ValidateItemName rejects names that cannot be stored as a single row field
func ValidateItemName(name string) error {
	switch {
	case name == "":
		return &ValidationError{Field: "name", Reason: "name cannot be empty"}
	case len(name) > MaxNameLength:
		return &ValidationError{Field: "name", Reason: fmt.Sprintf("length %d exceeds maximum %d", len(name), MaxNameLength)}
	case strings.TrimSpace(name) != name:
		return &ValidationError{Field: "name", Reason: "name cannot start or end with whitespace"}
	case controlCharPattern.MatchString(name):
		return &ValidationError{Field: "name", Reason: "name contains control characters"}
	case strings.Contains(name, ","):
		return &ValidationError{Field: "name", Reason: "name cannot contain commas"}
	}
	return nil
}

// ValidateQuantity rejects negative stock levels
func ValidateQuantity(qty int) error {
	if qty < 0 {
		return &ValidationError{Field: "quantity", Reason: fmt.Sprintf("%d is negative", qty)}
	}
	return nil
}

// ValidateAmount rejects purchase or usage amounts that are not positive
func ValidateAmount(amount int) error {
	if amount <= 0 {
		return &ValidationError{Field: "amount", Reason: fmt.Sprintf("%d must be greater than zero", amount)}
	}
	return nil
}
