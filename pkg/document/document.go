// Package document provides the identity-document catalogue used for
// suppliers: document type codes, display labels, and number validation.
//
// The backend identifies document types by SUNAT catalogue codes:
// "6" is RUC (tax id, 11 digits) and "1" is DNI (national id, 8 digits).
package document

import (
	"errors"
	"fmt"
)

// Document type codes as used on the wire.
const (
	// TypeRUC is the tax-id document type (11 digits).
	TypeRUC = "6"

	// TypeDNI is the national-id document type (8 digits).
	TypeDNI = "1"
)

// Common document validation errors.
var (
	// ErrUnknownType indicates the document type code is not in the catalogue.
	ErrUnknownType = errors.New("unknown document type")

	// ErrInvalidNumber indicates the document number violates the rules
	// for its document type.
	ErrInvalidNumber = errors.New("invalid document number")
)

// Type describes one entry of the document-type catalogue.
type Type struct {
	// Code is the wire value ("6", "1").
	Code string

	// Label is the human-readable abbreviation ("RUC", "DNI").
	Label string

	// Length is the exact number of digits for this type.
	Length int
}

// Types lists the supported document types in display order.
var Types = []Type{
	{Code: TypeRUC, Label: "RUC", Length: 11},
	{Code: TypeDNI, Label: "DNI", Length: 8},
}

// Lookup returns the catalogue entry for a type code.
func Lookup(code string) (Type, bool) {
	for _, t := range Types {
		if t.Code == code {
			return t, true
		}
	}
	return Type{}, false
}

// Label returns the display label for a type code, falling back to the
// raw code for unknown types so rendering never fails.
func Label(code string) string {
	if t, ok := Lookup(code); ok {
		return t.Label
	}
	return code
}

// MaxLength returns the digit limit for a type code, used to cap form
// input. Unknown types get a permissive default.
func MaxLength(code string) int {
	if t, ok := Lookup(code); ok {
		return t.Length
	}
	return 15
}

// ValidateNumber checks a document number against the rules for its type:
// digits only, and the exact length the catalogue prescribes.
func ValidateNumber(code, number string) error {
	t, ok := Lookup(code)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownType, code)
	}

	if number == "" {
		return fmt.Errorf("%w: number is empty", ErrInvalidNumber)
	}

	for _, r := range number {
		if r < '0' || r > '9' {
			return fmt.Errorf("%w: must contain only digits", ErrInvalidNumber)
		}
	}

	if len(number) != t.Length {
		return fmt.Errorf("%w: %s requires %d digits, got %d", ErrInvalidNumber, t.Label, t.Length, len(number))
	}

	return nil
}
