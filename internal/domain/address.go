package domain

import (
	"fmt"
	"strings"
	"unicode"
)

// Address identifies an account: a project, a donor, the owner or the fee
// collector. Bech32 formatting is left to the caller.
type Address string

// ParseAddress trims s and rejects empty values or values containing
// whitespace.
func ParseAddress(s string) (Address, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidAddress)
	}
	if strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return "", fmt.Errorf("%w: %q contains whitespace", ErrInvalidAddress, s)
	}
	return Address(s), nil
}

func (a Address) String() string {
	return string(a)
}

// ValidateAddress checks that a is already in parsed form. Addresses decoded
// from message bodies go through it so " p" and "p" never name two accounts.
func ValidateAddress(a Address) error {
	parsed, err := ParseAddress(string(a))
	if err != nil {
		return err
	}
	if parsed != a {
		return fmt.Errorf("%w: %q has surrounding whitespace", ErrInvalidAddress, string(a))
	}
	return nil
}
