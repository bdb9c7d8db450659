package model

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// LockerCodeAlphabet is the fixed 31-character alphabet locker codes are
// built from. Visually ambiguous glyphs (O, L, I, 0, 1) are excluded so the
// codes survive being read aloud or written down.
const LockerCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// Locker code layout: three characters, a dash, four characters.
const (
	lockerCodeHeadLen = 3
	lockerCodeTailLen = 4
	lockerCodeLen     = lockerCodeHeadLen + 1 + lockerCodeTailLen
)

// NormalizeLockerCode trims surrounding whitespace and uppercases a locker
// code. Codes are case-normalized before both validation and transmission.
func NormalizeLockerCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidateLockerCode checks that a (normalized) locker code is exactly the
// LLL-CCCC shape with every character taken from LockerCodeAlphabet.
func ValidateLockerCode(code string) error {
	if len(code) != lockerCodeLen {
		return fmt.Errorf("locker code must be %d characters in XXX-XXXX form: %w", lockerCodeLen, ErrNotValid)
	}
	if code[lockerCodeHeadLen] != '-' {
		return fmt.Errorf("locker code must have a dash after the third character: %w", ErrNotValid)
	}
	for i, r := range code {
		if i == lockerCodeHeadLen {
			continue
		}
		if !strings.ContainsRune(LockerCodeAlphabet, r) {
			return fmt.Errorf("locker code character %q not allowed: %w", r, ErrNotValid)
		}
	}
	return nil
}

// GenerateLockerCode returns a fresh random locker code. The output always
// satisfies ValidateLockerCode.
func GenerateLockerCode() (string, error) {
	alphabetLen := big.NewInt(int64(len(LockerCodeAlphabet)))

	var sb strings.Builder
	sb.Grow(lockerCodeLen)
	for i := 0; i < lockerCodeHeadLen+lockerCodeTailLen; i++ {
		if i == lockerCodeHeadLen {
			sb.WriteByte('-')
		}
		n, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("could not draw random locker character: %w", err)
		}
		sb.WriteByte(LockerCodeAlphabet[n.Int64()])
	}

	return sb.String(), nil
}
