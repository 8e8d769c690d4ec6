package cpf

import (
	"errors"
	"strings"
)

// Length is the number of digits in a normalized CPF.
const Length = 11

// ErrInvalidBase is returned by CheckDigits when the base is not nine digits.
var ErrInvalidBase = errors.New("cpf: base must contain exactly 9 digits")

// Normalize strips every non-digit character from raw.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Valid reports whether raw holds a well-formed CPF whose check digits match.
// Sequences of eleven identical digits are rejected even though their check
// digits are consistent.
func Valid(raw string) bool {
	digits := Normalize(raw)
	if len(digits) != Length || repeated(digits) {
		return false
	}
	if checkDigit(digits[:9], 10) != int(digits[9]-'0') {
		return false
	}
	return checkDigit(digits[:10], 11) == int(digits[10]-'0')
}

// CheckDigits computes both check digits for a nine digit base. Non-digit
// characters in base are ignored.
func CheckDigits(base string) (int, int, error) {
	digits := Normalize(base)
	if len(digits) != 9 {
		return 0, 0, ErrInvalidBase
	}
	first := checkDigit(digits, 10)
	second := checkDigit(digits+string(rune('0'+first)), 11)
	return first, second, nil
}

// Format renders an eleven digit CPF as 000.000.000-00. Inputs that do not
// normalize to eleven digits are returned trimmed but otherwise untouched.
func Format(raw string) string {
	digits := Normalize(raw)
	if len(digits) != Length {
		return strings.TrimSpace(raw)
	}
	return digits[0:3] + "." + digits[3:6] + "." + digits[6:9] + "-" + digits[9:11]
}

// checkDigit runs the weighted modulo-11 sum over digits, starting at weight
// and decreasing by one per position.
func checkDigit(digits string, weight int) int {
	sum := 0
	for i := 0; i < len(digits); i++ {
		sum += int(digits[i]-'0') * (weight - i)
	}
	rest := 11 - (sum % 11)
	if rest == 10 || rest == 11 {
		return 0
	}
	return rest
}

func repeated(digits string) bool {
	for i := 1; i < len(digits); i++ {
		if digits[i] != digits[0] {
			return false
		}
	}
	return true
}
