package cpf

import (
	"strings"
	"testing"
)

func TestValid_KnownIdentifiers(t *testing.T) {
	cases := []string{
		"111.444.777-35",
		"11144477735",
		"529.982.247-25",
		"52998224725",
		" 529 982 247 25 ",
	}
	for _, raw := range cases {
		if !Valid(raw) {
			t.Fatalf("expected %q to be valid", raw)
		}
	}
}

func TestValid_RejectsRepeatedDigits(t *testing.T) {
	for d := '0'; d <= '9'; d++ {
		raw := strings.Repeat(string(d), Length)
		if Valid(raw) {
			t.Fatalf("expected repeated sequence %q to be invalid", raw)
		}
	}
}

func TestValid_RejectsWrongLength(t *testing.T) {
	cases := []string{"", "1114447773", "111444777350", "abc", "111.444.777-3"}
	for _, raw := range cases {
		if Valid(raw) {
			t.Fatalf("expected %q to be invalid", raw)
		}
	}
}

func TestValid_IgnoresPunctuation(t *testing.T) {
	pairs := [][2]string{
		{"111.444.777-35", "11144477735"},
		{"111.444.777-36", "11144477736"},
		{"000.000.000-00", "00000000000"},
	}
	for _, pair := range pairs {
		if Valid(pair[0]) != Valid(pair[1]) {
			t.Fatalf("expected %q and %q to validate identically", pair[0], pair[1])
		}
	}
}

// A single changed digit is caught for this sample at every position. This is
// not guaranteed for every identifier: two different sums can map to the same
// check digit because remainders 10 and 11 both collapse to zero.
func TestValid_SingleDigitChange(t *testing.T) {
	const valid = "11144477735"
	for i := 0; i < len(valid); i++ {
		flipped := []byte(valid)
		flipped[i] = '0' + (flipped[i]-'0'+1)%10
		if Valid(string(flipped)) {
			t.Fatalf("expected %q (position %d changed) to be invalid", flipped, i)
		}
	}
}

func TestCheckDigits(t *testing.T) {
	first, second, err := CheckDigits("111.444.777")
	if err != nil {
		t.Fatalf("check digits: %v", err)
	}
	if first != 3 || second != 5 {
		t.Fatalf("expected check digits 3 and 5, got %d and %d", first, second)
	}

	if _, _, err := CheckDigits("1234"); err != ErrInvalidBase {
		t.Fatalf("expected ErrInvalidBase, got %v", err)
	}
}

func TestCheckDigits_ProduceValidIdentifiers(t *testing.T) {
	bases := []string{"123456789", "987654321", "529982247", "100000000"}
	for _, base := range bases {
		first, second, err := CheckDigits(base)
		if err != nil {
			t.Fatalf("check digits for %s: %v", base, err)
		}
		full := base + string(rune('0'+first)) + string(rune('0'+second))
		if !Valid(full) {
			t.Fatalf("expected generated identifier %s to be valid", full)
		}
	}
}

func TestFormat(t *testing.T) {
	if got := Format("11144477735"); got != "111.444.777-35" {
		t.Fatalf("unexpected format: %q", got)
	}
	if got := Format(" 123 "); got != "123" {
		t.Fatalf("expected short input returned trimmed, got %q", got)
	}
}
