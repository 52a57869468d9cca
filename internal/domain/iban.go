package domain

import (
	"math/big"
	"regexp"
	"strings"
)

// IBAN layout per ISO 13616: country code, check digits, then 1-30
// alphanumeric BBAN characters.
var ibanRegex = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z0-9]{1,30}$`)

var mod97 = big.NewInt(97)

// NormalizeIBAN strips whitespace and upper-cases an IBAN so that
// "de89 3704..." and "DE893704..." refer to the same account.
func NormalizeIBAN(iban string) string {
	var b strings.Builder
	b.Grow(len(iban))
	for _, r := range iban {
		if r == ' ' || r == '\t' {
			continue
		}
		b.WriteRune(r)
	}
	return strings.ToUpper(b.String())
}

// IsValidIBAN reports whether iban (already normalized) is structurally
// valid and passes the ISO 7064 mod-97 check. It never panics on
// malformed input.
func IsValidIBAN(iban string) bool {
	if !ibanRegex.MatchString(iban) {
		return false
	}

	// Move the country code and check digits to the end, then expand
	// letters to their numeric values (A=10 .. Z=35). The resulting
	// decimal string routinely exceeds 60 digits, hence big.Int.
	rearranged := iban[4:] + iban[:4]

	var digits strings.Builder
	digits.Grow(len(rearranged) * 2)
	for _, r := range rearranged {
		switch {
		case r >= '0' && r <= '9':
			digits.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			digits.WriteString(big.NewInt(int64(r-'A') + 10).String())
		default:
			return false
		}
	}

	n, ok := new(big.Int).SetString(digits.String(), 10)
	if !ok {
		return false
	}

	return new(big.Int).Mod(n, mod97).Int64() == 1
}
