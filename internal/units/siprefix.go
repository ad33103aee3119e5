package units

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SiPrefix is a decimal magnitude multiplier. The zero value is "no prefix".
type SiPrefix int

const (
	PrefixNone SiPrefix = iota
	PrefixKilo
	PrefixMega
	PrefixGiga
	PrefixTera
	PrefixPeta
	PrefixExa
	PrefixZetta
	PrefixYotta
)

var prefixSymbols = [...]string{
	PrefixNone:  "",
	PrefixKilo:  "k",
	PrefixMega:  "M",
	PrefixGiga:  "G",
	PrefixTera:  "T",
	PrefixPeta:  "P",
	PrefixExa:   "E",
	PrefixZetta: "Z",
	PrefixYotta: "Y",
}

// LookupSiPrefix returns the prefix denoted by letter. Lookup is case-sensitive:
// 'k' is kilo, 'K' is not a prefix, 'M' is mega and 'm' is not accepted.
func LookupSiPrefix(letter rune) (SiPrefix, error) {
	for p, symbol := range prefixSymbols {
		if p != int(PrefixNone) && symbol == string(letter) {
			return SiPrefix(p), nil
		}
	}
	return PrefixNone, fmt.Errorf("%w %q", ErrUnknownSiPrefix, letter)
}

// Exponent is the power of ten the prefix stands for.
func (p SiPrefix) Exponent() int32 {
	return int32(p) * 3
}

// Multiplier returns 10^Exponent as an exact decimal.
func (p SiPrefix) Multiplier() decimal.Decimal {
	return decimal.New(1, p.Exponent())
}

// Symbol returns the prefix letter, or "" for PrefixNone.
func (p SiPrefix) Symbol() string {
	if p < PrefixNone || int(p) >= len(prefixSymbols) {
		return "?"
	}
	return prefixSymbols[p]
}

func (p SiPrefix) String() string {
	if p == PrefixNone {
		return "none"
	}
	return p.Symbol()
}
