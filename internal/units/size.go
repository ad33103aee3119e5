// Package units converts human-written quantities into machine values.
//
// Sizes accept a plain byte count ("200") or a decimal mantissa followed by an
// optional SI prefix and a unit letter: "5kB", "2.5GB", "3Mb" (megabits).
// Delays accept compound durations such as "30s", "5m" or "1h30m".
package units

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// ByteCount is a strictly positive number of bytes.
type ByteCount uint64

// Uint64 returns the count as a plain integer.
func (b ByteCount) Uint64() uint64 {
	return uint64(b)
}

// String renders the canonical form accepted by ParseSize, e.g. "2000B".
func (b ByteCount) String() string {
	return strconv.FormatUint(uint64(b), 10) + "B"
}

// SizeUnit tells whether a suffixed quantity counts bytes or bits.
type SizeUnit int

const (
	UnitByte SizeUnit = iota
	UnitBit
)

func (u SizeUnit) String() string {
	if u == UnitBit {
		return "bit"
	}
	return "byte"
}

// ParsedSize is the decomposition of a suffixed size string.
type ParsedSize struct {
	Mantissa decimal.Decimal
	Prefix   SiPrefix
	Unit     SizeUnit
}

// Bytes scales the mantissa, converts bits to bytes and truncates toward zero.
func (p ParsedSize) Bytes() (ByteCount, error) {
	scaled := p.Mantissa.Mul(p.Prefix.Multiplier())
	if p.Unit == UnitBit {
		scaled, _ = scaled.QuoRem(decimal.NewFromInt(8), 0)
	} else {
		scaled = scaled.Truncate(0)
	}

	whole := scaled.BigInt()
	if whole.Sign() <= 0 {
		return 0, ErrTooSmall
	}
	if !whole.IsUint64() {
		return 0, ErrOverflow
	}
	return ByteCount(whole.Uint64()), nil
}

// ParseSize converts a size string into a byte count.
//
// A bare integer, optionally signed with a leading "+", is an exact byte count. Anything else must be a decimal
// mantissa followed by a one or two character suffix: "B", "<prefix>B" or
// "<prefix>b". Fractional results are truncated, never rounded up.
func ParseSize(input string) (ByteCount, error) {
	n, err := strconv.ParseUint(strings.TrimPrefix(input, "+"), 10, 64)
	switch {
	case err == nil && n == 0:
		return 0, ErrZeroValue
	case err == nil:
		return ByteCount(n), nil
	case errors.Is(err, strconv.ErrRange):
		return 0, fmt.Errorf("%w: %q", ErrOverflow, input)
	}

	parsed, err := splitSize(input)
	if err != nil {
		return 0, err
	}
	count, err := parsed.Bytes()
	if err != nil {
		return 0, fmt.Errorf("%w: %q", err, input)
	}
	return count, nil
}

func splitSize(input string) (ParsedSize, error) {
	number, suffix := splitMantissa(input)
	if suffix == "" {
		return ParsedSize{}, ErrSuffixRequired
	}

	mantissa, err := parseMantissa(number)
	if err != nil {
		return ParsedSize{}, err
	}

	suffixLen := utf8.RuneCountInString(suffix)
	if suffixLen > 2 {
		return ParsedSize{}, fmt.Errorf("%w: %q", ErrSuffixTooLong, suffix)
	}

	terminator, _ := utf8.DecodeLastRuneInString(suffix)
	parsed := ParsedSize{Mantissa: mantissa}
	switch {
	case terminator == 'B':
		parsed.Unit = UnitByte
	case terminator == 'b' && suffixLen == 2:
		parsed.Unit = UnitBit
	default:
		return ParsedSize{}, fmt.Errorf("%w: %q", ErrInvalidUnitTerminator, suffix)
	}

	if suffixLen == 2 {
		letter, _ := utf8.DecodeRuneInString(suffix)
		if parsed.Prefix, err = LookupSiPrefix(letter); err != nil {
			return ParsedSize{}, err
		}
	}

	return parsed, nil
}

// splitMantissa splits input into its maximal leading run of ASCII digits and
// dots and the remainder.
func splitMantissa(input string) (string, string) {
	idx := strings.IndexFunc(input, func(r rune) bool {
		return (r < '0' || r > '9') && r != '.'
	})
	if idx < 0 {
		return input, ""
	}
	return input[:idx], input[idx:]
}

func parseMantissa(number string) (decimal.Decimal, error) {
	if strings.Count(number, ".") > 1 || strings.Trim(number, ".") == "" {
		return decimal.Decimal{}, fmt.Errorf("%w: could not interpret %q as a number", ErrInvalidMantissa, number)
	}
	d, err := decimal.NewFromString(number)
	if err != nil || d.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("%w: could not interpret %q as a number", ErrInvalidMantissa, number)
	}
	return d, nil
}
