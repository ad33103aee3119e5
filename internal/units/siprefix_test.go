package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupSiPrefix(t *testing.T) {
	tests := []struct {
		letter   rune
		want     SiPrefix
		exponent int32
	}{
		{'k', PrefixKilo, 3},
		{'M', PrefixMega, 6},
		{'G', PrefixGiga, 9},
		{'T', PrefixTera, 12},
		{'P', PrefixPeta, 15},
		{'E', PrefixExa, 18},
		{'Z', PrefixZetta, 21},
		{'Y', PrefixYotta, 24},
	}

	for _, tt := range tests {
		t.Run(string(tt.letter), func(t *testing.T) {
			got, err := LookupSiPrefix(tt.letter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.exponent, got.Exponent())
			assert.Equal(t, string(tt.letter), got.Symbol())
		})
	}
}

func TestLookupSiPrefixUnknown(t *testing.T) {
	for _, letter := range []rune{'K', 'm', 'g', 'X', 'B', 'µ'} {
		_, err := LookupSiPrefix(letter)
		assert.ErrorIs(t, err, ErrUnknownSiPrefix, string(letter))
	}
}

func TestSiPrefixMultiplier(t *testing.T) {
	assert.Equal(t, "1", PrefixNone.Multiplier().String())
	assert.Equal(t, "1000", PrefixKilo.Multiplier().String())
	assert.Equal(t, "1000000000000000000000000", PrefixYotta.Multiplier().String())
}

func TestSiPrefixString(t *testing.T) {
	assert.Equal(t, "none", PrefixNone.String())
	assert.Equal(t, "G", PrefixGiga.String())
	assert.Equal(t, "?", SiPrefix(42).Symbol())
}
