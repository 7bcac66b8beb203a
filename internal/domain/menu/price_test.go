package menu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	valid := map[string]float64{
		"1200":     1200,
		" 99.5 ":   99.5,
		"1200,50":  1200.5,
		"0":        0,
		"1e3":      1000,
	}
	for in, want := range valid {
		got, err := ParsePrice(in)
		require.NoError(t, err, in)
		assert.InDelta(t, want, got, 1e-9, in)
	}

	for _, in := range []string{"", "  ", "abc", "-1", "NaN", "Inf", "1,2,3", "12₸"} {
		_, err := ParsePrice(in)
		assert.ErrorIs(t, err, ErrInvalidPrice, in)
	}
}

func TestValidCategory(t *testing.T) {
	assert.True(t, ValidCategory("Напитки"))
	assert.False(t, ValidCategory("   "))
	assert.False(t, ValidCategory(strings.Repeat("я", 25)))
}

func TestItemHelpers(t *testing.T) {
	empty := ""
	photo := "f"
	assert.False(t, (&Item{}).HasPhoto())
	assert.False(t, (&Item{PhotoFileID: &empty}).HasPhoto())
	assert.True(t, (&Item{PhotoFileID: &photo}).HasPhoto())

	assert.True(t, FieldPrice.Valid())
	assert.False(t, Field("colour").Valid())
}
