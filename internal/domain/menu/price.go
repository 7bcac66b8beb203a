package menu

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

var ErrInvalidPrice = errors.New("invalid price, expected a non-negative number")

// MaxCategoryLen keeps "category:<name>" style callback data within Telegram's 64 byte limit.
const MaxCategoryLen = 48

// ParsePrice accepts "1200", "1200.50" or "1200,50". The result is finite and not negative.
func ParsePrice(input string) (float64, error) {
	s := strings.ReplaceAll(strings.TrimSpace(input), ",", ".")
	if s == "" {
		return 0, ErrInvalidPrice
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, ErrInvalidPrice
	}
	return v, nil
}

// ValidCategory reports whether name can be used as a category.
func ValidCategory(name string) bool {
	name = strings.TrimSpace(name)
	return name != "" && len(name) <= MaxCategoryLen && utf8.ValidString(name)
}
