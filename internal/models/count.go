package models

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

var errOutOfRange = errors.New("value out of integer range")

// ToInt reads v as a whole number. Strings are always decimal, so "010" is
// ten. Floats outside the int range are rejected instead of wrapping.
func ToInt(v any) (int, error) {
	switch x := v.(type) {
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(x), 10, strconv.IntSize)
		if err != nil {
			return 0, err
		}
		return int(n), nil
	case float64:
		if math.IsNaN(x) || x >= float64(math.MaxInt) || x < float64(math.MinInt) {
			return 0, errOutOfRange
		}
	case float32:
		return ToInt(float64(x))
	}
	return cast.ToIntE(v)
}
