package normalize

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseNumber converts a raw cell into a float64. Numeric cells pass through
// unchanged; currency-formatted text ("$1,234.56") is stripped of "$" and ","
// and parsed exactly before converting; everything else defaults to zero.
func parseNumber(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case string:
		cleaned := strings.NewReplacer("$", "", ",", "").Replace(strings.TrimSpace(val))
		if cleaned == "" {
			return 0
		}
		d, err := decimal.NewFromString(cleaned)
		if err != nil {
			return 0
		}
		return d.InexactFloat64()
	default:
		return 0
	}
}
