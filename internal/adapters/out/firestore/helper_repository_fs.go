// internal/adapters/out/firestore/helper_repository_fs.go
package firestore

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

func asString(v any) string {
	if v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	default:
		return fmt.Sprint(v)
	}
}

func asInt(v any) int {
	switch t := v.(type) {
	case nil:
		return 0
	case int:
		return t
	case int32:
		return int(t)
	case int64:
		return int(t)
	case float64:
		return int(t)
	case string:
		tt := strings.TrimSpace(t)
		if tt == "" {
			return 0
		}
		var n int
		_, _ = fmt.Sscanf(tt, "%d", &n)
		return n
	default:
		return 0
	}
}

// asTime returns (time, ok)
func asTime(v any) (time.Time, bool) {
	if t, ok := v.(time.Time); ok {
		return t, true
	}
	return time.Time{}, false
}

// asDecimal reads a price stored as string (current) or number (legacy).
func asDecimal(v any) decimal.NullDecimal {
	switch t := v.(type) {
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(t))
		if err != nil {
			return decimal.NullDecimal{}
		}
		return decimal.NewNullDecimal(d)
	case float64:
		return decimal.NewNullDecimal(decimal.NewFromFloat(t))
	case int64:
		return decimal.NewNullDecimal(decimal.NewFromInt(t))
	}
	return decimal.NullDecimal{}
}
