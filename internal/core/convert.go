package core

// convert.go turns the loosely typed values drivers hand back into the text
// the editing surface shows and the numbers the invoice needs. Drivers differ:
// mysql returns DECIMAL as text, sqlite returns REAL as float64, pgx returns
// numeric as exact decimal text once normalized by the database package.

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FormatValue renders a database value as editable text. Numbers keep their
// full precision so a formatted row can be written back unchanged.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", val)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case decimal.Decimal:
		return val.String()
	case time.Time:
		return val.Format(time.RFC3339Nano)
	case [16]byte:
		return uuid.UUID(val).String()
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// ToDecimal reads a money or quantity value exactly. NULL reads as zero.
func ToDecimal(v any) (decimal.Decimal, error) {
	switch val := v.(type) {
	case nil:
		return decimal.Zero, nil
	case decimal.Decimal:
		return val, nil
	case int64:
		return decimal.NewFromInt(val), nil
	case int32:
		return decimal.NewFromInt32(val), nil
	case int:
		return decimal.NewFromInt(int64(val)), nil
	case float64:
		return decimal.NewFromFloat(val), nil
	case float32:
		return decimal.NewFromFloat32(val), nil
	case string:
		return parseDecimal(val)
	case []byte:
		return parseDecimal(string(val))
	default:
		return parseDecimal(fmt.Sprint(val))
	}
}

func parseDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return d, nil
}

// ToInt64 reads a whole-number value such as a key or quantity.
func ToInt64(v any) (int64, error) {
	switch val := v.(type) {
	case nil:
		return 0, nil
	case int64:
		return val, nil
	case int32:
		return int64(val), nil
	case int:
		return int64(val), nil
	case float64:
		if val != float64(int64(val)) {
			return 0, fmt.Errorf("invalid number %v: not a whole number", val)
		}
		return int64(val), nil
	default:
		d, err := ToDecimal(val)
		if err != nil {
			return 0, err
		}
		if !d.Equal(d.Truncate(0)) {
			return 0, fmt.Errorf("invalid number %s: not a whole number", d)
		}
		return d.IntPart(), nil
	}
}
