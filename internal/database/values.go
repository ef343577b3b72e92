package database

import "database/sql/driver"

// normalize turns driver-specific values into plain Go values: []byte
// becomes string and driver.Valuer types (pgtype.Numeric and friends)
// become the value they encode, which for numerics is exact decimal text.
func normalize(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case []byte:
		return string(val)
	case driver.Valuer:
		dv, err := val.Value()
		if err != nil {
			return v
		}
		if b, ok := dv.([]byte); ok {
			return string(b)
		}
		return dv
	default:
		return v
	}
}
