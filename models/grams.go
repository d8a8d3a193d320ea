package models

import (
	"database/sql/driver"
	"fmt"
	"strconv"
)

// Grams is a macro quantity column. SQLite columns are dynamically
// typed, and rows written by earlier versions of the app can hold text
// in numeric columns; scanning coerces those values to 0 instead of
// failing the whole query.
type Grams float64

func (g *Grams) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*g = 0
	case float64:
		*g = Grams(v)
	case int64:
		*g = Grams(v)
	case []byte:
		*g = parseGrams(string(v))
	case string:
		*g = parseGrams(v)
	default:
		return fmt.Errorf("unsupported column type %T for Grams", value)
	}
	return nil
}

func (g Grams) Value() (driver.Value, error) {
	return float64(g), nil
}

func parseGrams(s string) Grams {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return Grams(f)
}
