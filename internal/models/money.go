package models

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
)

// Money is a fixed-point currency amount in cents. Arithmetic on cents keeps
// derived totals exact; the string form is the canonical 2-decimal value
// stored in DECIMAL(10,2) columns.
type Money int64

func MoneyFromCents(cents int64) Money {
	return Money(cents)
}

// ParseMoney parses amounts like "50", "50.5" or "50.00".
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}

	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}

	var cents int64
	if frac != "" {
		if len(frac) > 2 {
			return 0, fmt.Errorf("amount %q has more than two decimal places", s)
		}
		for len(frac) < 2 {
			frac += "0"
		}
		cents, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid amount %q", s)
		}
	}

	total := units*100 + cents
	if negative {
		total = -total
	}
	return Money(total), nil
}

func (m Money) Cents() int64 {
	return int64(m)
}

// MulDays multiplies a per-day rate by a rental duration.
func (m Money) MulDays(days int64) Money {
	return Money(int64(m) * days)
}

func (m Money) String() string {
	v := int64(m)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// Value stores the canonical decimal string in DECIMAL(10,2) columns.
func (m Money) Value() (driver.Value, error) {
	return m.String(), nil
}

func (m *Money) Scan(src any) error {
	switch v := src.(type) {
	case string:
		parsed, err := ParseMoney(v)
		if err != nil {
			return err
		}
		*m = parsed
	case []byte:
		parsed, err := ParseMoney(string(v))
		if err != nil {
			return err
		}
		*m = parsed
	case int64:
		*m = Money(v * 100)
	case float64:
		parsed, err := ParseMoney(strconv.FormatFloat(v, 'f', 2, 64))
		if err != nil {
			return err
		}
		*m = parsed
	case nil:
		*m = 0
	default:
		return fmt.Errorf("cannot scan %T into Money", src)
	}
	return nil
}

// MarshalJSON emits the canonical decimal string, e.g. "50.00".
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	parsed, err := ParseMoney(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
