package kassabok

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value in a single currency.
type Money struct {
	value decimal.Decimal
	cur   string
}

// M creates a Money from a decimal value and a currency code.
func M(value decimal.Decimal, currency string) Money {
	return Money{value: value, cur: currency}
}

// currency returns the full currency definition for display purposes.
func (m Money) currency() money.Currency {
	// the Money constructor is the only way to get a never-nil currency.
	return *money.New(0, m.cur).Currency()
}

// String returns the locale-aware representation of the money value.
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

func (m Money) Currency() string { return m.cur }

func (m Money) Decimal() decimal.Decimal { return m.value }

func (m Money) IsZero() bool { return m.value.IsZero() }

func (m Money) IsPositive() bool { return m.value.IsPositive() }

func (m Money) IsNegative() bool { return m.value.IsNegative() }

func (m Money) Neg() Money { return Money{value: m.value.Neg(), cur: m.cur} }

func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }

func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// Equal reports value and currency equality.
func (m Money) Equal(n Money) bool { return m.value.Equal(n.value) && m.cur == n.cur }

// makes the "" currency totally weak.
func cur(a, b Money) string {
	if a.cur == "" {
		return b.cur
	}
	if b.cur == "" {
		return a.cur
	}
	if a.cur != b.cur {
		panic("currency mismatch " + a.cur + "!=" + b.cur)
	}
	return a.cur
}

// Fixed renders the value with exactly two decimals and the currency code,
// the way amounts appear on a posting line, e.g. "-5000.00 SEK".
func (m Money) Fixed() string {
	return fmt.Sprintf("%s %s", m.value.StringFixed(2), m.cur)
}

// Amount is an optional decimal quantity: a posting may legitimately omit its
// amount (the balancing leg). The zero value is "absent". Absent and
// present-but-zero are distinct values.
type Amount struct {
	value   decimal.Decimal
	defined bool
}

// AmountOf wraps a decimal into a defined Amount.
func AmountOf(value decimal.Decimal) Amount {
	return Amount{value: value, defined: true}
}

// ParseAmount parses a defined Amount from its textual form. A decimal comma
// is accepted since bank exports use it.
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(normalizeDecimal(s))
	if err != nil {
		return Amount{}, err
	}
	return AmountOf(d), nil
}

// Defined reports whether the amount carries a value.
func (a Amount) Defined() bool { return a.defined }

// Decimal returns the underlying value; zero when undefined.
func (a Amount) Decimal() decimal.Decimal { return a.value }

// Or returns the amount's value when defined, and fallback otherwise.
func (a Amount) Or(fallback decimal.Decimal) decimal.Decimal {
	if a.defined {
		return a.value
	}
	return fallback
}

// Equal treats two undefined amounts as equal regardless of their carried value.
func (a Amount) Equal(b Amount) bool {
	if a.defined != b.defined {
		return false
	}
	return !a.defined || a.value.Equal(b.value)
}

func (a Amount) String() string {
	if !a.defined {
		return ""
	}
	return a.value.StringFixed(2)
}
