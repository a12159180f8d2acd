package stonks

import (
	"encoding/json"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// unknownSentinel is how an unknown value is persisted in the artifacts.
const unknownSentinel = "?"

// Value is a monetary amount that may be unknown. An unknown value means
// "not computable from currently cached data", which is distinct from zero:
// a single unknown price invalidates every total derived from it.
//
// The zero Value is Unknown.
type Value struct {
	dec   decimal.Decimal
	known bool
}

// Unknown is the not-computable value.
var Unknown = Value{}

// newDecimal is a convenient factory for decimal.Decimal.
func newDecimal[T float32 | float64 | int | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// V returns a known Value.
func V[T float32 | float64 | int | int64 | decimal.Decimal](value T) Value {
	return Value{dec: newDecimal(value), known: true}
}

// IsKnown reports whether the value is computable.
func (v Value) IsKnown() bool { return v.known }

// Decimal returns the underlying decimal. It panics on an unknown value;
// callers must check IsKnown first.
func (v Value) Decimal() decimal.Decimal {
	if !v.known {
		panic("decimal of unknown value")
	}
	return v.dec
}

// Equal reports whether both values are known and equal, or both unknown.
func (v Value) Equal(o Value) bool {
	if v.known != o.known {
		return false
	}
	return !v.known || v.dec.Equal(o.dec)
}

// Unknown propagates through all arithmetic.

func (v Value) Add(o Value) Value {
	if !v.known || !o.known {
		return Unknown
	}
	return Value{dec: v.dec.Add(o.dec), known: true}
}

func (v Value) Sub(o Value) Value {
	if !v.known || !o.known {
		return Unknown
	}
	return Value{dec: v.dec.Sub(o.dec), known: true}
}

func (v Value) Mul(o Value) Value {
	if !v.known || !o.known {
		return Unknown
	}
	return Value{dec: v.dec.Mul(o.dec), known: true}
}

// Div returns v/o, or Unknown when either operand is unknown or o is zero.
func (v Value) Div(o Value) Value {
	if !v.known || !o.known || o.dec.IsZero() {
		return Unknown
	}
	return Value{dec: v.dec.Div(o.dec), known: true}
}

// Round2 rounds to 2 decimal places, the precision of every persisted amount.
func (v Value) Round2() Value {
	if !v.known {
		return Unknown
	}
	return Value{dec: v.dec.Round(2), known: true}
}

// String returns the plain decimal representation, or the "?" sentinel.
func (v Value) String() string {
	if !v.known {
		return unknownSentinel
	}
	return v.dec.String()
}

// BRL formats the value as Brazilian reais.
func (v Value) BRL() string {
	if !v.known {
		return "R$ ?"
	}
	cents := v.dec.Round(2).Shift(2).IntPart()
	return money.New(cents, money.BRL).Display()
}

// MarshalJSON writes the decimal as a JSON number, or the "?" sentinel string.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.known {
		return json.Marshal(unknownSentinel)
	}
	return []byte(v.dec.String()), nil
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil && s == unknownSentinel {
		*v = Unknown
		return nil
	}
	var d decimal.Decimal
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	*v = Value{dec: d, known: true}
	return nil
}

var _ json.Marshaler = (*Value)(nil)
var _ json.Unmarshaler = (*Value)(nil)

// round2 rounds a plain decimal to 2 places. Cumulative cash totals use this
// after every addition, matching the exact cent-by-cent bookkeeping of the
// persisted artifacts.
func round2(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

// BRL formats a plain decimal as Brazilian reais.
func BRL(d decimal.Decimal) string {
	return money.New(d.Round(2).Shift(2).IntPart(), money.BRL).Display()
}
