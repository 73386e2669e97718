package value

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/ericlagergren/decimal"

	"github.com/naftah-lang/naftah/internal/errors"
)

// ParseNumericLiteral implements spec.md §4.1's "Parsing a numeric literal
// string": pick the narrowest representation that losslessly holds the
// value, in order 8/16/32/64-bit signed integer, then arbitrary-precision
// integer (no decimal point, no exponent); otherwise 32-bit float, 64-bit
// float, then arbitrary-precision decimal. A literal parsing to +/-Inf is
// an error; a literal parsing to NaN becomes the NaN singleton.
func ParseNumericLiteral(raw string) (Value, error) {
	isDecimalForm := strings.ContainsAny(raw, ".eE") && !strings.HasPrefix(raw, "0x") && !strings.HasPrefix(raw, "0X")

	if !isDecimalForm {
		if n, ok := new(big.Int).SetString(raw, 0); ok {
			if n.IsInt64() {
				return NarrowInt(n.Int64()), nil
			}
			return NewBigInt(n), nil
		}
		// Falls through: maybe it's actually decimal-shaped (e.g. "1_000"
		// handled by the lexer before reaching us) — try float parsing.
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err == nil {
		if math.IsInf(f, 0) {
			return nil, errors.NewArithmeticError("numeric literal overflows to infinity: " + raw)
		}
		if math.IsNaN(f) {
			return NaN, nil
		}
		if f32 := float32(f); float64(f32) == f {
			return NewFloat32(f32), nil
		}
		return NewFloat64(f), nil
	}

	// Too large/precise for float64: fall back to the arbitrary-precision
	// decimal rung.
	d, ok := new(decimal.Big).SetString(raw)
	if !ok {
		return nil, errors.NewInternalBug("cannot parse numeric literal: %s", raw)
	}
	if d.IsInf(0) {
		return nil, errors.NewArithmeticError("numeric literal overflows to infinity: " + raw)
	}
	return NewBigFloat(d), nil
}
