package bmstime

import (
	"fmt"
	"math/big"
	"strings"
)

// Decimal is a finite arbitrary-precision rational, used for BPM, STOP
// length, and scroll/speed factors. There is no NaN or Infinity: parsing
// rejects both, and arithmetic never produces them because the underlying
// big.Rat is always exact.
type Decimal struct {
	rat *big.Rat
}

// ZeroDecimal is the additive identity.
var ZeroDecimal = Decimal{rat: new(big.Rat)}

// DecimalFromInt builds a Decimal from an integer.
func DecimalFromInt(v int64) Decimal {
	return Decimal{rat: new(big.Rat).SetInt64(v)}
}

// ParseDecimal parses a textual fraction like "120", "0.75", or "-1.5".
// "nan"/"inf"/"infinity" (any case) are rejected, matching the spec's
// prohibition on non-finite BPM/stop/scroll values.
func ParseDecimal(s string) (Decimal, error) {
	trimmed := strings.TrimSpace(s)
	lower := strings.ToLower(trimmed)
	if lower == "" {
		return Decimal{}, fmt.Errorf("bmstime: empty decimal literal")
	}
	switch lower {
	case "nan", "inf", "-inf", "+inf", "infinity", "-infinity":
		return Decimal{}, fmt.Errorf("bmstime: non-finite decimal literal %q", s)
	}
	r, ok := new(big.Rat).SetString(trimmed)
	if !ok {
		return Decimal{}, fmt.Errorf("bmstime: malformed decimal literal %q", s)
	}
	return Decimal{rat: r}, nil
}

// MustParseDecimal parses s like ParseDecimal but panics on error; for
// literal default constants only, never for field input.
func MustParseDecimal(s string) Decimal {
	d, err := ParseDecimal(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Decimal) ratOrZero() *big.Rat {
	if d.rat == nil {
		return new(big.Rat)
	}
	return d.rat
}

// Add returns d + other.
func (d Decimal) Add(other Decimal) Decimal {
	return Decimal{rat: new(big.Rat).Add(d.ratOrZero(), other.ratOrZero())}
}

// Sub returns d - other.
func (d Decimal) Sub(other Decimal) Decimal {
	return Decimal{rat: new(big.Rat).Sub(d.ratOrZero(), other.ratOrZero())}
}

// Mul returns d * other.
func (d Decimal) Mul(other Decimal) Decimal {
	return Decimal{rat: new(big.Rat).Mul(d.ratOrZero(), other.ratOrZero())}
}

// Quo returns d / other. Panics on division by zero, mirroring the
// panic-on-invariant-violation policy for programming errors (see
// spec.md §7): callers must check IsZero first.
func (d Decimal) Quo(other Decimal) Decimal {
	if other.IsZero() {
		panic("bmstime: division by zero decimal")
	}
	return Decimal{rat: new(big.Rat).Quo(d.ratOrZero(), other.ratOrZero())}
}

// IsZero reports whether d is exactly zero.
func (d Decimal) IsZero() bool { return d.ratOrZero().Sign() == 0 }

// IsPositive reports whether d is strictly greater than zero.
func (d Decimal) IsPositive() bool { return d.ratOrZero().Sign() > 0 }

// Cmp compares d and other the way big.Rat.Cmp does.
func (d Decimal) Cmp(other Decimal) int { return d.ratOrZero().Cmp(other.ratOrZero()) }

// Float64 converts to a float64, for use in time-domain computations where
// exactness no longer matters (seconds elapsed, etc).
func (d Decimal) Float64() float64 {
	f, _ := d.ratOrZero().Float64()
	return f
}

func (d Decimal) String() string {
	return d.ratOrZero().RatString()
}
