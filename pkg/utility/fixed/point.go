package fixed

import (
	"fmt"

	"github.com/govalues/decimal"
)

// Point is an unsafe wrapper around decimal implementation. Arithmetic methods panic when the
// underlying decimal overflows or divides by zero; callers validate inputs before calculating.
// The scale of a Point is significant: "1.00000" keeps five digits when formatted, which is how
// prices and quantities carry their instrument precision.
type Point struct {
	v decimal.Decimal
}

func FromInt(value int, scale int) Point {
	return Point{must(decimal.New(int64(value), scale))}
}

func FromInt64(value int64, scale int) Point {
	return Point{must(decimal.New(value, scale))}
}

func FromFloat64(value float64) Point {
	return Point{must(decimal.NewFromFloat64(value))}
}

// Parse converts a decimal string such as "1.00010" into a Point, preserving its scale.
func Parse(text string) (Point, error) {
	d, err := decimal.Parse(text)
	if err != nil {
		return Point{}, fmt.Errorf("unable to parse decimal %q: %w", text, err)
	}
	return Point{d}, nil
}

func MustParse(text string) Point {
	p, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Point) String() string           { return p.v.String() }
func (p Point) Float64() (float64, bool) { return p.v.Float64() }

// Canonical formats the value without trailing zeros, so numerically equal points share it.
func (p Point) Canonical() string { return p.v.Trim(0).String() }

func (p Point) Abs() Point { return Point{p.v.Abs()} }
func (p Point) Neg() Point { return Point{p.v.Neg()} }

func (p Point) Add(o Point) Point { return Point{must(p.v.Add(o.v))} }
func (p Point) Sub(o Point) Point { return Point{must(p.v.Sub(o.v))} }
func (p Point) Mul(o Point) Point { return Point{must(p.v.Mul(o.v))} }
func (p Point) Div(o Point) Point { return Point{must(p.v.Quo(o.v))} }

func (p Point) MulInt64(o int64) Point { return Point{must(p.v.Mul(decimal.MustNew(o, 0)))} }
func (p Point) MulInt(o int) Point     { return Point{must(p.v.Mul(decimal.MustNew(int64(o), 0)))} }
func (p Point) DivInt64(o int64) Point { return Point{must(p.v.Quo(decimal.MustNew(o, 0)))} }
func (p Point) DivInt(o int) Point     { return Point{must(p.v.Quo(decimal.MustNew(int64(o), 0)))} }

func (p Point) Cmp(o Point) int  { return p.v.Cmp(o.v) }
func (p Point) Eq(o Point) bool  { return p.v.Cmp(o.v) == 0 }
func (p Point) Gt(o Point) bool  { return p.v.Cmp(o.v) > 0 }
func (p Point) Lt(o Point) bool  { return p.v.Cmp(o.v) < 0 }
func (p Point) Gte(o Point) bool { return p.v.Cmp(o.v) >= 0 }
func (p Point) Lte(o Point) bool { return p.v.Cmp(o.v) <= 0 }

func (p Point) Min(o Point) Point { return Point{p.v.Min(o.v)} }
func (p Point) Max(o Point) Point { return Point{p.v.Max(o.v)} }

func (p Point) IsZero() bool { return p.v.IsZero() }
func (p Point) IsNeg() bool  { return p.v.IsNeg() }
func (p Point) IsPos() bool  { return p.v.IsPos() }
func (p Point) IsInt() bool  { return p.v.IsInt() }
func (p Point) Scale() int   { return p.v.Scale() }

func (p Point) Rescale(scale int) Point { return Point{p.v.Rescale(scale)} }

// Floor rounds towards negative infinity to the given scale.
func (p Point) Floor(scale int) Point { return Point{p.v.Floor(scale)} }

func (p Point) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Point) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func must(v decimal.Decimal, err error) decimal.Decimal {
	if err == nil {
		// Return in the happy path
		return v
	}
	panic(err)
}
