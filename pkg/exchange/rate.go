package exchange

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/DevStar234/nautilus-trader/pkg/utility/fixed"
)

var ErrRateNotAvailable = errors.New("exchange rate is not available")

// RateProvider returns the bid and ask to convert one unit of from into to at the given time.
type RateProvider interface {
	ExchangeRate(from, to string, at time.Time) (fixed.Point, fixed.Point, error)
}

// StaticRates is a fixed table of mid rates keyed by "FROM/TO". An inverse pair is derived
// when only the opposite direction is present.
type StaticRates map[string]fixed.Point

func (r StaticRates) Set(from, to string, rate fixed.Point) {
	r[pairKey(from, to)] = rate
}

func (r StaticRates) ExchangeRate(from, to string, _ time.Time) (fixed.Point, fixed.Point, error) {
	if strings.EqualFold(from, to) {
		return fixed.One, fixed.One, nil
	}
	if rate, ok := r[pairKey(from, to)]; ok {
		return rate, rate, nil
	}
	if rate, ok := r[pairKey(to, from)]; ok && !rate.IsZero() {
		inverse := fixed.One.Div(rate)
		return inverse, inverse, nil
	}
	return fixed.Zero, fixed.Zero, fmt.Errorf("unable to convert %s to %s: %w", from, to, ErrRateNotAvailable)
}

func pairKey(from, to string) string {
	return strings.ToUpper(from) + "/" + strings.ToUpper(to)
}
