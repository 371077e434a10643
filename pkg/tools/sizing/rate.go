package sizing

import (
	"fmt"
	"strings"
	"time"

	"github.com/DevStar234/nautilus-trader/pkg/exchange"
	"github.com/DevStar234/nautilus-trader/pkg/utility/fixed"
)

// ExchangeRate resolves the mid rate converting the instrument quote currency into the account
// currency, for use with WithExchangeRate.
func ExchangeRate(provider exchange.RateProvider, instrument exchange.SymbolInfo, accountCurrency string, at time.Time) (fixed.Point, error) {
	if strings.EqualFold(instrument.QuoteCurrency, accountCurrency) {
		return fixed.One, nil
	}
	if provider == nil {
		return fixed.Zero, fmt.Errorf("no rate provider for %s to %s: %w", instrument.QuoteCurrency, accountCurrency, exchange.ErrRateNotAvailable)
	}

	bid, ask, err := provider.ExchangeRate(instrument.QuoteCurrency, accountCurrency, at)
	if err != nil {
		return fixed.Zero, fmt.Errorf("unable to get exchange rate for %s: %w", instrument.SymbolName, err)
	}
	return bid.Add(ask).Div(fixed.Two), nil
}
