package exchange

import (
	"go.uber.org/zap"

	"github.com/DevStar234/nautilus-trader/pkg/utility/fixed"
)

type SymbolClass string

const (
	Forex     SymbolClass = "forex"
	Crypto    SymbolClass = "crypto"
	Equity    SymbolClass = "equity"
	Commodity SymbolClass = "commodity"
)

// SymbolInfo is the instrument metadata needed to size and format quantities. A zero
// MaxQuantity means the venue sets no upper bound.
type SymbolInfo struct {
	SymbolName     string      `yaml:"symbol"`
	Class          SymbolClass `yaml:"class"`
	BaseCurrency   string      `yaml:"base_currency"`
	QuoteCurrency  string      `yaml:"quote_currency"`
	PricePrecision int         `yaml:"price_precision"`
	SizePrecision  int         `yaml:"size_precision"`
	MaxQuantity    fixed.Point `yaml:"max_quantity"`
}

func (s SymbolInfo) HasMaxQuantity() bool {
	return s.MaxQuantity.IsPos()
}

func (s SymbolInfo) Fields() []zap.Field {
	return []zap.Field{
		zap.String("symbol", s.SymbolName),
		zap.String("class", string(s.Class)),
		zap.String("quote_currency", s.QuoteCurrency),
		zap.Int("size_precision", s.SizePrecision),
		zap.String("max_quantity", s.MaxQuantity.String()),
	}
}
