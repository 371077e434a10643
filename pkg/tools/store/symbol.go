package store

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/DevStar234/nautilus-trader/pkg/exchange"
	"github.com/DevStar234/nautilus-trader/pkg/utility/fixed"
)

var (
	ErrSymbolNotPresent = errors.New("symbol is not present in symbol table")
)

type SymbolStore struct {
	symbols []exchange.SymbolInfo
}

func CreateSymbolStore(symbols ...exchange.SymbolInfo) SymbolStore {
	return SymbolStore{
		symbols: symbols,
	}
}

type symbolFile struct {
	Symbols []exchange.SymbolInfo `yaml:"symbols"`
}

// LoadSymbolStore reads instrument definitions from a YAML file with a top level "symbols" list.
func LoadSymbolStore(path string) (SymbolStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SymbolStore{}, fmt.Errorf("unable to read symbol file %s: %w", path, err)
	}

	var file symbolFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return SymbolStore{}, fmt.Errorf("unable to decode symbol file %s: %w", path, err)
	}

	for _, symbol := range file.Symbols {
		if symbol.SymbolName == "" {
			return SymbolStore{}, fmt.Errorf("symbol file %s contains an entry without a name", path)
		}
		if symbol.SizePrecision < 0 || symbol.PricePrecision < 0 {
			return SymbolStore{}, fmt.Errorf("symbol %s has a negative precision", symbol.SymbolName)
		}
		if symbol.MaxQuantity.IsNeg() {
			return SymbolStore{}, fmt.Errorf("symbol %s has a negative max quantity", symbol.SymbolName)
		}
	}

	return CreateSymbolStore(file.Symbols...), nil
}

func (s SymbolStore) Contains(symbolName string) bool {
	if _, err := s.Get(symbolName); err != nil {
		return false
	}
	return true
}

func (s SymbolStore) Get(symbolName string) (exchange.SymbolInfo, error) {
	for _, symbol := range s.symbols {
		if strings.EqualFold(symbol.SymbolName, symbolName) {
			return symbol, nil
		}
	}
	return exchange.SymbolInfo{}, fmt.Errorf("unable to get symbol with name %s: %w", symbolName, ErrSymbolNotPresent)
}

func (s SymbolStore) MustGet(symbolName string) exchange.SymbolInfo {
	symbol, err := s.Get(symbolName)
	if err != nil {
		panic(err.Error())
	}
	return symbol
}

func (s SymbolStore) Symbols() []exchange.SymbolInfo {
	out := make([]exchange.SymbolInfo, len(s.symbols))
	copy(out, s.symbols)
	return out
}

func CreateSymbolTestStore() SymbolStore {
	return CreateSymbolStore([]exchange.SymbolInfo{
		{
			SymbolName:     "AUD/USD.SIM",
			Class:          exchange.Forex,
			BaseCurrency:   "AUD",
			QuoteCurrency:  "USD",
			PricePrecision: 5,
			SizePrecision:  0,
			MaxQuantity:    fixed.FromInt(10_000_000, 0),
		},
		{
			SymbolName:     "USD/JPY.SIM",
			Class:          exchange.Forex,
			BaseCurrency:   "USD",
			QuoteCurrency:  "JPY",
			PricePrecision: 3,
			SizePrecision:  0,
			MaxQuantity:    fixed.FromInt(10_000_000, 0),
		},
		{
			SymbolName:     "BTCUSDT.BINANCE",
			Class:          exchange.Crypto,
			BaseCurrency:   "BTC",
			QuoteCurrency:  "USDT",
			PricePrecision: 2,
			SizePrecision:  6,
		},
	}...)
}
