package sizing

import (
	"errors"
	"sync/atomic"

	"github.com/DevStar234/nautilus-trader/pkg/common"
	"github.com/DevStar234/nautilus-trader/pkg/exchange"
	"github.com/DevStar234/nautilus-trader/pkg/utility/fixed"
)

var (
	ErrNotImplemented = errors.New("position sizing strategy is not implemented")
	ErrInvalidInput   = errors.New("invalid position sizing input")
)

// PositionSizer turns a stop distance and a risk fraction of equity into an order quantity
// for one instrument.
type PositionSizer interface {
	Instrument() exchange.SymbolInfo
	UpdateInstrument(instrument exchange.SymbolInfo)
	Calculate(entry, stopLoss fixed.Point, equity common.Money, risk fixed.Point, options ...CalcOption) (fixed.Point, error)
}

// UnimplementedSizer holds the instrument snapshot shared by all sizers. Embed it and override
// Calculate. The snapshot is replaced wholesale, so a Calculate running next to UpdateInstrument
// sees either the old or the new instrument, never a mix.
type UnimplementedSizer struct {
	instrument atomic.Pointer[exchange.SymbolInfo]
}

func NewUnimplementedSizer(instrument exchange.SymbolInfo) *UnimplementedSizer {
	s := &UnimplementedSizer{}
	s.UpdateInstrument(instrument)
	return s
}

func (s *UnimplementedSizer) Instrument() exchange.SymbolInfo {
	if instrument := s.instrument.Load(); instrument != nil {
		return *instrument
	}
	return exchange.SymbolInfo{}
}

func (s *UnimplementedSizer) UpdateInstrument(instrument exchange.SymbolInfo) {
	s.instrument.Store(&instrument)
}

func (s *UnimplementedSizer) Calculate(fixed.Point, fixed.Point, common.Money, fixed.Point, ...CalcOption) (fixed.Point, error) {
	return fixed.Zero, ErrNotImplemented
}
