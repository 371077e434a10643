package sizing

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/DevStar234/nautilus-trader/internal/monitoring"
	"github.com/DevStar234/nautilus-trader/pkg/common"
	"github.com/DevStar234/nautilus-trader/pkg/exchange"
	"github.com/DevStar234/nautilus-trader/pkg/utility/fixed"
)

const fixedRiskSizerName = "fixed_risk"

// FixedRiskSizer sizes a position so that a stop out loses the given fraction of equity,
// including commission.
type FixedRiskSizer struct {
	UnimplementedSizer

	logger *zap.Logger
}

func NewFixedRiskSizer(instrument exchange.SymbolInfo, options ...Option) *FixedRiskSizer {
	s := &FixedRiskSizer{
		logger: zap.NewNop(),
	}
	s.UpdateInstrument(instrument)

	for _, option := range options {
		option(s)
	}

	return s
}

func (s *FixedRiskSizer) Calculate(entry, stopLoss fixed.Point, equity common.Money, risk fixed.Point, options ...CalcOption) (fixed.Point, error) {
	opts := defaultCalcOptions()
	for _, option := range options {
		option(&opts)
	}

	instrument := s.Instrument()
	if err := validate(equity, risk, instrument.SizePrecision, opts); err != nil {
		monitoring.RecordSizing(fixedRiskSizerName, monitoring.SizingResultInvalid)
		return fixed.Zero, err
	}

	zero := fixed.Zero.Rescale(instrument.SizePrecision)

	distance := entry.Sub(stopLoss).Abs()
	if equity.Amount.IsZero() || risk.IsZero() || distance.IsZero() || opts.exchangeRate.IsZero() {
		monitoring.RecordSizing(fixedRiskSizerName, monitoring.SizingResultZero)
		return zero, nil
	}

	budget := equity.Amount.Mul(risk)
	costPerUnit := distance.Mul(opts.exchangeRate).Mul(fixed.One.Add(opts.commissionRate))
	rawSize := budget.Div(costPerUnit).DivInt(opts.units)
	size := rawSize.Div(opts.unitBatchSize).Floor(0).Mul(opts.unitBatchSize)

	if opts.hasHardLimit {
		size = size.Min(opts.hardLimit)
	}
	if instrument.HasMaxQuantity() {
		size = size.Min(instrument.MaxQuantity)
	}

	size = size.Floor(instrument.SizePrecision).Rescale(instrument.SizePrecision)

	s.logger.Debug("position size calculated",
		zap.String("symbol", instrument.SymbolName),
		zap.String("entry", entry.String()),
		zap.String("stop_loss", stopLoss.String()),
		zap.String("budget", budget.String()),
		zap.String("cost_per_unit", costPerUnit.String()),
		zap.String("raw_size", rawSize.String()),
		zap.String("size", size.String()))

	if size.IsZero() {
		monitoring.RecordSizing(fixedRiskSizerName, monitoring.SizingResultZero)
	} else {
		monitoring.RecordSizing(fixedRiskSizerName, monitoring.SizingResultSized)
	}

	return size, nil
}

// validate rejects a batch finer than sizePrecision, flooring the size to that precision would
// otherwise break the batch multiple.
func validate(equity common.Money, risk fixed.Point, sizePrecision int, opts calcOptions) error {
	switch {
	case risk.IsNeg() || risk.Gt(fixed.One):
		return fmt.Errorf("risk %s is outside [0, 1]: %w", risk, ErrInvalidInput)
	case equity.Amount.IsNeg():
		return fmt.Errorf("equity %s is negative: %w", equity, ErrInvalidInput)
	case opts.exchangeRate.IsNeg():
		return fmt.Errorf("exchange rate %s is negative: %w", opts.exchangeRate, ErrInvalidInput)
	case opts.commissionRate.IsNeg():
		return fmt.Errorf("commission rate %s is negative: %w", opts.commissionRate, ErrInvalidInput)
	case !opts.unitBatchSize.IsPos():
		return fmt.Errorf("unit batch size %s must be positive: %w", opts.unitBatchSize, ErrInvalidInput)
	case !opts.unitBatchSize.Floor(sizePrecision).Eq(opts.unitBatchSize):
		return fmt.Errorf("unit batch size %s is finer than size precision %d: %w",
			opts.unitBatchSize, sizePrecision, ErrInvalidInput)
	case opts.units < 1:
		return fmt.Errorf("units %d must be at least 1: %w", opts.units, ErrInvalidInput)
	case opts.hasHardLimit && !opts.hardLimit.IsPos():
		return fmt.Errorf("hard limit %s must be positive: %w", opts.hardLimit, ErrInvalidInput)
	}
	return nil
}
