package sizing

import (
	"go.uber.org/zap"

	"github.com/DevStar234/nautilus-trader/pkg/utility/fixed"
)

type Option func(*FixedRiskSizer)

func WithLogger(logger *zap.Logger) Option {
	return func(s *FixedRiskSizer) {
		s.logger = logger
	}
}

type CalcOption func(*calcOptions)

type calcOptions struct {
	exchangeRate   fixed.Point
	commissionRate fixed.Point
	hardLimit      fixed.Point
	hasHardLimit   bool
	unitBatchSize  fixed.Point
	units          int
}

func defaultCalcOptions() calcOptions {
	return calcOptions{
		exchangeRate:   fixed.One,
		commissionRate: fixed.Zero,
		unitBatchSize:  fixed.One,
		units:          1,
	}
}

// WithExchangeRate sets the quote to account currency conversion factor.
func WithExchangeRate(rate fixed.Point) CalcOption {
	return func(o *calcOptions) {
		o.exchangeRate = rate
	}
}

// WithCommissionRate sets the round trip commission as a fraction of the traded notional.
func WithCommissionRate(rate fixed.Point) CalcOption {
	return func(o *calcOptions) {
		o.commissionRate = rate
	}
}

func WithHardLimit(limit fixed.Point) CalcOption {
	return func(o *calcOptions) {
		o.hardLimit = limit
		o.hasHardLimit = true
	}
}

func WithUnitBatchSize(size fixed.Point) CalcOption {
	return func(o *calcOptions) {
		o.unitBatchSize = size
	}
}

// WithUnits splits the risk budget evenly across the given number of entries.
func WithUnits(units int) CalcOption {
	return func(o *calcOptions) {
		o.units = units
	}
}
