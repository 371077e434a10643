package common

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"github.com/DevStar234/nautilus-trader/pkg/utility/fixed"
)

// Bar is one OHLCV sample of a bar type. Prices and volume keep the scale they were created
// with, which is the instrument precision for bars built by an aggregator.
type Bar struct {
	BarType    BarType
	Open       fixed.Point
	High       fixed.Point
	Low        fixed.Point
	Close      fixed.Point
	Volume     fixed.Point
	TsEvent    int64 // Unix NanoSeconds
	TsInit     int64 // Unix NanoSeconds
	IsRevision bool
}

type BarOption func(*barOptions)

type barOptions struct {
	isRevision     bool
	skipValidation bool
}

// WithRevision marks the bar as a revision of a previously published bar.
func WithRevision() BarOption {
	return func(o *barOptions) {
		o.isRevision = true
	}
}

// WithoutValidation skips the OHLC checks. Use only for inputs validated before, such as a
// replay of persisted bars.
func WithoutValidation() BarOption {
	return func(o *barOptions) {
		o.skipValidation = true
	}
}

func NewBar(barType BarType, open, high, low, close, volume fixed.Point, tsEvent, tsInit int64, options ...BarOption) (Bar, error) {
	var opts barOptions
	for _, option := range options {
		option(&opts)
	}

	bar := Bar{
		BarType:    barType,
		Open:       open,
		High:       high,
		Low:        low,
		Close:      close,
		Volume:     volume,
		TsEvent:    tsEvent,
		TsInit:     tsInit,
		IsRevision: opts.isRevision,
	}

	if !opts.skipValidation {
		if err := bar.Validate(); err != nil {
			return Bar{}, err
		}
	}

	return bar, nil
}

func MustNewBar(barType BarType, open, high, low, close, volume fixed.Point, tsEvent, tsInit int64, options ...BarOption) Bar {
	bar, err := NewBar(barType, open, high, low, close, volume, tsEvent, tsInit, options...)
	if err != nil {
		panic(err)
	}
	return bar
}

// Validate reports the first violated OHLC inequality.
func (b Bar) Validate() error {
	switch {
	case b.High.Lt(b.Open):
		return fmt.Errorf("high %s < open %s: %w", b.High, b.Open, ErrValidation)
	case b.High.Lt(b.Low):
		return fmt.Errorf("high %s < low %s: %w", b.High, b.Low, ErrValidation)
	case b.High.Lt(b.Close):
		return fmt.Errorf("high %s < close %s: %w", b.High, b.Close, ErrValidation)
	case b.Low.Gt(b.Open):
		return fmt.Errorf("low %s > open %s: %w", b.Low, b.Open, ErrValidation)
	case b.Low.Gt(b.Close):
		return fmt.Errorf("low %s > close %s: %w", b.Low, b.Close, ErrValidation)
	case b.Volume.IsNeg():
		return fmt.Errorf("volume %s is negative: %w", b.Volume, ErrValidation)
	}
	return nil
}

// Equal compares market data only; TsInit and IsRevision are ignored.
func (b Bar) Equal(o Bar) bool {
	return b.BarType == o.BarType &&
		b.Open.Eq(o.Open) &&
		b.High.Eq(o.High) &&
		b.Low.Eq(o.Low) &&
		b.Close.Eq(o.Close) &&
		b.Volume.Eq(o.Volume) &&
		b.TsEvent == o.TsEvent
}

// Hash is consistent with Equal.
func (b Bar) Hash() uint64 {
	d := xxhash.New()
	for _, s := range []string{
		b.BarType.String(),
		b.Open.Canonical(),
		b.High.Canonical(),
		b.Low.Canonical(),
		b.Close.Canonical(),
		b.Volume.Canonical(),
		strconv.FormatInt(b.TsEvent, 10),
	} {
		_, _ = d.WriteString(s)
		_, _ = d.WriteString(",")
	}
	return d.Sum64()
}

func (b Bar) String() string {
	var sb strings.Builder
	sb.WriteString(b.BarType.String())
	for _, p := range []fixed.Point{b.Open, b.High, b.Low, b.Close, b.Volume} {
		sb.WriteByte(',')
		sb.WriteString(p.String())
	}
	sb.WriteByte(',')
	sb.WriteString(strconv.FormatInt(b.TsEvent, 10))
	return sb.String()
}

func (b Bar) Fields() []zap.Field {
	return []zap.Field{
		zap.String("bar_type", b.BarType.String()),
		zap.String("open", b.Open.String()),
		zap.String("high", b.High.String()),
		zap.String("low", b.Low.String()),
		zap.String("close", b.Close.String()),
		zap.String("volume", b.Volume.String()),
		zap.Int64("ts_event", b.TsEvent),
		zap.Int64("ts_init", b.TsInit),
		zap.Bool("is_revision", b.IsRevision),
	}
}
