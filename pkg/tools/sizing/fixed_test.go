package sizing

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/DevStar234/nautilus-trader/pkg/common"
	"github.com/DevStar234/nautilus-trader/pkg/exchange"
	"github.com/DevStar234/nautilus-trader/pkg/utility/fixed"
)

var (
	_ PositionSizer = (*UnimplementedSizer)(nil)
	_ PositionSizer = (*FixedRiskSizer)(nil)
)

var audusd = exchange.SymbolInfo{
	SymbolName:     "AUD/USD.SIM",
	Class:          exchange.Forex,
	BaseCurrency:   "AUD",
	QuoteCurrency:  "USD",
	PricePrecision: 5,
	SizePrecision:  0,
	MaxQuantity:    fixed.FromInt(10_000_000, 0),
}

func usd(amount string) common.Money {
	return common.NewMoney(fixed.MustParse(amount), "USD")
}

func TestFixedRiskSizer_Calculate(t *testing.T) {
	tests := []struct {
		name     string
		entry    string
		stopLoss string
		equity   string
		risk     string
		options  []CalcOption
		want     string
	}{
		{
			name:     "single unit",
			entry:    "1.00100",
			stopLoss: "1.00000",
			equity:   "1000000",
			risk:     "0.001",
			options:  []CalcOption{WithUnitBatchSize(fixed.FromInt(1000, 0))},
			want:     "1000000",
		},
		{
			name:     "multiple units",
			entry:    "1.00010",
			stopLoss: "1.00000",
			equity:   "1000000",
			risk:     "0.001",
			options:  []CalcOption{WithUnitBatchSize(fixed.FromInt(1000, 0)), WithUnits(3)},
			want:     "3333000",
		},
		{
			name:     "large batch",
			entry:    "1.00087",
			stopLoss: "1.00000",
			equity:   "1000000",
			risk:     "0.001",
			options:  []CalcOption{WithUnitBatchSize(fixed.FromInt(25000, 0)), WithUnits(4)},
			want:     "275000",
		},
		{
			name:     "hard limit",
			entry:    "1.00010",
			stopLoss: "1.00000",
			equity:   "1000000",
			risk:     "0.01",
			options:  []CalcOption{WithHardLimit(fixed.FromInt(500_000, 0)), WithUnitBatchSize(fixed.FromInt(1000, 0))},
			want:     "500000",
		},
		{
			name:     "raw size below one batch",
			entry:    "3.00000",
			stopLoss: "1.00000",
			equity:   "100000",
			risk:     "0.01",
			options:  []CalcOption{WithUnitBatchSize(fixed.FromInt(1000, 0))},
			want:     "0",
		},
		{
			name:     "zero equity",
			entry:    "1.00100",
			stopLoss: "1.00000",
			equity:   "0",
			risk:     "0.001",
			want:     "0",
		},
		{
			name:     "zero risk",
			entry:    "1.00100",
			stopLoss: "1.00000",
			equity:   "1000000",
			risk:     "0",
			want:     "0",
		},
		{
			name:     "entry equals stop loss",
			entry:    "1.00100",
			stopLoss: "1.00100",
			equity:   "1000000",
			risk:     "0.001",
			want:     "0",
		},
		{
			name:     "zero exchange rate",
			entry:    "1.00100",
			stopLoss: "1.00000",
			equity:   "1000000",
			risk:     "0.001",
			options:  []CalcOption{WithExchangeRate(fixed.Zero)},
			want:     "0",
		},
		{
			name:     "short side distance",
			entry:    "1.00000",
			stopLoss: "1.00100",
			equity:   "1000000",
			risk:     "0.001",
			options:  []CalcOption{WithUnitBatchSize(fixed.FromInt(1000, 0))},
			want:     "1000000",
		},
		{
			name:     "commission reserves budget",
			entry:    "1.00010",
			stopLoss: "1.00000",
			equity:   "1000000",
			risk:     "0.001",
			options:  []CalcOption{WithCommissionRate(fixed.MustParse("0.25")), WithUnitBatchSize(fixed.FromInt(1000, 0))},
			want:     "8000000",
		},
		{
			name:     "exchange rate scales cost",
			entry:    "1.00100",
			stopLoss: "1.00000",
			equity:   "1000000",
			risk:     "0.001",
			options:  []CalcOption{WithExchangeRate(fixed.Two), WithUnitBatchSize(fixed.FromInt(1000, 0))},
			want:     "500000",
		},
		{
			name:     "instrument max quantity",
			entry:    "110.010",
			stopLoss: "110.000",
			equity:   "1000000",
			risk:     "0.001",
			options:  []CalcOption{WithExchangeRate(fixed.One.Div(fixed.FromInt(110, 0)))},
			want:     "10000000",
		},
	}

	sizer := NewFixedRiskSizer(audusd)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sizer.Calculate(fixed.MustParse(tt.entry), fixed.MustParse(tt.stopLoss), usd(tt.equity), fixed.MustParse(tt.risk), tt.options...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
			assert.False(t, got.IsNeg())
		})
	}
}

func TestFixedRiskSizer_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		equity  string
		risk    string
		options []CalcOption
	}{
		{"risk above one", "1000000", "1.5", nil},
		{"negative risk", "1000000", "-0.01", nil},
		{"negative equity", "-1", "0.01", nil},
		{"negative exchange rate", "1000000", "0.01", []CalcOption{WithExchangeRate(fixed.NegOne)}},
		{"negative commission", "1000000", "0.01", []CalcOption{WithCommissionRate(fixed.MustParse("-0.001"))}},
		{"zero batch", "1000000", "0.01", []CalcOption{WithUnitBatchSize(fixed.Zero)}},
		{"batch finer than size precision", "1000000", "0.01", []CalcOption{WithUnitBatchSize(fixed.MustParse("0.3"))}},
		{"zero units", "1000000", "0.01", []CalcOption{WithUnits(0)}},
		{"zero hard limit", "1000000", "0.01", []CalcOption{WithHardLimit(fixed.Zero)}},
	}

	sizer := NewFixedRiskSizer(audusd)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sizer.Calculate(fixed.MustParse("1.001"), fixed.One, usd(tt.equity), fixed.MustParse(tt.risk), tt.options...)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestFixedRiskSizer_FullRiskIsValid(t *testing.T) {
	got, err := NewFixedRiskSizer(audusd).Calculate(fixed.Two, fixed.One, usd("1000"), fixed.One)
	require.NoError(t, err)
	assert.Equal(t, "1000", got.String())
}

func TestFixedRiskSizer_SizePrecision(t *testing.T) {
	btc := exchange.SymbolInfo{SymbolName: "BTCUSDT.BINANCE", QuoteCurrency: "USDT", PricePrecision: 2, SizePrecision: 6}
	sizer := NewFixedRiskSizer(btc)

	got, err := sizer.Calculate(
		fixed.FromInt(30000, 0),
		fixed.FromInt(29000, 0),
		common.NewMoney(fixed.FromInt(10000, 0), "USDT"),
		fixed.MustParse("0.01"),
		WithUnitBatchSize(fixed.MustParse("0.001")),
	)
	require.NoError(t, err)
	assert.Equal(t, "0.100000", got.String())

	got, err = sizer.Calculate(fixed.FromInt(30000, 0), fixed.FromInt(30000, 0), common.NewMoney(fixed.FromInt(10000, 0), "USDT"), fixed.MustParse("0.01"))
	require.NoError(t, err)
	assert.Equal(t, "0.000000", got.String())

	t.Run("trailing zeros beyond precision", func(t *testing.T) {
		eth := exchange.SymbolInfo{SymbolName: "ETHUSDT.BINANCE", QuoteCurrency: "USDT", PricePrecision: 2, SizePrecision: 1}
		got, err := NewFixedRiskSizer(eth).Calculate(
			fixed.FromInt(2000, 0),
			fixed.FromInt(1900, 0),
			common.NewMoney(fixed.FromInt(10000, 0), "USDT"),
			fixed.MustParse("0.01"),
			WithUnitBatchSize(fixed.MustParse("0.30")),
		)
		require.NoError(t, err)
		assert.Equal(t, "0.9", got.String())
	})
}

func TestFixedRiskSizer_Monotonicity(t *testing.T) {
	sizer := NewFixedRiskSizer(exchange.SymbolInfo{SymbolName: "AUD/USD.SIM", QuoteCurrency: "USD"})
	entry, stopLoss := fixed.MustParse("1.00250"), fixed.MustParse("1.00000")
	batch := fixed.FromInt(1000, 0)

	t.Run("risk", func(t *testing.T) {
		last := fixed.Zero
		for i := int64(1); i <= 100; i++ {
			risk := fixed.FromInt64(i, 3)
			got, err := sizer.Calculate(entry, stopLoss, usd("1000000"), risk, WithUnitBatchSize(batch))
			require.NoError(t, err)
			assert.True(t, got.Gte(last), "risk %s: %s < %s", risk, got, last)
			assert.True(t, got.Div(batch).IsInt(), "size %s is not a multiple of %s", got, batch)
			last = got
		}
	})

	t.Run("units", func(t *testing.T) {
		last, err := sizer.Calculate(entry, stopLoss, usd("1000000"), fixed.MustParse("0.01"))
		require.NoError(t, err)
		for units := 2; units <= 20; units++ {
			got, err := sizer.Calculate(entry, stopLoss, usd("1000000"), fixed.MustParse("0.01"), WithUnits(units))
			require.NoError(t, err)
			assert.True(t, got.Lte(last), "units %d: %s > %s", units, got, last)
			last = got
		}
	})
}

func TestFixedRiskSizer_UpdateInstrument(t *testing.T) {
	sizer := NewFixedRiskSizer(audusd)
	assert.Equal(t, audusd, sizer.Instrument())

	updated := audusd
	updated.SizePrecision = 2
	updated.MaxQuantity = fixed.FromInt(250_000, 0)
	sizer.UpdateInstrument(updated)
	assert.Equal(t, updated, sizer.Instrument())

	got, err := sizer.Calculate(fixed.MustParse("1.00100"), fixed.MustParse("1.00000"), usd("1000000"), fixed.MustParse("0.001"))
	require.NoError(t, err)
	assert.Equal(t, "250000.00", got.String())
}

func TestFixedRiskSizer_ConcurrentUpdate(t *testing.T) {
	sizer := NewFixedRiskSizer(audusd)
	other := audusd
	other.SizePrecision = 2

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				sizer.UpdateInstrument(other)
				sizer.UpdateInstrument(audusd)
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				got, err := sizer.Calculate(fixed.MustParse("1.00100"), fixed.MustParse("1.00000"), usd("1000000"), fixed.MustParse("0.001"))
				assert.NoError(t, err)
				assert.Contains(t, []string{"1000000", "1000000.00"}, got.String())
			}
		}()
	}
	wg.Wait()
}

func TestFixedRiskSizer_Logging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	sizer := NewFixedRiskSizer(audusd, WithLogger(zap.New(core)))

	_, err := sizer.Calculate(fixed.MustParse("1.00100"), fixed.MustParse("1.00000"), usd("1000000"), fixed.MustParse("0.001"))
	require.NoError(t, err)

	entries := logs.FilterMessage("position size calculated").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "1000000", entries[0].ContextMap()["size"])
}

func TestUnimplementedSizer(t *testing.T) {
	sizer := NewUnimplementedSizer(audusd)
	assert.Equal(t, audusd, sizer.Instrument())

	_, err := sizer.Calculate(fixed.Two, fixed.One, usd("1000"), fixed.MustParse("0.01"))
	assert.ErrorIs(t, err, ErrNotImplemented)

	var empty UnimplementedSizer
	assert.Equal(t, exchange.SymbolInfo{}, empty.Instrument())
}

func TestExchangeRate(t *testing.T) {
	rates := exchange.StaticRates{}
	rates.Set("JPY", "USD", fixed.MustParse("0.0090"))

	usdjpy := exchange.SymbolInfo{SymbolName: "USD/JPY.SIM", BaseCurrency: "USD", QuoteCurrency: "JPY"}

	rate, err := ExchangeRate(rates, usdjpy, "USD", time.Time{})
	require.NoError(t, err)
	assert.True(t, rate.Eq(fixed.MustParse("0.009")), "rate %s", rate)

	rate, err = ExchangeRate(nil, audusd, "usd", time.Time{})
	require.NoError(t, err)
	assert.True(t, rate.Eq(fixed.One))

	_, err = ExchangeRate(rates, usdjpy, "EUR", time.Time{})
	assert.ErrorIs(t, err, exchange.ErrRateNotAvailable)

	_, err = ExchangeRate(nil, usdjpy, "USD", time.Time{})
	assert.ErrorIs(t, err, exchange.ErrRateNotAvailable)
}
