package main

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/DevStar234/nautilus-trader/pkg/common"
	"github.com/DevStar234/nautilus-trader/pkg/exchange"
	"github.com/DevStar234/nautilus-trader/pkg/tools/sizing"
	"github.com/DevStar234/nautilus-trader/pkg/tools/store"
	"github.com/DevStar234/nautilus-trader/pkg/utility/fixed"
)

func runSize(_ context.Context, env environment, args []string) error {
	var (
		entry, stopLoss, equity, risk fixed.Point
		rate, commission, limit       fixed.Point
		batch                         = fixed.One
	)

	flags := flag.NewFlagSet("size", flag.ContinueOnError)
	instruments := flags.String("instruments", env.cfg.Instruments, "instrument definition file")
	symbol := flags.String("instrument", "", "instrument symbol, e.g. AUD/USD.SIM")
	currency := flags.String("currency", "USD", "account currency")
	rates := flags.String("rates", "", "static rates, e.g. JPY/USD=0.0091,EUR/USD=1.08")
	units := flags.Int("units", 1, "number of entries sharing the risk budget")
	flags.TextVar(&entry, "entry", fixed.Zero, "entry price")
	flags.TextVar(&stopLoss, "stop", fixed.Zero, "stop loss price")
	flags.TextVar(&equity, "equity", fixed.Zero, "account equity")
	flags.TextVar(&risk, "risk", fixed.Zero, "fraction of equity to risk")
	flags.TextVar(&rate, "rate", fixed.Zero, "quote to account exchange rate, resolved from -rates when unset")
	flags.TextVar(&commission, "commission", fixed.Zero, "round trip commission rate")
	flags.TextVar(&limit, "limit", fixed.Zero, "hard limit on the quantity, unset when zero")
	flags.TextVar(&batch, "batch", fixed.One, "unit batch size")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *symbol == "" {
		return fmt.Errorf("-instrument is required")
	}

	symbols, err := store.LoadSymbolStore(*instruments)
	if err != nil {
		return err
	}
	instrument, err := symbols.Get(*symbol)
	if err != nil {
		return err
	}

	if rate.IsZero() {
		provider, err := parseRates(*rates)
		if err != nil {
			return err
		}
		if rate, err = sizing.ExchangeRate(provider, instrument, *currency, time.Now()); err != nil {
			return err
		}
	}

	options := []sizing.CalcOption{
		sizing.WithExchangeRate(rate),
		sizing.WithCommissionRate(commission),
		sizing.WithUnitBatchSize(batch),
		sizing.WithUnits(*units),
	}
	if !limit.IsZero() {
		options = append(options, sizing.WithHardLimit(limit))
	}

	sizer := sizing.NewFixedRiskSizer(instrument, sizing.WithLogger(env.logger))
	account := common.NewMoney(equity, strings.ToUpper(*currency))
	quantity, err := sizer.Calculate(entry, stopLoss, account, risk, options...)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(env.out)
	t.SetTitle("POSITION SIZE")
	t.SetStyle(table.StyleRounded)
	t.AppendRows([]table.Row{
		{"Instrument", instrument.SymbolName},
		{"Entry", entry.String()},
		{"Stop Loss", stopLoss.String()},
		{"Equity", account.String()},
		{"Risk", risk.String()},
		{"Exchange Rate", rate.String()},
		{"Quantity", quantity.String()},
	})
	t.Render()
	return nil
}

// parseRates reads "FROM/TO=RATE" pairs separated by commas.
func parseRates(text string) (exchange.StaticRates, error) {
	rates := exchange.StaticRates{}
	for _, pair := range strings.Split(text, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, value, ok := strings.Cut(pair, "=")
		from, to, okPair := strings.Cut(key, "/")
		if !ok || !okPair {
			return nil, fmt.Errorf("invalid rate %q, want FROM/TO=RATE", pair)
		}
		rate, err := fixed.Parse(value)
		if err != nil {
			return nil, fmt.Errorf("invalid rate %q: %w", pair, err)
		}
		rates.Set(from, to, rate)
	}
	return rates, nil
}
