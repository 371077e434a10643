package main

import (
	"context"
	"errors"
	"flag"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/DevStar234/nautilus-trader/pkg/common"
)

var errNoArguments = errors.New("no bar types given")

func runParse(_ context.Context, env environment, args []string) error {
	flags := flag.NewFlagSet("parse", flag.ContinueOnError)
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() == 0 {
		return errNoArguments
	}

	t := table.NewWriter()
	t.SetOutputMirror(env.out)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Bar Type", "Instrument", "Spec", "Source", "Class", "Error"})

	var failed error
	for _, text := range flags.Args() {
		barType, err := common.ParseBarType(text)
		if err != nil {
			t.AppendRow(table.Row{text, "", "", "", "", err.Error()})
			failed = errors.Join(failed, err)
			continue
		}
		t.AppendRow(table.Row{
			barType.String(),
			barType.InstrumentId.String(),
			barType.Spec.String(),
			barType.Source.String(),
			classify(barType.Spec),
			"",
		})
	}

	t.Render()
	return failed
}

func classify(spec common.BarSpecification) string {
	switch {
	case spec.IsTimeAggregated():
		return "time"
	case spec.IsThresholdAggregated():
		return "threshold"
	default:
		return "information"
	}
}
