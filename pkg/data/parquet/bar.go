package parquet

import (
	"fmt"

	"github.com/parquet-go/parquet-go"

	"github.com/DevStar234/nautilus-trader/pkg/common"
)

// Row is the parquet layout of a bar. Decimals are kept as strings to preserve their
// precision.
type Row struct {
	BarType    string `parquet:"bar_type,dict"`
	Open       string `parquet:"open"`
	High       string `parquet:"high"`
	Low        string `parquet:"low"`
	Close      string `parquet:"close"`
	Volume     string `parquet:"volume"`
	TsEvent    int64  `parquet:"ts_event"`
	TsInit     int64  `parquet:"ts_init"`
	IsRevision bool   `parquet:"is_revision,optional"`
}

func RowFromBar(bar common.Bar) Row {
	return Row{
		BarType:    bar.BarType.String(),
		Open:       bar.Open.String(),
		High:       bar.High.String(),
		Low:        bar.Low.String(),
		Close:      bar.Close.String(),
		Volume:     bar.Volume.String(),
		TsEvent:    bar.TsEvent,
		TsInit:     bar.TsInit,
		IsRevision: bar.IsRevision,
	}
}

func (r Row) Bar() (common.Bar, error) {
	var options []common.BarOption
	if r.IsRevision {
		options = append(options, common.WithRevision())
	}
	return common.BarFromRecord(map[string]any{
		common.RecordKeyBarType: r.BarType,
		common.RecordKeyOpen:    r.Open,
		common.RecordKeyHigh:    r.High,
		common.RecordKeyLow:     r.Low,
		common.RecordKeyClose:   r.Close,
		common.RecordKeyVolume:  r.Volume,
		common.RecordKeyTsEvent: r.TsEvent,
		common.RecordKeyTsInit:  r.TsInit,
	}, options...)
}

func WriteBars(path string, bars []common.Bar) error {
	rows := make([]Row, 0, len(bars))
	for _, bar := range bars {
		rows = append(rows, RowFromBar(bar))
	}
	if err := parquet.WriteFile(path, rows); err != nil {
		return fmt.Errorf("unable to write bars to %s: %w", path, err)
	}
	return nil
}

// ReadBars decodes every row of the file and fails on the first row that is not a valid bar.
func ReadBars(path string) ([]common.Bar, error) {
	rows, err := parquet.ReadFile[Row](path)
	if err != nil {
		return nil, fmt.Errorf("unable to read bars from %s: %w", path, err)
	}

	bars := make([]common.Bar, 0, len(rows))
	for i, row := range rows {
		bar, err := row.Bar()
		if err != nil {
			return nil, fmt.Errorf("row %d of %s: %w", i, path, err)
		}
		bars = append(bars, bar)
	}
	return bars, nil
}
