package common

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/DevStar234/nautilus-trader/pkg/utility/fixed"
)

const BarRecordType = "Bar"

const (
	RecordKeyType    = "type"
	RecordKeyBarType = "bar_type"
	RecordKeyOpen    = "open"
	RecordKeyHigh    = "high"
	RecordKeyLow     = "low"
	RecordKeyClose   = "close"
	RecordKeyVolume  = "volume"
	RecordKeyTsEvent = "ts_event"
	RecordKeyTsInit  = "ts_init"
)

// ToRecord flattens the bar into a map with decimal strings for prices and volume.
func (b Bar) ToRecord() map[string]any {
	return map[string]any{
		RecordKeyType:    BarRecordType,
		RecordKeyBarType: b.BarType.String(),
		RecordKeyOpen:    b.Open.String(),
		RecordKeyHigh:    b.High.String(),
		RecordKeyLow:     b.Low.String(),
		RecordKeyClose:   b.Close.String(),
		RecordKeyVolume:  b.Volume.String(),
		RecordKeyTsEvent: b.TsEvent,
		RecordKeyTsInit:  b.TsInit,
	}
}

// BarFromRecord is the inverse of Bar.ToRecord. The "type" key is optional, when present it
// must be "Bar".
func BarFromRecord(record map[string]any, options ...BarOption) (Bar, error) {
	if v, ok := record[RecordKeyType]; ok {
		if s, ok := v.(string); !ok || s != BarRecordType {
			return Bar{}, fmt.Errorf("record type %v is not %s: %w", v, BarRecordType, ErrValidation)
		}
	}

	barTypeText, err := recordString(record, RecordKeyBarType)
	if err != nil {
		return Bar{}, err
	}
	barType, err := ParseBarType(barTypeText)
	if err != nil {
		return Bar{}, fmt.Errorf("record field %s: %w: %w", RecordKeyBarType, ErrValidation, err)
	}

	var points [5]fixed.Point
	for i, key := range []string{RecordKeyOpen, RecordKeyHigh, RecordKeyLow, RecordKeyClose, RecordKeyVolume} {
		if points[i], err = recordDecimal(record, key); err != nil {
			return Bar{}, err
		}
	}

	tsEvent, err := recordInt64(record, RecordKeyTsEvent)
	if err != nil {
		return Bar{}, err
	}
	tsInit, err := recordInt64(record, RecordKeyTsInit)
	if err != nil {
		return Bar{}, err
	}

	return NewBar(barType, points[0], points[1], points[2], points[3], points[4], tsEvent, tsInit, options...)
}

func recordString(record map[string]any, key string) (string, error) {
	v, ok := record[key]
	if !ok {
		return "", fmt.Errorf("record field %s is missing: %w", key, ErrValidation)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("record field %s has type %T, want string: %w", key, v, ErrValidation)
	}
	return s, nil
}

func recordDecimal(record map[string]any, key string) (fixed.Point, error) {
	s, err := recordString(record, key)
	if err != nil {
		return fixed.Point{}, err
	}
	p, err := fixed.Parse(s)
	if err != nil {
		return fixed.Point{}, fmt.Errorf("record field %s: %w: %w", key, ErrValidation, err)
	}
	return p, nil
}

func recordInt64(record map[string]any, key string) (int64, error) {
	v, ok := record[key]
	if !ok {
		return 0, fmt.Errorf("record field %s is missing: %w", key, ErrValidation)
	}

	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case uint64:
		if n > math.MaxInt64 {
			return 0, fmt.Errorf("record field %s overflows int64: %w", key, ErrValidation)
		}
		return int64(n), nil // #nosec G115
	case float64:
		if n != math.Trunc(n) || n < math.MinInt64 || n >= math.MaxInt64 {
			return 0, fmt.Errorf("record field %s is not an integer: %w", key, ErrValidation)
		}
		return int64(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("record field %s: %w: %w", key, ErrValidation, err)
		}
		return i, nil
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("record field %s: %w: %w", key, ErrValidation, err)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("record field %s has type %T, want integer: %w", key, v, ErrValidation)
	}
}
