package common

import (
	"fmt"
	"time"
)

type BarAggregation int
type PriceType int
type AggregationSource int

const (
	BarAggregationTick BarAggregation = iota + 1
	BarAggregationTickImbalance
	BarAggregationTickRuns
	BarAggregationVolume
	BarAggregationVolumeImbalance
	BarAggregationVolumeRuns
	BarAggregationValue
	BarAggregationValueImbalance
	BarAggregationValueRuns
	BarAggregationMillisecond
	BarAggregationSecond
	BarAggregationMinute
	BarAggregationHour
	BarAggregationDay
	BarAggregationMonth
)

// Ask is declared before bid so specs differing only by side order as their text does.
const (
	PriceTypeAsk PriceType = iota + 1
	PriceTypeBid
	PriceTypeMid
	PriceTypeLast
)

const (
	AggregationSourceExternal AggregationSource = iota
	AggregationSourceInternal
)

var barAggregationNames = map[BarAggregation]string{
	BarAggregationTick:            "TICK",
	BarAggregationTickImbalance:   "TICK_IMBALANCE",
	BarAggregationTickRuns:        "TICK_RUNS",
	BarAggregationVolume:          "VOLUME",
	BarAggregationVolumeImbalance: "VOLUME_IMBALANCE",
	BarAggregationVolumeRuns:      "VOLUME_RUNS",
	BarAggregationValue:           "VALUE",
	BarAggregationValueImbalance:  "VALUE_IMBALANCE",
	BarAggregationValueRuns:       "VALUE_RUNS",
	BarAggregationMillisecond:     "MILLISECOND",
	BarAggregationSecond:          "SECOND",
	BarAggregationMinute:          "MINUTE",
	BarAggregationHour:            "HOUR",
	BarAggregationDay:             "DAY",
	BarAggregationMonth:           "MONTH",
}

var priceTypeNames = map[PriceType]string{
	PriceTypeAsk:  "ASK",
	PriceTypeBid:  "BID",
	PriceTypeMid:  "MID",
	PriceTypeLast: "LAST",
}

var aggregationSourceNames = map[AggregationSource]string{
	AggregationSourceExternal: "EXTERNAL",
	AggregationSourceInternal: "INTERNAL",
}

var (
	barAggregationValues    = invert(barAggregationNames)
	priceTypeValues         = invert(priceTypeNames)
	aggregationSourceValues = invert(aggregationSourceNames)
)

// BarAggregations lists every aggregation method in declaration order.
func BarAggregations() []BarAggregation {
	aggregations := make([]BarAggregation, 0, len(barAggregationNames))
	for a := BarAggregationTick; a <= BarAggregationMonth; a++ {
		aggregations = append(aggregations, a)
	}
	return aggregations
}

func (a BarAggregation) String() string {
	if name, ok := barAggregationNames[a]; ok {
		return name
	}
	return fmt.Sprintf("BarAggregation(%d)", int(a))
}

func (a BarAggregation) IsValid() bool {
	_, ok := barAggregationNames[a]
	return ok
}

func (a BarAggregation) IsTimeAggregated() bool {
	switch a {
	case BarAggregationMillisecond,
		BarAggregationSecond,
		BarAggregationMinute,
		BarAggregationHour,
		BarAggregationDay,
		BarAggregationMonth:
		return true
	case BarAggregationTick,
		BarAggregationTickImbalance,
		BarAggregationTickRuns,
		BarAggregationVolume,
		BarAggregationVolumeImbalance,
		BarAggregationVolumeRuns,
		BarAggregationValue,
		BarAggregationValueImbalance,
		BarAggregationValueRuns:
		return false
	default:
		panic(fmt.Sprintf("unclassified bar aggregation %d", int(a)))
	}
}

func (a BarAggregation) IsThresholdAggregated() bool {
	switch a {
	case BarAggregationTick,
		BarAggregationVolume,
		BarAggregationValue:
		return true
	case BarAggregationTickImbalance,
		BarAggregationTickRuns,
		BarAggregationVolumeImbalance,
		BarAggregationVolumeRuns,
		BarAggregationValueImbalance,
		BarAggregationValueRuns,
		BarAggregationMillisecond,
		BarAggregationSecond,
		BarAggregationMinute,
		BarAggregationHour,
		BarAggregationDay,
		BarAggregationMonth:
		return false
	default:
		panic(fmt.Sprintf("unclassified bar aggregation %d", int(a)))
	}
}

func (a BarAggregation) IsInformationAggregated() bool {
	switch a {
	case BarAggregationTickImbalance,
		BarAggregationTickRuns,
		BarAggregationVolumeImbalance,
		BarAggregationVolumeRuns,
		BarAggregationValueImbalance,
		BarAggregationValueRuns:
		return true
	case BarAggregationTick,
		BarAggregationVolume,
		BarAggregationValue,
		BarAggregationMillisecond,
		BarAggregationSecond,
		BarAggregationMinute,
		BarAggregationHour,
		BarAggregationDay,
		BarAggregationMonth:
		return false
	default:
		panic(fmt.Sprintf("unclassified bar aggregation %d", int(a)))
	}
}

// unit is the fixed length of one step for time aggregations. Months have no fixed length.
func (a BarAggregation) unit() (time.Duration, bool) {
	switch a {
	case BarAggregationMillisecond:
		return time.Millisecond, true
	case BarAggregationSecond:
		return time.Second, true
	case BarAggregationMinute:
		return time.Minute, true
	case BarAggregationHour:
		return time.Hour, true
	case BarAggregationDay:
		return 24 * time.Hour, true
	default:
		return 0, false
	}
}

func ParseBarAggregation(text string) (BarAggregation, error) {
	if a, ok := barAggregationValues[text]; ok {
		return a, nil
	}
	return 0, fmt.Errorf("unknown bar aggregation %q: %w", text, ErrParse)
}

func (p PriceType) String() string {
	if name, ok := priceTypeNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PriceType(%d)", int(p))
}

func (p PriceType) IsValid() bool {
	_, ok := priceTypeNames[p]
	return ok
}

func ParsePriceType(text string) (PriceType, error) {
	if p, ok := priceTypeValues[text]; ok {
		return p, nil
	}
	return 0, fmt.Errorf("unknown price type %q: %w", text, ErrParse)
}

func (s AggregationSource) String() string {
	if name, ok := aggregationSourceNames[s]; ok {
		return name
	}
	return fmt.Sprintf("AggregationSource(%d)", int(s))
}

func (s AggregationSource) IsValid() bool {
	_, ok := aggregationSourceNames[s]
	return ok
}

func ParseAggregationSource(text string) (AggregationSource, error) {
	if s, ok := aggregationSourceValues[text]; ok {
		return s, nil
	}
	return 0, fmt.Errorf("unknown aggregation source %q: %w", text, ErrParse)
}

func invert[K comparable](names map[K]string) map[string]K {
	values := make(map[string]K, len(names))
	for k, name := range names {
		values[name] = k
	}
	return values
}
