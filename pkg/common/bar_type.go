package common

import (
	"cmp"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// barTypeSuffixFields are the step, aggregation, price type and source fields that follow the
// instrument id. The instrument id itself may contain '-'.
const barTypeSuffixFields = 4

// BarType identifies a bar stream: which instrument, how it is aggregated and where it comes from.
type BarType struct {
	InstrumentId InstrumentId
	Spec         BarSpecification
	Source       AggregationSource
}

// NewBarType builds a bar type, the source defaults to AggregationSourceExternal.
func NewBarType(instrumentId InstrumentId, spec BarSpecification, source ...AggregationSource) BarType {
	bt := BarType{InstrumentId: instrumentId, Spec: spec, Source: AggregationSourceExternal}
	if len(source) > 0 {
		bt.Source = source[0]
	}
	return bt
}

// ParseBarType parses "<SYMBOL>.<VENUE>-<step>-<AGGREGATION>-<PRICE_TYPE>-<SOURCE>".
func ParseBarType(text string) (BarType, error) {
	fields := strings.Split(text, "-")
	if len(fields) < barTypeSuffixFields+1 {
		return BarType{}, fmt.Errorf("bar type %q must be <instrument>-<step>-<aggregation>-<price type>-<source>: %w",
			text, ErrParse)
	}

	n := len(fields) - barTypeSuffixFields
	instrumentId, err := ParseInstrumentId(strings.Join(fields[:n], "-"))
	if err != nil {
		return BarType{}, fmt.Errorf("bar type %q: %w", text, err)
	}

	spec, err := parseBarSpecificationFields(strings.Join(fields[n:n+barSpecificationFields], "-"),
		fields[n], fields[n+1], fields[n+2])
	if err != nil {
		return BarType{}, fmt.Errorf("bar type %q: %w", text, err)
	}

	source, err := ParseAggregationSource(fields[n+3])
	if err != nil {
		return BarType{}, fmt.Errorf("bar type %q: %w", text, err)
	}

	return BarType{InstrumentId: instrumentId, Spec: spec, Source: source}, nil
}

func MustParseBarType(text string) BarType {
	bt, err := ParseBarType(text)
	if err != nil {
		panic(err)
	}
	return bt
}

func (t BarType) String() string {
	return t.InstrumentId.String() + "-" + t.Spec.String() + "-" + t.Source.String()
}

// Compare orders by instrument id first, then specification, then source.
func (t BarType) Compare(o BarType) int {
	if c := t.InstrumentId.Compare(o.InstrumentId); c != 0 {
		return c
	}
	if c := t.Spec.Compare(o.Spec); c != 0 {
		return c
	}
	return cmp.Compare(t.Source, o.Source)
}

func (t BarType) Less(o BarType) bool {
	return t.Compare(o) < 0
}

func (t BarType) IsExternallyAggregated() bool {
	return t.Source == AggregationSourceExternal
}

func (t BarType) IsInternallyAggregated() bool {
	return t.Source == AggregationSourceInternal
}

func (t BarType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *BarType) UnmarshalText(text []byte) error {
	parsed, err := ParseBarType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t BarType) Fields() []zap.Field {
	return []zap.Field{
		zap.String("instrument_id", t.InstrumentId.String()),
		zap.String("spec", t.Spec.String()),
		zap.String("source", t.Source.String()),
	}
}
