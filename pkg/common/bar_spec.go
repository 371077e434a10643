package common

import (
	"cmp"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const barSpecificationFields = 3

// BarSpecification describes how bars are aggregated: every Step units of Aggregation, built
// from PriceType quotes. It is comparable and can be used as a map key.
type BarSpecification struct {
	Step        int
	Aggregation BarAggregation
	PriceType   PriceType
}

func NewBarSpecification(step int, aggregation BarAggregation, priceType PriceType) (BarSpecification, error) {
	if step <= 0 {
		return BarSpecification{}, fmt.Errorf("step must be positive, got %d: %w", step, ErrValidation)
	}
	if !aggregation.IsValid() {
		return BarSpecification{}, fmt.Errorf("invalid bar aggregation %d: %w", int(aggregation), ErrValidation)
	}
	if !priceType.IsValid() {
		return BarSpecification{}, fmt.Errorf("invalid price type %d: %w", int(priceType), ErrValidation)
	}
	return BarSpecification{Step: step, Aggregation: aggregation, PriceType: priceType}, nil
}

func MustBarSpecification(step int, aggregation BarAggregation, priceType PriceType) BarSpecification {
	spec, err := NewBarSpecification(step, aggregation, priceType)
	if err != nil {
		panic(err)
	}
	return spec
}

// ParseBarSpecification parses "<step>-<AGGREGATION>-<PRICE_TYPE>", e.g. "1-MINUTE-BID".
func ParseBarSpecification(text string) (BarSpecification, error) {
	fields := strings.Split(text, "-")
	if len(fields) != barSpecificationFields {
		return BarSpecification{}, fmt.Errorf("bar specification %q must have %d fields, got %d: %w",
			text, barSpecificationFields, len(fields), ErrParse)
	}
	return parseBarSpecificationFields(text, fields[0], fields[1], fields[2])
}

func MustParseBarSpecification(text string) BarSpecification {
	spec, err := ParseBarSpecification(text)
	if err != nil {
		panic(err)
	}
	return spec
}

func parseBarSpecificationFields(text, stepField, aggregationField, priceTypeField string) (BarSpecification, error) {
	step, err := parseStep(stepField)
	if err != nil {
		return BarSpecification{}, fmt.Errorf("bar specification %q: %w", text, err)
	}
	aggregation, err := ParseBarAggregation(aggregationField)
	if err != nil {
		return BarSpecification{}, fmt.Errorf("bar specification %q: %w", text, err)
	}
	priceType, err := ParsePriceType(priceTypeField)
	if err != nil {
		return BarSpecification{}, fmt.Errorf("bar specification %q: %w", text, err)
	}
	return BarSpecification{Step: step, Aggregation: aggregation, PriceType: priceType}, nil
}

// parseStep accepts a positive base-10 integer without sign or leading zeros.
func parseStep(field string) (int, error) {
	if field == "" {
		return 0, fmt.Errorf("empty step: %w", ErrParse)
	}
	for _, c := range field {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("step %q is not a positive integer: %w", field, ErrParse)
		}
	}
	if field[0] == '0' {
		return 0, fmt.Errorf("step %q must be positive without leading zeros: %w", field, ErrParse)
	}
	step, err := strconv.Atoi(field)
	if err != nil {
		return 0, fmt.Errorf("step %q out of range: %w", field, ErrParse)
	}
	return step, nil
}

func (s BarSpecification) String() string {
	return strconv.Itoa(s.Step) + "-" + s.Aggregation.String() + "-" + s.PriceType.String()
}

// Compare orders by step, then aggregation, then price type.
func (s BarSpecification) Compare(o BarSpecification) int {
	if c := cmp.Compare(s.Step, o.Step); c != 0 {
		return c
	}
	if c := cmp.Compare(s.Aggregation, o.Aggregation); c != 0 {
		return c
	}
	return cmp.Compare(s.PriceType, o.PriceType)
}

func (s BarSpecification) Less(o BarSpecification) bool {
	return s.Compare(o) < 0
}

func (s BarSpecification) IsTimeAggregated() bool {
	return s.Aggregation.IsTimeAggregated()
}

func (s BarSpecification) IsThresholdAggregated() bool {
	return s.Aggregation.IsThresholdAggregated()
}

func (s BarSpecification) IsInformationAggregated() bool {
	return s.Aggregation.IsInformationAggregated()
}

// Duration is the fixed interval covered by one bar of a time aggregated specification.
func (s BarSpecification) Duration() (time.Duration, error) {
	unit, ok := s.Aggregation.unit()
	if !ok {
		return 0, fmt.Errorf("bar specification %s has no fixed duration: %w", s, ErrValidation)
	}
	if int64(s.Step) > math.MaxInt64/int64(unit) {
		return 0, fmt.Errorf("bar specification %s duration overflows: %w", s, ErrValidation)
	}
	return time.Duration(s.Step) * unit, nil
}

func (s BarSpecification) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *BarSpecification) UnmarshalText(text []byte) error {
	parsed, err := ParseBarSpecification(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
