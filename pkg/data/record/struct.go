package record

import (
	"fmt"
	"strconv"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/DevStar234/nautilus-trader/pkg/common"
)

// ToStruct converts the bar record into a protobuf Struct. Timestamps are rendered as decimal
// strings because Struct numbers are float64 and cannot hold every nanosecond value.
func ToStruct(bar common.Bar) (*structpb.Struct, error) {
	record := bar.ToRecord()
	record[common.RecordKeyTsEvent] = strconv.FormatInt(bar.TsEvent, 10)
	record[common.RecordKeyTsInit] = strconv.FormatInt(bar.TsInit, 10)

	s, err := structpb.NewStruct(record)
	if err != nil {
		return nil, fmt.Errorf("unable to convert bar %s: %w", bar, err)
	}
	return s, nil
}

func FromStruct(s *structpb.Struct, options ...common.BarOption) (common.Bar, error) {
	if s == nil {
		return common.Bar{}, fmt.Errorf("bar struct is nil: %w", common.ErrValidation)
	}
	return common.BarFromRecord(s.AsMap(), options...)
}
