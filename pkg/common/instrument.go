package common

import (
	"cmp"
	"fmt"
	"strings"
)

// InstrumentId identifies a traded instrument as "{symbol}.{venue}", e.g. "AUD/USD.SIM".
// Symbols may contain '.', '/' and '-'; the venue never contains '.' or '-'.
type InstrumentId struct {
	Symbol string
	Venue  string
}

func NewInstrumentId(symbol, venue string) (InstrumentId, error) {
	if symbol == "" {
		return InstrumentId{}, fmt.Errorf("empty symbol: %w", ErrValidation)
	}
	if venue == "" || strings.ContainsAny(venue, ".-") {
		return InstrumentId{}, fmt.Errorf("invalid venue %q: %w", venue, ErrValidation)
	}
	return InstrumentId{Symbol: symbol, Venue: venue}, nil
}

// ParseInstrumentId splits on the last '.' of text.
func ParseInstrumentId(text string) (InstrumentId, error) {
	idx := strings.LastIndexByte(text, '.')
	if idx < 0 {
		return InstrumentId{}, fmt.Errorf("instrument id %q has no venue separator: %w", text, ErrParse)
	}
	symbol, venue := text[:idx], text[idx+1:]
	if symbol == "" || venue == "" {
		return InstrumentId{}, fmt.Errorf("instrument id %q needs both symbol and venue: %w", text, ErrParse)
	}
	if strings.ContainsRune(venue, '-') {
		return InstrumentId{}, fmt.Errorf("instrument id %q has '-' in venue %q: %w", text, venue, ErrParse)
	}
	return InstrumentId{Symbol: symbol, Venue: venue}, nil
}

func MustParseInstrumentId(text string) InstrumentId {
	id, err := ParseInstrumentId(text)
	if err != nil {
		panic(err)
	}
	return id
}

func (i InstrumentId) String() string {
	return i.Symbol + "." + i.Venue
}

func (i InstrumentId) Compare(o InstrumentId) int {
	return cmp.Compare(i.String(), o.String())
}

func (i InstrumentId) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

func (i *InstrumentId) UnmarshalText(text []byte) error {
	parsed, err := ParseInstrumentId(string(text))
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}
