package common

import "errors"

var (
	// ErrParse marks malformed textual input: wrong field count, unknown enum token or a bad step.
	ErrParse = errors.New("parse error")

	// ErrValidation marks well formed but inconsistent values, such as inverted OHLC prices or
	// records with missing fields.
	ErrValidation = errors.New("validation error")
)
