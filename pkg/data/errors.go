package data

import "errors"

var (
	// ErrMissingColumn is returned when a required column is absent from the header.
	ErrMissingColumn = errors.New("data: missing required column")
	// ErrNoHeader is returned for an empty tabular source.
	ErrNoHeader = errors.New("data: source has no header row")
	// ErrBadLookup is returned when the category lookup cannot be decoded.
	ErrBadLookup = errors.New("data: malformed category lookup")
)
