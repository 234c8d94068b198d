package ingest

import "errors"

var (
	ErrMissingColumn = errors.New("required column missing from input")
	ErrEmptyInput    = errors.New("input has no header row")
)
