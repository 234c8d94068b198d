package analytics

import "errors"

var ErrUnknownCategory = errors.New("unknown grouping category")
