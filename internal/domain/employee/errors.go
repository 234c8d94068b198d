package employee

import "errors"

var (
	ErrDuplicateEmpID = errors.New("duplicate employee id")
	ErrNotFound       = errors.New("employee not found")
)
