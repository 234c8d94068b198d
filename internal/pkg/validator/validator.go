package validator

import (
	"regexp"
	"strings"
	"time"
)

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Numeric validation
var numericRegex = regexp.MustCompile(`^[0-9]+$`)

func IsNumeric(s string) bool {
	return numericRegex.MatchString(s)
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}

// IsDayMonthYearDate parses a date string in "DD-MM-YYYY" format.
func IsDayMonthYearDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("02-01-2006", dateStr)
	return date, err == nil
}

// IsISODate parses a date string in "YYYY-MM-DD" format.
func IsISODate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}
