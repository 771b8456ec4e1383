package models

import (
	"fmt"
	"regexp"
	"time"
)

// Remote timestamps are UTC with or without fractional seconds
const (
	dateLayoutFractional = "2006-01-02T15:04:05.999999999Z"
	dateLayout           = "2006-01-02T15:04:05Z"

	// EndDateLayout is the project creation end date format (no zone suffix)
	EndDateLayout = "2006-01-02T15:04:05.000000"
)

// dateShape rejects forms time.Parse tolerates, such as a comma before the
// fraction or a single-digit hour
var dateShape = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d{1,9})?Z$`)

// ParseDate parses a remote UTC timestamp. An empty value yields nil.
func ParseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if !dateShape.MatchString(value) {
		return nil, fmt.Errorf("invalid date %q: expected YYYY-MM-DDTHH:MM:SS[.ffffff]Z", value)
	}
	for _, layout := range []string{dateLayoutFractional, dateLayout} {
		if t, err := time.Parse(layout, value); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid date %q: expected YYYY-MM-DDTHH:MM:SS[.ffffff]Z", value)
}

// FormatEndDate renders t in UTC using EndDateLayout
func FormatEndDate(t time.Time) string {
	return t.UTC().Format(EndDateLayout)
}
