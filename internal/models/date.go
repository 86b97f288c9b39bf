package models

import (
	"fmt"
	"regexp"
	"time"
)

// DateLayout is the form-facing date format (ДД.ММ.ГГГГ).
const DateLayout = "02.01.2006"

var datePattern = regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}$`)

// ValidateDate checks that the value is a real calendar date in the exact
// DD.MM.YYYY form the presentation boundary exchanges.
func ValidateDate(value string) error {
	if !datePattern.MatchString(value) {
		return fmt.Errorf("date %q is not in DD.MM.YYYY format", value)
	}
	if _, err := time.Parse(DateLayout, value); err != nil {
		return fmt.Errorf("date %q is not a valid calendar date", value)
	}
	return nil
}

// ValidationError is a user-facing input error: the operation is aborted and
// nothing is written to the store.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
