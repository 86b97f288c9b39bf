package service

import (
	"strconv"
	"strings"

	"frontdesk/internal/models"
)

func requireField(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &models.ValidationError{Field: field, Reason: "is required"}
	}
	return nil
}

func parsePrice(field, text string) (float64, error) {
	price, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || price < 0 {
		return 0, &models.ValidationError{Field: field, Reason: "must be a non-negative number"}
	}
	return price, nil
}

func parseID(field, text string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil || id <= 0 {
		return 0, &models.ValidationError{Field: field, Reason: "must be a positive whole number"}
	}
	return id, nil
}

// parseOptionID extracts the identifier from a picker option. Options are
// rendered as "id - name"; a bare numeric id is accepted too.
func parseOptionID(field, option string) (int64, error) {
	head, _, _ := strings.Cut(option, " - ")
	return parseID(field, head)
}

func validateDateField(field, value string) error {
	if err := models.ValidateDate(value); err != nil {
		return &models.ValidationError{Field: field, Reason: "must be a date in DD.MM.YYYY format"}
	}
	return nil
}
