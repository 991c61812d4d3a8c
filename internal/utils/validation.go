package utils

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"arrivals.chinatownlogistic.com/internal/models"
)

var (
	// Location codes are short upper-case tags
	validCodePattern = regexp.MustCompile(`^[A-Z]{2,10}$`)

	htmlTagPattern = regexp.MustCompile(`<[^>]*>`)
)

var (
	ErrMissingDate  = errors.New("date is required")
	ErrInvalidDate  = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvertedDate = errors.New("start date is after end date")
)

// ValidateCode checks the shape of a location code before it is looked up.
func ValidateCode(code string) error {
	if code == "" {
		return errors.New("code cannot be empty")
	}
	if !validCodePattern.MatchString(code) {
		return errors.New("code contains invalid characters")
	}
	return nil
}

// ParseDate parses a required YYYY-MM-DD date in zone.
func ParseDate(date string, zone *time.Location) (time.Time, error) {
	if strings.TrimSpace(date) == "" {
		return time.Time{}, ErrMissingDate
	}
	parsed, err := time.ParseInLocation(models.DateLayout, strings.TrimSpace(date), zone)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return parsed, nil
}

// ParseDateRange parses an inclusive start/end pair. Problems are reported per field,
// keyed by startKey and endKey.
func ParseDateRange(start, end, startKey, endKey string, zone *time.Location) (time.Time, time.Time, map[string][]string) {
	fieldErrors := make(map[string][]string)

	startDate, err := ParseDate(start, zone)
	if err != nil {
		fieldErrors[startKey] = append(fieldErrors[startKey], err.Error())
	}
	endDate, err := ParseDate(end, zone)
	if err != nil {
		fieldErrors[endKey] = append(fieldErrors[endKey], err.Error())
	}

	if len(fieldErrors) == 0 && startDate.After(endDate) {
		fieldErrors[startKey] = append(fieldErrors[startKey], ErrInvertedDate.Error())
	}

	return startDate, endDate, fieldErrors
}

// SanitizeInput removes HTML tags and surrounding whitespace.
func SanitizeInput(input string) string {
	return strings.TrimSpace(htmlTagPattern.ReplaceAllString(input, ""))
}
