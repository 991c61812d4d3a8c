package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCode(t *testing.T) {
	assert.NoError(t, ValidateCode("VIS"))
	assert.Error(t, ValidateCode(""))
	assert.Error(t, ValidateCode("vis"))
	assert.Error(t, ValidateCode("VIS; DROP TABLE VIS"))
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-03-04", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseDate("", time.UTC)
	assert.ErrorIs(t, err, ErrMissingDate)

	_, err = ParseDate("04/03/2024", time.UTC)
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = ParseDate("2024-02-30", time.UTC)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestParseDateRange(t *testing.T) {
	start, end, fieldErrors := ParseDateRange("2024-03-01", "2024-03-31", "start", "end", time.UTC)
	assert.Empty(t, fieldErrors)
	assert.Equal(t, 1, start.Day())
	assert.Equal(t, 31, end.Day())

	_, _, fieldErrors = ParseDateRange("2024-03-01", "2024-03-01", "start", "end", time.UTC)
	assert.Empty(t, fieldErrors, "single day ranges are allowed")

	_, _, fieldErrors = ParseDateRange("", "nope", "start", "end", time.UTC)
	assert.Equal(t, []string{ErrMissingDate.Error()}, fieldErrors["start"])
	assert.Equal(t, []string{ErrInvalidDate.Error()}, fieldErrors["end"])

	_, _, fieldErrors = ParseDateRange("2024-03-31", "2024-03-01", "start", "end", time.UTC)
	assert.Equal(t, []string{ErrInvertedDate.Error()}, fieldErrors["start"])
}

func TestSanitizeInput(t *testing.T) {
	assert.Equal(t, "Lo Nuestro", SanitizeInput("  <b>Lo Nuestro</b> "))
}
