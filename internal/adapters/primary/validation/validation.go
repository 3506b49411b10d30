package validation

import (
	"strconv"

	apperrors "github.com/pixwingai/pixwing-site/internal/core/errors"
)

// MaxDimension is the largest pixel size accepted for a viewport or a chart.
const MaxDimension = 8192

// Validator collects field errors for one request or message
type Validator struct {
	errors *apperrors.ValidationErrors
}

// NewValidator creates a new validator
func NewValidator() *Validator {
	return &Validator{
		errors: apperrors.NewValidationErrors(),
	}
}

// HasErrors returns true if there are validation errors
func (v *Validator) HasErrors() bool {
	return v.errors.HasErrors()
}

// Errors returns the validation errors
func (v *Validator) Errors() *apperrors.ValidationErrors {
	return v.errors
}

// Err returns the collected errors, or nil when there are none.
func (v *Validator) Err() error {
	if !v.errors.HasErrors() {
		return nil
	}
	return v.errors
}

// Range validates integer is within range
func (v *Validator) Range(field string, value, min, max int) *Validator {
	if value < min || value > max {
		v.errors.Add(field, rangeMessage(min, max))
	}
	return v
}

// Int parses raw as an integer in [min, max]. An empty raw yields fallback;
// an invalid one records an error and also yields fallback.
func (v *Validator) Int(field, raw string, fallback, min, max int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < min || n > max {
		v.errors.Add(field, rangeMessage(min, max))
		return fallback
	}
	return n
}

// Dimension parses a pixel size in [0, MaxDimension].
func (v *Validator) Dimension(field, raw string, fallback int) int {
	return v.Int(field, raw, fallback, 0, MaxDimension)
}

func rangeMessage(min, max int) string {
	return "must be an integer between " + strconv.Itoa(min) + " and " + strconv.Itoa(max)
}
