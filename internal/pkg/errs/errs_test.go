package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"docflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessages(t *testing.T) {
	cause := errors.New("connection reset")

	tests := []struct {
		name     string
		err      error
		sentinel error
		message  string
	}{
		{
			name:     "not found",
			err:      errs.NewObjectNotFoundError("document", "8c1d"),
			sentinel: errs.ErrObjectNotFound,
			message:  "object not found: 8c1d",
		},
		{
			name:     "not found with cause",
			err:      errs.NewObjectNotFoundErrorWithCause("document", "8c1d", cause),
			sentinel: errs.ErrObjectNotFound,
			message:  "object not found: param is: document, ID is: 8c1d (cause: connection reset)",
		},
		{
			name:     "invalid",
			err:      errs.NewValueIsInvalidError("category"),
			sentinel: errs.ErrValueIsInvalid,
			message:  "value is invalid: category",
		},
		{
			name:     "invalid with cause",
			err:      errs.NewValueIsInvalidErrorWithCause("finalAmount", errors.New(`"12,5" is not a decimal amount`)),
			sentinel: errs.ErrValueIsInvalid,
			message:  `value is invalid: finalAmount (cause: "12,5" is not a decimal amount)`,
		},
		{
			name:     "out of range",
			err:      errs.NewValueIsOutOfRangeError("version", 0, 1, 1000),
			sentinel: errs.ErrValueIsOutOfRange,
			message:  "value is invalid: 0 is version, min value is 1, max value is 1000",
		},
		{
			name:     "out of range with cause",
			err:      errs.NewValueIsOutOfRangeErrorWithCause("sortOrder", -1, 0, 99, cause),
			sentinel: errs.ErrValueIsOutOfRange,
			message:  "value is invalid: -1 is sortOrder, min value is 0, max value is 99 (cause: connection reset)",
		},
		{
			name:     "required",
			err:      errs.NewValueIsRequiredError("to"),
			sentinel: errs.ErrValueIsRequired,
			message:  "value is required: to",
		},
		{
			name:     "required with cause",
			err:      errs.NewValueIsRequiredErrorWithCause("lineItems", errors.New("quote has no line items")),
			sentinel: errs.ErrValueIsRequired,
			message:  "value is required: lineItems (cause: quote has no line items)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.message, tt.err.Error())
			require.ErrorIs(t, tt.err, tt.sentinel)
			require.ErrorIs(t, fmt.Errorf("handler: %w", tt.err), tt.sentinel)
		})
	}
}

func TestErrorFields(t *testing.T) {
	notFound := errs.NewObjectNotFoundError("document", 42)
	assert.Equal(t, "document", notFound.ParamName)
	assert.Equal(t, 42, notFound.ID)
	assert.NoError(t, notFound.Cause)
	assert.Equal(t, "object not found: %!s(int=42)", notFound.Error())

	outOfRange := errs.NewValueIsOutOfRangeError("quantity", -3, 0, 1000)
	assert.Equal(t, -3, outOfRange.Value)
	assert.Equal(t, 0, outOfRange.Min)
	assert.Equal(t, 1000, outOfRange.Max)
}

func TestValueIsOutOfRangeError_FlattensNewlines(t *testing.T) {
	err := errs.NewValueIsOutOfRangeError("remark", "first line\nsecond line", 0, 10)
	assert.Contains(t, err.Error(), "first line second line")
	assert.NotContains(t, err.Error(), "\n")
}

func TestErrorsAs(t *testing.T) {
	wrapped := fmt.Errorf("load quote: %w", errs.NewObjectNotFoundError("document", "8c1d"))

	var target *errs.ObjectNotFoundError
	require.ErrorAs(t, wrapped, &target)
	assert.Equal(t, "8c1d", target.ID)
	assert.NotErrorIs(t, wrapped, errs.ErrValueIsInvalid)
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{
		errs.ErrObjectNotFound,
		errs.ErrValueIsInvalid,
		errs.ErrValueIsOutOfRange,
		errs.ErrValueIsRequired,
		errs.ErrTransitionNotAllowed,
		errs.ErrInvariantViolation,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j {
				assert.NotErrorIs(t, a, b)
			}
		}
	}
}
