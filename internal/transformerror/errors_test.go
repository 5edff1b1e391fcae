package transformerror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jagbo/zenrent-sub000/internal/currency"
	"github.com/Jagbo/zenrent-sub000/internal/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{"nil", nil, UnknownError},
		{"division by zero sentinel", currency.ErrDivisionByZero, CalculationError},
		{"wrapped division by zero", fmt.Errorf("building payload: %w", currency.ErrDivisionByZero), CalculationError},
		{"missing field", errors.New("required field userId is missing"), MissingRequiredField},
		{"date format", errors.New("invalid date \"01/04/2025\""), DateFormatError},
		{"period", errors.New("start date after end of period"), InvalidPeriod},
		{"date range", errors.New("invalid date range: start after end"), InvalidPeriod},
		{"negative", errors.New("amount is negative"), NegativeValue},
		{"threshold", errors.New("limit exceeded for box 5"), ThresholdExceeded},
		{"unsupported", errors.New("payload type not supported"), UnsupportedType},
		{"invalid data", errors.New("invalid input record"), InvalidData},
		{"unknown", errors.New("something odd happened"), UnknownError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestClassify_TransformationError(t *testing.T) {
	te := &TransformationError{Type: ThresholdExceeded, Message: "over the line"}
	assert.Equal(t, ThresholdExceeded, Classify(te))

	wrapped := fmt.Errorf("outer: %w", te)
	assert.Equal(t, ThresholdExceeded, Classify(wrapped))
}

func TestUserMessageAndCategory(t *testing.T) {
	for _, typ := range []ErrorType{
		InvalidData, MissingRequiredField, CalculationError, DateFormatError,
		InvalidPeriod, NegativeValue, ThresholdExceeded, ValidationError,
		TransformationFailed, UnsupportedType, UnknownError,
	} {
		assert.NotEmpty(t, UserMessage(typ), "every error type has a user message")
		assert.NotEmpty(t, CategoryOf(typ), "every error type has a category")
		assert.NotEmpty(t, RecoveryActionsFor(typ), "every error type has recovery actions")
	}

	assert.Equal(t, CategoryValidation, CategoryOf(ValidationError))
	assert.Equal(t, CategoryCalc, CategoryOf(CalculationError))
	assert.Equal(t, []RecoveryAction{CorrectFormat}, RecoveryActionsFor(DateFormatError))
}

func TestSuggestRecoveryProcedures(t *testing.T) {
	te := &TransformationError{
		Type:            CalculationError,
		RecoveryActions: RecoveryActionsFor(CalculationError),
	}

	steps := SuggestRecoveryProcedures(te)
	require.Len(t, steps, 2)
	assert.Equal(t, Recalculate, steps[0].Action)
	assert.Equal(t, ManualEntry, steps[1].Action)
	for _, step := range steps {
		assert.NotEmpty(t, step.Description)
	}
}

func TestNewErrorResponse(t *testing.T) {
	te := &TransformationError{
		Type:            ValidationError,
		UserMessage:     UserMessage(ValidationError),
		RecoveryActions: RecoveryActionsFor(ValidationError),
		RequestID:       "transform-abc",
		Details:         map[string]interface{}{"transformationType": "vat"},
	}

	resp := NewErrorResponse(te)
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, ValidationError, resp.Code)
	assert.Equal(t, "transform-abc", resp.RequestID)
	assert.Equal(t, CorrectData, resp.RecoveryAction, "first recovery action is the primary suggestion")
	assert.Equal(t, te.UserMessage, resp.Message)
}

func TestNewErrorResponse_NoActions(t *testing.T) {
	resp := NewErrorResponse(&TransformationError{Type: UnknownError})
	assert.Equal(t, ContactSupport, resp.RecoveryAction)
}

func TestTransformationErrorImplementsError(t *testing.T) {
	var err error = &TransformationError{Message: "boom"}
	assert.Equal(t, "boom", err.Error())
}

func TestValidationDetails(t *testing.T) {
	result := models.ValidationResult{
		Valid:  false,
		Errors: []models.ValidationIssue{{Field: "netVatDue", Code: "INVALID_NET_VAT_DUE"}},
	}

	details := validationDetails(result, models.PayloadVAT)
	assert.Equal(t, "vat", details["transformationType"])
	assert.Equal(t, result.Errors, details["validationErrors"])
	assert.Equal(t, []models.ValidationIssue{}, details["validationWarnings"], "nil warnings normalize to empty")
}
