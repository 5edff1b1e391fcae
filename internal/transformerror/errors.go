// Package transformerror classifies transformation failures, attaches
// user-facing messages and recovery advice, and records them for audit.
package transformerror

import (
	"errors"
	"strings"
	"time"

	"github.com/Jagbo/zenrent-sub000/internal/currency"
	"github.com/Jagbo/zenrent-sub000/internal/models"
)

// ErrorType identifies what went wrong during a transformation.
type ErrorType string

const (
	InvalidData          ErrorType = "invalid_data"
	MissingRequiredField ErrorType = "missing_required_field"
	CalculationError     ErrorType = "calculation_error"
	DateFormatError      ErrorType = "date_format_error"
	InvalidPeriod        ErrorType = "invalid_period"
	NegativeValue        ErrorType = "negative_value"
	ThresholdExceeded    ErrorType = "threshold_exceeded"
	ValidationError      ErrorType = "validation_error"
	TransformationFailed ErrorType = "transformation_failed"
	UnsupportedType      ErrorType = "unsupported_type"
	UnknownError         ErrorType = "unknown_error"
)

// Category groups error types for reporting.
type Category string

const (
	CategoryData       Category = "data_error"
	CategoryCalc       Category = "calculation_error"
	CategoryFormat     Category = "format_error"
	CategoryThreshold  Category = "threshold_error"
	CategoryValidation Category = "validation_error"
	CategorySystem     Category = "system_error"
	CategoryUnknown    Category = "unknown_error"
)

// RecoveryAction is a step a user can take to resolve an error.
type RecoveryAction string

const (
	CorrectData        RecoveryAction = "correct_data"
	ProvideMissingData RecoveryAction = "provide_missing_data"
	Recalculate        RecoveryAction = "recalculate"
	ManualEntry        RecoveryAction = "manual_entry"
	CorrectFormat      RecoveryAction = "correct_format"
	CorrectPeriod      RecoveryAction = "correct_period"
	ReviewThresholds   RecoveryAction = "review_thresholds"
	Retry              RecoveryAction = "retry"
	ContactSupport     RecoveryAction = "contact_support"
)

var userMessages = map[ErrorType]string{
	InvalidData:          "The financial data provided is invalid or incomplete. Please review and correct the data.",
	MissingRequiredField: "Required information is missing from your financial data. Please provide all required fields.",
	CalculationError:     "There was an error in the tax calculations. Please check your financial figures.",
	DateFormatError:      "One or more dates are in an incorrect format. Please use the YYYY-MM-DD format.",
	InvalidPeriod:        "The reporting period is invalid. Please check the start and end dates.",
	NegativeValue:        "Negative values were found where positive values are required. Please review your financial data.",
	ThresholdExceeded:    "One or more values exceed the allowed thresholds for HMRC submissions.",
	ValidationError:      "The transformed data failed validation checks. Please review the specific validation errors.",
	TransformationFailed: "The transformation process failed. Please try again or contact support.",
	UnsupportedType:      "The requested transformation type is not supported.",
	UnknownError:         "An unexpected error occurred during transformation. Please try again or contact support.",
}

var recoveryActionsByType = map[ErrorType][]RecoveryAction{
	InvalidData:          {CorrectData, ContactSupport},
	MissingRequiredField: {ProvideMissingData},
	CalculationError:     {Recalculate, ManualEntry},
	DateFormatError:      {CorrectFormat},
	InvalidPeriod:        {CorrectPeriod},
	NegativeValue:        {CorrectData},
	ThresholdExceeded:    {ReviewThresholds, ContactSupport},
	ValidationError:      {CorrectData, ContactSupport},
	TransformationFailed: {Retry, ContactSupport},
	UnsupportedType:      {ContactSupport},
	UnknownError:         {Retry, ContactSupport},
}

var categoryByType = map[ErrorType]Category{
	InvalidData:          CategoryData,
	MissingRequiredField: CategoryData,
	CalculationError:     CategoryCalc,
	DateFormatError:      CategoryFormat,
	InvalidPeriod:        CategoryFormat,
	NegativeValue:        CategoryData,
	ThresholdExceeded:    CategoryThreshold,
	ValidationError:      CategoryValidation,
	TransformationFailed: CategorySystem,
	UnsupportedType:      CategorySystem,
	UnknownError:         CategoryUnknown,
}

var recoveryDescriptions = map[RecoveryAction]string{
	CorrectData:        "Review and correct the financial data that failed validation.",
	ProvideMissingData: "Add the missing required information to your financial data.",
	Recalculate:        "Recalculate the financial figures to ensure they are accurate.",
	ManualEntry:        "Manually enter the correct values instead of using automatic calculation.",
	CorrectFormat:      "Fix the format of the data, especially dates (use YYYY-MM-DD).",
	CorrectPeriod:      "Ensure the reporting period dates are valid and in the correct order.",
	ReviewThresholds:   "Check if any values exceed HMRC thresholds and adjust if necessary.",
	Retry:              "Try the transformation again after making corrections.",
	ContactSupport:     "Contact support for assistance with this error.",
}

// UserMessage returns the user-facing message for an error type.
func UserMessage(t ErrorType) string {
	if msg, ok := userMessages[t]; ok {
		return msg
	}
	return userMessages[UnknownError]
}

// CategoryOf returns the reporting category for an error type.
func CategoryOf(t ErrorType) Category {
	if c, ok := categoryByType[t]; ok {
		return c
	}
	return CategoryUnknown
}

// RecoveryActionsFor returns the ordered recovery actions for an error type,
// most useful first.
func RecoveryActionsFor(t ErrorType) []RecoveryAction {
	if a, ok := recoveryActionsByType[t]; ok {
		return a
	}
	return recoveryActionsByType[UnknownError]
}

// classifierRule maps message substrings to an error type. Rules are checked
// in order; the first rule with any matching substring wins.
type classifierRule struct {
	typ        ErrorType
	substrings []string
}

var classifierRules = []classifierRule{
	{MissingRequiredField, []string{"required field", "missing"}},
	{CalculationError, []string{"calculation", "math", "division by zero"}},
	{InvalidPeriod, []string{"period", "date range"}},
	{DateFormatError, []string{"date format", "invalid date"}},
	{NegativeValue, []string{"negative", "less than zero"}},
	{ThresholdExceeded, []string{"threshold", "limit exceeded"}},
	{TransformationFailed, []string{"transformation failed", "transform error"}},
	{UnsupportedType, []string{"unsupported type", "not supported"}},
	{InvalidData, []string{"invalid data", "invalid input"}},
}

// Classify determines the error type for an arbitrary Go error.
func Classify(err error) ErrorType {
	if err == nil {
		return UnknownError
	}
	if errors.Is(err, currency.ErrDivisionByZero) {
		return CalculationError
	}

	var te *TransformationError
	if errors.As(err, &te) {
		return te.Type
	}

	msg := strings.ToLower(err.Error())
	for _, rule := range classifierRules {
		for _, s := range rule.substrings {
			if strings.Contains(msg, s) {
				return rule.typ
			}
		}
	}
	return UnknownError
}

// TransformationError is a fully classified transformation failure. It
// implements error so it can flow through ordinary error returns.
type TransformationError struct {
	Type            ErrorType              `json:"type"`
	Message         string                 `json:"message"`
	UserMessage     string                 `json:"userMessage"`
	Category        Category               `json:"category"`
	RecoveryActions []RecoveryAction       `json:"recoveryActions"`
	Timestamp       time.Time              `json:"timestamp"`
	Details         map[string]interface{} `json:"details,omitempty"`
	UserID          string                 `json:"userId,omitempty"`
	RequestID       string                 `json:"requestId"`
}

func (e *TransformationError) Error() string {
	return e.Message
}

// RecoveryStep pairs a recovery action with its description.
type RecoveryStep struct {
	Action      RecoveryAction `json:"action"`
	Description string         `json:"description"`
}

// SuggestRecoveryProcedures expands an error's recovery actions into
// user-facing steps, preserving order.
func SuggestRecoveryProcedures(err *TransformationError) []RecoveryStep {
	steps := make([]RecoveryStep, 0, len(err.RecoveryActions))
	for _, action := range err.RecoveryActions {
		desc, ok := recoveryDescriptions[action]
		if !ok {
			desc = "Take appropriate action based on the error details."
		}
		steps = append(steps, RecoveryStep{Action: action, Description: desc})
	}
	return steps
}

// ErrorResponse is the outward-facing shape of a transformation failure.
type ErrorResponse struct {
	Status         string                 `json:"status"`
	Message        string                 `json:"message"`
	Code           ErrorType              `json:"code"`
	RequestID      string                 `json:"requestId"`
	RecoveryAction RecoveryAction         `json:"recoveryAction,omitempty"`
	Details        map[string]interface{} `json:"details,omitempty"`
}

// NewErrorResponse builds the response envelope for a classified error. The
// first recovery action is surfaced as the primary suggestion.
func NewErrorResponse(err *TransformationError) ErrorResponse {
	primary := ContactSupport
	if len(err.RecoveryActions) > 0 {
		primary = err.RecoveryActions[0]
	}
	return ErrorResponse{
		Status:         "error",
		Message:        err.UserMessage,
		Code:           err.Type,
		RequestID:      err.RequestID,
		RecoveryAction: primary,
		Details:        err.Details,
	}
}

// validationDetails builds the detail map recorded for a failed validation.
func validationDetails(result models.ValidationResult, payloadType models.PayloadType) map[string]interface{} {
	warnings := result.Warnings
	if warnings == nil {
		warnings = []models.ValidationIssue{}
	}
	return map[string]interface{}{
		"validationErrors":   result.Errors,
		"validationWarnings": warnings,
		"transformationType": string(payloadType),
	}
}
