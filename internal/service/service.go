// Package service exposes the unified transformation entry point: it runs a
// transformer, validates the output against the matching rule set, and routes
// failures through the error handler.
package service

import (
	"fmt"

	"github.com/Jagbo/zenrent-sub000/internal/logging"
	"github.com/Jagbo/zenrent-sub000/internal/models"
	"github.com/Jagbo/zenrent-sub000/internal/transformer"
	"github.com/Jagbo/zenrent-sub000/internal/transformerror"
	"github.com/Jagbo/zenrent-sub000/internal/validation"
)

// Service coordinates transformation, validation and error recording for the
// three supported payload types.
type Service struct {
	opts      models.TransformationOptions
	vat       *transformer.VATTransformer
	property  *transformer.PropertyIncomeTransformer
	sa        *transformer.SelfAssessmentTransformer
	validator *validation.Validator
	handler   *transformerror.Handler
	logger    logging.Logger
}

// New builds a Service from fully constructed collaborators.
func New(
	opts models.TransformationOptions,
	vat *transformer.VATTransformer,
	property *transformer.PropertyIncomeTransformer,
	sa *transformer.SelfAssessmentTransformer,
	validator *validation.Validator,
	handler *transformerror.Handler,
	logger logging.Logger,
) *Service {
	if logger == nil {
		logger = &logging.MockLogger{}
	}
	return &Service{
		opts:      opts,
		vat:       vat,
		property:  property,
		sa:        sa,
		validator: validator,
		handler:   handler,
		logger:    logger,
	}
}

// Transform dispatches to the typed transformation for the given payload
// type. An unrecognized type yields an invalid result carrying the error
// tracking ID in its metadata.
func (s *Service) Transform(data *models.FinancialData, typ models.PayloadType) models.TransformationResult[any] {
	switch typ {
	case models.PayloadVAT:
		return erase(s.TransformVAT(data))
	case models.PayloadPropertyIncome:
		return erase(s.TransformPropertyIncome(data))
	case models.PayloadSelfAssessment:
		return erase(s.TransformSelfAssessment(data))
	}

	txErr := s.handler.CreateTransformationError(
		&transformerror.TransformationError{
			Type:    transformerror.UnsupportedType,
			Message: fmt.Sprintf("unsupported transformation type: %s", typ),
		},
		typ,
		s.userID(data),
		map[string]interface{}{"attemptedType": string(typ)},
	)
	if s.opts.LogErrors {
		s.handler.LogError(txErr)
	}

	return models.TransformationResult[any]{
		Valid: false,
		Errors: []models.ValidationIssue{{
			Field:   "type",
			Message: txErr.UserMessage,
			Code:    string(txErr.Type),
		}},
		Metadata: map[string]interface{}{
			"errorId":         txErr.RequestID,
			"recoveryActions": txErr.RecoveryActions,
		},
	}
}

// TransformVAT builds and validates a VAT return.
func (s *Service) TransformVAT(data *models.FinancialData) (result models.TransformationResult[models.VATReturnPayload]) {
	defer recoverPanic(s, &result, models.PayloadVAT, s.userID(data))
	result = s.vat.Transform(data)
	validateResult(s, &result, models.PayloadVAT, data, func() models.ValidationResult {
		return s.validator.ValidateVATReturn(&result.Data, data)
	})
	return result
}

// TransformPropertyIncome builds and validates a property income submission.
func (s *Service) TransformPropertyIncome(data *models.FinancialData) (result models.TransformationResult[models.PropertyIncomePayload]) {
	defer recoverPanic(s, &result, models.PayloadPropertyIncome, s.userID(data))
	result = s.property.Transform(data)
	validateResult(s, &result, models.PayloadPropertyIncome, data, func() models.ValidationResult {
		return s.validator.ValidatePropertyIncome(&result.Data, data)
	})
	return result
}

// TransformSelfAssessment builds and validates a Self Assessment submission.
func (s *Service) TransformSelfAssessment(data *models.FinancialData) (result models.TransformationResult[models.SelfAssessmentPayload]) {
	defer recoverPanic(s, &result, models.PayloadSelfAssessment, s.userID(data))
	result = s.sa.Transform(data)
	validateResult(s, &result, models.PayloadSelfAssessment, data, func() models.ValidationResult {
		return s.validator.ValidateSelfAssessment(&result.Data, data)
	})
	return result
}

func (s *Service) userID(data *models.FinancialData) string {
	if s.opts.UserID != "" {
		return s.opts.UserID
	}
	if data != nil {
		return data.UserID
	}
	return ""
}

// validateResult runs the payload's rule set on a structurally valid result
// and folds the findings in. Validation failures are recorded through the
// error handler so the caller gets a tracking ID in the result metadata.
func validateResult[T any](s *Service, result *models.TransformationResult[T], typ models.PayloadType, data *models.FinancialData, validate func() models.ValidationResult) {
	if !result.Valid || !s.opts.ValidateOutput {
		return
	}

	findings := validate()
	if !findings.Valid {
		validationErr := s.handler.CreateErrorFromValidationResult(findings, typ, s.userID(data))
		if s.opts.LogErrors {
			s.handler.LogError(validationErr)
		}
		result.Valid = false
		result.Errors = append(result.Errors, findings.Errors...)
		if result.Metadata == nil {
			result.Metadata = map[string]interface{}{}
		}
		result.Metadata["errorId"] = validationErr.RequestID
		result.Metadata["recoveryActions"] = validationErr.RecoveryActions
	}
	result.Warnings = append(result.Warnings, findings.Warnings...)
}

// recoverPanic converts a transformer panic into an invalid result with a
// classified, recorded error.
func recoverPanic[T any](s *Service, result *models.TransformationResult[T], typ models.PayloadType, userID string) {
	r := recover()
	if r == nil {
		return
	}

	var err error
	if e, ok := r.(error); ok {
		err = e
	} else {
		err = fmt.Errorf("%v", r)
	}

	details := map[string]interface{}{}
	if s.opts.Debug {
		details["panic"] = fmt.Sprintf("%v", r)
	}
	txErr := s.handler.CreateTransformationError(err, typ, userID, details)
	if s.opts.LogErrors {
		s.handler.LogError(txErr)
	}

	*result = models.TransformationResult[T]{
		Valid: false,
		Errors: []models.ValidationIssue{{
			Field:   "general",
			Message: txErr.UserMessage,
			Code:    string(txErr.Type),
		}},
		Metadata: map[string]interface{}{
			"errorId":         txErr.RequestID,
			"recoveryActions": txErr.RecoveryActions,
		},
	}
}

// erase converts a typed result to the any-typed form returned by Transform.
func erase[T any](r models.TransformationResult[T]) models.TransformationResult[any] {
	return models.TransformationResult[any]{
		Data:     r.Data,
		Valid:    r.Valid,
		Errors:   r.Errors,
		Warnings: r.Warnings,
		Metadata: r.Metadata,
	}
}
