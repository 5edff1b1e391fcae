// Package validation implements the declarative rule engine that checks
// transformed payloads against HMRC requirements. Each payload type has an
// ordered rule set; rules are independent and a panic in one rule is
// contained and reported as a validation error rather than aborting the run.
package validation

import (
	"fmt"

	"github.com/Jagbo/zenrent-sub000/internal/currency"
	"github.com/Jagbo/zenrent-sub000/internal/models"
)

// Severity determines whether a failing rule blocks submission.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Rule is a single declarative check against a payload. Validate receives the
// payload and, for cross-validation rules, the original financial data, which
// may be nil.
type Rule[T any] struct {
	ID          string
	Name        string
	Description string
	Field       string
	Severity    Severity
	Validate    func(payload *T, data *models.FinancialData) models.ValidationResult
}

// Run applies every rule in order and folds the outcomes into one result.
// Errors from warning-severity rules are downgraded to warnings. A panicking
// rule contributes a VALIDATION_ERROR instead of crashing the run.
func Run[T any](payload *T, rules []Rule[T], data *models.FinancialData) models.ValidationResult {
	result := models.OK()

	for _, rule := range rules {
		ruleResult := runRule(payload, rule, data)

		if !ruleResult.Valid && rule.Severity == SeverityWarning {
			ruleResult.Warnings = append(ruleResult.Warnings, ruleResult.Errors...)
			ruleResult.Errors = nil
			ruleResult.Valid = true
		}

		result.Merge(ruleResult)
	}

	return result
}

func runRule[T any](payload *T, rule Rule[T], data *models.FinancialData) (result models.ValidationResult) {
	defer func() {
		if r := recover(); r != nil {
			field := rule.Field
			if field == "" {
				field = "general"
			}
			result = models.Fail(field,
				fmt.Sprintf("Validation error: %v", r),
				"VALIDATION_ERROR")
		}
	}()
	return rule.Validate(payload, data)
}

// Validator holds the prebuilt rule sets for all three payload types.
type Validator struct {
	code      currency.Code
	vatRules  []Rule[models.VATReturnPayload]
	propRules []Rule[models.PropertyIncomePayload]
	saRules   []Rule[models.SelfAssessmentPayload]
}

// NewValidator builds a Validator whose numeric comparisons use the given
// currency's precision.
func NewValidator(code currency.Code) *Validator {
	return &Validator{
		code:      code,
		vatRules:  vatRules(code),
		propRules: propertyRules(code),
		saRules:   selfAssessmentRules(code),
	}
}

// ValidateVATReturn checks a VAT return payload. data enables the
// cross-validation rules and may be nil.
func (v *Validator) ValidateVATReturn(payload *models.VATReturnPayload, data *models.FinancialData) models.ValidationResult {
	return Run(payload, v.vatRules, data)
}

// ValidatePropertyIncome checks a property income payload.
func (v *Validator) ValidatePropertyIncome(payload *models.PropertyIncomePayload, data *models.FinancialData) models.ValidationResult {
	return Run(payload, v.propRules, data)
}

// ValidateSelfAssessment checks a Self Assessment payload.
func (v *Validator) ValidateSelfAssessment(payload *models.SelfAssessmentPayload, data *models.FinancialData) models.ValidationResult {
	return Run(payload, v.saRules, data)
}
