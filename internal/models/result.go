package models

// ValidationIssue is a single error or warning raised against a payload field.
// Field uses dotted-path notation relative to the payload root.
type ValidationIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// ValidationResult is the outcome of running a rule, or a whole rule set,
// against a payload. Valid is false when Errors is non-empty; warnings never
// affect validity.
type ValidationResult struct {
	Valid    bool              `json:"valid"`
	Errors   []ValidationIssue `json:"errors"`
	Warnings []ValidationIssue `json:"warnings,omitempty"`
}

// OK returns a passing result with no issues.
func OK() ValidationResult {
	return ValidationResult{Valid: true, Errors: []ValidationIssue{}}
}

// Fail returns a failing result carrying a single error.
func Fail(field, message, code string) ValidationResult {
	return ValidationResult{
		Valid:  false,
		Errors: []ValidationIssue{{Field: field, Message: message, Code: code}},
	}
}

// Warn returns a passing result carrying a single warning.
func Warn(field, message, code string) ValidationResult {
	return ValidationResult{
		Valid:    true,
		Errors:   []ValidationIssue{},
		Warnings: []ValidationIssue{{Field: field, Message: message, Code: code}},
	}
}

// Merge folds other into r: errors and warnings are concatenated and validity
// is the conjunction of both results.
func (r *ValidationResult) Merge(other ValidationResult) {
	r.Valid = r.Valid && other.Valid
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// TransformationResult carries a transformed payload together with the
// validation findings produced on the way. Data is always populated, even for
// invalid results, so callers can inspect what was built.
type TransformationResult[T any] struct {
	Data     T                      `json:"data"`
	Valid    bool                   `json:"valid"`
	Errors   []ValidationIssue      `json:"errors"`
	Warnings []ValidationIssue      `json:"warnings,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// AddError appends an error and marks the result invalid.
func (r *TransformationResult[T]) AddError(field, message, code string) {
	r.Errors = append(r.Errors, ValidationIssue{Field: field, Message: message, Code: code})
	r.Valid = false
}

// AddWarning appends a warning without affecting validity.
func (r *TransformationResult[T]) AddWarning(field, message, code string) {
	r.Warnings = append(r.Warnings, ValidationIssue{Field: field, Message: message, Code: code})
}

// MergeValidation folds a validation result into the transformation result.
func (r *TransformationResult[T]) MergeValidation(v ValidationResult) {
	r.Valid = r.Valid && v.Valid
	r.Errors = append(r.Errors, v.Errors...)
	r.Warnings = append(r.Warnings, v.Warnings...)
}
