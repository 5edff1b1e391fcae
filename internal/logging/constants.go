package logging

// Standardized field names for structured logging.
// These constants ensure consistency across the application's log output,
// making logs easier to parse, filter, and analyze.
const (
	FieldTransactionID = "transaction_id"
	FieldUserID        = "user_id"
	FieldPropertyID    = "property_id"
	FieldCategory      = "category"
	FieldPayloadType   = "payload_type"
	FieldPeriodKey     = "period_key"
	FieldTaxYear       = "tax_year"
	FieldRequestID     = "request_id"
	FieldErrorType     = "error_type"
	FieldRuleID        = "rule_id"
	FieldReason        = "reason"
	FieldOperation     = "operation"
	FieldStatus        = "status"
	FieldError         = "error"
	FieldDuration      = "duration_ms"
	FieldCount         = "count"
	FieldInputFile     = "input_file"
	FieldOutputFile    = "output_file"
)
