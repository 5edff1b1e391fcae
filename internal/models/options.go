package models

// TransformationOptions tunes transformer behavior. Zero values are not
// meaningful for every field, so callers should start from
// DefaultTransformationOptions and override as needed.
type TransformationOptions struct {
	// RoundingPrecision is the number of decimal places for submitted values.
	RoundingPrecision int32 `json:"roundingPrecision"`
	// ValidateOutput runs the payload's rule set after transformation.
	ValidateOutput bool `json:"validateOutput"`
	// IncludeNonMandatoryFields builds the optional payload sections
	// (capital allowances, dividends, savings, deductions). When false only
	// the mandatory sections are emitted.
	IncludeNonMandatoryFields bool `json:"includeNonMandatoryFields"`
	// CurrencyCode selects the currency configuration used for arithmetic.
	CurrencyCode string `json:"currencyCode"`
	// RequirePropertyID rejects property transactions without a property
	// reference instead of assigning them to the first property.
	RequirePropertyID bool `json:"requirePropertyId"`
	// Debug enables verbose per-transaction logging.
	Debug bool `json:"debug"`
	// LogErrors records transformation errors to the error store.
	LogErrors bool `json:"logErrors"`
	// UserID overrides the user attributed to logged errors.
	UserID string `json:"userId,omitempty"`
}

// DefaultTransformationOptions returns the options used when a caller passes
// none: two decimal places, GBP, all sections, validation and error logging
// on.
func DefaultTransformationOptions() TransformationOptions {
	return TransformationOptions{
		RoundingPrecision:         2,
		ValidateOutput:            true,
		IncludeNonMandatoryFields: true,
		CurrencyCode:              "GBP",
		RequirePropertyID:         false,
		Debug:                     false,
		LogErrors:                 true,
	}
}
