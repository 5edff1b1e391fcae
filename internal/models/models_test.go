package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMetaString(t *testing.T) {
	tx := FinancialTransaction{Metadata: map[string]interface{}{
		"employerName": "Acme Ltd",
		"count":        3,
	}}

	assert.Equal(t, "Acme Ltd", tx.MetaString("employerName"))
	assert.Equal(t, "", tx.MetaString("count"), "non-string values read as empty")
	assert.Equal(t, "", tx.MetaString("missing"))

	var empty FinancialTransaction
	assert.Equal(t, "", empty.MetaString("anything"))
}

func TestMetaBool(t *testing.T) {
	tx := FinancialTransaction{Metadata: map[string]interface{}{
		"previousTaxYear": true,
		"flag":            "true",
	}}

	assert.True(t, tx.MetaBool("previousTaxYear"))
	assert.False(t, tx.MetaBool("flag"), "string values never read as true")
	assert.False(t, tx.MetaBool("missing"))
}

func TestMetaDecimal(t *testing.T) {
	tx := FinancialTransaction{Metadata: map[string]interface{}{
		"fromJSON":    float64(123.45),
		"fromInt":     200,
		"fromString":  "99.99",
		"fromDecimal": decimal.NewFromInt(7),
		"garbage":     "not-a-number",
	}}

	got, ok := tx.MetaDecimal("fromJSON")
	assert.True(t, ok)
	assert.True(t, got.Equal(decimal.NewFromFloat(123.45)))

	got, ok = tx.MetaDecimal("fromInt")
	assert.True(t, ok)
	assert.True(t, got.Equal(decimal.NewFromInt(200)))

	got, ok = tx.MetaDecimal("fromString")
	assert.True(t, ok)
	assert.True(t, got.Equal(decimal.RequireFromString("99.99")))

	got, ok = tx.MetaDecimal("fromDecimal")
	assert.True(t, ok)
	assert.True(t, got.Equal(decimal.NewFromInt(7)))

	_, ok = tx.MetaDecimal("garbage")
	assert.False(t, ok)

	_, ok = tx.MetaDecimal("missing")
	assert.False(t, ok)
}

func TestPayloadAmountsMarshalAsNumbers(t *testing.T) {
	payload := VATReturnPayload{
		PeriodKey:   "25C2",
		VATDueSales: decimal.RequireFromString("100.50"),
		Finalised:   true,
	}

	out, err := json.Marshal(payload)
	assert.NoError(t, err)
	assert.Contains(t, string(out), `"vatDueSales":100.5`)
	assert.NotContains(t, string(out), `"vatDueSales":"`)
}

func TestValidationResultConstructors(t *testing.T) {
	ok := OK()
	assert.True(t, ok.Valid)
	assert.Empty(t, ok.Errors)

	fail := Fail("periodKey", "bad key", "INVALID_PERIOD_KEY_FORMAT")
	assert.False(t, fail.Valid)
	assert.Len(t, fail.Errors, 1)
	assert.Equal(t, "periodKey", fail.Errors[0].Field)

	warn := Warn("finalised", "check before submitting", "VAT_RETURN_NOT_FINALISED")
	assert.True(t, warn.Valid)
	assert.Empty(t, warn.Errors)
	assert.Len(t, warn.Warnings, 1)
}

func TestValidationResultMerge(t *testing.T) {
	result := OK()
	result.Merge(Warn("a", "warning", "W1"))
	assert.True(t, result.Valid)
	assert.Len(t, result.Warnings, 1)

	result.Merge(Fail("b", "error", "E1"))
	assert.False(t, result.Valid)
	assert.Len(t, result.Errors, 1)

	// Merging a passing result never restores validity.
	result.Merge(OK())
	assert.False(t, result.Valid)
}

func TestTransformationResult(t *testing.T) {
	result := TransformationResult[VATReturnPayload]{Valid: true}

	result.AddWarning("finalised", "warning", "W1")
	assert.True(t, result.Valid)

	result.AddError("periodKey", "error", "E1")
	assert.False(t, result.Valid)
	assert.Len(t, result.Errors, 1)

	other := Fail("netVatDue", "mismatch", "INVALID_NET_VAT_DUE")
	result.MergeValidation(other)
	assert.Len(t, result.Errors, 2)
}

func TestDefaultTransformationOptions(t *testing.T) {
	opts := DefaultTransformationOptions()
	assert.Equal(t, int32(2), opts.RoundingPrecision)
	assert.True(t, opts.ValidateOutput)
	assert.True(t, opts.IncludeNonMandatoryFields)
	assert.Equal(t, "GBP", opts.CurrencyCode)
	assert.False(t, opts.RequirePropertyID)
	assert.True(t, opts.LogErrors)
}
