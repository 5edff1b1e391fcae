// Package models defines the core data structures shared across the
// transformation pipeline: source transactions and properties, HMRC payload
// types, validation results, and transformation options.
package models

import (
	"github.com/shopspring/decimal"
)

func init() {
	// HMRC payloads carry monetary values as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// PayloadType identifies which HMRC submission payload a transformation targets.
type PayloadType string

const (
	PayloadVAT            PayloadType = "vat"
	PayloadPropertyIncome PayloadType = "property_income"
	PayloadSelfAssessment PayloadType = "self_assessment"
)

// FinancialTransaction is a single ledger entry as ingested from the source
// system. Amounts are signed: positive for money in, negative for money out,
// though categorization relies on description and metadata rather than sign.
type FinancialTransaction struct {
	ID          string                 `json:"id" csv:"id"`
	UserID      string                 `json:"userId" csv:"user_id"`
	Amount      decimal.Decimal        `json:"amount" csv:"amount"`
	Description string                 `json:"description" csv:"description"`
	Category    string                 `json:"category" csv:"category"`
	Date        string                 `json:"date" csv:"date"`
	VATAmount   *decimal.Decimal       `json:"vatAmount,omitempty" csv:"vat_amount"`
	VATRate     *decimal.Decimal       `json:"vatRate,omitempty" csv:"vat_rate"`
	PropertyID  string                 `json:"propertyId,omitempty" csv:"property_id"`
	Reference   string                 `json:"reference,omitempty" csv:"reference"`
	Metadata    map[string]interface{} `json:"metadata,omitempty" csv:"-"`
}

// MetaString returns the named metadata entry as a string, or "" when absent
// or of another type.
func (t *FinancialTransaction) MetaString(key string) string {
	if t.Metadata == nil {
		return ""
	}
	if v, ok := t.Metadata[key].(string); ok {
		return v
	}
	return ""
}

// MetaBool returns the named metadata entry as a bool, or false when absent.
func (t *FinancialTransaction) MetaBool(key string) bool {
	if t.Metadata == nil {
		return false
	}
	if v, ok := t.Metadata[key].(bool); ok {
		return v
	}
	return false
}

// MetaDecimal returns the named metadata entry as a decimal. It accepts
// float64, int, string and decimal.Decimal representations, which covers the
// types produced by JSON decoding and by ledger file readers.
func (t *FinancialTransaction) MetaDecimal(key string) (decimal.Decimal, bool) {
	if t.Metadata == nil {
		return decimal.Zero, false
	}
	switch v := t.Metadata[key].(type) {
	case decimal.Decimal:
		return v, true
	case float64:
		return decimal.NewFromFloat(v), true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	}
	return decimal.Zero, false
}

// PropertyDetails describes a rental property owned by the user.
type PropertyDetails struct {
	ID              string                 `json:"id" csv:"id"`
	UserID          string                 `json:"userId" csv:"user_id"`
	Address         string                 `json:"address" csv:"address"`
	Postcode        string                 `json:"postcode" csv:"postcode"`
	PropertyType    string                 `json:"propertyType,omitempty" csv:"property_type"`
	IsCommercial    bool                   `json:"isCommercial,omitempty" csv:"is_commercial"`
	IsFurnished     bool                   `json:"isFurnished,omitempty" csv:"is_furnished"`
	IsMainResidence bool                   `json:"isMainResidence,omitempty" csv:"is_main_residence"`
	PurchaseDate    string                 `json:"purchaseDate,omitempty" csv:"purchase_date"`
	RentalStartDate string                 `json:"rentalStartDate,omitempty" csv:"rental_start_date"`
	Metadata        map[string]interface{} `json:"metadata,omitempty" csv:"-"`
}

// FinancialData is the input to every transformer: the user's transactions for
// a reporting period, the period bounds, and any property records.
type FinancialData struct {
	UserID          string                 `json:"userId"`
	StartDate       string                 `json:"startDate"`
	EndDate         string                 `json:"endDate"`
	Transactions    []FinancialTransaction `json:"transactions"`
	Properties      []PropertyDetails      `json:"properties,omitempty"`
	VATRegistered   bool                   `json:"vatRegistered,omitempty"`
	VATNumber       string                 `json:"vatNumber,omitempty"`
	VATScheme       string                 `json:"vatScheme,omitempty"`
	VATFlatRate     *decimal.Decimal       `json:"vatFlatRate,omitempty"`
	AccountingBasis string                 `json:"accountingBasis,omitempty"`
	Metadata        map[string]interface{} `json:"metadata,omitempty"`
}
