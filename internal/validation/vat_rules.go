package validation

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/Jagbo/zenrent-sub000/internal/categorizer"
	"github.com/Jagbo/zenrent-sub000/internal/currency"
	"github.com/Jagbo/zenrent-sub000/internal/models"
)

// periodKeyPattern accepts monthly (25M1..25M12), quarterly (25C1..25C4) and
// annual (25A0) period keys.
var periodKeyPattern = regexp.MustCompile(`^\d{2}(M([1-9]|1[0-2])|C[1-4]|A0)$`)

func nonNegative(value decimal.Decimal, field, message, code string) models.ValidationResult {
	if value.IsNegative() {
		return models.Fail(field, message, code)
	}
	return models.OK()
}

func vatRules(code currency.Code) []Rule[models.VATReturnPayload] {
	return []Rule[models.VATReturnPayload]{
		{
			ID:          "vat-001",
			Name:        "Period Key Format",
			Description: "Validates that the period key is in the correct format",
			Field:       "periodKey",
			Severity:    SeverityError,
			Validate: func(p *models.VATReturnPayload, _ *models.FinancialData) models.ValidationResult {
				if !periodKeyPattern.MatchString(p.PeriodKey) {
					return models.Fail("periodKey",
						fmt.Sprintf("Period key (%s) must be a monthly, quarterly or annual period code (e.g. 25C2)", p.PeriodKey),
						"INVALID_PERIOD_KEY_FORMAT")
				}
				return models.OK()
			},
		},
		{
			ID:          "vat-002",
			Name:        "VAT Due Sales Calculation",
			Description: "Validates that VAT due on sales is calculated correctly",
			Field:       "vatDueSales",
			Severity:    SeverityError,
			Validate: func(p *models.VATReturnPayload, data *models.FinancialData) models.ValidationResult {
				result := nonNegative(p.VATDueSales, "vatDueSales",
					"VAT due on sales cannot be negative", "NEGATIVE_VAT_DUE_SALES")
				if data == nil {
					return result
				}
				for i := range data.Transactions {
					tx := &data.Transactions[i]
					if tx.VATAmount != nil && tx.VATAmount.IsNegative() && categorizer.IsVATIncome(tx.Category) {
						result.Merge(models.Fail(
							fmt.Sprintf("transactions[%s].vatAmount", tx.ID),
							fmt.Sprintf("Transaction %s has a negative VAT amount on an income category", tx.ID),
							"NEGATIVE_VALUE"))
					}
				}
				return result
			},
		},
		{
			ID:          "vat-003",
			Name:        "VAT Due Acquisitions Calculation",
			Description: "Validates that VAT due on acquisitions is calculated correctly",
			Field:       "vatDueAcquisitions",
			Severity:    SeverityError,
			Validate: func(p *models.VATReturnPayload, _ *models.FinancialData) models.ValidationResult {
				return nonNegative(p.VATDueAcquisitions, "vatDueAcquisitions",
					"VAT due on acquisitions cannot be negative", "NEGATIVE_VAT_DUE_ACQUISITIONS")
			},
		},
		{
			ID:          "vat-004",
			Name:        "Total VAT Due Calculation",
			Description: "Validates that total VAT due is the sum of VAT due on sales and acquisitions",
			Field:       "totalVatDue",
			Severity:    SeverityError,
			Validate: func(p *models.VATReturnPayload, _ *models.FinancialData) models.ValidationResult {
				expected := currency.Add(p.VATDueSales, p.VATDueAcquisitions, code)
				if !currency.Equals(expected, p.TotalVATDue, code) {
					return models.Fail("totalVatDue",
						fmt.Sprintf("Total VAT due (%s) should equal the sum of VAT due on sales (%s) and VAT due on acquisitions (%s)",
							p.TotalVATDue, p.VATDueSales, p.VATDueAcquisitions),
						"INVALID_TOTAL_VAT_DUE")
				}
				return models.OK()
			},
		},
		{
			ID:          "vat-005",
			Name:        "VAT Reclaimed Calculation",
			Description: "Validates that VAT reclaimed is non-negative",
			Field:       "vatReclaimedCurrPeriod",
			Severity:    SeverityError,
			Validate: func(p *models.VATReturnPayload, _ *models.FinancialData) models.ValidationResult {
				return nonNegative(p.VATReclaimedCurrPeriod, "vatReclaimedCurrPeriod",
					"VAT reclaimed cannot be negative", "NEGATIVE_VAT_RECLAIMED")
			},
		},
		{
			ID:          "vat-006",
			Name:        "Net VAT Due Calculation",
			Description: "Validates that net VAT due is calculated correctly",
			Field:       "netVatDue",
			Severity:    SeverityError,
			Validate: func(p *models.VATReturnPayload, _ *models.FinancialData) models.ValidationResult {
				expected := currency.Subtract(p.TotalVATDue, p.VATReclaimedCurrPeriod, code)
				if expected.IsNegative() {
					expected = decimal.Zero
				}
				if !currency.Equals(expected, p.NetVATDue, code) {
					return models.Fail("netVatDue",
						fmt.Sprintf("Net VAT due (%s) should equal total VAT due (%s) minus VAT reclaimed (%s), floored at zero",
							p.NetVATDue, p.TotalVATDue, p.VATReclaimedCurrPeriod),
						"INVALID_NET_VAT_DUE")
				}
				return models.OK()
			},
		},
		{
			ID:          "vat-007",
			Name:        "Total Value Sales Calculation",
			Description: "Validates that total value of sales is non-negative",
			Field:       "totalValueSalesExVAT",
			Severity:    SeverityError,
			Validate: func(p *models.VATReturnPayload, _ *models.FinancialData) models.ValidationResult {
				return nonNegative(p.TotalValueSalesExVAT, "totalValueSalesExVAT",
					"Total value of sales cannot be negative", "NEGATIVE_TOTAL_VALUE_SALES")
			},
		},
		{
			ID:          "vat-008",
			Name:        "Total Value Purchases Calculation",
			Description: "Validates that total value of purchases is non-negative",
			Field:       "totalValuePurchasesExVAT",
			Severity:    SeverityError,
			Validate: func(p *models.VATReturnPayload, _ *models.FinancialData) models.ValidationResult {
				return nonNegative(p.TotalValuePurchasesExVAT, "totalValuePurchasesExVAT",
					"Total value of purchases cannot be negative", "NEGATIVE_TOTAL_VALUE_PURCHASES")
			},
		},
		{
			ID:          "vat-009",
			Name:        "Total Value Goods Supplied Calculation",
			Description: "Validates that total value of goods supplied is non-negative",
			Field:       "totalValueGoodsSuppliedExVAT",
			Severity:    SeverityError,
			Validate: func(p *models.VATReturnPayload, _ *models.FinancialData) models.ValidationResult {
				return nonNegative(p.TotalValueGoodsSuppliedExVAT, "totalValueGoodsSuppliedExVAT",
					"Total value of goods supplied cannot be negative", "NEGATIVE_TOTAL_VALUE_GOODS_SUPPLIED")
			},
		},
		{
			ID:          "vat-010",
			Name:        "Total Value Acquisitions Calculation",
			Description: "Validates that total value of acquisitions is non-negative",
			Field:       "totalAcquisitionsExVAT",
			Severity:    SeverityError,
			Validate: func(p *models.VATReturnPayload, _ *models.FinancialData) models.ValidationResult {
				return nonNegative(p.TotalAcquisitionsExVAT, "totalAcquisitionsExVAT",
					"Total value of acquisitions cannot be negative", "NEGATIVE_TOTAL_VALUE_ACQUISITIONS")
			},
		},
		{
			ID:          "vat-011",
			Name:        "Finalised Flag",
			Description: "Validates that the finalised flag is set",
			Field:       "finalised",
			Severity:    SeverityError,
			Validate: func(p *models.VATReturnPayload, _ *models.FinancialData) models.ValidationResult {
				if !p.Finalised {
					return models.Fail("finalised",
						"VAT return must be finalised before submission", "VAT_RETURN_NOT_FINALISED")
				}
				return models.OK()
			},
		},
		{
			ID:          "vat-012",
			Name:        "VAT Flat Rate Scheme Calculation",
			Description: "Validates VAT calculations for flat rate scheme users",
			Severity:    SeverityWarning,
			Validate: func(p *models.VATReturnPayload, data *models.FinancialData) models.ValidationResult {
				if data == nil || !isFlatRateScheme(data) {
					return models.OK()
				}
				if data.VATFlatRate == nil || data.VATFlatRate.IsZero() {
					return models.Warn("vatDueSales",
						"Flat rate percentage is 0, cannot validate flat rate scheme calculation",
						"FLAT_RATE_PERCENTAGE_ZERO")
				}
				return models.Warn("vatDueSales",
					fmt.Sprintf("Ensure VAT due on sales is calculated using the flat rate percentage of %s%%", data.VATFlatRate),
					"FLAT_RATE_CALCULATION_CHECK")
			},
		},
		{
			ID:          "vat-013",
			Name:        "Reverse Charge VAT",
			Description: "Validates reverse charge VAT calculations",
			Severity:    SeverityWarning,
			Validate: func(p *models.VATReturnPayload, data *models.FinancialData) models.ValidationResult {
				if data == nil {
					return models.OK()
				}
				hasReverseCharge := false
				for i := range data.Transactions {
					if data.Transactions[i].MetaBool(categorizer.MetaReverseCharge) {
						hasReverseCharge = true
						break
					}
				}
				if !hasReverseCharge || p.VATDueAcquisitions.IsPositive() {
					return models.OK()
				}
				return models.Warn("vatDueAcquisitions",
					"Reverse charge transactions detected, but VAT due on acquisitions is zero",
					"REVERSE_CHARGE_VAT_CHECK")
			},
		},
		{
			ID:          "vat-014",
			Name:        "Digital Links Compliance",
			Description: "Validates compliance with digital links requirements",
			Severity:    SeverityWarning,
			Validate: func(_ *models.VATReturnPayload, _ *models.FinancialData) models.ValidationResult {
				return models.Warn("general",
					"Ensure digital links are maintained throughout the VAT calculation process in compliance with MTD requirements",
					"DIGITAL_LINKS_REMINDER")
			},
		},
		{
			ID:          "vat-015",
			Name:        "VAT Control Points",
			Description: "Validates VAT control points for data integrity",
			Severity:    SeverityWarning,
			Validate: func(_ *models.VATReturnPayload, _ *models.FinancialData) models.ValidationResult {
				return models.Warn("general",
					"Ensure VAT control points are in place to maintain data integrity throughout the VAT return process",
					"VAT_CONTROL_POINTS_REMINDER")
			},
		},
	}
}

func isFlatRateScheme(data *models.FinancialData) bool {
	switch data.VATScheme {
	case "flat rate", "flat_rate", "Flat Rate":
		return true
	}
	return false
}
