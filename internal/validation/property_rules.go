package validation

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/Jagbo/zenrent-sub000/internal/categorizer"
	"github.com/Jagbo/zenrent-sub000/internal/currency"
	"github.com/Jagbo/zenrent-sub000/internal/dateutils"
	"github.com/Jagbo/zenrent-sub000/internal/models"
)

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// propertyIncomeAllowanceThreshold is the income level at or below which the
// £1,000 property income allowance removes the reporting obligation.
var propertyIncomeAllowanceThreshold = decimal.NewFromInt(1000)

func propertyRules(code currency.Code) []Rule[models.PropertyIncomePayload] {
	return []Rule[models.PropertyIncomePayload]{
		{
			ID:          "prop-001",
			Name:        "Date Range Format",
			Description: "Validates that the date range is in the correct format",
			Severity:    SeverityError,
			Validate: func(p *models.PropertyIncomePayload, _ *models.FinancialData) models.ValidationResult {
				result := models.OK()
				if !isoDatePattern.MatchString(p.FromDate) {
					result.Merge(models.Fail("fromDate",
						fmt.Sprintf("From date (%s) must be in the format YYYY-MM-DD", p.FromDate),
						"INVALID_FROM_DATE_FORMAT"))
				}
				if !isoDatePattern.MatchString(p.ToDate) {
					result.Merge(models.Fail("toDate",
						fmt.Sprintf("To date (%s) must be in the format YYYY-MM-DD", p.ToDate),
						"INVALID_TO_DATE_FORMAT"))
				}
				return result
			},
		},
		{
			ID:          "prop-002",
			Name:        "Date Range Validity",
			Description: "Validates that the from date is before or equal to the to date",
			Severity:    SeverityError,
			Validate: func(p *models.PropertyIncomePayload, _ *models.FinancialData) models.ValidationResult {
				from, errFrom := dateutils.ParseISO(p.FromDate)
				to, errTo := dateutils.ParseISO(p.ToDate)
				if errFrom != nil || errTo != nil || from.After(to) {
					return models.Fail("dateRange",
						fmt.Sprintf("Date range is invalid: from date (%s) must be before or equal to to date (%s)", p.FromDate, p.ToDate),
						"INVALID_DATE_RANGE")
				}
				return models.OK()
			},
		},
		{
			ID:          "prop-003",
			Name:        "UK Properties Required",
			Description: "Validates that at least one UK property submission is present",
			Field:       "ukProperties",
			Severity:    SeverityError,
			Validate: func(p *models.PropertyIncomePayload, _ *models.FinancialData) models.ValidationResult {
				if len(p.UKProperties.Properties) == 0 {
					return models.Fail("ukProperties.properties",
						"At least one property is required for a property income submission",
						"MISSING_PROPERTIES")
				}
				return models.OK()
			},
		},
		{
			ID:          "prop-004",
			Name:        "Total Income Calculation",
			Description: "Validates that total income equals the sum of all property incomes",
			Field:       "ukProperties.totalIncome",
			Severity:    SeverityError,
			Validate: func(p *models.PropertyIncomePayload, _ *models.FinancialData) models.ValidationResult {
				var parts []decimal.Decimal
				for i := range p.UKProperties.Properties {
					inc := &p.UKProperties.Properties[i].Income
					parts = append(parts, inc.RentIncome, inc.PremiumsOfLeaseGrant, inc.ReversePremiums, inc.OtherPropertyIncome)
				}
				expected := currency.Sum(parts, code)
				if !currency.Equals(expected, p.UKProperties.TotalIncome, code) {
					return models.Fail("ukProperties.totalIncome",
						fmt.Sprintf("Total income (%s) should equal the sum of all property incomes (%s)",
							p.UKProperties.TotalIncome, expected),
						"INCONSISTENT_TOTAL_INCOME")
				}
				return models.OK()
			},
		},
		{
			ID:          "prop-005",
			Name:        "Total Expenses Calculation",
			Description: "Validates that total expenses equals the sum of all property expenses and allowances",
			Field:       "ukProperties.totalExpenses",
			Severity:    SeverityError,
			Validate: func(p *models.PropertyIncomePayload, _ *models.FinancialData) models.ValidationResult {
				var parts []decimal.Decimal
				for i := range p.UKProperties.Properties {
					exp := &p.UKProperties.Properties[i].Expenses
					alw := &p.UKProperties.Properties[i].Allowances
					parts = append(parts,
						exp.PremisesRunningCosts, exp.RepairsAndMaintenance, exp.FinancialCosts,
						exp.ProfessionalFees, exp.CostOfServices, exp.Other,
						alw.AnnualInvestmentAllowance, alw.BusinessPremisesRenovationAllowance,
						alw.OtherCapitalAllowance, alw.WearAndTearAllowance, alw.PropertyAllowance)
				}
				expected := currency.Sum(parts, code)
				if !currency.Equals(expected, p.UKProperties.TotalExpenses, code) {
					return models.Fail("ukProperties.totalExpenses",
						fmt.Sprintf("Total expenses (%s) should equal the sum of all property expenses and allowances (%s)",
							p.UKProperties.TotalExpenses, expected),
						"INCONSISTENT_TOTAL_EXPENSES")
				}
				return models.OK()
			},
		},
		{
			ID:          "prop-006",
			Name:        "Net Profit Calculation",
			Description: "Validates that net profit is calculated correctly",
			Field:       "ukProperties.netProfit",
			Severity:    SeverityError,
			Validate: func(p *models.PropertyIncomePayload, _ *models.FinancialData) models.ValidationResult {
				expected := decimal.Zero
				if p.UKProperties.TotalIncome.GreaterThan(p.UKProperties.TotalExpenses) {
					expected = currency.Subtract(p.UKProperties.TotalIncome, p.UKProperties.TotalExpenses, code)
				}
				if !currency.Equals(expected, p.UKProperties.NetProfit, code) {
					return models.Fail("ukProperties.netProfit",
						fmt.Sprintf("Net profit (%s) should equal total income (%s) minus total expenses (%s) if positive, otherwise 0",
							p.UKProperties.NetProfit, p.UKProperties.TotalIncome, p.UKProperties.TotalExpenses),
						"INVALID_NET_PROFIT")
				}
				return models.OK()
			},
		},
		{
			ID:          "prop-007",
			Name:        "Net Loss Calculation",
			Description: "Validates that net loss is calculated correctly",
			Field:       "ukProperties.netLoss",
			Severity:    SeverityError,
			Validate: func(p *models.PropertyIncomePayload, _ *models.FinancialData) models.ValidationResult {
				expected := decimal.Zero
				if p.UKProperties.TotalExpenses.GreaterThan(p.UKProperties.TotalIncome) {
					expected = currency.Subtract(p.UKProperties.TotalExpenses, p.UKProperties.TotalIncome, code)
				}
				if !currency.Equals(expected, p.UKProperties.NetLoss, code) {
					return models.Fail("ukProperties.netLoss",
						fmt.Sprintf("Net loss (%s) should equal total expenses (%s) minus total income (%s) if positive, otherwise 0",
							p.UKProperties.NetLoss, p.UKProperties.TotalExpenses, p.UKProperties.TotalIncome),
						"INVALID_NET_LOSS")
				}
				return models.OK()
			},
		},
		{
			ID:          "prop-008",
			Name:        "Property IDs Required",
			Description: "Validates that each property has an ID",
			Severity:    SeverityError,
			Validate: func(p *models.PropertyIncomePayload, _ *models.FinancialData) models.ValidationResult {
				missing := 0
				for i := range p.UKProperties.Properties {
					if p.UKProperties.Properties[i].PropertyID == "" {
						missing++
					}
				}
				if missing > 0 {
					return models.Fail("ukProperties.properties",
						fmt.Sprintf("%d properties are missing property IDs", missing),
						"MISSING_PROPERTY_IDS")
				}
				return models.OK()
			},
		},
		{
			ID:          "prop-009",
			Name:        "Property Income Non-negative",
			Description: "Validates that per-property income fields are non-negative",
			Severity:    SeverityError,
			Validate: func(p *models.PropertyIncomePayload, _ *models.FinancialData) models.ValidationResult {
				result := models.OK()
				for i := range p.UKProperties.Properties {
					inc := &p.UKProperties.Properties[i].Income
					fields := []struct {
						name  string
						value decimal.Decimal
					}{
						{"rentIncome", inc.RentIncome},
						{"premiumsOfLeaseGrant", inc.PremiumsOfLeaseGrant},
						{"reversePremiums", inc.ReversePremiums},
						{"otherPropertyIncome", inc.OtherPropertyIncome},
					}
					for _, f := range fields {
						if f.value.IsNegative() {
							result.Merge(models.Fail(
								fmt.Sprintf("ukProperties.properties[%d].income.%s", i, f.name),
								fmt.Sprintf("Income field %s cannot be negative", f.name),
								"NEGATIVE_PROPERTY_INCOME"))
						}
					}
				}
				return result
			},
		},
		{
			ID:          "prop-010",
			Name:        "Property Expenses Non-negative",
			Description: "Validates that per-property expense fields are non-negative",
			Severity:    SeverityError,
			Validate: func(p *models.PropertyIncomePayload, _ *models.FinancialData) models.ValidationResult {
				result := models.OK()
				for i := range p.UKProperties.Properties {
					exp := &p.UKProperties.Properties[i].Expenses
					fields := []struct {
						name  string
						value decimal.Decimal
					}{
						{"premisesRunningCosts", exp.PremisesRunningCosts},
						{"repairsAndMaintenance", exp.RepairsAndMaintenance},
						{"financialCosts", exp.FinancialCosts},
						{"professionalFees", exp.ProfessionalFees},
						{"costOfServices", exp.CostOfServices},
						{"other", exp.Other},
					}
					for _, f := range fields {
						if f.value.IsNegative() {
							result.Merge(models.Fail(
								fmt.Sprintf("ukProperties.properties[%d].expenses.%s", i, f.name),
								fmt.Sprintf("Expense field %s cannot be negative", f.name),
								"NEGATIVE_PROPERTY_EXPENSES"))
						}
					}
				}
				return result
			},
		},
		{
			ID:          "prop-011",
			Name:        "Allowances Validation",
			Description: "Validates that allowances are non-negative",
			Severity:    SeverityError,
			Validate: func(p *models.PropertyIncomePayload, _ *models.FinancialData) models.ValidationResult {
				result := models.OK()
				for i := range p.UKProperties.Properties {
					alw := &p.UKProperties.Properties[i].Allowances
					checks := []struct {
						field string
						value decimal.Decimal
						label string
						code  string
					}{
						{"annualInvestmentAllowance", alw.AnnualInvestmentAllowance, "Annual investment allowance", "NEGATIVE_ANNUAL_INVESTMENT_ALLOWANCE"},
						{"businessPremisesRenovationAllowance", alw.BusinessPremisesRenovationAllowance, "Business premises renovation allowance", "NEGATIVE_BUSINESS_PREMISES_RENOVATION_ALLOWANCE"},
						{"otherCapitalAllowance", alw.OtherCapitalAllowance, "Other capital allowance", "NEGATIVE_OTHER_CAPITAL_ALLOWANCE"},
						{"wearAndTearAllowance", alw.WearAndTearAllowance, "Wear and tear allowance", "NEGATIVE_WEAR_AND_TEAR_ALLOWANCE"},
						{"propertyAllowance", alw.PropertyAllowance, "Property allowance", "NEGATIVE_PROPERTY_ALLOWANCE"},
					}
					for _, c := range checks {
						if c.value.IsNegative() {
							result.Merge(models.Fail(
								fmt.Sprintf("ukProperties.properties[%d].allowances.%s", i, c.field),
								fmt.Sprintf("%s cannot be negative", c.label),
								c.code))
						}
					}
				}
				return result
			},
		},
		{
			ID:          "prop-012",
			Name:        "Furnished Holiday Lettings",
			Description: "Validates furnished holiday lettings criteria",
			Severity:    SeverityWarning,
			Validate: func(_ *models.PropertyIncomePayload, data *models.FinancialData) models.ValidationResult {
				if data == nil {
					return models.OK()
				}
				for i := range data.Properties {
					p := &data.Properties[i]
					if p.IsFurnished && metaBool(p.Metadata, categorizer.MetaHolidayLetting) {
						return models.Warn("general",
							"Ensure furnished holiday lettings meet all HMRC criteria: available for letting for at least 210 days, actually let for at least 105 days, and not used for long-term occupation (more than 31 days) for more than 155 days",
							"FHL_CRITERIA_REMINDER")
					}
				}
				return models.OK()
			},
		},
		{
			ID:          "prop-013",
			Name:        "Rent a Room Relief",
			Description: "Validates rent a room relief criteria",
			Severity:    SeverityWarning,
			Validate: func(_ *models.PropertyIncomePayload, data *models.FinancialData) models.ValidationResult {
				if data == nil {
					return models.OK()
				}
				for i := range data.Properties {
					if data.Properties[i].IsMainResidence {
						return models.Warn("general",
							"If you are letting a room in your main residence, you may be eligible for Rent a Room Relief up to £7,500 per year. Ensure this is correctly applied if applicable.",
							"RENT_A_ROOM_RELIEF_REMINDER")
					}
				}
				return models.OK()
			},
		},
		{
			ID:          "prop-014",
			Name:        "Property Income Allowance",
			Description: "Validates property income allowance criteria",
			Severity:    SeverityWarning,
			Validate: func(p *models.PropertyIncomePayload, _ *models.FinancialData) models.ValidationResult {
				if p.UKProperties.TotalIncome.LessThanOrEqual(propertyIncomeAllowanceThreshold) {
					return models.Warn("propertyAllowance",
						"Your property income is £1,000 or less. You may be eligible for the £1,000 property income allowance, which means you don't need to report this income to HMRC.",
						"PROPERTY_INCOME_ALLOWANCE_ELIGIBLE")
				}
				return models.Warn("propertyAllowance",
					"Your property income is more than £1,000. You may be eligible to claim the £1,000 property income allowance as a deduction instead of actual expenses if this is more beneficial.",
					"PROPERTY_INCOME_ALLOWANCE_OPTION")
			},
		},
		{
			ID:          "prop-015",
			Name:        "Finance Cost Restriction",
			Description: "Validates finance cost restriction for residential property",
			Severity:    SeverityWarning,
			Validate: func(_ *models.PropertyIncomePayload, data *models.FinancialData) models.ValidationResult {
				if data == nil {
					return models.OK()
				}
				for i := range data.Properties {
					p := &data.Properties[i]
					if p.PropertyType == "residential" && !p.IsMainResidence {
						return models.Warn("general",
							"For residential properties, mortgage interest and other finance costs are restricted to basic rate tax relief only. Ensure these costs are correctly reported as a basic rate tax reduction rather than a deductible expense.",
							"FINANCE_COST_RESTRICTION_REMINDER")
					}
				}
				return models.OK()
			},
		},
	}
}

func metaBool(meta map[string]interface{}, key string) bool {
	if meta == nil {
		return false
	}
	v, ok := meta[key].(bool)
	return ok && v
}
