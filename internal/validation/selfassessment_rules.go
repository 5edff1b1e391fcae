package validation

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/Jagbo/zenrent-sub000/internal/currency"
	"github.com/Jagbo/zenrent-sub000/internal/dateutils"
	"github.com/Jagbo/zenrent-sub000/internal/models"
)

var taxYearPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// childBenefitChargeThreshold is the adjusted net income above which the High
// Income Child Benefit Charge may apply.
var childBenefitChargeThreshold = decimal.NewFromInt(50000)

func selfAssessmentRules(code currency.Code) []Rule[models.SelfAssessmentPayload] {
	return []Rule[models.SelfAssessmentPayload]{
		{
			ID:          "sa-001",
			Name:        "Tax Year Format",
			Description: "Validates that the tax year is in the correct format",
			Field:       "taxYear",
			Severity:    SeverityError,
			Validate: func(p *models.SelfAssessmentPayload, _ *models.FinancialData) models.ValidationResult {
				if !taxYearPattern.MatchString(p.TaxYear) {
					return models.Fail("taxYear",
						fmt.Sprintf("Tax year (%s) must be in the format YYYY-YY", p.TaxYear),
						"INVALID_TAX_YEAR_FORMAT")
				}
				return models.OK()
			},
		},
		{
			ID:          "sa-002",
			Name:        "Income Required",
			Description: "Validates that at least one income type is provided",
			Field:       "income",
			Severity:    SeverityError,
			Validate: func(p *models.SelfAssessmentPayload, _ *models.FinancialData) models.ValidationResult {
				hasIncome := len(p.Income.Employment) > 0 ||
					len(p.Income.SelfEmployment) > 0 ||
					p.Income.UKProperty != nil ||
					p.Income.Dividends != nil ||
					p.Income.Savings != nil
				if !hasIncome {
					return models.Fail("income",
						"At least one income type must be provided", "MISSING_INCOME")
				}
				return models.OK()
			},
		},
		{
			ID:          "sa-003",
			Name:        "Employment Income Validation",
			Description: "Validates employment income data",
			Field:       "income.employment",
			Severity:    SeverityError,
			Validate: func(p *models.SelfAssessmentPayload, _ *models.FinancialData) models.ValidationResult {
				result := models.OK()
				for i, emp := range p.Income.Employment {
					if emp.EmployerName == "" {
						result.Merge(models.Fail(
							fmt.Sprintf("income.employment[%d].employerName", i),
							"Employer name is required", "MISSING_EMPLOYER_NAME"))
					}
					if emp.TaxablePayToDate.IsNegative() {
						result.Merge(models.Fail(
							fmt.Sprintf("income.employment[%d].taxablePayToDate", i),
							"Taxable pay cannot be negative", "NEGATIVE_TAXABLE_PAY"))
					}
					if emp.TotalTaxToDate.IsNegative() {
						result.Merge(models.Fail(
							fmt.Sprintf("income.employment[%d].totalTaxToDate", i),
							"Total tax cannot be negative", "NEGATIVE_TOTAL_TAX"))
					}
				}
				return result
			},
		},
		{
			ID:          "sa-004",
			Name:        "Self Employment Income Validation",
			Description: "Validates self employment income data",
			Field:       "income.selfEmployment",
			Severity:    SeverityError,
			Validate: func(p *models.SelfAssessmentPayload, _ *models.FinancialData) models.ValidationResult {
				result := models.OK()
				for i, biz := range p.Income.SelfEmployment {
					if biz.BusinessName == "" {
						result.Merge(models.Fail(
							fmt.Sprintf("income.selfEmployment[%d].businessName", i),
							"Business name is required", "MISSING_BUSINESS_NAME"))
					}
					if biz.CommencementDate == "" {
						result.Merge(models.Fail(
							fmt.Sprintf("income.selfEmployment[%d].commencementDate", i),
							"Commencement date is required", "MISSING_COMMENCEMENT_DATE"))
					}
					if biz.AccountingPeriodStartDate == "" {
						result.Merge(models.Fail(
							fmt.Sprintf("income.selfEmployment[%d].accountingPeriodStartDate", i),
							"Accounting period start date is required", "MISSING_ACCOUNTING_PERIOD_START_DATE"))
					}
					if biz.AccountingPeriodEndDate == "" {
						result.Merge(models.Fail(
							fmt.Sprintf("income.selfEmployment[%d].accountingPeriodEndDate", i),
							"Accounting period end date is required", "MISSING_ACCOUNTING_PERIOD_END_DATE"))
					}
					if biz.Income.IsNegative() {
						result.Merge(models.Fail(
							fmt.Sprintf("income.selfEmployment[%d].income", i),
							"Income cannot be negative", "NEGATIVE_INCOME"))
					}
				}
				return result
			},
		},
		{
			ID:          "sa-005",
			Name:        "UK Property Income Validation",
			Description: "Validates UK property income data",
			Field:       "income.ukProperty",
			Severity:    SeverityError,
			Validate: func(p *models.SelfAssessmentPayload, _ *models.FinancialData) models.ValidationResult {
				if p.Income.UKProperty == nil {
					return models.OK()
				}
				result := models.OK()
				prop := p.Income.UKProperty
				if prop.FromDate == "" {
					result.Merge(models.Fail("income.ukProperty.fromDate",
						"From date is required", "MISSING_FROM_DATE"))
				}
				if prop.ToDate == "" {
					result.Merge(models.Fail("income.ukProperty.toDate",
						"To date is required", "MISSING_TO_DATE"))
				}
				if prop.UKProperties.TotalIncome.IsNegative() {
					result.Merge(models.Fail("income.ukProperty.ukProperties.totalIncome",
						"Total income cannot be negative", "NEGATIVE_TOTAL_INCOME"))
				}
				if prop.UKProperties.TotalExpenses.IsNegative() {
					result.Merge(models.Fail("income.ukProperty.ukProperties.totalExpenses",
						"Total expenses cannot be negative", "NEGATIVE_TOTAL_EXPENSES"))
				}
				return result
			},
		},
		{
			ID:          "sa-006",
			Name:        "Dividends Income Validation",
			Description: "Validates dividends income data",
			Field:       "income.dividends",
			Severity:    SeverityError,
			Validate: func(p *models.SelfAssessmentPayload, _ *models.FinancialData) models.ValidationResult {
				if p.Income.Dividends == nil {
					return models.OK()
				}
				result := models.OK()
				if p.Income.Dividends.UKDividends.IsNegative() {
					result.Merge(models.Fail("income.dividends.ukDividends",
						"UK dividends cannot be negative", "NEGATIVE_UK_DIVIDENDS"))
				}
				if p.Income.Dividends.OtherUKDividends.IsNegative() {
					result.Merge(models.Fail("income.dividends.otherUkDividends",
						"Other UK dividends cannot be negative", "NEGATIVE_OTHER_UK_DIVIDENDS"))
				}
				return result
			},
		},
		{
			ID:          "sa-007",
			Name:        "Savings Income Validation",
			Description: "Validates savings income data",
			Field:       "income.savings",
			Severity:    SeverityError,
			Validate: func(p *models.SelfAssessmentPayload, _ *models.FinancialData) models.ValidationResult {
				if p.Income.Savings == nil {
					return models.OK()
				}
				result := models.OK()
				if p.Income.Savings.UKInterest.IsNegative() {
					result.Merge(models.Fail("income.savings.ukInterest",
						"UK interest cannot be negative", "NEGATIVE_UK_INTEREST"))
				}
				if p.Income.Savings.ForeignInterest.IsNegative() {
					result.Merge(models.Fail("income.savings.foreignInterest",
						"Foreign interest cannot be negative", "NEGATIVE_FOREIGN_INTEREST"))
				}
				return result
			},
		},
		{
			ID:          "sa-008",
			Name:        "Gift Aid Validation",
			Description: "Validates gift aid data",
			Field:       "deductions.giftAid",
			Severity:    SeverityError,
			Validate: func(p *models.SelfAssessmentPayload, _ *models.FinancialData) models.ValidationResult {
				if p.Deductions == nil || p.Deductions.GiftAid == nil {
					return models.OK()
				}
				result := models.OK()
				ga := p.Deductions.GiftAid
				if ga.GiftAidPayments.IsNegative() {
					result.Merge(models.Fail("deductions.giftAid.giftAidPayments",
						"Gift aid payments cannot be negative", "NEGATIVE_GIFT_AID_PAYMENTS"))
				}
				if ga.GiftAidTreatedAsPaidInPreviousTaxYear.IsNegative() {
					result.Merge(models.Fail("deductions.giftAid.giftAidTreatedAsPaidInPreviousTaxYear",
						"Gift aid treated as paid in previous tax year cannot be negative", "NEGATIVE_GIFT_AID_PREVIOUS_YEAR"))
				}
				if ga.GiftAidTreatedAsPaidInCurrentTaxYear.IsNegative() {
					result.Merge(models.Fail("deductions.giftAid.giftAidTreatedAsPaidInCurrentTaxYear",
						"Gift aid treated as paid in current tax year cannot be negative", "NEGATIVE_GIFT_AID_CURRENT_YEAR"))
				}
				return result
			},
		},
		{
			ID:          "sa-009",
			Name:        "Pension Contributions Validation",
			Description: "Validates pension contributions data",
			Field:       "deductions.pensionContributions",
			Severity:    SeverityError,
			Validate: func(p *models.SelfAssessmentPayload, _ *models.FinancialData) models.ValidationResult {
				if p.Deductions == nil || p.Deductions.PensionContributions == nil {
					return models.OK()
				}
				result := models.OK()
				pc := p.Deductions.PensionContributions
				if pc.PensionSchemeOverseasTransfers.IsNegative() {
					result.Merge(models.Fail("deductions.pensionContributions.pensionSchemeOverseasTransfers",
						"Pension scheme overseas transfers cannot be negative", "NEGATIVE_PENSION_SCHEME_OVERSEAS_TRANSFERS"))
				}
				if pc.PensionContributionsAmount.IsNegative() {
					result.Merge(models.Fail("deductions.pensionContributions.pensionContributionsAmount",
						"Pension contributions amount cannot be negative", "NEGATIVE_PENSION_CONTRIBUTIONS_AMOUNT"))
				}
				return result
			},
		},
		{
			ID:          "sa-010",
			Name:        "Tax Year Consistency",
			Description: "Validates that the tax year is consistent with the data",
			Severity:    SeverityWarning,
			Validate: func(p *models.SelfAssessmentPayload, data *models.FinancialData) models.ValidationResult {
				if data == nil || !taxYearPattern.MatchString(p.TaxYear) {
					return models.OK()
				}
				start, errStart := dateutils.ParseISO(data.StartDate)
				end, errEnd := dateutils.ParseISO(data.EndDate)
				if errStart != nil || errEnd != nil {
					return models.OK()
				}
				taxYearStart, taxYearEnd := dateutils.TaxYearBounds(start)
				if start.Before(taxYearStart) || end.After(taxYearEnd) {
					return models.Warn("taxYear",
						fmt.Sprintf("The financial data dates (%s to %s) do not fall entirely within the specified tax year (%s to %s)",
							data.StartDate, data.EndDate,
							dateutils.ToISO(taxYearStart), dateutils.ToISO(taxYearEnd)),
						"TAX_YEAR_DATE_MISMATCH")
				}
				return models.OK()
			},
		},
		{
			ID:          "sa-011",
			Name:        "Personal Allowance",
			Description: "Validates personal allowance considerations",
			Severity:    SeverityWarning,
			Validate: func(_ *models.SelfAssessmentPayload, _ *models.FinancialData) models.ValidationResult {
				return models.Warn("general",
					"Ensure you have considered your personal allowance when calculating your tax liability. For high earners (over £100,000), the personal allowance is reduced by £1 for every £2 of income above this threshold.",
					"PERSONAL_ALLOWANCE_REMINDER")
			},
		},
		{
			ID:          "sa-012",
			Name:        "High Income Child Benefit Charge",
			Description: "Validates high income child benefit charge considerations",
			Severity:    SeverityWarning,
			Validate: func(p *models.SelfAssessmentPayload, _ *models.FinancialData) models.ValidationResult {
				if totalDeclaredIncome(p, code).GreaterThan(childBenefitChargeThreshold) {
					return models.Warn("general",
						"Your income is over £50,000. If you or your partner receive Child Benefit, you may be liable for the High Income Child Benefit Charge.",
						"HIGH_INCOME_CHILD_BENEFIT_REMINDER")
				}
				return models.OK()
			},
		},
		{
			ID:          "sa-013",
			Name:        "Marriage Allowance",
			Description: "Validates marriage allowance considerations",
			Severity:    SeverityWarning,
			Validate: func(_ *models.SelfAssessmentPayload, _ *models.FinancialData) models.ValidationResult {
				return models.Warn("general",
					"If you are married or in a civil partnership, you may be eligible for Marriage Allowance, which allows you to transfer £1,260 of your personal allowance to your spouse or civil partner if they earn more than you.",
					"MARRIAGE_ALLOWANCE_REMINDER")
			},
		},
		{
			ID:          "sa-014",
			Name:        "Student Loan Repayments",
			Description: "Validates student loan repayment considerations",
			Severity:    SeverityWarning,
			Validate: func(_ *models.SelfAssessmentPayload, _ *models.FinancialData) models.ValidationResult {
				return models.Warn("general",
					"If you have a student loan, you may need to make repayments through your Self Assessment. Check if you need to complete the student loan questions in your tax return.",
					"STUDENT_LOAN_REMINDER")
			},
		},
		{
			ID:          "sa-015",
			Name:        "Capital Gains",
			Description: "Validates capital gains considerations",
			Severity:    SeverityWarning,
			Validate: func(_ *models.SelfAssessmentPayload, _ *models.FinancialData) models.ValidationResult {
				return models.Warn("general",
					"If you have disposed of assets (such as property or shares) during the tax year, you may need to report Capital Gains Tax. Ensure you have included all relevant disposals in your tax return.",
					"CAPITAL_GAINS_REMINDER")
			},
		},
	}
}

// totalDeclaredIncome sums every income section of a payload in minor units.
func totalDeclaredIncome(p *models.SelfAssessmentPayload, code currency.Code) decimal.Decimal {
	var parts []decimal.Decimal
	for _, emp := range p.Income.Employment {
		parts = append(parts, emp.TaxablePayToDate)
	}
	for _, biz := range p.Income.SelfEmployment {
		parts = append(parts, biz.Income)
	}
	if p.Income.UKProperty != nil {
		parts = append(parts, p.Income.UKProperty.UKProperties.TotalIncome)
	}
	if p.Income.Dividends != nil {
		parts = append(parts, p.Income.Dividends.UKDividends, p.Income.Dividends.OtherUKDividends)
	}
	if p.Income.Savings != nil {
		parts = append(parts, p.Income.Savings.UKInterest, p.Income.Savings.ForeignInterest)
	}
	return currency.Sum(parts, code)
}
