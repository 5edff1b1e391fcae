package transformer

import (
	"github.com/shopspring/decimal"

	"github.com/Jagbo/zenrent-sub000/internal/categorizer"
	"github.com/Jagbo/zenrent-sub000/internal/currency"
	"github.com/Jagbo/zenrent-sub000/internal/logging"
	"github.com/Jagbo/zenrent-sub000/internal/models"
)

// PropertyIncomeTransformer aggregates transactions into a per-property
// income statement with portfolio-level totals.
type PropertyIncomeTransformer struct {
	opts   models.TransformationOptions
	cat    *categorizer.Categorizer
	logger logging.Logger
}

// NewPropertyIncomeTransformer builds a property income transformer.
func NewPropertyIncomeTransformer(opts models.TransformationOptions, cat *categorizer.Categorizer, logger logging.Logger) *PropertyIncomeTransformer {
	if logger == nil {
		logger = &logging.MockLogger{}
	}
	return &PropertyIncomeTransformer{opts: opts, cat: cat, logger: logger}
}

func (t *PropertyIncomeTransformer) code() currency.Code {
	return currency.ParseCode(t.opts.CurrencyCode)
}

func (t *PropertyIncomeTransformer) round(v decimal.Decimal) decimal.Decimal {
	return currency.FormatForSubmissionAt(v, t.opts.RoundingPrecision)
}

// Transform builds a property income payload. Zero supplied properties is an
// error, never a silently empty payload.
func (t *PropertyIncomeTransformer) Transform(data *models.FinancialData) models.TransformationResult[models.PropertyIncomePayload] {
	result := models.TransformationResult[models.PropertyIncomePayload]{Valid: true, Errors: []models.ValidationIssue{}}

	if _, _, ok := checkPeriod(data, &result.Errors); !ok {
		result.Valid = false
		return result
	}

	if len(data.Properties) == 0 {
		result.AddError("properties",
			"At least one property is required for a property income submission",
			"MISSING_PROPERTIES")
		return result
	}

	code := t.code()
	transactions := t.cat.ForProperty(data)

	grouped, err := t.cat.GroupByProperty(transactions, data.Properties, t.opts.RequirePropertyID)
	if err != nil {
		result.AddError("transactions", err.Error(), "AMBIGUOUS_PROPERTY_ASSIGNMENT")
		return result
	}

	payload := models.PropertyIncomePayload{
		FromDate: data.StartDate,
		ToDate:   data.EndDate,
	}

	var incomeParts, expenseParts []decimal.Decimal

	// Iterate in declared property order so output is deterministic.
	for i := range data.Properties {
		property := &data.Properties[i]
		propertyTxs := grouped[property.ID]

		sub := t.buildProperty(property.ID, propertyTxs, code)
		payload.UKProperties.Properties = append(payload.UKProperties.Properties, sub)

		incomeParts = append(incomeParts,
			sub.Income.RentIncome, sub.Income.PremiumsOfLeaseGrant,
			sub.Income.ReversePremiums, sub.Income.OtherPropertyIncome)
		expenseParts = append(expenseParts,
			sub.Expenses.PremisesRunningCosts, sub.Expenses.RepairsAndMaintenance,
			sub.Expenses.FinancialCosts, sub.Expenses.ProfessionalFees,
			sub.Expenses.CostOfServices, sub.Expenses.Other,
			sub.Allowances.AnnualInvestmentAllowance, sub.Allowances.BusinessPremisesRenovationAllowance,
			sub.Allowances.OtherCapitalAllowance, sub.Allowances.WearAndTearAllowance,
			sub.Allowances.PropertyAllowance)
	}

	payload.UKProperties.TotalIncome = t.round(currency.Sum(incomeParts, code))
	payload.UKProperties.TotalExpenses = t.round(currency.Sum(expenseParts, code))

	zero := t.round(decimal.Zero)
	payload.UKProperties.NetProfit = zero
	payload.UKProperties.NetLoss = zero
	switch {
	case payload.UKProperties.TotalIncome.GreaterThan(payload.UKProperties.TotalExpenses):
		payload.UKProperties.NetProfit = t.round(currency.Subtract(payload.UKProperties.TotalIncome, payload.UKProperties.TotalExpenses, code))
	case payload.UKProperties.TotalExpenses.GreaterThan(payload.UKProperties.TotalIncome):
		payload.UKProperties.NetLoss = t.round(currency.Subtract(payload.UKProperties.TotalExpenses, payload.UKProperties.TotalIncome, code))
	}

	result.Data = payload
	result.Metadata = map[string]interface{}{
		"transactionCount": len(transactions),
		"propertyCount":    len(data.Properties),
		"periodStart":      data.StartDate,
		"periodEnd":        data.EndDate,
	}

	if t.opts.Debug {
		t.logger.Debug("built property income statement",
			logging.Field{Key: logging.FieldCount, Value: len(transactions)},
			logging.Field{Key: "property_count", Value: len(data.Properties)})
	}

	return result
}

// buildProperty sums one property's transactions into its submission entry.
// Capital allowance claims are optional on the submission, so the allowance
// block stays zero when non-mandatory fields are disabled.
func (t *PropertyIncomeTransformer) buildProperty(propertyID string, txs []categorizer.PropertyTransaction, code currency.Code) models.PropertySubmission {
	byCategory := func(want categorizer.PropertyCategory) decimal.Decimal {
		var parts []decimal.Decimal
		for i := range txs {
			if txs[i].Category == want {
				parts = append(parts, txs[i].Amount)
			}
		}
		return t.round(currency.Sum(parts, code))
	}

	sub := models.PropertySubmission{
		PropertyID: propertyID,
		Income: models.PropertyIncome{
			RentIncome:           byCategory(categorizer.RentIncome),
			PremiumsOfLeaseGrant: byCategory(categorizer.PremiumsOfLeaseGrant),
			ReversePremiums:      byCategory(categorizer.ReversePremiums),
			OtherPropertyIncome:  byCategory(categorizer.OtherIncome),
		},
		Expenses: models.PropertyExpenses{
			PremisesRunningCosts:  byCategory(categorizer.PremisesRunningCosts),
			RepairsAndMaintenance: byCategory(categorizer.RepairsAndMaintenance),
			FinancialCosts:        byCategory(categorizer.FinancialCosts),
			ProfessionalFees:      byCategory(categorizer.ProfessionalFees),
			CostOfServices:        byCategory(categorizer.CostOfServices),
			Other:                 byCategory(categorizer.OtherExpenses),
		},
	}
	if t.opts.IncludeNonMandatoryFields {
		sub.Allowances = models.PropertyAllowances{
			AnnualInvestmentAllowance:           byCategory(categorizer.AnnualInvestmentAllowance),
			BusinessPremisesRenovationAllowance: byCategory(categorizer.BusinessPremisesRenovation),
			OtherCapitalAllowance:               byCategory(categorizer.OtherCapitalAllowance),
			WearAndTearAllowance:                byCategory(categorizer.WearAndTearAllowance),
			PropertyAllowance:                   byCategory(categorizer.PropertyAllowanceCat),
		}
	}
	return sub
}
