package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jagbo/zenrent-sub000/internal/categorizer"
	"github.com/Jagbo/zenrent-sub000/internal/currency"
	"github.com/Jagbo/zenrent-sub000/internal/models"
)

func validPropertyIncome() models.PropertyIncomePayload {
	return models.PropertyIncomePayload{
		FromDate: "2025-04-06",
		ToDate:   "2026-04-05",
		UKProperties: models.UKProperties{
			TotalIncome:   dec("3000.00"),
			TotalExpenses: dec("500.00"),
			NetProfit:     dec("2500.00"),
			NetLoss:       dec("0"),
			Properties: []models.PropertySubmission{
				{
					PropertyID: "prop-1",
					Income:     models.PropertyIncome{RentIncome: dec("3000.00")},
					Expenses:   models.PropertyExpenses{PremisesRunningCosts: dec("500.00")},
				},
			},
		},
	}
}

func TestValidatePropertyIncome_ValidPayload(t *testing.T) {
	v := NewValidator(currency.GBP)
	payload := validPropertyIncome()

	result := v.ValidatePropertyIncome(&payload, nil)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	// Income above the £1,000 threshold still gets the allowance option reminder.
	assert.True(t, hasWarningCode(result, "PROPERTY_INCOME_ALLOWANCE_OPTION"))
}

func TestValidatePropertyIncome_DateFormat(t *testing.T) {
	v := NewValidator(currency.GBP)
	payload := validPropertyIncome()
	payload.FromDate = "06/04/2025"
	payload.ToDate = "2026-4-5"

	result := v.ValidatePropertyIncome(&payload, nil)
	assert.False(t, result.Valid)
	assert.True(t, hasErrorCode(result, "INVALID_FROM_DATE_FORMAT"))
	assert.True(t, hasErrorCode(result, "INVALID_TO_DATE_FORMAT"))
}

func TestValidatePropertyIncome_FromAfterTo(t *testing.T) {
	v := NewValidator(currency.GBP)
	payload := validPropertyIncome()
	payload.FromDate = "2026-04-05"
	payload.ToDate = "2025-04-06"

	result := v.ValidatePropertyIncome(&payload, nil)
	assert.False(t, result.Valid)
	assert.True(t, hasErrorCode(result, "INVALID_DATE_RANGE"))
}

func TestValidatePropertyIncome_NoProperties(t *testing.T) {
	v := NewValidator(currency.GBP)
	payload := models.PropertyIncomePayload{
		FromDate: "2025-04-06",
		ToDate:   "2026-04-05",
	}

	result := v.ValidatePropertyIncome(&payload, nil)
	assert.False(t, result.Valid)
	issue := errorByCode(t, result, "MISSING_PROPERTIES")
	assert.Equal(t, "ukProperties.properties", issue.Field)
}

func TestValidatePropertyIncome_TotalIncomeMismatch(t *testing.T) {
	v := NewValidator(currency.GBP)
	payload := validPropertyIncome()
	payload.UKProperties.TotalIncome = dec("9999.00")

	result := v.ValidatePropertyIncome(&payload, nil)
	assert.False(t, result.Valid)
	assert.True(t, hasErrorCode(result, "INCONSISTENT_TOTAL_INCOME"))
}

func TestValidatePropertyIncome_TotalExpensesIncludeAllowances(t *testing.T) {
	v := NewValidator(currency.GBP)
	payload := validPropertyIncome()
	payload.UKProperties.Properties[0].Allowances.WearAndTearAllowance = dec("100.00")

	// Totals unchanged: the allowance is missing from TotalExpenses.
	result := v.ValidatePropertyIncome(&payload, nil)
	assert.False(t, result.Valid)
	assert.True(t, hasErrorCode(result, "INCONSISTENT_TOTAL_EXPENSES"))

	payload.UKProperties.TotalExpenses = dec("600.00")
	payload.UKProperties.NetProfit = dec("2400.00")
	result = v.ValidatePropertyIncome(&payload, nil)
	assert.True(t, result.Valid)
}

func TestValidatePropertyIncome_NetProfitNetLoss(t *testing.T) {
	v := NewValidator(currency.GBP)

	t.Run("loss period", func(t *testing.T) {
		payload := validPropertyIncome()
		payload.UKProperties.Properties[0].Income.RentIncome = dec("1000.00")
		payload.UKProperties.Properties[0].Expenses.PremisesRunningCosts = dec("1500.00")
		payload.UKProperties.TotalIncome = dec("1000.00")
		payload.UKProperties.TotalExpenses = dec("1500.00")
		payload.UKProperties.NetProfit = dec("0")
		payload.UKProperties.NetLoss = dec("500.00")

		result := v.ValidatePropertyIncome(&payload, nil)
		assert.True(t, result.Valid)
	})

	t.Run("wrong net profit", func(t *testing.T) {
		payload := validPropertyIncome()
		payload.UKProperties.NetProfit = dec("100.00")

		result := v.ValidatePropertyIncome(&payload, nil)
		assert.False(t, result.Valid)
		assert.True(t, hasErrorCode(result, "INVALID_NET_PROFIT"))
	})

	t.Run("spurious net loss on profitable period", func(t *testing.T) {
		payload := validPropertyIncome()
		payload.UKProperties.NetLoss = dec("50.00")

		result := v.ValidatePropertyIncome(&payload, nil)
		assert.False(t, result.Valid)
		assert.True(t, hasErrorCode(result, "INVALID_NET_LOSS"))
	})
}

func TestValidatePropertyIncome_MissingPropertyIDs(t *testing.T) {
	v := NewValidator(currency.GBP)
	payload := validPropertyIncome()
	payload.UKProperties.Properties[0].PropertyID = ""

	result := v.ValidatePropertyIncome(&payload, nil)
	assert.False(t, result.Valid)
	issue := errorByCode(t, result, "MISSING_PROPERTY_IDS")
	assert.Equal(t, "1 properties are missing property IDs", issue.Message)
}

func TestValidatePropertyIncome_NegativeFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *models.PropertyIncomePayload)
		code   string
		field  string
	}{
		{
			"income",
			func(p *models.PropertyIncomePayload) { p.UKProperties.Properties[0].Income.ReversePremiums = dec("-1") },
			"NEGATIVE_PROPERTY_INCOME",
			"ukProperties.properties[0].income.reversePremiums",
		},
		{
			"expense",
			func(p *models.PropertyIncomePayload) { p.UKProperties.Properties[0].Expenses.FinancialCosts = dec("-1") },
			"NEGATIVE_PROPERTY_EXPENSES",
			"ukProperties.properties[0].expenses.financialCosts",
		},
		{
			"allowance",
			func(p *models.PropertyIncomePayload) {
				p.UKProperties.Properties[0].Allowances.WearAndTearAllowance = dec("-1")
			},
			"NEGATIVE_WEAR_AND_TEAR_ALLOWANCE",
			"ukProperties.properties[0].allowances.wearAndTearAllowance",
		},
	}
	v := NewValidator(currency.GBP)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := validPropertyIncome()
			tt.mutate(&payload)
			result := v.ValidatePropertyIncome(&payload, nil)
			assert.False(t, result.Valid)
			issue := errorByCode(t, result, tt.code)
			assert.Equal(t, tt.field, issue.Field)
		})
	}
}

func TestValidatePropertyIncome_AllowanceEligibleBelowThreshold(t *testing.T) {
	v := NewValidator(currency.GBP)
	payload := validPropertyIncome()
	payload.UKProperties.Properties[0].Income.RentIncome = dec("800.00")
	payload.UKProperties.Properties[0].Expenses.PremisesRunningCosts = dec("0")
	payload.UKProperties.TotalIncome = dec("800.00")
	payload.UKProperties.TotalExpenses = dec("0")
	payload.UKProperties.NetProfit = dec("800.00")

	result := v.ValidatePropertyIncome(&payload, nil)
	require.True(t, result.Valid)
	assert.True(t, hasWarningCode(result, "PROPERTY_INCOME_ALLOWANCE_ELIGIBLE"))
	assert.False(t, hasWarningCode(result, "PROPERTY_INCOME_ALLOWANCE_OPTION"))
}

func TestValidatePropertyIncome_PropertyMetadataWarnings(t *testing.T) {
	v := NewValidator(currency.GBP)
	payload := validPropertyIncome()

	t.Run("furnished holiday letting", func(t *testing.T) {
		data := &models.FinancialData{Properties: []models.PropertyDetails{
			{ID: "prop-1", IsFurnished: true, Metadata: map[string]interface{}{
				categorizer.MetaHolidayLetting: true,
			}},
		}}
		result := v.ValidatePropertyIncome(&payload, data)
		assert.True(t, hasWarningCode(result, "FHL_CRITERIA_REMINDER"))
	})

	t.Run("main residence", func(t *testing.T) {
		data := &models.FinancialData{Properties: []models.PropertyDetails{
			{ID: "prop-1", IsMainResidence: true},
		}}
		result := v.ValidatePropertyIncome(&payload, data)
		assert.True(t, hasWarningCode(result, "RENT_A_ROOM_RELIEF_REMINDER"))
	})

	t.Run("residential finance costs", func(t *testing.T) {
		data := &models.FinancialData{Properties: []models.PropertyDetails{
			{ID: "prop-1", PropertyType: "residential"},
		}}
		result := v.ValidatePropertyIncome(&payload, data)
		assert.True(t, hasWarningCode(result, "FINANCE_COST_RESTRICTION_REMINDER"))
	})

	t.Run("no data", func(t *testing.T) {
		result := v.ValidatePropertyIncome(&payload, nil)
		assert.False(t, hasWarningCode(result, "FHL_CRITERIA_REMINDER"))
		assert.False(t, hasWarningCode(result, "RENT_A_ROOM_RELIEF_REMINDER"))
		assert.False(t, hasWarningCode(result, "FINANCE_COST_RESTRICTION_REMINDER"))
	})
}
