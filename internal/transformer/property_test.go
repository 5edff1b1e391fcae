package transformer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jagbo/zenrent-sub000/internal/models"
)

func TestPropertyTransform_SingleProperty(t *testing.T) {
	tr := NewPropertyIncomeTransformer(models.DefaultTransformationOptions(), newTestCategorizer(), nil)
	data := &models.FinancialData{
		UserID:     "user-1",
		StartDate:  "2025-04-06",
		EndDate:    "2026-04-05",
		Properties: []models.PropertyDetails{{ID: "prop-1", Address: "1 High Street"}},
		Transactions: []models.FinancialTransaction{
			{ID: "tx-1", Amount: dec("3000.00"), Category: "rent", PropertyID: "prop-1"},
			{ID: "tx-2", Amount: dec("500.00"), Category: "repairs", PropertyID: "prop-1"},
		},
	}

	result := tr.Transform(data)
	require.True(t, result.Valid)
	require.Empty(t, result.Errors)

	payload := result.Data
	assert.Equal(t, "2025-04-06", payload.FromDate)
	assert.Equal(t, "2026-04-05", payload.ToDate)
	require.Len(t, payload.UKProperties.Properties, 1)

	sub := payload.UKProperties.Properties[0]
	assert.Equal(t, "prop-1", sub.PropertyID)
	assertDec(t, "3000.00", sub.Income.RentIncome)
	assertDec(t, "500.00", sub.Expenses.RepairsAndMaintenance)

	assertDec(t, "3000.00", payload.UKProperties.TotalIncome)
	assertDec(t, "500.00", payload.UKProperties.TotalExpenses)
	assertDec(t, "2500.00", payload.UKProperties.NetProfit)
	assertDec(t, "0", payload.UKProperties.NetLoss)

	assert.Equal(t, 1, result.Metadata["propertyCount"])
	assert.Equal(t, 2, result.Metadata["transactionCount"])
}

func TestPropertyTransform_CategoryBuckets(t *testing.T) {
	tr := NewPropertyIncomeTransformer(models.DefaultTransformationOptions(), newTestCategorizer(), nil)
	data := &models.FinancialData{
		StartDate:  "2025-04-06",
		EndDate:    "2026-04-05",
		Properties: []models.PropertyDetails{{ID: "prop-1"}},
		Transactions: []models.FinancialTransaction{
			{ID: "tx-1", Amount: dec("1200.00"), Category: "rent", PropertyID: "prop-1"},
			{ID: "tx-2", Amount: dec("150.00"), Category: "insurance cost", PropertyID: "prop-1"},
			{ID: "tx-3", Amount: dec("90.00"), Category: "mortgage interest fee", PropertyID: "prop-1"},
			{ID: "tx-4", Amount: dec("60.00"), Category: "legal fee", PropertyID: "prop-1"},
			{ID: "tx-5", Amount: dec("40.00"), Category: "wear and tear allowance", PropertyID: "prop-1"},
		},
	}

	result := tr.Transform(data)
	require.True(t, result.Valid)

	sub := result.Data.UKProperties.Properties[0]
	assertDec(t, "1200.00", sub.Income.RentIncome)
	assertDec(t, "150.00", sub.Expenses.PremisesRunningCosts)
	assertDec(t, "90.00", sub.Expenses.FinancialCosts)
	assertDec(t, "60.00", sub.Expenses.ProfessionalFees)
	assertDec(t, "40.00", sub.Allowances.WearAndTearAllowance)

	// Allowances are part of the expense total.
	assertDec(t, "340.00", result.Data.UKProperties.TotalExpenses)
	assertDec(t, "860.00", result.Data.UKProperties.NetProfit)
}

func TestPropertyTransform_MandatoryFieldsOnly(t *testing.T) {
	opts := models.DefaultTransformationOptions()
	opts.IncludeNonMandatoryFields = false
	tr := NewPropertyIncomeTransformer(opts, newTestCategorizer(), nil)
	data := &models.FinancialData{
		StartDate:  "2025-04-06",
		EndDate:    "2026-04-05",
		Properties: []models.PropertyDetails{{ID: "prop-1"}},
		Transactions: []models.FinancialTransaction{
			{ID: "tx-1", Amount: dec("1200.00"), Category: "rent", PropertyID: "prop-1"},
			{ID: "tx-2", Amount: dec("150.00"), Category: "insurance cost", PropertyID: "prop-1"},
			{ID: "tx-3", Amount: dec("40.00"), Category: "wear and tear allowance", PropertyID: "prop-1"},
		},
	}

	result := tr.Transform(data)
	require.True(t, result.Valid)

	sub := result.Data.UKProperties.Properties[0]
	assertDec(t, "150.00", sub.Expenses.PremisesRunningCosts)
	assertDec(t, "0", sub.Allowances.WearAndTearAllowance)

	// Without the allowance block, expenses carry only the expense lines.
	assertDec(t, "150.00", result.Data.UKProperties.TotalExpenses)
	assertDec(t, "1050.00", result.Data.UKProperties.NetProfit)
}

func TestPropertyTransform_NetLoss(t *testing.T) {
	tr := NewPropertyIncomeTransformer(models.DefaultTransformationOptions(), newTestCategorizer(), nil)
	data := &models.FinancialData{
		StartDate:  "2025-04-06",
		EndDate:    "2026-04-05",
		Properties: []models.PropertyDetails{{ID: "prop-1"}},
		Transactions: []models.FinancialTransaction{
			{ID: "tx-1", Amount: dec("1000.00"), Category: "rent", PropertyID: "prop-1"},
			{ID: "tx-2", Amount: dec("1500.00"), Category: "repairs", PropertyID: "prop-1"},
		},
	}

	result := tr.Transform(data)
	require.True(t, result.Valid)
	assertDec(t, "0", result.Data.UKProperties.NetProfit)
	assertDec(t, "500.00", result.Data.UKProperties.NetLoss)
}

func TestPropertyTransform_NoProperties(t *testing.T) {
	tr := NewPropertyIncomeTransformer(models.DefaultTransformationOptions(), newTestCategorizer(), nil)
	data := &models.FinancialData{StartDate: "2025-04-06", EndDate: "2026-04-05"}

	result := tr.Transform(data)
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "MISSING_PROPERTIES", result.Errors[0].Code)
	assert.Equal(t, "properties", result.Errors[0].Field)
}

func TestPropertyTransform_StrictGrouping(t *testing.T) {
	opts := models.DefaultTransformationOptions()
	opts.RequirePropertyID = true
	tr := NewPropertyIncomeTransformer(opts, newTestCategorizer(), nil)
	data := &models.FinancialData{
		StartDate:  "2025-04-06",
		EndDate:    "2026-04-05",
		Properties: []models.PropertyDetails{{ID: "prop-1"}},
		Transactions: []models.FinancialTransaction{
			{ID: "tx-1", Amount: dec("1000.00"), Category: "rent"},
		},
	}

	result := tr.Transform(data)
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "AMBIGUOUS_PROPERTY_ASSIGNMENT", result.Errors[0].Code)
	assert.Equal(t, "transactions", result.Errors[0].Field)
}

func TestPropertyTransform_LenientGroupingUsesFirstProperty(t *testing.T) {
	tr := NewPropertyIncomeTransformer(models.DefaultTransformationOptions(), newTestCategorizer(), nil)
	data := &models.FinancialData{
		StartDate:  "2025-04-06",
		EndDate:    "2026-04-05",
		Properties: []models.PropertyDetails{{ID: "prop-1"}, {ID: "prop-2"}},
		Transactions: []models.FinancialTransaction{
			{ID: "tx-1", Amount: dec("1000.00"), Category: "rent"},
			{ID: "tx-2", Amount: dec("700.00"), Category: "rent", PropertyID: "prop-2"},
		},
	}

	result := tr.Transform(data)
	require.True(t, result.Valid)
	require.Len(t, result.Data.UKProperties.Properties, 2)
	assertDec(t, "1000.00", result.Data.UKProperties.Properties[0].Income.RentIncome)
	assertDec(t, "700.00", result.Data.UKProperties.Properties[1].Income.RentIncome)
	assertDec(t, "1700.00", result.Data.UKProperties.TotalIncome)
}

func TestPropertyTransform_PeriodErrors(t *testing.T) {
	tr := NewPropertyIncomeTransformer(models.DefaultTransformationOptions(), newTestCategorizer(), nil)
	data := &models.FinancialData{StartDate: "bad", EndDate: "2026-04-05"}

	result := tr.Transform(data)
	assert.False(t, result.Valid)
	assert.True(t, hasIssueCode(result.Errors, "DATE_FORMAT_ERROR"))
}
