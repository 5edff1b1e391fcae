package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jagbo/zenrent-sub000/cmd/root"
	"github.com/Jagbo/zenrent-sub000/internal/models"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	return log
}

func TestLoadFinancialData_FromBundle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bundle.json")
	content := `{
		"userId": "bundle-user",
		"startDate": "2025-04-01",
		"endDate": "2025-06-30",
		"transactions": [{"id": "tx-1", "amount": 100, "category": "sales"}]
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	data, err := LoadFinancialData(&root.CommonFlags{Input: path}, testLogger())
	require.NoError(t, err)
	assert.Equal(t, "bundle-user", data.UserID)
	assert.Len(t, data.Transactions, 1)
}

func TestLoadFinancialData_FlagsOverrideBundle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bundle.json")
	content := `{"userId": "bundle-user", "startDate": "2025-04-01", "endDate": "2025-06-30"}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	flags := &root.CommonFlags{
		Input: path,
		From:  "2025-01-01",
		To:    "2025-03-31",
		User:  "flag-user",
	}
	data, err := LoadFinancialData(flags, testLogger())
	require.NoError(t, err)
	assert.Equal(t, "flag-user", data.UserID)
	assert.Equal(t, "2025-01-01", data.StartDate)
	assert.Equal(t, "2025-03-31", data.EndDate)
}

func TestLoadFinancialData_FromTabularFiles(t *testing.T) {
	dir := t.TempDir()
	txPath := filepath.Join(dir, "transactions.csv")
	require.NoError(t, os.WriteFile(txPath, []byte(
		"id,user_id,amount,description,category,date,vat_amount,vat_rate,property_id,reference\n"+
			"tx-1,user-1,3000.00,April rent,rent,2025-04-10,,,prop-1,\n"), 0o644))
	propPath := filepath.Join(dir, "properties.csv")
	require.NoError(t, os.WriteFile(propPath, []byte(
		"id,user_id,address,postcode,property_type,is_commercial,is_furnished,is_main_residence,purchase_date,rental_start_date\n"+
			"prop-1,user-1,1 High Street,AB1 2CD,residential,false,false,false,,\n"), 0o644))

	flags := &root.CommonFlags{
		Transactions: txPath,
		Properties:   propPath,
		From:         "2025-04-06",
		To:           "2026-04-05",
		User:         "user-1",
	}
	data, err := LoadFinancialData(flags, testLogger())
	require.NoError(t, err)
	assert.Equal(t, "user-1", data.UserID)
	assert.Equal(t, "2025-04-06", data.StartDate)
	require.Len(t, data.Transactions, 1)
	require.Len(t, data.Properties, 1)
	assert.Equal(t, "prop-1", data.Properties[0].ID)
}

func TestLoadFinancialData_MissingFlags(t *testing.T) {
	t.Run("no input source", func(t *testing.T) {
		_, err := LoadFinancialData(&root.CommonFlags{}, testLogger())
		assert.Error(t, err)
	})

	t.Run("transactions without period", func(t *testing.T) {
		_, err := LoadFinancialData(&root.CommonFlags{Transactions: "transactions.csv"}, testLogger())
		assert.Error(t, err)
	})
}

func TestPayloadTypeFromFlag(t *testing.T) {
	tests := []struct {
		flag string
		want models.PayloadType
	}{
		{"vat", models.PayloadVAT},
		{"property_income", models.PayloadPropertyIncome},
		{"property-income", models.PayloadPropertyIncome},
		{"self_assessment", models.PayloadSelfAssessment},
		{"self-assessment", models.PayloadSelfAssessment},
		{"something_else", models.PayloadType("something_else")},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PayloadTypeFromFlag(tt.flag))
	}
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, WriteJSON(path, map[string]string{"status": "ok"}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"status": "ok"`)
	assert.True(t, raw[len(raw)-1] == '\n')
}
