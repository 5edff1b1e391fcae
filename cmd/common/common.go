// Package common provides shared helpers for the CLI commands: assembling
// financial data from the input flags and writing JSON results.
package common

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/Jagbo/zenrent-sub000/cmd/root"
	"github.com/Jagbo/zenrent-sub000/internal/ledger"
	"github.com/Jagbo/zenrent-sub000/internal/logging"
	"github.com/Jagbo/zenrent-sub000/internal/models"
)

// LoadFinancialData assembles the transformer input from the command flags.
// Either --input names a complete JSON bundle, or --transactions (plus
// optionally --properties) names tabular files combined with the --from,
// --to and --user flags.
func LoadFinancialData(flags *root.CommonFlags, log *logrus.Logger) (*models.FinancialData, error) {
	reader := ledger.NewReader(logging.NewLogrusAdapterFromLogger(log))

	if flags.Input != "" {
		data, err := reader.LoadFinancialData(flags.Input)
		if err != nil {
			return nil, err
		}
		applyFlagOverrides(data, flags)
		return data, nil
	}

	if flags.Transactions == "" {
		return nil, fmt.Errorf("either --input or --transactions is required")
	}
	if flags.From == "" || flags.To == "" {
		return nil, fmt.Errorf("--from and --to are required with --transactions")
	}

	transactions, err := reader.LoadTransactions(flags.Transactions)
	if err != nil {
		return nil, err
	}

	data := &models.FinancialData{
		UserID:       flags.User,
		StartDate:    flags.From,
		EndDate:      flags.To,
		Transactions: transactions,
	}

	if flags.Properties != "" {
		properties, err := reader.LoadProperties(flags.Properties)
		if err != nil {
			return nil, err
		}
		data.Properties = properties
	}

	return data, nil
}

// applyFlagOverrides lets period and user flags override bundle values.
func applyFlagOverrides(data *models.FinancialData, flags *root.CommonFlags) {
	if flags.From != "" {
		data.StartDate = flags.From
	}
	if flags.To != "" {
		data.EndDate = flags.To
	}
	if flags.User != "" {
		data.UserID = flags.User
	}
}

// PayloadTypeFromFlag maps the --type flag to a payload type.
func PayloadTypeFromFlag(typ string) models.PayloadType {
	switch typ {
	case "vat":
		return models.PayloadVAT
	case "property_income", "property-income":
		return models.PayloadPropertyIncome
	case "self_assessment", "self-assessment":
		return models.PayloadSelfAssessment
	default:
		return models.PayloadType(typ)
	}
}

// WriteJSON writes v as indented JSON to path, or to stdout when path is
// empty.
func WriteJSON(path string, v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	out = append(out, '\n')

	if path == "" {
		_, err = os.Stdout.Write(out)
		return err
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
