// Package validate handles the standalone validation command
package validate

import (
	"github.com/spf13/cobra"

	"github.com/Jagbo/zenrent-sub000/cmd/common"
	"github.com/Jagbo/zenrent-sub000/cmd/root"
	"github.com/Jagbo/zenrent-sub000/internal/models"
)

// Cmd represents the validate command
var Cmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate financial data against HMRC submission rules",
	Long: `Build the chosen payload from the financial data and report every
validation error and warning without writing the payload itself. The exit
status is non-zero when validation fails.`,
	Run: validateFunc,
}

func validateFunc(cmd *cobra.Command, args []string) {
	if root.AppContainer == nil {
		root.Log.Fatal("Container not initialized")
	}

	data, err := common.LoadFinancialData(&root.SharedFlags, root.Log)
	if err != nil {
		root.Log.Fatalf("Error loading financial data: %v", err)
	}

	typ := common.PayloadTypeFromFlag(root.SharedFlags.Type)
	result := root.AppContainer.GetService().Transform(data, typ)

	report := struct {
		Valid    bool                     `json:"valid"`
		Errors   []models.ValidationIssue `json:"errors"`
		Warnings []models.ValidationIssue `json:"warnings,omitempty"`
	}{
		Valid:    result.Valid,
		Errors:   result.Errors,
		Warnings: result.Warnings,
	}

	if err := common.WriteJSON(root.SharedFlags.Output, report); err != nil {
		root.Log.Fatalf("Error writing report: %v", err)
	}

	if !result.Valid {
		root.Log.Fatalf("Validation failed with %d errors", len(result.Errors))
	}
	root.Log.Info("Validation passed!")
}
