// Package transform handles the payload transformation command
package transform

import (
	"github.com/spf13/cobra"

	"github.com/Jagbo/zenrent-sub000/cmd/common"
	"github.com/Jagbo/zenrent-sub000/cmd/root"
)

// Cmd represents the transform command
var Cmd = &cobra.Command{
	Use:   "transform",
	Short: "Transform financial data into an HMRC submission payload",
	Long: `Transform financial data into an HMRC submission payload of the chosen
type (vat, property_income or self_assessment), validate it against HMRC
rules, and write the full transformation result as JSON.`,
	Run: transformFunc,
}

func transformFunc(cmd *cobra.Command, args []string) {
	if root.AppContainer == nil {
		root.Log.Fatal("Container not initialized")
	}

	data, err := common.LoadFinancialData(&root.SharedFlags, root.Log)
	if err != nil {
		root.Log.Fatalf("Error loading financial data: %v", err)
	}

	typ := common.PayloadTypeFromFlag(root.SharedFlags.Type)
	root.Log.Infof("Transforming %d transactions into %s payload", len(data.Transactions), typ)

	result := root.AppContainer.GetService().Transform(data, typ)

	if err := common.WriteJSON(root.SharedFlags.Output, result); err != nil {
		root.Log.Fatalf("Error writing result: %v", err)
	}

	if !result.Valid {
		root.Log.Warnf("Transformation produced %d errors", len(result.Errors))
		return
	}
	root.Log.Info("Transformation completed successfully!")
}
