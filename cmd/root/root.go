// Package root contains the root command for the application
package root

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Jagbo/zenrent-sub000/internal/config"
	"github.com/Jagbo/zenrent-sub000/internal/container"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input        string
	Transactions string
	Properties   string
	Output       string
	Type         string
	From         string
	To           string
	User         string
	NoValidate   bool
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// AppContainer holds the wired application dependencies. It is populated
	// by the root command's PersistentPreRun before any subcommand runs.
	AppContainer *container.Container

	// SharedFlags are accessible to all commands
	SharedFlags = CommonFlags{}

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "zenrent-mtd",
		Short: "A CLI tool to transform financial data into HMRC Making Tax Digital payloads.",
		Long: `zenrent-mtd transforms rental financial data into HMRC-compliant payloads
for Making Tax Digital submissions: VAT returns, property income statements
and Self Assessment returns. Payloads are validated against HMRC rules
before they are written.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to zenrent-mtd!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv(Log)

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Failed to load configuration: %v", err)
			}
			Log = config.ConfigureLoggingFromConfig(cfg)

			if SharedFlags.NoValidate {
				cfg.Transform.ValidateOutput = false
			}
			if SharedFlags.User != "" {
				Log.WithField("user", SharedFlags.User).Debug("Overriding user from flag")
			}

			AppContainer, err = container.NewContainer(cfg)
			if err != nil {
				Log.Fatalf("Failed to initialize application: %v", err)
			}
		},
	}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input financial data file (JSON bundle)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.Transactions, "transactions", "", "Transactions file (CSV or XLSX)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.Properties, "properties", "", "Properties file (CSV)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file (defaults to stdout)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Type, "type", "t", "vat", "Payload type: vat, property_income or self_assessment")
	Cmd.PersistentFlags().StringVar(&SharedFlags.From, "from", "", "Reporting period start date (YYYY-MM-DD)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.To, "to", "", "Reporting period end date (YYYY-MM-DD)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.User, "user", "u", "", "User ID attributed to the submission")
	Cmd.PersistentFlags().BoolVar(&SharedFlags.NoValidate, "no-validate", false, "Skip rule validation of the built payload")
}
