package cmd

import (
	"fmt"
	"os"

	"guardias/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// version is reported by the docs catalogue and Swagger.
const version = "1.0"

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "guardias",
	Short: "Absence and substitute coverage panel",
	Long: `Guardias builds the daily coverage panel of a secondary school: which teachers
are absent in each period, who is free to cover them and which classes are covered.
Absences come from the school database, a published spreadsheet, a script feed or a
document-store API.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console encoding with the development config prints ISO8601 timestamps.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
