package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show configuration",
	Long:  "Shows the project paths and the effective settings after config file and FUZZY_* overrides.",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfgStatus := fmt.Sprintf("%s✗ defaults%s", colorYellow, colorReset)
	if _, err := os.Stat(paths.Config); err == nil {
		cfgStatus = fmt.Sprintf("%s✓ %s%s", colorGreen, paths.Config, colorReset)
	}
	logFile := cfg.LogFile
	if logFile == "" {
		logFile = "stderr"
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s⚡ fuzzy config%s\n", colorBold, colorReset)
	fmt.Fprintf(w, "  Root:       %s\n", paths.Root)
	fmt.Fprintf(w, "  Config:     %s\n", cfgStatus)
	fmt.Fprintf(w, "  DB:         %s\n", cfg.DBPath)
	fmt.Fprintf(w, "  Log level:  %s\n", cfg.LogLevel)
	fmt.Fprintf(w, "  Log file:   %s\n", logFile)
	fmt.Fprintf(w, "  Workers:    %d\n", cfg.Workers)
	fmt.Fprintf(w, "  Record:     %t\n", cfg.Record)
	return nil
}
