package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored definitions",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var rmCmd = &cobra.Command{
	Use:   "rm NAME",
	Short: "Remove a stored definition and its history",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemove,
}

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history NAME",
	Short: "Show recorded evaluations, newest first",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum records (0 = all)")
}

func runList(cmd *cobra.Command, args []string) error {
	svc, err := newService(true)
	if err != nil {
		return err
	}
	defer svc.Close()

	names, err := svc.Definitions()
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s⚡ %d definitions%s\n", colorBold, len(names), colorReset)
	for _, n := range names {
		fmt.Fprintf(w, "  %s%s%s\n", colorCyan, n, colorReset)
	}
	return nil
}

func runRemove(cmd *cobra.Command, args []string) error {
	svc, err := newService(true)
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := svc.Delete(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "⚡ removed %s\n", args[0])
	return nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	svc, err := newService(true)
	if err != nil {
		return err
	}
	defer svc.Close()

	recs, err := svc.History(args[0], historyLimit)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), formatHistory(args[0], recs))
	return nil
}
