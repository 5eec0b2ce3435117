package cmd

import (
	"fmt"

	yamldef "github.com/corey/fuzzy/internal/adapters/yaml"
	"github.com/corey/fuzzy/internal/app"
	"github.com/spf13/cobra"
)

var (
	evalFile string
	evalName string
)

var evalCmd = &cobra.Command{
	Use:   "eval [name=value...]",
	Short: "Evaluate a definition for the given inputs",
	Long:  "Loads a definition from a YAML file (-f) or the store (--name), evaluates it, and prints the crisp output.",
	RunE:  runEval,
}

func init() {
	evalCmd.Flags().StringVarP(&evalFile, "file", "f", "", "definition file")
	evalCmd.Flags().StringVar(&evalName, "name", "", "stored definition name")
	evalCmd.MarkFlagsMutuallyExclusive("file", "name")
	evalCmd.MarkFlagsOneRequired("file", "name")
}

func runEval(cmd *cobra.Command, args []string) error {
	inputs, err := parseInputs(args)
	if err != nil {
		return err
	}

	svc, err := newService(evalName != "" || cfg.Record)
	if err != nil {
		return err
	}
	defer svc.Close()

	if evalName != "" {
		err = svc.LoadStored(evalName)
	} else {
		err = svc.LoadFile(evalFile)
	}
	if err != nil {
		return err
	}

	out, err := svc.Evaluate(inputs)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatValue(out))
	return nil
}

var checkFile string

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate a definition file",
	Args:  cobra.NoArgs,
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().StringVarP(&checkFile, "file", "f", "", "definition file")
	_ = checkCmd.MarkFlagRequired("file")
}

func runCheck(cmd *cobra.Command, args []string) error {
	svc := app.NewService(app.Options{Logger: logger, Workers: cfg.Workers})
	if err := svc.LoadFile(checkFile); err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), formatCheck(svc.Definition(), svc.Engine()))
	return nil
}

var saveFile string

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Validate a definition file and store it",
	Args:  cobra.NoArgs,
	RunE:  runSave,
}

func init() {
	saveCmd.Flags().StringVarP(&saveFile, "file", "f", "", "definition file")
	_ = saveCmd.MarkFlagRequired("file")
}

func runSave(cmd *cobra.Command, args []string) error {
	svc, err := newService(true)
	if err != nil {
		return err
	}
	defer svc.Close()

	def, err := yamldef.LoadDefinition(saveFile)
	if err != nil {
		return err
	}
	if err := svc.Save(def); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "⚡ saved %s%s%s\n", colorCyan, def.Name, colorReset)
	return nil
}
