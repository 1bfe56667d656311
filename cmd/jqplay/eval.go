package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"jqplay/internal/diag"
	"jqplay/internal/interp"
)

var evalCmd = &cobra.Command{
	Use:   "eval [flags] [script]",
	Short: "Run a jq script against one JSON input",
	Long:  `Run a jq script once and print the result, or a positioned diagnostic when the interpreter rejects it`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runEval,
}

func init() {
	evalCmd.Flags().StringP("from-file", "f", "", "read the script from a file")
	evalCmd.Flags().StringP("input", "i", "", "input JSON file (default: stdin)")
}

func runEval(cmd *cobra.Command, args []string) error {
	script, err := scriptFromArgs(cmd, args)
	if err != nil {
		return err
	}
	inputPath, err := cmd.Flags().GetString("input")
	if err != nil {
		return fmt.Errorf("failed to get input flag: %w", err)
	}
	input, err := readInput(inputPath)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	out, err := newEvaluator(cfg).Eval(cmd.Context(), script, input)
	if err != nil {
		var ee *interp.EvalError
		if errors.As(err, &ee) {
			d := diag.Classify(ee.Stderr, script)
			diag.Pretty(os.Stderr, d, script, diag.PrettyOpts{Color: colorEnabled(cmd)})
			os.Exit(1)
		}
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), string(out))
	return nil
}
