package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"jqplay/internal/diag"
	"jqplay/internal/interp"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [script]",
	Short: "Run a jq script against many JSON inputs",
	Long:  `Run one jq script over several input files in parallel and report which inputs it fails on`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().StringP("from-file", "f", "", "read the script from a file")
	checkCmd.Flags().StringArrayP("input", "i", nil, "input JSON file (repeatable)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	script, err := scriptFromArgs(cmd, args)
	if err != nil {
		return err
	}
	files, err := cmd.Flags().GetStringArray("input")
	if err != nil {
		return fmt.Errorf("failed to get input flag: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("at least one --input file is required")
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	okLabel := "ok"
	failLabel := "fail"
	if colorEnabled(cmd) {
		okLabel = color.GreenString(okLabel)
		failLabel = color.RedString(failLabel)
	}

	results := interp.CheckAll(cmd.Context(), newEvaluator(cfg), script, files, jobs)
	failed := 0
	for _, r := range results {
		if r.Err == nil {
			if !beQuiet(cmd) {
				fmt.Fprintf(cmd.OutOrStdout(), "%4s  %s\n", okLabel, r.File)
			}
			continue
		}
		failed++
		message := r.Err.Error()
		var ee *interp.EvalError
		if errors.As(r.Err, &ee) {
			message = diag.Classify(ee.Stderr, script).Message
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%4s  %s: %s\n", failLabel, r.File, firstLineOf(message))
	}
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d inputs failed\n", failed, len(results))
		os.Exit(1)
	}
	return nil
}

func firstLineOf(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			return s[:i]
		}
	}
	return s
}
