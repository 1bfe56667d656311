package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"jqplay/internal/config"
	"jqplay/internal/interp"
)

func colorEnabled(cmd *cobra.Command) bool {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		mode = "auto"
	}
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(os.Stdout)
	}
}

func beQuiet(cmd *cobra.Command) bool {
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	return err == nil && quiet
}

func loadConfig() (config.Config, error) {
	return config.Load(".")
}

func newEvaluator(cfg config.Config) *interp.JQ {
	jq := interp.NewJQ(cfg.Interpreter.Path, cfg.Interpreter.Args...)
	jq.Timeout = cfg.Interpreter.Timeout()
	return jq
}

// scriptFromArgs resolves the script from the positional argument or the
// --from-file flag; exactly one of the two must be given.
func scriptFromArgs(cmd *cobra.Command, args []string) (string, error) {
	fromFile, err := cmd.Flags().GetString("from-file")
	if err != nil {
		return "", fmt.Errorf("failed to get from-file flag: %w", err)
	}
	switch {
	case fromFile != "" && len(args) > 0:
		return "", fmt.Errorf("pass the script as an argument or via --from-file, not both")
	case fromFile != "":
		data, err := os.ReadFile(fromFile)
		if err != nil {
			return "", fmt.Errorf("failed to read script file: %w", err)
		}
		return string(data), nil
	case len(args) > 0:
		return args[0], nil
	}
	return "", fmt.Errorf("missing script (argument or --from-file)")
}

// readInput reads the sample JSON from the given path, or from stdin
// when the path is empty.
func readInput(path string) ([]byte, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	return data, nil
}
