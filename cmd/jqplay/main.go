package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"jqplay/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "jqplay",
	Short: "Interactive playground for jq scripts",
	Long:  `jqplay evaluates jq scripts against sample JSON with positioned diagnostics, context-aware completion suggestions and assistant-driven script synthesis`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(pathsCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
