package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"jqplay/internal/ui"
)

var playCmd = &cobra.Command{
	Use:   "play [flags]",
	Short: "Open the interactive playground",
	Long:  `Edit a jq script in a terminal UI with live completion suggestions and positioned diagnostics against a JSON sample`,
	Args:  cobra.NoArgs,
	RunE:  runPlay,
}

func init() {
	playCmd.Flags().StringP("input", "i", "", "input JSON file (required)")
	playCmd.Flags().String("ui", "", "force or forbid the TUI (auto|on|off)")
	_ = playCmd.MarkFlagRequired("input")
}

func runPlay(cmd *cobra.Command, args []string) error {
	inputPath, err := cmd.Flags().GetString("input")
	if err != nil {
		return fmt.Errorf("failed to get input flag: %w", err)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if uiFlag == "" {
		uiFlag = cfg.Play.UI
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	if !shouldUseTUI(mode) {
		return fmt.Errorf("play needs a terminal (use --ui on to force)")
	}

	sample, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	model, err := ui.NewPlayground(sample, newEvaluator(cfg))
	if err != nil {
		return err
	}
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout), tea.WithAltScreen())
	_, err = program.Run()
	return err
}
