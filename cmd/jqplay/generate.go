package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"jqplay/internal/assistant"
	"jqplay/internal/session"
)

var generateCmd = &cobra.Command{
	Use:   "generate [flags]",
	Short: "Synthesize a jq script with the assistant",
	Long:  `Ask the assistant for a jq script that turns the input sample into the desired output, retrying with the accumulated failure trail until the script executes or you stop`,
	Args:  cobra.NoArgs,
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringP("input", "i", "", "input JSON file (required)")
	generateCmd.Flags().StringP("output", "o", "", "desired output JSON file (required)")
	generateCmd.Flags().String("instructions", "", "extra instructions for the assistant")
	generateCmd.Flags().Int("max-attempts", 5, "stop after this many attempts")
	generateCmd.Flags().Bool("yes", false, "continue after failures without asking")
	_ = generateCmd.MarkFlagRequired("input")
	_ = generateCmd.MarkFlagRequired("output")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	inputPath, err := cmd.Flags().GetString("input")
	if err != nil {
		return fmt.Errorf("failed to get input flag: %w", err)
	}
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	instructions, err := cmd.Flags().GetString("instructions")
	if err != nil {
		return fmt.Errorf("failed to get instructions flag: %w", err)
	}
	maxAttempts, err := cmd.Flags().GetInt("max-attempts")
	if err != nil {
		return fmt.Errorf("failed to get max-attempts flag: %w", err)
	}
	assumeYes, err := cmd.Flags().GetBool("yes")
	if err != nil {
		return fmt.Errorf("failed to get yes flag: %w", err)
	}

	input, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}
	desired, err := os.ReadFile(outputPath)
	if err != nil {
		return fmt.Errorf("failed to read output file: %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	clientCfg := assistant.DefaultConfig()
	if cfg.Assistant.Model != "" {
		clientCfg.Model = cfg.Assistant.Model
	}
	if cfg.Assistant.MaxTokens > 0 {
		clientCfg.MaxTokens = cfg.Assistant.MaxTokens
	}
	if cfg.Assistant.MaxRetries > 0 {
		clientCfg.MaxRetries = cfg.Assistant.MaxRetries
	}
	client, err := assistant.New(clientCfg)
	if err != nil {
		return err
	}

	useColor := colorEnabled(cmd)
	sess := session.New(session.Task{
		Input:        input,
		Desired:      desired,
		Instructions: instructions,
	}, client, newEvaluator(cfg))

	for round := 1; ; round++ {
		if !beQuiet(cmd) {
			fmt.Fprintf(cmd.OutOrStdout(), "attempt %d...\n", round)
		}
		att, err := sess.Generate(cmd.Context())
		if err != nil {
			var te *assistant.TransportError
			if errors.As(err, &te) {
				return fmt.Errorf("generation aborted: %w", te)
			}
			return err
		}
		if att.Valid {
			if useColor {
				fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("script executes cleanly:"))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "script executes cleanly:")
			}
			fmt.Fprintln(cmd.OutOrStdout(), att.Script)
			return nil
		}

		failure := fmt.Sprintf("attempt %d failed: %s", att.Index, att.ErrorMessage)
		if useColor {
			failure = color.RedString(failure)
		}
		fmt.Fprintln(cmd.OutOrStdout(), failure)

		if round >= maxAttempts {
			if err := sess.Break(); err != nil {
				return err
			}
			return fmt.Errorf("no working script after %d attempts", maxAttempts)
		}
		if !assumeYes && !askContinue(cmd) {
			if err := sess.Break(); err != nil {
				return err
			}
			printTrail(cmd, sess)
			return fmt.Errorf("generation stopped after %d attempts", round)
		}
	}
}

func askContinue(cmd *cobra.Command) bool {
	fmt.Fprint(cmd.OutOrStdout(), "try again? [y/N] ")
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func printTrail(cmd *cobra.Command, sess *session.Session) {
	if beQuiet(cmd) {
		return
	}
	for _, att := range sess.Attempts() {
		fmt.Fprintf(cmd.OutOrStdout(), "  %d: %s\n", att.Index, att.Script)
	}
}
