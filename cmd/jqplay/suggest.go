package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"jqplay/internal/complete"
	"jqplay/internal/jsonpath"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [flags] <partial-line>",
	Short: "Rank completion candidates for a partial script line",
	Long:  `Show the completion candidates the playground would offer with the cursor at the end of the given line`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSuggest,
}

func init() {
	suggestCmd.Flags().StringP("input", "i", "", "input JSON file (default: stdin)")
	suggestCmd.Flags().Bool("json", false, "emit JSON instead of a table")
	suggestCmd.Flags().Int("limit", 10, "maximum number of candidates to show")
}

func runSuggest(cmd *cobra.Command, args []string) error {
	line := args[0]
	inputPath, err := cmd.Flags().GetString("input")
	if err != nil {
		return fmt.Errorf("failed to get input flag: %w", err)
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return fmt.Errorf("failed to get json flag: %w", err)
	}
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return fmt.Errorf("failed to get limit flag: %w", err)
	}

	sample, err := readInput(inputPath)
	if err != nil {
		return err
	}
	paths, err := jsonpath.Derive(sample)
	if err != nil {
		return err
	}

	ctx := complete.AnalyzeContext(line)
	partial := complete.PartialWord(line)
	candidates := complete.Rank(partial, ctx, paths, complete.Catalog())
	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(suggestPayload(candidates))
	}
	for _, c := range candidates {
		fmt.Fprintf(cmd.OutOrStdout(), "%-8s %-24s %s\n", c.Kind, c.Label, c.InsertText)
	}
	return nil
}

type suggestEntry struct {
	Label      string `json:"label"`
	InsertText string `json:"insert_text"`
	Kind       string `json:"kind"`
	Category   string `json:"category,omitempty"`
	Score      int    `json:"score"`
}

func suggestPayload(candidates []complete.Candidate) []suggestEntry {
	out := make([]suggestEntry, len(candidates))
	for i, c := range candidates {
		out[i] = suggestEntry{
			Label:      c.Label,
			InsertText: c.InsertText,
			Kind:       c.Kind.String(),
			Category:   string(c.Category),
			Score:      c.Score,
		}
	}
	return out
}
