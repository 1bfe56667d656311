package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"jqplay/internal/jsonpath"
)

var pathsCmd = &cobra.Command{
	Use:   "paths [flags]",
	Short: "List the field paths of a JSON sample",
	Long:  `Enumerate the jq selectors reachable in a JSON document, the same list the completion ranker draws field suggestions from`,
	Args:  cobra.NoArgs,
	RunE:  runPaths,
}

func init() {
	pathsCmd.Flags().StringP("input", "i", "", "input JSON file (default: stdin)")
	pathsCmd.Flags().Bool("json", false, "emit JSON instead of a table")
	pathsCmd.Flags().Bool("no-cache", false, "skip the on-disk path cache")
}

func runPaths(cmd *cobra.Command, args []string) error {
	inputPath, err := cmd.Flags().GetString("input")
	if err != nil {
		return fmt.Errorf("failed to get input flag: %w", err)
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return fmt.Errorf("failed to get json flag: %w", err)
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}

	sample, err := readInput(inputPath)
	if err != nil {
		return err
	}

	paths, err := derivePaths(sample, noCache)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(pathPayload(paths))
	}
	for _, p := range paths {
		sample := p.Sample
		if sample == "" {
			sample = "-"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-32s %-9s %s\n", p.Selector, p.Kind, sample)
	}
	return nil
}

// derivePaths consults the disk cache first; derivation only runs on a
// miss, and a failed cache write never fails the command.
func derivePaths(sample []byte, noCache bool) ([]jsonpath.Path, error) {
	if noCache {
		return jsonpath.Derive(sample)
	}
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return jsonpath.Derive(sample)
	}
	dcache, err := jsonpath.NewDiskCache(filepath.Join(cacheDir, "jqplay", "paths"))
	if err != nil {
		return jsonpath.Derive(sample)
	}
	digest := jsonpath.DigestOf(sample)
	if paths, ok := dcache.Load(digest); ok {
		return paths, nil
	}
	paths, err := jsonpath.Derive(sample)
	if err != nil {
		return nil, err
	}
	if err := dcache.Store(digest, paths); err != nil {
		fmt.Fprintf(os.Stderr, "warning: path cache write failed: %v\n", err)
	}
	return paths, nil
}

type pathEntry struct {
	Path     string `json:"path"`
	Selector string `json:"selector"`
	Kind     string `json:"kind"`
	Sample   string `json:"sample,omitempty"`
}

func pathPayload(paths []jsonpath.Path) []pathEntry {
	out := make([]pathEntry, len(paths))
	for i, p := range paths {
		out[i] = pathEntry{
			Path:     p.Path,
			Selector: p.Selector,
			Kind:     p.Kind.String(),
			Sample:   p.Sample,
		}
	}
	return out
}
