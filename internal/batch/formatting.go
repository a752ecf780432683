package batch

import (
	"encoding/json"
	"fmt"
	"os"
)

// SaveResults writes the per-file results as indented JSON to the output file,
// or stdout when no file is configured.
func (r *Result) SaveResults(outputFile string, quiet bool) error {
	data, err := json.MarshalIndent(r.Files, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	if outputFile == "" {
		fmt.Println(string(data))
		return nil
	}

	if err := os.WriteFile(outputFile, data, 0o600); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if !quiet {
		fmt.Fprintf(os.Stderr, "Results written to %s\n", outputFile)
	}
	return nil
}

// PrintStats prints a short summary of the run to stderr.
func (r *Result) PrintStats(quiet bool) {
	if quiet {
		return
	}
	fmt.Fprintf(os.Stderr, "Processed %d file(s) in %.2fs: %d succeeded, %d failed\n",
		len(r.Files), r.Elapsed.Seconds(), r.Succeeded, r.Failed)
}
