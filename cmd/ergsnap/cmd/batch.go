package cmd

import (
	"fmt"
	"log/slog"

	"github.com/MeKo-Tech/ergsnap/internal/batch"
	"github.com/MeKo-Tech/ergsnap/internal/config"
	"github.com/spf13/cobra"
)

// batchCmd represents the batch command for processing many photos offline.
var batchCmd = &cobra.Command{
	Use:   "batch [files...]",
	Short: "Process many monitor photos from the filesystem",
	Long: `Process multiple photo files or directories of photos, producing for each
input the same JSON the HTTP API returns.

Supported formats: JPEG, PNG, BMP

Examples:
  ergsnap batch *.jpg
  ergsnap batch photos/ --recursive --output results.json
  ergsnap batch screen1.jpg screen2.jpg --combine
  ergsnap batch photos/ --continue-on-error --quiet`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runBatchCommand,
}

// configToBatchConfig maps centralized configuration to batch.Config.
// CLI flags override config file values.
func configToBatchConfig(cfg *config.Config, cmd *cobra.Command) *batch.Config {
	batchConfig := batch.DefaultConfig()

	if cmd.Flags().Changed("model") {
		cfg.Azure.ModelID, _ = cmd.Flags().GetString("model")
	}
	if cmd.Flags().Changed("workers") {
		cfg.Pipeline.MaxWorkers, _ = cmd.Flags().GetInt("workers")
	}
	batchConfig.Pipeline = cfg.ToPipelineConfig()

	batchConfig.Enhance, _ = cmd.Flags().GetBool("enhance")
	batchConfig.Stitch, _ = cmd.Flags().GetBool("stitch")
	batchConfig.OCR, _ = cmd.Flags().GetBool("ocr")
	batchConfig.Strict, _ = cmd.Flags().GetBool("strict")
	batchConfig.Combine, _ = cmd.Flags().GetBool("combine")

	batchConfig.ContinueOnError = cfg.Batch.ContinueOnError
	if cmd.Flags().Changed("continue-on-error") {
		batchConfig.ContinueOnError, _ = cmd.Flags().GetBool("continue-on-error")
	}

	batchConfig.Recursive, _ = cmd.Flags().GetBool("recursive")
	if cmd.Flags().Changed("include") {
		batchConfig.IncludePatterns, _ = cmd.Flags().GetStringSlice("include")
	}
	batchConfig.ExcludePatterns, _ = cmd.Flags().GetStringSlice("exclude")

	batchConfig.OutputFile, _ = cmd.Flags().GetString("output")
	batchConfig.Quiet, _ = cmd.Flags().GetBool("quiet")

	return batchConfig
}

func runBatchCommand(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	batchConfig := configToBatchConfig(cfg, cmd)

	result, err := batch.ProcessBatch(cmd.Context(), args, batchConfig, slog.Default())
	if err != nil {
		return fmt.Errorf("batch processing failed: %w", err)
	}

	if err := result.SaveResults(batchConfig.OutputFile, batchConfig.Quiet); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}

	result.PrintStats(batchConfig.Quiet)

	return nil
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Processing flags
	batchCmd.Flags().Bool("enhance", true, "enhance readability before text extraction")
	batchCmd.Flags().Bool("stitch", false, "stitch grouped photos into one image (combined mode)")
	batchCmd.Flags().Bool("ocr", true, "run text extraction (disable to only detect monitors)")
	batchCmd.Flags().Bool("strict", true, "require monitor detection to succeed")
	batchCmd.Flags().Bool("combine", false, "send all inputs as one multi-photo request")
	batchCmd.Flags().String("model", "", "override document analysis model ID")
	batchCmd.Flags().IntP("workers", "w", 0, "parallel detection workers (0 = number of CPUs)")

	// Error handling
	batchCmd.Flags().Bool("continue-on-error", false, "keep processing remaining files after a failure")

	// File discovery flags
	batchCmd.Flags().BoolP("recursive", "r", false, "recursively scan directories")
	batchCmd.Flags().StringSlice("include",
		[]string{"*.jpg", "*.jpeg", "*.png", "*.bmp"}, "file patterns to include")
	batchCmd.Flags().StringSlice("exclude", []string{}, "file patterns to exclude")

	// Output flags
	batchCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
	batchCmd.Flags().Bool("quiet", false, "suppress progress output")
}
