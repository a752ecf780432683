package cmd

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/MeKo-Tech/ergsnap/internal/pipeline"
	"github.com/spf13/cobra"
)

// processCmd represents the process command.
var processCmd = &cobra.Command{
	Use:   "process [files...]",
	Short: "Process monitor photos into a workout record",
	Long: `Process one or more photos of a rowing machine monitor and print the
extracted workout data as JSON. Multiple photos are treated as one workout
spanning several screens and are stitched before text extraction.

Supported formats: JPEG, PNG, BMP

Examples:
  ergsnap process photo.jpg
  ergsnap process screen1.jpg screen2.jpg --stitch
  ergsnap process photo.jpg --ocr=false --output detected.json`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return errors.New("no input files provided")
		}

		cfg := GetConfig()

		timeout := cfg.Server.TimeoutSec
		if cmd.Flags().Changed("timeout") {
			timeout, _ = cmd.Flags().GetInt("timeout")
		}

		if cmd.Flags().Changed("model") {
			cfg.Azure.ModelID, _ = cmd.Flags().GetString("model")
		}
		if cmd.Flags().Changed("workers") {
			cfg.Pipeline.MaxWorkers, _ = cmd.Flags().GetInt("workers")
		}

		enhance, _ := cmd.Flags().GetBool("enhance")
		performOCR, _ := cmd.Flags().GetBool("ocr")
		strict, _ := cmd.Flags().GetBool("strict")
		stitch := len(args) > 1
		if cmd.Flags().Changed("stitch") {
			stitch, _ = cmd.Flags().GetBool("stitch")
		}

		encoded := make([]string, 0, len(args))
		for _, pth := range args {
			raw, err := os.ReadFile(pth) //nolint:gosec // G304: inputs are user-supplied paths
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", pth, err)
			}
			encoded = append(encoded, base64.StdEncoding.EncodeToString(raw))
		}

		pl, err := pipeline.NewBuilder().
			WithConfig(cfg.ToPipelineConfig()).
			WithLogger(slog.Default()).
			Build()
		if err != nil {
			return fmt.Errorf("failed to build pipeline: %w", err)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(timeout)*time.Second)
		defer cancel()

		res, err := pl.Process(ctx, encoded, pipeline.Options{
			EnhanceReadability:      enhance,
			StitchImages:            stitch,
			PerformOCR:              performOCR,
			RequireMonitorDetection: strict,
		})
		if err != nil {
			return fmt.Errorf("processing failed: %w", err)
		}

		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}

		outputFile, _ := cmd.Flags().GetString("output")
		if outputFile != "" {
			if err := os.WriteFile(outputFile, data, 0o600); err != nil {
				return fmt.Errorf("failed to write output file: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Results written to %s\n", outputFile)
			return nil
		}
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), string(data)); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
	processCmd.Flags().Bool("enhance", true, "enhance readability before text extraction")
	processCmd.Flags().Bool("stitch", false, "stitch multiple photos into one image (default: on for multiple files)")
	processCmd.Flags().Bool("ocr", true, "run text extraction (disable to only detect the monitor)")
	processCmd.Flags().Bool("strict", true, "require monitor detection to succeed")
	processCmd.Flags().String("model", "", "override document analysis model ID")
	processCmd.Flags().Int("timeout", 120, "processing timeout in seconds")
	processCmd.Flags().IntP("workers", "w", 0, "parallel detection workers (0 = number of CPUs)")
}
