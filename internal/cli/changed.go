package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"analyzer-backend/internal/analysis"
	"analyzer-backend/internal/intake"
	"analyzer-backend/internal/report"
	"analyzer-backend/internal/shared/config"
)

var (
	flagChangedFiles []string
	flagChangedModel string
	flagOutput       string
)

var changedCmd = &cobra.Command{
	Use:   "changed",
	Short: "Analyze a batch of changed files and emit a CI summary",
	Long:  "Analyze each existing allow-listed file, write a JSON summary plus a Markdown comment file, and print GitHub Actions outputs.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(flagChangedFiles) == 0 {
			fmt.Fprintln(os.Stderr, "Error: --files is required")
			exitCode = ExitUsageError
			return nil
		}

		cfg := config.Load()
		client, err := newLLMClient(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}
		svc := analysis.NewService(client, cfg.DefaultModel)

		ctx := context.Background()
		var results []report.FileResult
		for _, path := range flagChangedFiles {
			file, err := intake.FromPath(path)
			if err != nil {
				// Missing or non-source files in the diff are skipped, not fatal.
				continue
			}
			result, err := svc.Analyze(ctx, file, flagChangedModel)
			if err != nil {
				results = append(results, report.FileResult{Path: path, Err: err})
				continue
			}
			results = append(results, report.FileResult{Path: path, Result: result})
		}

		summary := report.BuildSummary(results)

		payload, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}
		if err := os.WriteFile(flagOutput, payload, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing summary: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		commentFile := strings.TrimSuffix(flagOutput, ".json") + ".md"
		if err := os.WriteFile(commentFile, []byte(summary.CommentText), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing comment: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		writeActionsOutputs(summary)
		fmt.Fprintf(os.Stdout, "Analyzed %d files, average score %.1f/100\n",
			summary.FilesAnalyzed, summary.AverageScore)
		return nil
	},
}

// writeActionsOutputs appends workflow outputs when running under GitHub
// Actions; otherwise it is a no-op.
func writeActionsOutputs(summary report.Summary) {
	outputPath := os.Getenv("GITHUB_OUTPUT")
	if outputPath == "" {
		return
	}
	f, err := os.OpenFile(outputPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not write workflow outputs: %v\n", err)
		return
	}
	defer f.Close()
	fmt.Fprintf(f, "files_analyzed=%d\n", summary.FilesAnalyzed)
	fmt.Fprintf(f, "average_score=%.1f\n", summary.AverageScore)
}

func init() {
	changedCmd.Flags().StringSliceVar(&flagChangedFiles, "files", nil, "Files to analyze (comma-separated or repeated)")
	changedCmd.Flags().StringVar(&flagChangedModel, "model", "", "Model to use (default from DEFAULT_MODEL)")
	changedCmd.Flags().StringVar(&flagOutput, "output", "analysis_summary.json", "Output file for the JSON summary")
}
