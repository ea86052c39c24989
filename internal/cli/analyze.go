package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"analyzer-backend/internal/analysis"
	"analyzer-backend/internal/intake"
	"analyzer-backend/internal/report"
	"analyzer-backend/internal/shared/config"
)

var (
	flagModel string
	flagSave  bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze a single source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		path := args[0]

		file, err := intake.FromPath(path)
		if err != nil {
			var unsupported *intake.UnsupportedTypeError
			if errors.Is(err, intake.ErrNotFound) || errors.As(err, &unsupported) {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				exitCode = ExitUsageError
				return nil
			}
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		client, err := newLLMClient(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		svc := analysis.NewService(client, cfg.DefaultModel)
		result, err := svc.Analyze(context.Background(), file, flagModel)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		report.WriteText(os.Stdout, file.Name, result)

		if flagSave {
			outputFile, err := report.Save(result, path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error saving results: %v\n", err)
				exitCode = ExitRuntimeError
				return nil
			}
			fmt.Fprintf(os.Stdout, "\nResults saved to: %s\n", outputFile)
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&flagModel, "model", "", "Model to use (default from DEFAULT_MODEL)")
	analyzeCmd.Flags().BoolVar(&flagSave, "save", false, "Save results to a JSON file")
}
