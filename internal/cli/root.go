package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"analyzer-backend/internal/llm"
	llmopenai "analyzer-backend/internal/llm/openai"
	"analyzer-backend/internal/shared/config"
)

const version = "1.0.0"

// Exit codes are deterministic so CI steps can branch on them.
const (
	ExitSuccess      = 0
	ExitUsageError   = 1
	ExitRuntimeError = 2
)

var rootCmd = &cobra.Command{
	Use:   "analyzer",
	Short: "LLM-backed code quality analyzer",
	Long:  "Analyzer scores source files against a fixed six-category rubric using a hosted language model.",
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

func init() {
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(changedCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(versionCmd)
}

// Run executes the root command and returns an exit code.
func Run() int {
	exitCode = ExitSuccess
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		return ExitUsageError
	}
	return exitCode
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print analyzer version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "analyzer version %s\n", version)
	},
}

// newLLMClient builds the provider client from environment configuration.
// A variable so tests can swap in a fake client.
var newLLMClient = func(cfg config.Config) (llm.Client, error) {
	return llmopenai.NewClient(cfg.OpenAIAPIKey, cfg.DefaultModel, time.Duration(cfg.LLMTimeoutSecs)*time.Second)
}
