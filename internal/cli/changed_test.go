package cli

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"analyzer-backend/internal/llm"
	"analyzer-backend/internal/report"
	"analyzer-backend/internal/shared/config"
)

const testVerdict = `{
  "overall_score": 80,
  "breakdown": {
    "naming": 8, "modularity": 16, "comments": 16,
    "formatting": 12, "reusability": 12, "best_practices": 16
  },
  "recommendations": ["Add docstrings to public functions"]
}`

type stubClient struct {
	output json.RawMessage
	err    error
	calls  []string
}

func (s *stubClient) AnalyzeCode(_ context.Context, in llm.AnalyzeInput) (json.RawMessage, error) {
	s.calls = append(s.calls, in.Filename)
	if s.err != nil {
		return nil, s.err
	}
	return s.output, nil
}

// resetFlags resets all package-level flag variables to their zero values.
func resetFlags() {
	flagModel = ""
	flagSave = false
	flagChangedFiles = nil
	flagChangedModel = ""
	flagOutput = "analysis_summary.json"
}

// swapLLMClient replaces the provider constructor for the test's duration.
func swapLLMClient(t *testing.T, client llm.Client, err error) {
	t.Helper()
	orig := newLLMClient
	newLLMClient = func(config.Config) (llm.Client, error) { return client, err }
	t.Cleanup(func() { newLLMClient = orig })
}

func runCLI(t *testing.T, args ...string) int {
	t.Helper()
	rootCmd.SetArgs(args)
	return Run()
}

func TestChangedWritesSummaryAndComment(t *testing.T) {
	resetFlags()
	chdir(t, t.TempDir())
	t.Setenv("GITHUB_OUTPUT", "gh_output")

	if err := os.WriteFile("good.py", []byte("def run():\n    pass\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile("notes.txt", []byte("not source"), 0o644); err != nil {
		t.Fatal(err)
	}

	client := &stubClient{output: json.RawMessage(testVerdict)}
	swapLLMClient(t, client, nil)

	code := runCLI(t, "changed", "--files", "good.py,missing.py,notes.txt", "--output", "summary.json")
	if code != ExitSuccess {
		t.Fatalf("expected exit %d, got %d", ExitSuccess, code)
	}

	// Missing and non-source files are skipped, not analyzed.
	if len(client.calls) != 1 || client.calls[0] != "good.py" {
		t.Fatalf("expected one analysis of good.py, got %v", client.calls)
	}

	payload, err := os.ReadFile("summary.json")
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	var summary report.Summary
	if err := json.Unmarshal(payload, &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if summary.FilesAnalyzed != 1 {
		t.Errorf("files_analyzed = %d, want 1", summary.FilesAnalyzed)
	}
	if summary.AverageScore != 80 {
		t.Errorf("average_score = %.1f, want 80.0", summary.AverageScore)
	}
	if _, ok := summary.Results["good.py"]; !ok {
		t.Errorf("results missing good.py: %v", summary.Results)
	}

	comment, err := os.ReadFile("summary.md")
	if err != nil {
		t.Fatalf("read comment: %v", err)
	}
	if !strings.HasPrefix(string(comment), "# Code Quality Analysis Results") {
		t.Errorf("unexpected comment header: %q", string(comment)[:40])
	}
	if !strings.Contains(string(comment), "## Code Quality Analysis: good.py") {
		t.Errorf("comment missing per-file section")
	}

	outputs, err := os.ReadFile("gh_output")
	if err != nil {
		t.Fatalf("read workflow outputs: %v", err)
	}
	if !strings.Contains(string(outputs), "files_analyzed=1\n") {
		t.Errorf("workflow outputs missing files_analyzed: %q", string(outputs))
	}
	if !strings.Contains(string(outputs), "average_score=80.0\n") {
		t.Errorf("workflow outputs missing average_score: %q", string(outputs))
	}
}

func TestChangedProviderErrorReportedInline(t *testing.T) {
	resetFlags()
	chdir(t, t.TempDir())
	t.Setenv("GITHUB_OUTPUT", "")

	if err := os.WriteFile("broken.py", []byte("x = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	swapLLMClient(t, &stubClient{err: errors.New("rate limit exceeded")}, nil)

	code := runCLI(t, "changed", "--files", "broken.py", "--output", "summary.json")
	if code != ExitSuccess {
		t.Fatalf("per-file provider errors are not fatal; expected exit %d, got %d", ExitSuccess, code)
	}

	comment, err := os.ReadFile("summary.md")
	if err != nil {
		t.Fatalf("read comment: %v", err)
	}
	if !strings.Contains(string(comment), "Error analyzing broken.py: rate limit exceeded") {
		t.Errorf("comment missing error line: %q", string(comment))
	}

	var summary report.Summary
	payload, err := os.ReadFile("summary.json")
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	if err := json.Unmarshal(payload, &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if summary.FilesAnalyzed != 0 {
		t.Errorf("files_analyzed = %d, want 0", summary.FilesAnalyzed)
	}
}

func TestChangedRequiresFiles(t *testing.T) {
	resetFlags()
	chdir(t, t.TempDir())
	swapLLMClient(t, &stubClient{output: json.RawMessage(testVerdict)}, nil)

	code := runCLI(t, "changed")
	if code != ExitUsageError {
		t.Fatalf("expected exit %d, got %d", ExitUsageError, code)
	}
}

func TestChangedClientConstructionError(t *testing.T) {
	resetFlags()
	chdir(t, t.TempDir())
	swapLLMClient(t, nil, errors.New("OPENAI_API_KEY is required"))

	code := runCLI(t, "changed", "--files", "good.py")
	if code != ExitRuntimeError {
		t.Fatalf("expected exit %d, got %d", ExitRuntimeError, code)
	}
}

// chdir changes the working directory for the test and restores it on
// cleanup, matching the behavior of testing.T.Chdir (Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}
