// Package codeindex builds a lightweight structural summary of a source file.
// The summary only enriches the analysis prompt; it never produces scores.
package codeindex

import (
	"fmt"
	"sort"
	"strings"

	"analyzer-backend/internal/intake"
)

// Summary describes the structure of a single source file.
type Summary struct {
	Filename      string
	Language      intake.Language
	LineCount     int
	FunctionCount int
	ClassCount    int
	ImportCount   int
	VariableCount int
	CommentCount  int
	Metrics       map[string]float64
}

// Index scans the file and returns its structural summary. Unknown languages
// yield a summary with line count only.
func Index(file intake.SourceFile) Summary {
	s := Summary{
		Filename:  file.Name,
		Language:  file.Language,
		LineCount: countLines(file.Content),
		Metrics:   map[string]float64{},
	}

	switch file.Language {
	case intake.LangPython:
		indexPython(&s, file.Content)
	case intake.LangJavaScript, intake.LangReactJSX:
		indexJavaScript(&s, file.Content)
	}
	return s
}

// PromptLines renders the summary as "- key: value" lines for the prompt.
func (s Summary) PromptLines() string {
	var b strings.Builder
	fmt.Fprintf(&b, "- File: %s\n", s.Filename)
	fmt.Fprintf(&b, "- Language: %s\n", s.Language)
	fmt.Fprintf(&b, "- Lines of code: %d\n", s.LineCount)
	fmt.Fprintf(&b, "- Functions: %d\n", s.FunctionCount)
	fmt.Fprintf(&b, "- Classes: %d\n", s.ClassCount)
	fmt.Fprintf(&b, "- Imports: %d\n", s.ImportCount)
	fmt.Fprintf(&b, "- Variables: %d\n", s.VariableCount)
	fmt.Fprintf(&b, "- Comments: %d\n", s.CommentCount)

	keys := make([]string, 0, len(s.Metrics))
	for k := range s.Metrics {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "- %s: %.2f\n", k, s.Metrics[k])
	}
	return b.String()
}

func countLines(content string) int {
	if content == "" {
		return 0
	}
	return len(strings.Split(content, "\n"))
}

func ratio(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(part) / float64(total)
}
