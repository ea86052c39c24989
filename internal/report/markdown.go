package report

import (
	"fmt"
	"strings"

	"analyzer-backend/internal/analysis"
)

// FileResult pairs a source file with its analysis outcome for the CI
// summary. Err is set when the provider call failed for that file.
type FileResult struct {
	Path   string
	Result analysis.Result
	Err    error
}

// Summary aggregates a batch of per-file analyses for the CI workflow.
type Summary struct {
	FilesAnalyzed int                        `json:"files_analyzed"`
	AverageScore  float64                    `json:"average_score"`
	Results       map[string]analysis.Result `json:"results"`
	CommentText   string                     `json:"comment_text"`
}

// FileComment renders the Markdown comment block for one analyzed file.
func FileComment(filename string, result analysis.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Code Quality Analysis: %s\n\n", filename)
	fmt.Fprintf(&b, "**Overall Score**: %d/100\n\n", result.OverallScore)

	b.WriteString("### Score Breakdown\n\n")
	for _, category := range analysis.BreakdownOrder {
		fmt.Fprintf(&b, "- **%s**: %d/%d\n",
			capitalize(category),
			result.Breakdown.ByCategory(category),
			analysis.BreakdownMaxima[category])
	}
	b.WriteString("\n")

	if len(result.Recommendations) > 0 {
		b.WriteString("### Recommendations\n\n")
		for i, rec := range result.Recommendations {
			fmt.Fprintf(&b, "%d. %s\n", i+1, rec)
		}
	}
	return b.String()
}

// BuildSummary composes the batch summary and its posted comment text.
func BuildSummary(results []FileResult) Summary {
	summary := Summary{
		Results:     map[string]analysis.Result{},
		CommentText: "# Code Quality Analysis Results 🔍\n\n",
	}

	totalScore := 0
	for _, fr := range results {
		if fr.Err != nil {
			summary.CommentText += fmt.Sprintf("Error analyzing %s: %s\n\n", fr.Path, fr.Err.Error())
			continue
		}
		summary.FilesAnalyzed++
		totalScore += fr.Result.OverallScore
		summary.Results[fr.Path] = fr.Result
		summary.CommentText += FileComment(fr.Path, fr.Result) + "\n\n---\n\n"
	}

	if summary.FilesAnalyzed > 0 {
		summary.AverageScore = float64(totalScore) / float64(summary.FilesAnalyzed)
	}

	summary.CommentText += fmt.Sprintf(
		"\n\n_Analysis performed on %d files with an average score of %.1f/100._\n",
		summary.FilesAnalyzed, summary.AverageScore)
	summary.CommentText += "\n_Generated by the Code Quality Analyzer_"
	return summary
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
