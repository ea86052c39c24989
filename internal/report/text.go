// Package report renders analysis results for the CLI and the CI comment.
package report

import (
	"fmt"
	"io"
	"strings"

	"analyzer-backend/internal/analysis"
)

var categoryLabels = map[string]string{
	"naming":         "Naming Conventions:",
	"modularity":     "Function/Modularity:",
	"comments":       "Comments/Documentation:",
	"formatting":     "Formatting/Indentation:",
	"reusability":    "Reusability/DRY:",
	"best_practices": "Best Practices:",
}

// WriteText renders a human-readable report for one analyzed file.
func WriteText(w io.Writer, filename string, result analysis.Result) {
	rule := strings.Repeat("=", 50)
	fmt.Fprintf(w, "\n%s\n", rule)
	fmt.Fprintf(w, "CODE ANALYSIS RESULTS: %s\n", filename)
	fmt.Fprintf(w, "%s\n", rule)

	fmt.Fprintf(w, "\nOverall Score: %d/100\n", result.OverallScore)
	fmt.Fprintf(w, "\nBreakdown:\n")
	for _, category := range analysis.BreakdownOrder {
		fmt.Fprintf(w, "  %-24s %d/%d\n",
			categoryLabels[category],
			result.Breakdown.ByCategory(category),
			analysis.BreakdownMaxima[category])
	}

	fmt.Fprintf(w, "\nRecommendations:\n")
	for i, rec := range result.Recommendations {
		fmt.Fprintf(w, "  %d. %s\n", i+1, rec)
	}
	fmt.Fprintf(w, "\n%s\n", rule)
}
