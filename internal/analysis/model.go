package analysis

// Breakdown holds the six fixed category sub-scores. Maxima are
// 10/20/20/15/15/20 in field order.
type Breakdown struct {
	Naming        int `json:"naming"`
	Modularity    int `json:"modularity"`
	Comments      int `json:"comments"`
	Formatting    int `json:"formatting"`
	Reusability   int `json:"reusability"`
	BestPractices int `json:"best_practices"`
}

// Result is the verdict returned to callers. Scores are passed through from
// the model unchanged; overall_score is not recomputed from the breakdown.
type Result struct {
	OverallScore    int       `json:"overall_score"`
	Breakdown       Breakdown `json:"breakdown"`
	Recommendations []string  `json:"recommendations"`
}

// BreakdownMaxima maps each category to its maximum points.
var BreakdownMaxima = map[string]int{
	"naming":         10,
	"modularity":     20,
	"comments":       20,
	"formatting":     15,
	"reusability":    15,
	"best_practices": 20,
}

// BreakdownOrder is the category display order.
var BreakdownOrder = []string{
	"naming", "modularity", "comments", "formatting", "reusability", "best_practices",
}

// ModelInfo describes a selectable analysis model tier.
type ModelInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// AvailableModels is the fixed catalog exposed by GET /models.
var AvailableModels = []ModelInfo{
	{ID: "gpt-3.5-turbo", Name: "GPT-3.5 Turbo", Description: "Faster and more cost-effective"},
	{ID: "gpt-4", Name: "GPT-4", Description: "More accurate but slower and more expensive"},
}

// ByCategory returns the sub-score for a named category.
func (b Breakdown) ByCategory(name string) int {
	switch name {
	case "naming":
		return b.Naming
	case "modularity":
		return b.Modularity
	case "comments":
		return b.Comments
	case "formatting":
		return b.Formatting
	case "reusability":
		return b.Reusability
	case "best_practices":
		return b.BestPractices
	default:
		return 0
	}
}
