package analysis

import (
	"encoding/json"
	"errors"
	"regexp"
)

var fencedJSONRe = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

// Normalize parses raw model output into a Result. Output wrapped in a
// Markdown code fence is unwrapped first. Values are returned as the model
// produced them; nothing is clamped or recomputed.
func Normalize(raw json.RawMessage) (Result, error) {
	if len(raw) == 0 {
		return Result{}, errors.New("empty model output")
	}

	payload := []byte(raw)
	if !json.Valid(payload) {
		match := fencedJSONRe.FindSubmatch(payload)
		if match == nil {
			return Result{}, errors.New("failed to parse response as JSON")
		}
		payload = match[1]
	}

	if err := validateResultShape(payload); err != nil {
		return Result{}, err
	}

	var result Result
	if err := json.Unmarshal(payload, &result); err != nil {
		return Result{}, err
	}
	if result.Recommendations == nil {
		result.Recommendations = []string{}
	}
	return result, nil
}

// FallbackResult is the degraded verdict returned when the model's output
// could not be parsed. The caller-facing flow still reports success; the
// parse failure is only visible in the recommendation text.
func FallbackResult() Result {
	return Result{
		OverallScore: 0,
		Breakdown:    Breakdown{},
		Recommendations: []string{
			"The analysis model returned an unreadable response; re-run the analysis to get a scored result.",
		},
	}
}
