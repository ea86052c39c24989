package openai

import (
	"fmt"
	"strings"
)

// Message represents an OpenAI chat message.
type Message struct {
	Role    string
	Content string
}

const systemPromptTemplate = `You are an expert code reviewer specializing in %s and clean code practices.
Analyze the provided code and score it based on the following criteria:

1. Naming conventions (10 points): Variable and function naming clarity and consistency
2. Function length and modularity (20 points): How well functions are broken down and organized
3. Comments and documentation (20 points): Presence and quality of comments and docstrings
4. Formatting/indentation (15 points): Consistency and readability of code layout
5. Reusability and DRY (15 points): Avoiding repetition and promoting reuse
6. Best practices in web dev (20 points): Following language-specific and web development best practices

Code structure information:
%s
Provide your assessment as a JSON object with the following structure:
{
  "overall_score": <integer between 0-100>,
  "breakdown": {
    "naming": <integer between 0-10>,
    "modularity": <integer between 0-20>,
    "comments": <integer between 0-20>,
    "formatting": <integer between 0-15>,
    "reusability": <integer between 0-15>,
    "best_practices": <integer between 0-20>
  },
  "recommendations": [
    <3-5 string recommendations for improving the code>
  ]
}

The recommendations should be specific, actionable, and clear, pointing to exact issues in the code.
Your response must be a valid JSON object and nothing else.`

var languageRules = map[string]string{
	"Python": `- Follow PEP 8 style guide
- Use snake_case for functions and variables
- Use CamelCase for classes
- Include docstrings for modules, classes, functions
- Limit line length to 79 characters
- Use 4 spaces for indentation
- Avoid global variables
- Use list/dict comprehensions where appropriate
- Properly handle exceptions
- Use descriptive variable names`,

	"JavaScript": `- Use camelCase for variables and functions
- Use PascalCase for classes
- Use meaningful variable names
- Prefer const and let over var
- Use === and !== instead of == and !=
- Use arrow functions for callbacks
- Use template literals for string formatting
- Handle errors with try/catch
- Use semicolons consistently
- Prefer ES6+ features`,

	"React/JSX": `- Use functional components with hooks when possible
- Keep components small and focused
- Use PascalCase for component names
- Use camelCase for props and state
- Destructure props and state
- Use proper key props when rendering lists
- Avoid inline styles
- Extract reusable logic into custom hooks
- Handle side effects properly in useEffect
- Avoid prop drilling with Context or state management`,
}

// LanguageRules returns the language-specific coding standards embedded in
// the user prompt.
func LanguageRules(language string) string {
	if rules, ok := languageRules[language]; ok {
		return rules
	}
	return "No specific rules available for this language"
}

// BuildSystemPrompt creates the rubric instruction, including the structural
// summary when one is available.
func BuildSystemPrompt(language, structureSummary string) string {
	summary := structureSummary
	if strings.TrimSpace(summary) == "" {
		summary = "- (not available)\n"
	}
	if !strings.HasSuffix(summary, "\n") {
		summary += "\n"
	}
	return fmt.Sprintf(systemPromptTemplate, language, summary)
}

// BuildUserPrompt wraps the code and language rules into the review request.
func BuildUserPrompt(language, code string) string {
	return fmt.Sprintf(`Please analyze this %s code:

`+"```"+`
%s
`+"```"+`

Consider these %s best practices:
%s

Provide a comprehensive analysis with specific recommendations. The recommendations should be specific to this code and clearly actionable.`,
		language, code, language, LanguageRules(language))
}

// BuildPrompt creates the chat messages for a code analysis request.
func BuildPrompt(language, code, structureSummary string) []Message {
	return []Message{
		{Role: "system", Content: BuildSystemPrompt(language, structureSummary)},
		{Role: "user", Content: BuildUserPrompt(language, code)},
	}
}
