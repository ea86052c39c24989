package codeindex

import (
	"regexp"
	"strings"
)

var (
	pyFuncRe    = regexp.MustCompile(`(?m)^\s*def\s+([A-Za-z_][A-Za-z0-9_]*)\s*\(`)
	pyClassRe   = regexp.MustCompile(`(?m)^\s*class\s+([A-Za-z_][A-Za-z0-9_]*)`)
	pyImportRe  = regexp.MustCompile(`(?m)^\s*(?:import\s+[\w.]+|from\s+[\w.]+\s+import\s+)`)
	pyAssignRe  = regexp.MustCompile(`(?m)^\s*([A-Za-z_][A-Za-z0-9_]*)\s*=[^=]`)
	pyCommentRe = regexp.MustCompile(`(?m)#.*$`)
	pyDocRe     = regexp.MustCompile(`(?s)(?:"""|''').*?(?:"""|''')`)

	snakeCaseRe  = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
	pascalCaseRe = regexp.MustCompile(`^[A-Z][a-zA-Z0-9]*$`)
)

func indexPython(s *Summary, content string) {
	funcs := captureNames(pyFuncRe, content)
	classes := captureNames(pyClassRe, content)
	vars := captureNames(pyAssignRe, content)

	s.FunctionCount = len(funcs)
	s.ClassCount = len(classes)
	s.ImportCount = len(pyImportRe.FindAllString(content, -1))
	s.VariableCount = len(vars)
	s.CommentCount = len(pyCommentRe.FindAllString(stripPyStrings(content), -1))

	docstrings := len(pyDocRe.FindAllString(content, -1))
	documented := docstrings
	if documented > s.FunctionCount+s.ClassCount {
		documented = s.FunctionCount + s.ClassCount
	}

	s.Metrics["documentation_ratio"] = ratio(documented, s.FunctionCount+s.ClassCount)
	s.Metrics["comment_ratio"] = ratio(s.CommentCount, s.LineCount)
	s.Metrics["snake_case_ratio_functions"] = ratio(countMatching(funcs, snakeCaseRe), len(funcs))
	s.Metrics["snake_case_ratio_variables"] = ratio(countMatching(vars, snakeCaseRe), len(vars))
	s.Metrics["pascal_case_ratio_classes"] = ratio(countMatching(classes, pascalCaseRe), len(classes))
}

// stripPyStrings blanks triple-quoted strings so their contents are not
// miscounted as comments.
func stripPyStrings(content string) string {
	return pyDocRe.ReplaceAllStringFunc(content, func(m string) string {
		return strings.Repeat(" ", len(m))
	})
}

func captureNames(re *regexp.Regexp, content string) []string {
	matches := re.FindAllStringSubmatch(content, -1)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		if len(m) > 1 {
			names = append(names, m[1])
		}
	}
	return names
}

func countMatching(names []string, re *regexp.Regexp) int {
	n := 0
	for _, name := range names {
		if re.MatchString(name) {
			n++
		}
	}
	return n
}
