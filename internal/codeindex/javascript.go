package codeindex

import (
	"regexp"

	"analyzer-backend/internal/intake"
)

var (
	jsFuncRes = []*regexp.Regexp{
		regexp.MustCompile(`function\s+([a-zA-Z_$][a-zA-Z0-9_$]*)\s*\(`),
		regexp.MustCompile(`(?:const|let|var)\s+([a-zA-Z_$][a-zA-Z0-9_$]*)\s*=\s*function\s*\(`),
		regexp.MustCompile(`(?:const|let|var)\s+([a-zA-Z_$][a-zA-Z0-9_$]*)\s*=\s*(?:async\s+)?\([^)]*\)\s*=>`),
	}
	jsClassRe   = regexp.MustCompile(`class\s+([a-zA-Z_$][a-zA-Z0-9_$]*)`)
	jsImportRe  = regexp.MustCompile(`(?m)^\s*import\s+(?:[^'"]+from\s+)?['"][^'"]+['"]`)
	jsVarRe     = regexp.MustCompile(`(?:const|let|var)\s+([a-zA-Z_$][a-zA-Z0-9_$]*)\s*=`)
	jsLineRe    = regexp.MustCompile(`(?m)//.*$`)
	jsBlockRe   = regexp.MustCompile(`(?s)/\*.*?\*/`)
	jsDocRe     = regexp.MustCompile(`(?s)/\*\*.*?\*/`)
	jsxComponRe = regexp.MustCompile(`(?:const|let|var)\s+([A-Z][a-zA-Z0-9_$]*)\s*=\s*(?:React\.memo|React\.forwardRef|\([^)]*\)\s*=>|function\s*\()`)

	camelCaseRe = regexp.MustCompile(`^[a-z][a-zA-Z0-9]*$`)
)

func indexJavaScript(s *Summary, content string) {
	var funcs []string
	for _, re := range jsFuncRes {
		funcs = append(funcs, captureNames(re, content)...)
	}
	classes := captureNames(jsClassRe, content)
	vars := captureNames(jsVarRe, content)

	s.FunctionCount = len(funcs)
	s.ClassCount = len(classes)
	s.ImportCount = len(jsImportRe.FindAllString(content, -1))
	s.VariableCount = len(vars)
	s.CommentCount = len(jsLineRe.FindAllString(content, -1)) + len(jsBlockRe.FindAllString(content, -1))

	documented := len(jsDocRe.FindAllString(content, -1))
	if documented > s.FunctionCount {
		documented = s.FunctionCount
	}

	s.Metrics["documentation_ratio"] = ratio(documented, s.FunctionCount)
	s.Metrics["comment_ratio"] = ratio(s.CommentCount, s.LineCount)
	s.Metrics["camel_case_ratio_functions"] = ratio(countMatching(funcs, camelCaseRe), len(funcs))
	s.Metrics["camel_case_ratio_variables"] = ratio(countMatching(vars, camelCaseRe), len(vars))
	s.Metrics["pascal_case_ratio_classes"] = ratio(countMatching(classes, pascalCaseRe), len(classes))

	if s.Language == intake.LangReactJSX {
		s.Metrics["react_components"] = float64(len(captureNames(jsxComponRe, content)))
	}
}
