// Package complexity implements the lexical, regex-based cyclomatic
// complexity and function-count parsers for the language registry.
package complexity

import "regexp"

// Parser computes cyclomatic complexity and function count for one
// language's source text via regex matching. This is deliberately lexical:
// it does not understand string literals or comments, matching the
// reference implementation's known imprecision (documented, not fixed, in
// DESIGN.md's Open Question resolutions).
type Parser struct {
	Name            string
	controlPatterns []*regexp.Regexp
	functionPattern *regexp.Regexp
	preprocess      func(code string) string
}

// ComputeComplexity returns 1 plus the number of matches of every
// control-flow regex in code.
func (p *Parser) ComputeComplexity(code string) int {
	if p.preprocess != nil {
		code = p.preprocess(code)
	}
	complexity := 1
	for _, pattern := range p.controlPatterns {
		complexity += len(pattern.FindAllString(code, -1))
	}
	return complexity
}

// CountFunctions returns the number of matches of the function pattern, or 0
// if this language does not define one.
func (p *Parser) CountFunctions(code string) int {
	if p.functionPattern == nil {
		return 0
	}
	return len(p.functionPattern.FindAllString(code, -1))
}

func mustCompile(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		compiled[i] = regexp.MustCompile(p)
	}
	return compiled
}

// stripEndIf removes occurrences of "end if;" (case-insensitive) before
// matching, so Ada's closing `if` terminator is not double-counted as a
// control keyword.
func stripEndIf(code string) string {
	return regexp.MustCompile(`(?i)end if;`).ReplaceAllString(code, "")
}

// Python: ground truth in original_source/src/parsers/python.py.
func newPython() *Parser {
	return &Parser{
		Name: "Python",
		controlPatterns: mustCompile(
			`\bif\b`, `\belif\b`, `\bfor\b`, `\bwhile\b`,
			`\btry\b`, `\bexcept\b`, `\breturn\b`, `\band\b`, `\bor\b`,
		),
		functionPattern: regexp.MustCompile(`def\s+\w+\s*\(.*?\)\s*:`),
	}
}

// JavaScript/TypeScript share a control-keyword set. Ground truth in
// original_source/src/parsers/javascript.py.
func newJavaScriptLike(name string) *Parser {
	return &Parser{
		Name: name,
		controlPatterns: mustCompile(
			`\bif\b`, `\belse\s+if\b`, `\bfor\b`, `\bwhile\b`,
			`\bswitch\b`, `\bcase\b`, `\bcatch\b`, `\bthrow\b`,
			`\breturn\b`, `&&`, `\|\|`,
		),
		functionPattern: regexp.MustCompile(`function\s+\w+\s*\(.*?\)\s*\{`),
	}
}

// Java shares its control-keyword set with JavaScript; close enough in
// control-flow syntax that a separate keyword list isn't warranted.
func newJava() *Parser {
	p := newJavaScriptLike("Java")
	return p
}

// C#: ground truth in original_source/src/parsers/csharp.py.
func newCSharp() *Parser {
	return &Parser{
		Name: "C#",
		controlPatterns: mustCompile(
			`\bif\b`, `\bfor\b`, `\bwhile\b`, `\bswitch\b`,
			`\bcase\b`, `\bcatch\b`, `\bthrow\b`, `\breturn\b`,
			`&&`, `\|\|`,
		),
		functionPattern: regexp.MustCompile(`(public|private|protected)?\s+\w+\s+\w+\s*\(.*?\)\s*\{`),
	}
}

// C: ground truth in original_source/src/parsers/c.py.
func newC() *Parser {
	return &Parser{
		Name: "C",
		controlPatterns: mustCompile(
			`\bif\b`, `\belse\s+if\b`, `\bfor\b`, `\bwhile\b`, `\bdo\b`,
			`\bswitch\b`, `\bcase\b`, `\bdefault\b`, `\bbreak\b`, `\bcontinue\b`,
			`\bgoto\b`, `\breturn\b`, `&&`, `\|\|`,
		),
		functionPattern: regexp.MustCompile(`\b\w+\s+\w+\s*\(.*?\)\s*\{`),
	}
}

// C++: ground truth in original_source/src/parsers/cpp.py, which defines the
// same CONTROL_KEYWORDS as C but no FUNCTION_PATTERN — function count is
// always 0 for C++, matching the reference implementation.
func newCpp() *Parser {
	return &Parser{
		Name: "C++",
		controlPatterns: mustCompile(
			`\bif\b`, `\belse\s+if\b`, `\bfor\b`, `\bwhile\b`, `\bdo\b`,
			`\bswitch\b`, `\bcase\b`, `\bdefault\b`, `\bbreak\b`, `\bcontinue\b`,
			`\bgoto\b`, `\breturn\b`, `&&`, `\|\|`,
		),
	}
}

// Go: ground truth in original_source/src/parsers/go.py.
func newGo() *Parser {
	return &Parser{
		Name: "Go",
		controlPatterns: mustCompile(
			`\bif\b`, `\belse\s+if\b`, `\bfor\b`, `\bswitch\b`, `\bcase\b`,
			`\bselect\b`, `\bgo\b`, `\bdefer\b`, `\breturn\b`, `&&`, `\|\|`,
		),
		functionPattern: regexp.MustCompile(`func\s+\w+\s*\(.*?\)[^{\n]*\{`),
	}
}

// Ada: ground truth in original_source/src/parsers/ada.py, which matches
// `if` with a negative lookahead so the closing `end if;` terminator isn't
// counted as a second `if`. Go's regexp package (RE2) has no lookahead
// support, so here stripEndIf removes every `end if;` before matching runs,
// and `if` is matched as a plain keyword against what's left; the trailing
// `(?:\s*;)?` is vestigial once stripEndIf has run and matches nothing in
// practice, but is kept permissive in case a terminator survives stripping
// with unconventional whitespace. No FUNCTION_PATTERN is defined, so
// function count is always 0.
func newAda() *Parser {
	return &Parser{
		Name: "Ada",
		controlPatterns: mustCompile(
			`(?i)\bif(?:\s*;)?\b`, `(?i)\belsif\b`, `(?i)\bcase\b`, `(?i)\bwhen\b`,
			`(?i)\bloop\b`, `(?i)\bwhile\b`, `(?i)\bfor\b`, `(?i)\bexit\b`, `(?i)\bexception\b`,
		),
		preprocess: stripEndIf,
	}
}
