package analyzer

import (
	"regexp"
	"strings"

	"github.com/Laadnanimoustapha/DevMatch-AI/pkg/models"
)

// jsModernFeatures maps token presence to a modern-JavaScript practice.
var jsModernFeatures = []struct {
	token       string
	description string
}{
	{"const", "Uses const for immutable variables"},
	{"let", "Uses let for block-scoped variables"},
	{"=>", "Uses arrow functions"},
	{"async", "Uses async/await for asynchronous code"},
	{"await", "Proper async/await usage"},
	{"...", "Uses spread/rest operators"},
	{"class", "Uses ES6 classes"},
	{"import", "Uses ES6 modules"},
	{"export", "Proper module exports"},
}

// jsFuncPatterns cover declarations, expressions, arrow functions and
// object method definitions.
var jsFuncPatterns = compilePatterns(
	`function\s+(\w+)`,
	`(\w+)\s*=\s*function`,
	`(\w+)\s*=\s*\([^)]*\)\s*=>`,
	`(\w+)\s*\([^)]*\)\s*{`,
)

var jsTypeAnnotationRe = regexp.MustCompile(`:\s*(?:string|number|boolean)`)

// JSAnalyzer inspects JavaScript and TypeScript sources for modern
// language feature adoption and common anti-patterns.
type JSAnalyzer struct{}

// NewJSAnalyzer creates a JavaScript/TypeScript analyzer.
func NewJSAnalyzer() *JSAnalyzer {
	return &JSAnalyzer{}
}

// Analyze reports findings for a JavaScript or TypeScript file. Scoring
// happens on the generic path, so no category map is set.
func (a *JSAnalyzer) Analyze(content, path string) *models.FileAnalysis {
	result := &models.FileAnalysis{Language: "JavaScript"}

	for _, f := range jsModernFeatures {
		if strings.Contains(content, f.token) {
			result.Practices = append(result.Practices, f.description)
		}
	}

	if strings.Contains(content, "$(") || strings.Contains(content, "jQuery") {
		result.Issues = append(result.Issues, models.Issue{
			Type:        "Modernization",
			Severity:    models.SeverityLow,
			Description: "Uses jQuery - consider modern alternatives",
			Suggestion:  "Native DOM APIs cover most jQuery use cases",
		})
	}

	if strings.Contains(content, "console.log") {
		result.Issues = append(result.Issues, models.Issue{
			Type:        "Debugging",
			Severity:    models.SeverityLow,
			Description: "Contains console.log statements - remove for production",
			Suggestion:  "Use a logging library with configurable levels",
		})
	}

	if strings.Contains(content, "try") && strings.Contains(content, "catch") {
		result.Practices = append(result.Practices, "Includes proper error handling")
	}

	for _, re := range jsFuncPatterns {
		result.Functions += len(re.FindAllString(content, -1))
	}

	if strings.HasSuffix(path, ".ts") || strings.HasSuffix(path, ".tsx") {
		result.Language = "TypeScript"
		if jsTypeAnnotationRe.MatchString(content) {
			result.Practices = append(result.Practices, "Uses TypeScript type annotations")
		}
		if strings.Contains(content, "interface") {
			result.Practices = append(result.Practices, "Defines TypeScript interfaces")
		}
	}

	return result
}
