package analyzer

import (
	"fmt"
	"strings"

	"github.com/Laadnanimoustapha/DevMatch-AI/pkg/models"
)

var htmlSemanticTags = []string{"header", "nav", "main", "section", "article", "aside", "footer"}

// HTMLAnalyzer checks markup structure, semantics and accessibility.
type HTMLAnalyzer struct{}

// NewHTMLAnalyzer creates an HTML analyzer.
func NewHTMLAnalyzer() *HTMLAnalyzer {
	return &HTMLAnalyzer{}
}

// Analyze reports structural and accessibility findings for an HTML file.
// Markup has no control flow, so complexity is pinned Low.
func (a *HTMLAnalyzer) Analyze(content, path string) *models.FileAnalysis {
	result := &models.FileAnalysis{
		Language:   "HTML",
		Complexity: models.ComplexityLow,
	}

	if strings.Contains(content, "<!DOCTYPE html>") {
		result.Practices = append(result.Practices, "Includes proper DOCTYPE declaration")
	} else {
		result.Issues = append(result.Issues, models.Issue{
			Type:        "Structure",
			Severity:    models.SeverityMedium,
			Description: "Missing DOCTYPE declaration",
			Suggestion:  "Start the document with <!DOCTYPE html>",
		})
	}

	var semantic []string
	for _, tag := range htmlSemanticTags {
		if strings.Contains(content, "<"+tag) {
			semantic = append(semantic, tag)
		}
	}
	if len(semantic) > 0 {
		result.Practices = append(result.Practices, fmt.Sprintf("Uses semantic HTML tags: %s", strings.Join(semantic, ", ")))
	}

	if strings.Contains(content, "alt=") {
		result.Practices = append(result.Practices, "Includes alt attributes for images")
	}
	if strings.Contains(content, "aria-") {
		result.Practices = append(result.Practices, "Uses ARIA attributes for accessibility")
	}
	if strings.Contains(content, "<meta") {
		result.Practices = append(result.Practices, "Includes meta tags")
	}
	if strings.Contains(content, "href=") || strings.Contains(content, "src=") {
		result.Practices = append(result.Practices, "Links to external resources")
	}

	return result
}

// CSSAnalyzer checks stylesheets for modern layout features and
// maintainability smells.
type CSSAnalyzer struct{}

// NewCSSAnalyzer creates a CSS analyzer.
func NewCSSAnalyzer() *CSSAnalyzer {
	return &CSSAnalyzer{}
}

// Analyze reports findings for a CSS file. Selector cascades resist a
// simple keyword count, so complexity is pinned Medium.
func (a *CSSAnalyzer) Analyze(content, path string) *models.FileAnalysis {
	result := &models.FileAnalysis{
		Language:   "CSS",
		Complexity: models.ComplexityMedium,
	}

	if strings.Contains(content, "@media") {
		result.Practices = append(result.Practices, "Uses media queries for responsive design")
	}
	if strings.Contains(content, "--") && strings.Contains(content, "var(") {
		result.Practices = append(result.Practices, "Uses CSS custom properties (variables)")
	}
	if strings.Contains(content, "display: flex") || strings.Contains(content, "display: grid") {
		result.Practices = append(result.Practices, "Uses modern layout methods (Flexbox/Grid)")
	}

	if strings.Contains(content, "-webkit-") || strings.Contains(content, "-moz-") {
		result.Issues = append(result.Issues, models.Issue{
			Type:        "Maintainability",
			Severity:    models.SeverityLow,
			Description: "Contains vendor prefixes - consider using autoprefixer",
			Suggestion:  "Generate prefixes at build time instead of by hand",
		})
	}

	if n := strings.Count(content, "!important"); n > 5 {
		result.Issues = append(result.Issues, models.Issue{
			Type:        "Maintainability",
			Severity:    models.SeverityMedium,
			Description: fmt.Sprintf("Overuses !important (%d times)", n),
			Suggestion:  "Raise selector specificity instead of forcing declarations",
		})
	}

	return result
}
