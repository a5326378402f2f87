package analyzer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Laadnanimoustapha/DevMatch-AI/pkg/config"
	"github.com/Laadnanimoustapha/DevMatch-AI/pkg/models"
	"github.com/Laadnanimoustapha/DevMatch-AI/pkg/parser"
)

var (
	pySnakeCaseRe  = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)
	pyPascalCaseRe = regexp.MustCompile(`^[A-Z][a-zA-Z0-9]*$`)
)

// PythonAnalyzer inspects Python sources through a real parse tree:
// function and class definitions, imports and structural practices come
// from the AST rather than regular expressions.
type PythonAnalyzer struct {
	limits config.StyleLimits
}

// NewPythonAnalyzer creates a Python analyzer with the given style limits.
func NewPythonAnalyzer(limits config.StyleLimits) *PythonAnalyzer {
	return &PythonAnalyzer{limits: limits}
}

// Analyze parses the source and reports naming, length and structural
// findings. Scoring happens on the generic path, so no category map is set.
func (a *PythonAnalyzer) Analyze(content, path string) *models.FileAnalysis {
	result := &models.FileAnalysis{Language: "Python"}

	p := parser.New()
	defer p.Close()

	parsed, err := p.Parse([]byte(content), parser.LangPython, path)
	if err != nil {
		result.Issues = append(result.Issues, models.Issue{
			Type:        "Syntax",
			Severity:    models.SeverityHigh,
			Description: fmt.Sprintf("Analysis error: %v", err),
		})
		a.checkLineLengths(content, result)
		return result
	}

	root := parsed.Tree.RootNode()
	if root.HasError() {
		result.Issues = append(result.Issues, models.Issue{
			Type:        "Syntax",
			Severity:    models.SeverityHigh,
			Description: "Syntax error detected",
			Suggestion:  "Fix the syntax errors before further analysis",
		})
	}

	functions := parser.GetFunctions(parsed)
	classes := parser.GetClasses(parsed)
	imports := len(parser.FindNodesByType(root, parsed.Source, "import_statement")) +
		len(parser.FindNodesByType(root, parsed.Source, "import_from_statement"))

	result.Functions = len(functions)
	result.Classes = len(classes)
	result.Imports = imports

	for _, fn := range functions {
		length := int(fn.EndLine) - int(fn.StartLine)
		if length > a.limits.MaxFunctionLength {
			result.Issues = append(result.Issues, models.Issue{
				Type:        "Style",
				Severity:    models.SeverityMedium,
				Description: fmt.Sprintf("Function '%s' is too long (%d lines)", fn.Name, length),
				Suggestion:  "Split the function into smaller, focused functions",
			})
		}

		if !pySnakeCaseRe.MatchString(fn.Name) {
			result.Issues = append(result.Issues, models.Issue{
				Type:        "Naming",
				Severity:    models.SeverityLow,
				Description: fmt.Sprintf("Function '%s' doesn't follow naming convention", fn.Name),
				Suggestion:  "Use snake_case for function names",
			})
		} else {
			result.Practices = append(result.Practices, fmt.Sprintf("Good naming convention for function '%s'", fn.Name))
		}
	}

	for _, cls := range classes {
		if !pyPascalCaseRe.MatchString(cls.Name) {
			result.Issues = append(result.Issues, models.Issue{
				Type:        "Naming",
				Severity:    models.SeverityLow,
				Description: fmt.Sprintf("Class '%s' doesn't follow naming convention", cls.Name),
				Suggestion:  "Use PascalCase for class names",
			})
		} else {
			result.Practices = append(result.Practices, fmt.Sprintf("Good naming convention for class '%s'", cls.Name))
		}
	}

	if imports > 20 {
		result.Issues = append(result.Issues, models.Issue{
			Type:        "Structure",
			Severity:    models.SeverityLow,
			Description: "Too many imports - consider organizing them",
			Suggestion:  "Group imports and remove unused ones",
		})
	} else if imports > 0 {
		result.Practices = append(result.Practices, "Imports are present and organized")
	}

	if len(parser.FindNodesByType(root, parsed.Source, "list_comprehension")) > 0 {
		result.Practices = append(result.Practices, "Uses list comprehensions - good Python practice")
	}
	if len(parser.FindNodesByType(root, parsed.Source, "with_statement")) > 0 {
		result.Practices = append(result.Practices, "Uses context managers for file handling")
	}
	if len(parser.FindNodesByType(root, parsed.Source, "try_statement")) > 0 {
		result.Practices = append(result.Practices, "Includes proper exception handling")
	}
	if strings.Contains(content, `"""`) || strings.Contains(content, "'''") {
		result.Practices = append(result.Practices, "Includes docstrings for documentation")
	}

	a.checkLineLengths(content, result)

	return result
}

// checkLineLengths reports the first five lines over the style limit.
func (a *PythonAnalyzer) checkLineLengths(content string, result *models.FileAnalysis) {
	var longLines []int
	for i, line := range strings.Split(content, "\n") {
		if len(line) > a.limits.MaxLineLength {
			longLines = append(longLines, i+1)
			if len(longLines) == 5 {
				break
			}
		}
	}

	if len(longLines) > 0 {
		result.Issues = append(result.Issues, models.Issue{
			Type:        "Style",
			Severity:    models.SeverityLow,
			Description: fmt.Sprintf("Lines too long: %v", longLines),
			Suggestion:  fmt.Sprintf("Keep lines under %d characters", a.limits.MaxLineLength),
		})
	}
}
