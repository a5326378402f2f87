package analyzer

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/Laadnanimoustapha/DevMatch-AI/pkg/models"
)

// Basic analyzers are the fallback path when an advanced analyzer is
// disabled or fails. They rely on cheap substring and regex probes and
// feed the generic scoring formula.

var (
	basicCppFuncRe  = regexp.MustCompile(`\w+\s+\w+\s*\([^)]*\)\s*{`)
	basicCppClassRe = regexp.MustCompile(`class\s+(\w+)`)

	basicJavaClassRe  = regexp.MustCompile(`(?:public\s+)?class\s+(\w+)`)
	basicJavaMethodRe = regexp.MustCompile(`(?:public|private|protected)?\s*(?:static\s+)?(?:\w+\s+)*\w+\s*\([^)]*\)\s*{`)

	basicGoImportRe = regexp.MustCompile(`import\s*(?:\(([^)]+)\)|"([^"]+)")`)
	basicGoFuncRe   = regexp.MustCompile(`func\s+(?:\([^)]*\)\s+)?(\w+)\s*\([^)]*\)(?:\s*[^{]*)?{`)
	basicGoStructRe = regexp.MustCompile(`type\s+(\w+)\s+struct`)

	pascalCaseRe = regexp.MustCompile(`^[A-Z][a-zA-Z0-9]*$`)
)

// basicCpp is the fallback C/C++ analysis.
func basicCpp(content string, maxLineLength int) *models.FileAnalysis {
	result := &models.FileAnalysis{Language: "C++"}
	lines := strings.Split(content, "\n")

	includes := 0
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#include") {
			includes++
		}
	}
	if includes > 0 {
		result.Practices = append(result.Practices, fmt.Sprintf("Proper use of includes (%d found)", includes))
	}
	result.Imports = includes

	hasNew := strings.Contains(content, "new")
	hasDelete := strings.Contains(content, "delete")
	if hasNew && !hasDelete {
		result.Issues = append(result.Issues, models.Issue{
			Type:        "Memory",
			Severity:    models.SeverityHigh,
			Description: "Memory allocation found without corresponding deallocation",
			Suggestion:  "Pair every new with a delete, or use smart pointers",
		})
	} else if hasNew && hasDelete {
		result.Practices = append(result.Practices, "Proper memory management with new/delete")
	}

	for _, ptr := range []string{"unique_ptr", "shared_ptr", "weak_ptr"} {
		if strings.Contains(content, ptr) {
			result.Practices = append(result.Practices, "Uses modern C++ smart pointers")
			break
		}
	}

	if strings.Contains(content, "const") {
		result.Practices = append(result.Practices, "Uses const for immutable data")
	}
	if strings.Contains(content, "namespace") {
		result.Practices = append(result.Practices, "Proper namespace usage")
	}
	if strings.Contains(content, "class") &&
		(strings.Contains(content, "~") || strings.Contains(strings.ToLower(content), "destructor")) {
		result.Practices = append(result.Practices, "Implements RAII pattern with destructors")
	}

	result.Functions = len(basicCppFuncRe.FindAllString(content, -1))

	classes := basicCppClassRe.FindAllStringSubmatch(content, -1)
	result.Classes = len(classes)
	for _, m := range classes {
		if !pascalCaseRe.MatchString(m[1]) {
			result.Issues = append(result.Issues, models.Issue{
				Type:        "Naming",
				Severity:    models.SeverityLow,
				Description: fmt.Sprintf("Class '%s' doesn't follow naming convention", m[1]),
				Suggestion:  "Use PascalCase for class names",
			})
		}
	}

	checkBasicLineLengths(lines, maxLineLength, result)
	return result
}

// basicJava is the fallback Java analysis.
func basicJava(content string, maxLineLength int) *models.FileAnalysis {
	result := &models.FileAnalysis{Language: "Java"}
	lines := strings.Split(content, "\n")

	if strings.Contains(content, "package") {
		result.Practices = append(result.Practices, "Proper package declaration")
	}

	imports := 0
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "import") {
			imports++
		}
	}
	if imports > 0 {
		result.Practices = append(result.Practices, fmt.Sprintf("Organized imports (%d found)", imports))
	}
	result.Imports = imports

	classes := basicJavaClassRe.FindAllStringSubmatch(content, -1)
	result.Classes = len(classes)
	result.Functions = len(basicJavaMethodRe.FindAllString(content, -1))

	if strings.Contains(content, "private") {
		result.Practices = append(result.Practices, "Uses proper encapsulation with private members")
	}
	if strings.Contains(content, "interface") {
		result.Practices = append(result.Practices, "Implements interfaces for abstraction")
	}
	if strings.Contains(content, "try") && strings.Contains(content, "catch") {
		result.Practices = append(result.Practices, "Includes proper exception handling")
	}
	if strings.Contains(content, "<") && strings.Contains(content, ">") {
		result.Practices = append(result.Practices, "Uses generics for type safety")
	}

	for _, m := range classes {
		if !pascalCaseRe.MatchString(m[1]) {
			result.Issues = append(result.Issues, models.Issue{
				Type:        "Naming",
				Severity:    models.SeverityLow,
				Description: fmt.Sprintf("Class '%s' doesn't follow naming convention", m[1]),
				Suggestion:  "Use PascalCase for class names",
			})
		}
	}

	if strings.Contains(content, "System.out.println") {
		result.Issues = append(result.Issues, models.Issue{
			Type:        "Logging",
			Severity:    models.SeverityLow,
			Description: "Uses System.out.println - consider using logging framework",
			Suggestion:  "Route output through a configurable logger",
		})
	}

	checkBasicLineLengths(lines, maxLineLength, result)
	return result
}

// basicGo is the fallback Go analysis.
func basicGo(content string) *models.FileAnalysis {
	result := &models.FileAnalysis{Language: "Go"}

	if strings.HasPrefix(strings.TrimSpace(content), "package") {
		result.Practices = append(result.Practices, "Proper package declaration")
	} else {
		result.Issues = append(result.Issues, models.Issue{
			Type:        "Structure",
			Severity:    models.SeverityHigh,
			Description: "Missing package declaration",
			Suggestion:  "Every Go file must begin with a package clause",
		})
	}

	result.Imports = len(basicGoImportRe.FindAllString(content, -1))

	functions := basicGoFuncRe.FindAllStringSubmatch(content, -1)
	result.Functions = len(functions)
	result.Classes = len(basicGoStructRe.FindAllString(content, -1))

	if strings.Contains(content, "if err != nil") {
		result.Practices = append(result.Practices, "Proper Go error handling pattern")
	} else if strings.Contains(content, "error") {
		result.Issues = append(result.Issues, models.Issue{
			Type:        "Error Handling",
			Severity:    models.SeverityMedium,
			Description: "Error handling could be improved",
			Suggestion:  "Check returned errors with if err != nil",
		})
	}

	if strings.Contains(content, "go ") {
		result.Practices = append(result.Practices, "Uses goroutines for concurrency")
	}
	if strings.Contains(content, "chan") {
		result.Practices = append(result.Practices, "Uses channels for communication")
	}
	if strings.Contains(content, "defer") {
		result.Practices = append(result.Practices, "Uses defer for cleanup")
	}
	if strings.Contains(content, "interface") {
		result.Practices = append(result.Practices, "Defines interfaces for abstraction")
	}

	for _, m := range functions {
		name := m[1]
		if len(name) > 1 && unicode.IsUpper(rune(name[0])) {
			result.Practices = append(result.Practices, fmt.Sprintf("Function '%s' is properly exported", name))
		}
	}

	return result
}

// checkBasicLineLengths reports the first five lines over the limit.
func checkBasicLineLengths(lines []string, maxLineLength int, result *models.FileAnalysis) {
	var longLines []int
	for i, line := range lines {
		if len(line) > maxLineLength {
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
			Suggestion:  fmt.Sprintf("Keep lines under %d characters", maxLineLength),
		})
	}
}
