package analyzer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Laadnanimoustapha/DevMatch-AI/pkg/models"
)

// Structure and memory patterns for C and C++ sources.
var (
	cppFuncRe     = regexp.MustCompile(`\w+\s+\w+\s*\([^)]*\)\s*{`)
	cppClassRe    = regexp.MustCompile(`class\s+(\w+)`)
	cppIncludeRe  = regexp.MustCompile(`#include`)
	cppSmartPtrRe = regexp.MustCompile(`(?:std::)?(?:unique_ptr|shared_ptr|weak_ptr)`)
	cppNewCallRe  = regexp.MustCompile(`new\s+\w+`)
	cppDeleteRe   = regexp.MustCompile(`delete\s+\w+`)
	cppMallocRe   = regexp.MustCompile(`malloc\s*\(`)
	cppFreeRe     = regexp.MustCompile(`free\s*\(`)

	cppArrayNewRe    = regexp.MustCompile(`(?i)new\s+\w+\[.*?\]`)
	cppPlainDeleteRe = regexp.MustCompile(`(?i)delete\s+\w+`)
	cppNewArrayAfter = regexp.MustCompile(`(?i)new\s+\w+\[`)
	cppAssignPairRe  = regexp.MustCompile(`(?i)(\w+)\s*=\s*(\w+)`)

	cppSizeInLoopRe  = regexp.MustCompile(`for\s*\([^)]*\.size\(\)`)
	cppEndlRe        = regexp.MustCompile(`std::endl`)
	cppAutoRe        = regexp.MustCompile(`auto\s+\w+`)
	cppConstexprRe   = regexp.MustCompile(`constexpr\s+`)
	cppNamespaceRe   = regexp.MustCompile(`namespace\s+\w+`)
	cppNullRe        = regexp.MustCompile(`NULL\b`)
	cppNullptrRe     = regexp.MustCompile(`nullptr\b`)
	cppStdSmartRe    = regexp.MustCompile(`std::(?:unique_ptr|shared_ptr)`)
	cppVectorPushRe  = regexp.MustCompile(`std::vector.*push_back`)
	cppReserveCallRe = regexp.MustCompile(`\.reserve\s*\(`)
)

// cppPerfChecks are the anti-pattern probes for the performance subscore.
// The tier penalty applies once per distinct check that fires.
var cppPerfChecks = []perfCheck{
	reCheck(models.TierCritical, "Infinite loop detected", `(?i)while\s*\(\s*true\s*\)`),
	{
		tier:        models.TierCritical,
		description: "Array new without delete[]",
		detect: func(content string) bool {
			return matchWithoutFollowing(cppArrayNewRe, content, "delete[]")
		},
	},
	{
		tier:        models.TierCritical,
		description: "delete/delete[] mismatch",
		detect:      cppDeleteMismatch,
	},
	{
		tier:        models.TierCritical,
		description: "Self-assignment without check",
		detect:      cppSelfAssignment,
	},
	reCheck(models.TierMajor, "Multiple includes of same header", `(?i)#include\s*<.*?>.*#include\s*<.*?>`),
	reCheck(models.TierMajor, "Calling size() in loop condition", `(?i)for\s*\([^)]*\.size\(\)`),
	reCheck(models.TierMajor, `Using std::endl instead of \n`, `(?i)std::endl`),
	reCheck(models.TierMajor, "Using printf instead of iostream", `(?i)printf\s*\(`),
	reCheck(models.TierMinor, "Post-increment usage", `(?i)\+\+\w+`),
	reCheck(models.TierMinor, "Vector without reserve", `(?i)std::vector<.*?>\s+\w+;.*push_back`),
	reCheck(models.TierMinor, "String concatenation in loop", `(?i)std::string\s+\w+\s*\+=`),
	reCheck(models.TierMinor, "Magic hexadecimal numbers", `(?i)[^a-zA-Z_]0[xX][0-9a-fA-F]+`),
}

// cppDeleteMismatch finds a plain delete followed on the same line by an
// array new.
func cppDeleteMismatch(content string) bool {
	for _, line := range strings.Split(content, "\n") {
		for _, loc := range cppPlainDeleteRe.FindAllStringIndex(line, -1) {
			rest := line[loc[1]:]
			if strings.HasPrefix(rest, "[]") {
				continue
			}
			if cppNewArrayAfter.MatchString(rest) {
				return true
			}
		}
	}
	return false
}

// cppSelfAssignment finds assignments where the right side starts with the
// same identifier as the left side.
func cppSelfAssignment(content string) bool {
	for _, m := range cppAssignPairRe.FindAllStringSubmatch(content, -1) {
		if strings.HasPrefix(strings.ToLower(m[2]), strings.ToLower(m[1])) {
			return true
		}
	}
	return false
}

type featureCheck struct {
	re   *regexp.Regexp
	name string
}

func feature(pattern, name string) featureCheck {
	return featureCheck{re: regexp.MustCompile(pattern), name: name}
}

var cpp11Features = []featureCheck{
	feature(`auto\s+\w+`, "Auto type deduction"),
	feature(`nullptr\b`, "nullptr usage"),
	feature(`override\b`, "Override specifier"),
	feature(`\[[^\]]*\]\s*\([^)]*\)`, "Lambda expressions"),
	feature(`constexpr\s+`, "constexpr usage"),
	feature(`std::unique_ptr|std::shared_ptr`, "Smart pointers"),
	feature(`for\s*\(\s*auto.*?:`, "Range-based for loops"),
}

var cpp14Features = []featureCheck{
	feature(`std::make_unique`, "make_unique usage"),
	feature(`auto\s+\w+\s*=\s*\[`, "Generic lambdas"),
}

var cpp17Features = []featureCheck{
	feature(`std::optional`, "std::optional usage"),
	feature(`std::variant`, "std::variant usage"),
	feature(`if\s*constexpr`, "constexpr if"),
	feature(`auto\s*\[.*?\]`, "Structured bindings"),
}

var cppOptimizations = []featureCheck{
	feature(`const\s+\w+\s*&`, "Const reference parameters used"),
	feature(`std::move\s*\(`, "Move semantics utilized"),
	feature(`\.reserve\s*\(`, "Vector reserve() used"),
	feature(`constexpr\s+`, "Compile-time constants used"),
	feature(`inline\s+`, "Inline functions used"),
}

// cppPracticeChecks deduct points when a practice is absent.
var cppPracticeChecks = []struct {
	re     *regexp.Regexp
	name   string
	points int
}{
	{regexp.MustCompile(`const\s+\w+`), "Const correctness", 10},
	{regexp.MustCompile(`#pragma\s+once|(?s)#ifndef.*#define.*#endif`), "Header guards", 15},
	{regexp.MustCompile(`virtual\s+~\w+`), "Virtual destructors", 10},
	{regexp.MustCompile(`explicit\s+\w+\s*\(`), "Explicit constructors", 10},
	{regexp.MustCompile(`namespace\s+\w+`), "Namespace usage", 10},
	{regexp.MustCompile(`(?s)//.*|/\*.*?\*/`), "Code comments", 5},
}

var cppComplexityKeywords = compilePatterns(
	`\bif\b`, `\belse\b`, `\bwhile\b`, `\bfor\b`,
	`\bswitch\b`, `\bcase\b`, `\bcatch\b`, `\b\?\s*.*?:`,
	`\b&&\b`, `\b\|\|\b`,
)

func compilePatterns(patterns ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		res[i] = regexp.MustCompile(p)
	}
	return res
}

// CppAnalyzer scores C and C++ sources on memory safety, performance,
// modern feature adoption, best practices and maintainability.
type CppAnalyzer struct{}

// NewCppAnalyzer creates a C/C++ analyzer.
func NewCppAnalyzer() *CppAnalyzer {
	return &CppAnalyzer{}
}

// Analyze runs the full C++ analysis over the file content.
func (a *CppAnalyzer) Analyze(content, path string) *models.FileAnalysis {
	memory, _ := a.memoryScore(content)
	perf, _ := performanceScore(content, cppPerfChecks)
	modern, modernFound := a.modernScore(content)
	practices, practiceNames := a.practicesScore(content)
	maint := maintainabilityScore(content, 100, cppFuncRe)

	estimate := complexityEstimate(content, cppComplexityKeywords)

	issues := a.findIssues(content)

	found := append(practiceNames, modernFound...)
	for _, check := range cppOptimizations {
		if check.re.MatchString(content) {
			found = append(found, check.name)
		}
	}

	result := &models.FileAnalysis{
		Language: "C++",
		Categories: map[models.Category]int{
			models.CategoryMemory:          models.ClampScore(memory),
			models.CategoryPerformance:     models.ClampScore(float64(perf)),
			models.CategoryModernization:   models.ClampScore(float64(modern)),
			models.CategoryBestPractices:   models.ClampScore(float64(practices)),
			models.CategoryMaintainability: models.ClampScore(float64(maint)),
		},
		ComplexityEstimate: estimate,
		Complexity:         estimateLabel(estimate),
		Maintainability:    maintainabilityFromScore(maint),
		Functions:          len(cppFuncRe.FindAllString(content, -1)),
		Classes:            len(cppClassRe.FindAllString(content, -1)),
		Imports:            len(cppIncludeRe.FindAllString(content, -1)),
		Issues:             issues,
		Practices:          found,
		Suggestions:        a.suggestions(content),
	}

	result.QualityScore = models.ClampScore(
		float64(result.Categories[models.CategoryMemory])*0.25 +
			float64(result.Categories[models.CategoryPerformance])*0.25 +
			float64(result.Categories[models.CategoryModernization])*0.20 +
			float64(result.Categories[models.CategoryBestPractices])*0.15 +
			float64(result.Categories[models.CategoryMaintainability])*0.15)

	return result
}

// memoryScore compares allocation and deallocation counts and rewards
// smart pointer usage. Returns the score and the leak descriptions.
func (a *CppAnalyzer) memoryScore(content string) (float64, []string) {
	newCalls := len(cppNewCallRe.FindAllString(content, -1))
	deleteCalls := len(cppDeleteRe.FindAllString(content, -1))
	mallocCalls := len(cppMallocRe.FindAllString(content, -1))
	freeCalls := len(cppFreeRe.FindAllString(content, -1))
	smartPtrs := len(cppSmartPtrRe.FindAllString(content, -1))

	var leaks []string
	if newCalls > deleteCalls {
		leaks = append(leaks, fmt.Sprintf("Found %d 'new' calls but only %d 'delete' calls", newCalls, deleteCalls))
	}
	if mallocCalls > freeCalls {
		leaks = append(leaks, fmt.Sprintf("Found %d 'malloc' calls but only %d 'free' calls", mallocCalls, freeCalls))
	}

	totalAllocations := newCalls + mallocCalls
	if totalAllocations == 0 {
		return 100, leaks
	}

	smartRatio := float64(smartPtrs) / float64(totalAllocations)
	score := 100 - float64(len(leaks)*20) + smartRatio*30
	if score < 0 {
		score = 0
	}
	return score, leaks
}

// modernScore counts distinct modern language features, 10 points each.
func (a *CppAnalyzer) modernScore(content string) (int, []string) {
	var found []string
	for _, group := range [][]featureCheck{cpp11Features, cpp17Features} {
		for _, check := range group {
			if check.re.MatchString(content) {
				found = append(found, check.name)
			}
		}
	}
	for _, check := range cpp14Features {
		if check.re.MatchString(content) {
			found = append(found, check.name)
		}
	}
	if cppRelaxedConstexpr(content) {
		found = append(found, "Relaxed constexpr")
	}

	score := len(found) * 10
	if score > 100 {
		score = 100
	}
	return score, found
}

// cppRelaxedConstexpr matches constexpr not immediately followed by const.
func cppRelaxedConstexpr(content string) bool {
	for _, loc := range cppConstexprRe.FindAllStringIndex(content, -1) {
		if !strings.HasPrefix(content[loc[1]:], "const") {
			return true
		}
	}
	return false
}

// practicesScore starts at 100 and deducts points per missing practice.
// Returns the score and the names of the practices that were found.
func (a *CppAnalyzer) practicesScore(content string) (int, []string) {
	score := 100
	var found []string

	for _, check := range cppPracticeChecks {
		if check.re.MatchString(content) {
			found = append(found, check.name)
		} else {
			score -= check.points
		}
	}

	if score < 0 {
		score = 0
	}
	return score, found
}

func (a *CppAnalyzer) findIssues(content string) []models.Issue {
	var issues []models.Issue

	if matchWithoutFollowing(cppNewCallRe, content, "delete") {
		issues = append(issues, models.Issue{
			Type:        "Memory Leak",
			Severity:    models.SeverityHigh,
			Description: "Potential memory leak: new without corresponding delete",
			Suggestion:  "Use smart pointers or ensure proper delete calls",
		})
	}

	if cppSizeInLoopRe.MatchString(content) {
		issues = append(issues, models.Issue{
			Type:        "Performance",
			Severity:    models.SeverityMedium,
			Description: "Calling size() in loop condition",
			Suggestion:  "Store size() result in a variable before the loop",
		})
	}

	if cppNullRe.MatchString(content) && !cppNullptrRe.MatchString(content) {
		issues = append(issues, models.Issue{
			Type:        "Modernization",
			Severity:    models.SeverityLow,
			Description: "Using NULL instead of nullptr",
			Suggestion:  "Replace NULL with nullptr for better type safety",
		})
	}

	return issues
}

func (a *CppAnalyzer) suggestions(content string) []string {
	var suggestions []string

	if cppNewCallRe.MatchString(content) && !cppStdSmartRe.MatchString(content) {
		suggestions = append(suggestions, "Consider using smart pointers (std::unique_ptr, std::shared_ptr) for automatic memory management")
	}
	if cppEndlRe.MatchString(content) {
		suggestions = append(suggestions, `Replace std::endl with '\n' for better performance unless buffer flushing is needed`)
	}
	if cppVectorPushRe.MatchString(content) && !cppReserveCallRe.MatchString(content) {
		suggestions = append(suggestions, "Use vector.reserve() when the final size is known to avoid reallocations")
	}
	if !cppAutoRe.MatchString(content) {
		suggestions = append(suggestions, "Consider using 'auto' for type deduction to improve code maintainability")
	}
	if !cppConstexprRe.MatchString(content) {
		suggestions = append(suggestions, "Use 'constexpr' for compile-time constants and functions when possible")
	}
	if !cppNamespaceRe.MatchString(content) {
		suggestions = append(suggestions, "Consider organizing code in namespaces to avoid naming conflicts")
	}

	return capSuggestions(suggestions)
}
