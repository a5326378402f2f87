package analyzer

import (
	"strings"
	"testing"

	"github.com/Laadnanimoustapha/DevMatch-AI/pkg/models"
)

func TestCppMemoryLeakDetection(t *testing.T) {
	content := `int main() {
    Widget* w = new Widget();
    return 0;
}
`
	result := NewCppAnalyzer().Analyze(content, "main.cpp")

	if got := result.Categories[models.CategoryMemory]; got >= 100 {
		t.Errorf("memory score = %d, want < 100 for a leak", got)
	}

	found := false
	for _, issue := range result.Issues {
		if issue.Description == "Potential memory leak: new without corresponding delete" {
			found = true
			if issue.Severity != models.SeverityHigh {
				t.Errorf("leak severity = %v, want high", issue.Severity)
			}
		}
	}
	if !found {
		t.Errorf("missing memory leak issue, got %v", result.Issues)
	}
}

func TestCppBalancedAllocation(t *testing.T) {
	// The leak probe inspects the remainder of the allocating line.
	content := `int main() {
    Widget* w = new Widget(); cleanup([&] { delete w; });
    return 0;
}
`
	result := NewCppAnalyzer().Analyze(content, "main.cpp")

	for _, issue := range result.Issues {
		if issue.Type == "Memory Leak" {
			t.Errorf("unexpected leak issue for balanced new/delete: %v", issue)
		}
	}
}

func TestCppNullVsNullptr(t *testing.T) {
	result := NewCppAnalyzer().Analyze("int* p = NULL;\n", "legacy.cpp")

	found := false
	for _, issue := range result.Issues {
		if issue.Description == "Using NULL instead of nullptr" {
			found = true
		}
	}
	if !found {
		t.Errorf("missing NULL issue, got %v", result.Issues)
	}

	// nullptr anywhere in the file suppresses the issue.
	result = NewCppAnalyzer().Analyze("int* p = NULL;\nint* q = nullptr;\n", "mixed.cpp")
	for _, issue := range result.Issues {
		if issue.Description == "Using NULL instead of nullptr" {
			t.Error("NULL issue should be suppressed when nullptr is present")
		}
	}
}

func TestCppModernFeatures(t *testing.T) {
	content := `#pragma once
namespace app {
constexpr int limit = 10;
auto value = compute();
int* p = nullptr;
}
`
	result := NewCppAnalyzer().Analyze(content, "modern.hpp")

	if got := result.Categories[models.CategoryModernization]; got < 30 {
		t.Errorf("modernization score = %d, want >= 30 for auto+nullptr+constexpr", got)
	}

	joined := strings.Join(result.Practices, "|")
	for _, want := range []string{"Auto type deduction", "nullptr usage", "constexpr usage"} {
		if !strings.Contains(joined, want) {
			t.Errorf("practices missing %q: %v", want, result.Practices)
		}
	}
}

func TestCppInfiniteLoopPenalty(t *testing.T) {
	clean := NewCppAnalyzer().Analyze("int f() { return 1; }\n", "a.cpp")
	looping := NewCppAnalyzer().Analyze("void f() { while (true) { spin(); } }\n", "b.cpp")

	if looping.Categories[models.CategoryPerformance] >= clean.Categories[models.CategoryPerformance] {
		t.Errorf("infinite loop should lower performance: clean=%d looping=%d",
			clean.Categories[models.CategoryPerformance],
			looping.Categories[models.CategoryPerformance])
	}
}

func TestCppEndlSuggestion(t *testing.T) {
	result := NewCppAnalyzer().Analyze("std::cout << x << std::endl;\n", "out.cpp")

	found := false
	for _, s := range result.Suggestions {
		if strings.Contains(s, "std::endl") {
			found = true
		}
	}
	if !found {
		t.Errorf("missing std::endl suggestion, got %v", result.Suggestions)
	}
}

func TestCppScoreAndCategoryBounds(t *testing.T) {
	inputs := []string{
		"",
		"while (true) { p = new Foo[10]; printf(\"x\"); }",
		strings.Repeat("if (a && b) { x++; }\n", 100),
	}

	for _, content := range inputs {
		result := NewCppAnalyzer().Analyze(content, "f.cpp")

		if result.QualityScore < 0 || result.QualityScore > 100 {
			t.Errorf("quality score %d out of range for %q", result.QualityScore, content)
		}
		for cat, score := range result.Categories {
			if score < 0 || score > 100 {
				t.Errorf("category %s = %d out of range", cat, score)
			}
		}
		if len(result.Suggestions) > maxSuggestions {
			t.Errorf("suggestions = %d, want <= %d", len(result.Suggestions), maxSuggestions)
		}
	}
}

func TestCppCategoriesComplete(t *testing.T) {
	result := NewCppAnalyzer().Analyze("int main() { return 0; }\n", "main.cpp")

	for _, cat := range []models.Category{
		models.CategoryMemory,
		models.CategoryPerformance,
		models.CategoryModernization,
		models.CategoryBestPractices,
		models.CategoryMaintainability,
	} {
		if _, ok := result.Categories[cat]; !ok {
			t.Errorf("missing category %s", cat)
		}
	}
}
