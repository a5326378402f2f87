package analyzer

import (
	"strings"
	"testing"

	"github.com/Laadnanimoustapha/DevMatch-AI/pkg/models"
)

func TestGoCleanFile(t *testing.T) {
	content := "package main\n\nfunc main() {}\n"
	result := NewGoAnalyzer().Analyze(content, "main.go")

	if result.Language != "Go" {
		t.Errorf("Language = %q, want Go", result.Language)
	}
	// No goroutines and no error returns mean full marks.
	if got := result.Categories[models.CategoryConcurrency]; got != 100 {
		t.Errorf("concurrency = %d, want 100", got)
	}
	if got := result.Categories[models.CategoryErrorHandling]; got != 100 {
		t.Errorf("error handling = %d, want 100", got)
	}
	if got := result.Categories[models.CategoryStructure]; got != 100 {
		t.Errorf("structure = %d, want 100", got)
	}
	if result.Functions != 1 {
		t.Errorf("Functions = %d, want 1", result.Functions)
	}
}

func TestGoUnsynchronizedGoroutine(t *testing.T) {
	content := "package main\n\nfunc main() {\n\tgo work()\n}\n"
	result := NewGoAnalyzer().Analyze(content, "main.go")

	found := false
	for _, issue := range result.Issues {
		if issue.Description == "Goroutines without proper synchronization" {
			found = true
			if issue.Severity != models.SeverityHigh {
				t.Errorf("severity = %v, want high", issue.Severity)
			}
		}
	}
	if !found {
		t.Errorf("missing synchronization issue, got %v", result.Issues)
	}

	if got := result.Categories[models.CategoryConcurrency]; got >= 50 {
		t.Errorf("concurrency = %d, want < 50 for unsynchronized goroutine", got)
	}
}

func TestGoWaitGroupRecognized(t *testing.T) {
	content := `package main

import "sync"

func main() {
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		work()
	}()
	wg.Wait()
}
`
	result := NewGoAnalyzer().Analyze(content, "main.go")

	for _, issue := range result.Issues {
		if issue.Type == "Concurrency" {
			t.Errorf("unexpected concurrency issue with WaitGroup present: %v", issue)
		}
	}

	joined := strings.Join(result.Practices, "|")
	if !strings.Contains(joined, "WaitGroup usage for synchronization") {
		t.Errorf("practices missing WaitGroup pattern: %v", result.Practices)
	}
}

func TestGoErrorHandlingRatio(t *testing.T) {
	checked := `package db

func load() (string, error) {
	v, err := fetch()
	if err != nil {
		return "", err
	}
	return v, nil
}
`
	unchecked := `package db

func load() (string, error) {
	v, _ := fetch()
	return v, nil
}

func save() (int, error) {
	return write()
}
`
	high := NewGoAnalyzer().Analyze(checked, "db.go")
	low := NewGoAnalyzer().Analyze(unchecked, "db.go")

	if high.Categories[models.CategoryErrorHandling] <= low.Categories[models.CategoryErrorHandling] {
		t.Errorf("checked errors should score higher: checked=%d unchecked=%d",
			high.Categories[models.CategoryErrorHandling],
			low.Categories[models.CategoryErrorHandling])
	}
}

func TestGoPanicPenalty(t *testing.T) {
	content := "package main\n\nfunc main() {\n\tpanic(\"boom\")\n}\n"
	result := NewGoAnalyzer().Analyze(content, "main.go")

	if got := result.Categories[models.CategoryPerformance]; got > 70 {
		t.Errorf("performance = %d, want <= 70 for unrecovered panic", got)
	}
}

func TestGoMissingPackagePenalized(t *testing.T) {
	result := NewGoAnalyzer().Analyze("func main() {}\n", "main.go")

	if got := result.Categories[models.CategoryStructure]; got != 70 {
		t.Errorf("structure = %d, want 70 without package clause", got)
	}

	found := false
	for _, s := range result.Suggestions {
		if s == "Every Go file should start with a package declaration" {
			found = true
		}
	}
	if !found {
		t.Errorf("missing package suggestion, got %v", result.Suggestions)
	}
}

func TestGoGoroutineSuggestions(t *testing.T) {
	content := "package main\n\nfunc main() {\n\tgo work()\n}\n"
	result := NewGoAnalyzer().Analyze(content, "main.go")

	joined := strings.Join(result.Suggestions, "|")
	if !strings.Contains(joined, "context for goroutine cancellation") {
		t.Errorf("missing context suggestion: %v", result.Suggestions)
	}
	if !strings.Contains(joined, "sync.WaitGroup") {
		t.Errorf("missing WaitGroup suggestion: %v", result.Suggestions)
	}
}

func TestGoImportCounting(t *testing.T) {
	content := `package main

import (
	"fmt"
	"os"
	"strings"
)

func main() { fmt.Println(os.Args, strings.TrimSpace("")) }
`
	result := NewGoAnalyzer().Analyze(content, "main.go")

	if result.Imports != 3 {
		t.Errorf("Imports = %d, want 3", result.Imports)
	}
}

func TestGoScoreBounds(t *testing.T) {
	inputs := []string{
		"",
		"package main\n\nfunc main() { for {} }\n",
		strings.Repeat("if err != nil { return nil, err }\n", 60),
	}

	for _, content := range inputs {
		result := NewGoAnalyzer().Analyze(content, "f.go")
		if result.QualityScore < 0 || result.QualityScore > 100 {
			t.Errorf("quality score %d out of range", result.QualityScore)
		}
		for cat, score := range result.Categories {
			if score < 0 || score > 100 {
				t.Errorf("category %s = %d out of range", cat, score)
			}
		}
	}
}
