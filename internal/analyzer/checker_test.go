package analyzer

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/Laadnanimoustapha/DevMatch-AI/internal/cache"
	"github.com/Laadnanimoustapha/DevMatch-AI/internal/testutil"
	"github.com/Laadnanimoustapha/DevMatch-AI/pkg/config"
	"github.com/Laadnanimoustapha/DevMatch-AI/pkg/models"
)

func TestAnalyzeFileUnsupportedType(t *testing.T) {
	c := NewChecker()
	result := c.AnalyzeFile("program.zig")

	if !result.Error {
		t.Fatal("expected error result")
	}
	if result.Message != "Unsupported file type: zig" {
		t.Errorf("Message = %q", result.Message)
	}
	if result.Language != "Unknown" {
		t.Errorf("Language = %q, want Unknown", result.Language)
	}
	if result.QualityScore != 0 {
		t.Errorf("QualityScore = %d, want 0", result.QualityScore)
	}
	if result.Complexity != models.ComplexityUnknown || result.Maintainability != models.MaintainabilityUnknown {
		t.Errorf("labels = %v/%v, want Unknown/Unknown", result.Complexity, result.Maintainability)
	}
}

func TestAnalyzeFileMissing(t *testing.T) {
	c := NewChecker()
	result := c.AnalyzeFile(filepath.Join(t.TempDir(), "missing.go"))

	if !result.Error {
		t.Fatal("expected error result")
	}
	if !strings.HasPrefix(result.Message, "Analysis failed: ") {
		t.Errorf("Message = %q, want Analysis failed prefix", result.Message)
	}
}

func TestAnalyzeFileTooLarge(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Analysis.MaxFileSize = 10

	dir := t.TempDir()
	path := filepath.Join(dir, "big.go")
	testutil.WriteFile(t, path, "package main\n\nfunc main() {}\n")

	result := NewChecker(WithConfig(cfg)).AnalyzeFile(path)
	if !result.Error {
		t.Fatal("expected error result for oversized file")
	}
	if result.Message != "Analysis failed: file exceeds size limit" {
		t.Errorf("Message = %q", result.Message)
	}
}

func TestAnalyzeSourceGoAdvanced(t *testing.T) {
	c := NewChecker()
	result := c.AnalyzeSource([]byte("package main\n\nfunc main() {}\n"), "main.go")

	if result.Language != "Go" {
		t.Errorf("Language = %q, want Go", result.Language)
	}
	if len(result.Categories) == 0 {
		t.Error("expected category scores from the deep analyzer")
	}
	if result.Fallback {
		t.Error("Fallback should be false on the deep path")
	}
	if result.Metrics.TotalLines == 0 {
		t.Error("metrics not populated")
	}
}

func TestAnalyzeSourceWithoutAdvanced(t *testing.T) {
	c := NewChecker(WithoutAdvanced())
	result := c.AnalyzeSource([]byte("package main\n\nfunc main() {}\n"), "main.go")

	if len(result.Categories) != 0 {
		t.Errorf("basic path should not set categories, got %v", result.Categories)
	}
	// Basic by configuration is not a fallback.
	if result.Fallback {
		t.Error("Fallback should be false when advanced analysis is disabled")
	}
	if result.QualityScore <= 0 {
		t.Errorf("generic score = %d, want > 0", result.QualityScore)
	}
	if result.Complexity == "" || result.Maintainability == "" {
		t.Error("generic path must fill complexity and maintainability labels")
	}
}

func TestAnalyzeSourceLanguageDispatch(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"a.go", "Go"},
		{"a.py", "Python"},
		{"a.cpp", "C++"},
		{"a.c", "C"},
		{"a.java", "Java"},
		{"a.js", "JavaScript"},
		{"a.ts", "TypeScript"},
		{"a.html", "HTML"},
		{"a.css", "CSS"},
	}

	c := NewChecker(WithoutAdvanced())
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			result := c.AnalyzeSource([]byte("x\n"), tt.path)
			if result.Language != tt.want {
				t.Errorf("Language = %q, want %q", result.Language, tt.want)
			}
			if result.Error {
				t.Errorf("unexpected error result: %s", result.Message)
			}
		})
	}
}

func TestRunSafelyRecoversPanic(t *testing.T) {
	result := runSafely(func() *models.FileAnalysis {
		panic("analyzer blew up")
	})
	if result != nil {
		t.Errorf("recovered panic should yield nil, got %+v", result)
	}

	ok := runSafely(func() *models.FileAnalysis {
		return &models.FileAnalysis{Language: "Go"}
	})
	if ok == nil || ok.Language != "Go" {
		t.Errorf("non-panicking analyzer result lost: %+v", ok)
	}
}

func TestAnalyzeSourceFallbackOnAnalyzerFailure(t *testing.T) {
	c := NewChecker()
	// A nil analyzer panics on first field access, standing in for an
	// internal failure. Dispatch must recover and produce the basic
	// result instead of propagating the panic.
	c.python = nil

	result := c.AnalyzeSource([]byte("def f():\n    return 1\n"), "f.py")

	if !result.Fallback {
		t.Error("Fallback should be true after a recovered analyzer failure")
	}
	if result.Error {
		t.Errorf("fallback result must not be error-flagged: %s", result.Message)
	}
	if result.Language != "Python" {
		t.Errorf("Language = %q, want Python", result.Language)
	}
	if result.QualityScore <= 0 || result.QualityScore > 100 {
		t.Errorf("QualityScore = %d, want within (0,100]", result.QualityScore)
	}
	if result.Complexity == "" || result.Maintainability == "" {
		t.Error("fallback result must carry the generic labels")
	}
}

func TestAnalyzeSourceMarkupComplexityPinned(t *testing.T) {
	c := NewChecker()

	html := c.AnalyzeSource([]byte("<!DOCTYPE html>\n<html></html>\n"), "index.html")
	if html.Complexity != models.ComplexityLow {
		t.Errorf("html complexity = %v, want Low", html.Complexity)
	}

	css := c.AnalyzeSource([]byte("body { margin: 0; }\n"), "style.css")
	if css.Complexity != models.ComplexityMedium {
		t.Errorf("css complexity = %v, want Medium", css.Complexity)
	}
}

func TestAnalyzeSourceDeterministic(t *testing.T) {
	c := NewChecker()
	content := []byte("package main\n\nfunc main() {\n\tgo work()\n}\n")

	first := c.AnalyzeSource(content, "main.go")
	second := c.AnalyzeSource(content, "main.go")

	if !reflect.DeepEqual(first, second) {
		t.Errorf("analysis not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestAnalyzeFileCached(t *testing.T) {
	dir := t.TempDir()
	cc, err := cache.New(filepath.Join(dir, "cache"), 1, true)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(dir, "main.go")
	testutil.WriteFile(t, path, "package main\n\nfunc main() {}\n")

	c := NewChecker(WithCache(cc))
	first := c.AnalyzeFile(path)
	second := c.AnalyzeFile(path)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("cached result differs:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestAnalyzeProject(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateFileTree(t, dir, map[string]string{
		"b.go":     "package main\n\nfunc main() {}\n",
		"a.js":     "const x = 1;\nexport default x;\n",
		"notes.md": "# readme\n",
	})

	c := NewChecker()
	analysis := c.AnalyzeProject([]string{
		filepath.Join(dir, "b.go"),
		filepath.Join(dir, "a.js"),
		filepath.Join(dir, "notes.md"),
	})

	if analysis.Summary.TotalFiles != 3 {
		t.Errorf("TotalFiles = %d, want 3", analysis.Summary.TotalFiles)
	}
	if analysis.Summary.AnalyzedFiles != 2 {
		t.Errorf("AnalyzedFiles = %d, want 2", analysis.Summary.AnalyzedFiles)
	}
	if analysis.Summary.FailedFiles != 1 {
		t.Errorf("FailedFiles = %d, want 1", analysis.Summary.FailedFiles)
	}
	if analysis.Summary.AverageScore <= 0 {
		t.Errorf("AverageScore = %v, want > 0", analysis.Summary.AverageScore)
	}
	if analysis.Summary.ByLanguage["Go"] != 1 || analysis.Summary.ByLanguage["JavaScript"] != 1 {
		t.Errorf("ByLanguage = %v", analysis.Summary.ByLanguage)
	}
	if analysis.AnalyzedAt.IsZero() {
		t.Error("AnalyzedAt not set")
	}

	// Results are sorted by path regardless of worker completion order.
	for i := 1; i < len(analysis.Files); i++ {
		if analysis.Files[i-1].Path > analysis.Files[i].Path {
			t.Errorf("files out of order: %s after %s", analysis.Files[i-1].Path, analysis.Files[i].Path)
		}
	}
}

func TestAnalyzeProjectEmpty(t *testing.T) {
	analysis := NewChecker().AnalyzeProject(nil)

	if analysis.Summary.TotalFiles != 0 {
		t.Errorf("TotalFiles = %d, want 0", analysis.Summary.TotalFiles)
	}
	if analysis.Summary.AverageScore != 0 {
		t.Errorf("AverageScore = %v, want 0", analysis.Summary.AverageScore)
	}
}

func TestTopSuggestions(t *testing.T) {
	counts := map[string]int{
		"use context":  3,
		"check errors": 5,
		"add comments": 3,
		"use defer":    1,
	}

	got := topSuggestions(counts, 3)
	want := []string{"check errors", "add comments", "use context"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("topSuggestions = %v, want %v", got, want)
	}
}
