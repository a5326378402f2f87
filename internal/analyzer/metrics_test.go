package analyzer

import (
	"regexp"
	"strings"
	"testing"

	"github.com/Laadnanimoustapha/DevMatch-AI/pkg/models"
)

func TestComputeBasicMetrics(t *testing.T) {
	content := "package main\n\n// entry point\nfunc main() {}\n"
	m := computeBasicMetrics(content)

	if m.TotalLines != 5 {
		t.Errorf("TotalLines = %d, want 5", m.TotalLines)
	}
	if m.BlankLines != 2 {
		t.Errorf("BlankLines = %d, want 2", m.BlankLines)
	}
	if m.CommentLines != 1 {
		t.Errorf("CommentLines = %d, want 1", m.CommentLines)
	}
	if m.CodeLines != 2 {
		t.Errorf("CodeLines = %d, want 2", m.CodeLines)
	}
}

func TestComputeBasicMetricsEmpty(t *testing.T) {
	m := computeBasicMetrics("")

	if m.TotalLines != 1 || m.BlankLines != 1 || m.CodeLines != 0 {
		t.Errorf("empty file metrics = %+v", m)
	}
	if m.AvgLineLength != 0 {
		t.Errorf("AvgLineLength = %v, want 0", m.AvgLineLength)
	}
}

func TestComputeBasicMetricsBlockComments(t *testing.T) {
	content := "/*\nspanning\ncomment\n*/\nint x;\n"
	m := computeBasicMetrics(content)

	if m.CommentLines != 4 {
		t.Errorf("CommentLines = %d, want 4", m.CommentLines)
	}
}

func TestCountDuplicateLines(t *testing.T) {
	lines := []string{
		"result := compute(input)",
		"result := compute(input)",
		"result := compute(input)",
		"x++", // too short to fingerprint
		"x++",
	}
	if got := countDuplicateLines(lines); got != 2 {
		t.Errorf("countDuplicateLines = %d, want 2", got)
	}
}

func TestComplexityLabel(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		language string
		want     models.ComplexityLabel
	}{
		{"trivial", "x := 1", "go", models.ComplexityLow},
		{"moderate", strings.Repeat("if ", 10), "go", models.ComplexityMedium},
		{"heavy", strings.Repeat("if for ", 10), "go", models.ComplexityHigh},
		{"unknown language falls back", "x = 1", "fortran", models.ComplexityLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := complexityLabel(tt.content, tt.language); got != tt.want {
				t.Errorf("complexityLabel = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEstimateLabel(t *testing.T) {
	tests := []struct {
		estimate int
		want     models.ComplexityLabel
	}{
		{1, models.ComplexityLow},
		{5, models.ComplexityLow},
		{6, models.ComplexityMedium},
		{15, models.ComplexityMedium},
		{16, models.ComplexityHigh},
	}

	for _, tt := range tests {
		if got := estimateLabel(tt.estimate); got != tt.want {
			t.Errorf("estimateLabel(%d) = %v, want %v", tt.estimate, got, tt.want)
		}
	}
}

func TestMaintainabilityLabel(t *testing.T) {
	tests := []struct {
		issues, practices int
		want              models.MaintainabilityLabel
	}{
		{0, 0, models.MaintainabilityExcellent},
		{1, 2, models.MaintainabilityExcellent},
		{1, 1, models.MaintainabilityGood},
		{2, 1, models.MaintainabilityFair},
		{5, 1, models.MaintainabilityPoor},
	}

	for _, tt := range tests {
		if got := maintainabilityLabel(tt.issues, tt.practices); got != tt.want {
			t.Errorf("maintainabilityLabel(%d, %d) = %v, want %v", tt.issues, tt.practices, got, tt.want)
		}
	}
}

func TestGenericQualityScoreBounds(t *testing.T) {
	rich := models.BasicMetrics{CommentRatio: 20}
	if got := genericQualityScore(rich, 20, 0, models.ComplexityLow); got != 100 {
		t.Errorf("best-case score = %d, want 100", got)
	}

	poor := models.BasicMetrics{AvgLineLength: 200}
	got := genericQualityScore(poor, 0, 50, models.ComplexityHigh)
	if got < 0 || got > 100 {
		t.Errorf("worst-case score = %d, want within [0, 100]", got)
	}
}

func TestMaintainabilityScoreEmptyContent(t *testing.T) {
	re := regexp.MustCompile(`func\s+\w+`)
	got := maintainabilityScore("", 100, re)
	// No comments, no functions: 100 - 15 - 25.
	if got != 60 {
		t.Errorf("maintainabilityScore(empty) = %d, want 60", got)
	}
}

func TestMaintainabilityFromScore(t *testing.T) {
	tests := []struct {
		score int
		want  models.MaintainabilityLabel
	}{
		{90, models.MaintainabilityExcellent},
		{85, models.MaintainabilityExcellent},
		{70, models.MaintainabilityGood},
		{50, models.MaintainabilityFair},
		{49, models.MaintainabilityPoor},
	}

	for _, tt := range tests {
		if got := maintainabilityFromScore(tt.score); got != tt.want {
			t.Errorf("maintainabilityFromScore(%d) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestPerformanceScoreDistinctPenalties(t *testing.T) {
	checks := []perfCheck{
		reCheck(models.TierCritical, "critical probe", `boom`),
		reCheck(models.TierMajor, "major probe", `slow`),
		reCheck(models.TierMinor, "minor probe", `meh`),
	}

	// Repeats of the same pattern only count once.
	score, found := performanceScore("boom boom slow", checks)
	if score != 100-30-15 {
		t.Errorf("score = %d, want %d", score, 100-30-15)
	}
	if len(found) != 2 {
		t.Errorf("found = %v, want 2 entries", found)
	}

	if score, _ := performanceScore("clean", checks); score != 100 {
		t.Errorf("clean score = %d, want 100", score)
	}
}

func TestCapSuggestions(t *testing.T) {
	long := make([]string, 12)
	for i := range long {
		long[i] = "s"
	}
	if got := capSuggestions(long); len(got) != maxSuggestions {
		t.Errorf("capped length = %d, want %d", len(got), maxSuggestions)
	}

	short := []string{"a", "b"}
	if got := capSuggestions(short); len(got) != 2 {
		t.Errorf("short list length = %d, want 2", len(got))
	}
}

func TestMatchWithoutFollowing(t *testing.T) {
	re := regexp.MustCompile(`new\s+\w+`)

	if !matchWithoutFollowing(re, "p = new Foo();", "delete") {
		t.Error("expected match when follow token absent")
	}
	if matchWithoutFollowing(re, "p = new Foo(); delete p;", "delete") {
		t.Error("expected no match when follow token on same line")
	}
	// The follow token on another line does not rescue the match.
	if !matchWithoutFollowing(re, "p = new Foo();\ndelete p;", "delete") {
		t.Error("follow check is scoped to the matching line")
	}
}

func TestMatchWithoutAnywhere(t *testing.T) {
	re := regexp.MustCompile(`panic\s*\([^)]*\)`)

	if !matchWithoutAnywhere(re, "panic(err)", "recover") {
		t.Error("expected match when follow token absent")
	}
	if matchWithoutAnywhere(re, "panic(err)\n\nrecover()", "recover") {
		t.Error("expected no match when follow token appears later")
	}
}

func TestRound2(t *testing.T) {
	if got := round2(3.14159); got != 3.14 {
		t.Errorf("round2(3.14159) = %v, want 3.14", got)
	}
	if got := round2(-0.875); got != -0.88 {
		t.Errorf("round2(-0.875) = %v, want -0.88", got)
	}
}
