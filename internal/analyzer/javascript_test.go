package analyzer

import (
	"strings"
	"testing"
)

func TestJSModernFeatures(t *testing.T) {
	content := `const items = [];
let total = 0;
const sum = (a, b) => a + b;

export default sum;
`
	result := NewJSAnalyzer().Analyze(content, "sum.js")

	if result.Language != "JavaScript" {
		t.Errorf("Language = %q, want JavaScript", result.Language)
	}

	joined := strings.Join(result.Practices, "|")
	for _, want := range []string{
		"Uses const for immutable variables",
		"Uses let for block-scoped variables",
		"Uses arrow functions",
		"Proper module exports",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("practices missing %q: %v", want, result.Practices)
		}
	}
}

func TestJSConsoleLogIssue(t *testing.T) {
	result := NewJSAnalyzer().Analyze("console.log('debug');\n", "app.js")

	found := false
	for _, issue := range result.Issues {
		if issue.Description == "Contains console.log statements - remove for production" {
			found = true
		}
	}
	if !found {
		t.Errorf("missing console.log issue, got %v", result.Issues)
	}
}

func TestJSJQueryIssue(t *testing.T) {
	result := NewJSAnalyzer().Analyze("$('#app').hide();\n", "legacy.js")

	found := false
	for _, issue := range result.Issues {
		if issue.Description == "Uses jQuery - consider modern alternatives" {
			found = true
		}
	}
	if !found {
		t.Errorf("missing jQuery issue, got %v", result.Issues)
	}
}

func TestJSTypeScriptDetection(t *testing.T) {
	content := `interface User {
    name: string;
    age: number;
}

function greet(user: User) { return user.name; }
`
	result := NewJSAnalyzer().Analyze(content, "user.ts")

	if result.Language != "TypeScript" {
		t.Errorf("Language = %q, want TypeScript", result.Language)
	}

	joined := strings.Join(result.Practices, "|")
	if !strings.Contains(joined, "Uses TypeScript type annotations") {
		t.Errorf("practices missing type annotations: %v", result.Practices)
	}
	if !strings.Contains(joined, "Defines TypeScript interfaces") {
		t.Errorf("practices missing interfaces: %v", result.Practices)
	}
}

func TestJSFunctionCounting(t *testing.T) {
	content := `function alpha() {}
const beta = function() {};
const gamma = () => 1;
`
	result := NewJSAnalyzer().Analyze(content, "fns.js")

	if result.Functions < 3 {
		t.Errorf("Functions = %d, want >= 3", result.Functions)
	}
}
