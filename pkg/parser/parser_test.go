package parser

import "testing"

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		path string
		want Language
	}{
		{"main.go", LangGo},
		{"script.py", LangPython},
		{"app.ts", LangTypeScript},
		{"component.tsx", LangTSX},
		{"component.jsx", LangTSX},
		{"index.js", LangJavaScript},
		{"Main.java", LangJava},
		{"util.c", LangC},
		{"util.h", LangC},
		{"engine.cpp", LangCPP},
		{"engine.cc", LangCPP},
		{"engine.hpp", LangCPP},
		{"index.html", LangHTML},
		{"page.htm", LangHTML},
		{"style.css", LangCSS},
		{"README.md", LangUnknown},
		{"data.json", LangUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := DetectLanguage(tt.path); got != tt.want {
				t.Errorf("DetectLanguage(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestParseGoSource(t *testing.T) {
	p := New()
	defer p.Close()

	source := []byte(`package main

func main() {
	println("hi")
}

func helper(n int) int {
	return n * 2
}
`)

	result, err := p.Parse(source, LangGo, "main.go")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	functions := GetFunctions(result)
	if len(functions) != 2 {
		t.Fatalf("expected 2 functions, got %d", len(functions))
	}
	if functions[0].Name != "main" {
		t.Errorf("expected first function 'main', got %q", functions[0].Name)
	}
	if functions[1].Name != "helper" {
		t.Errorf("expected second function 'helper', got %q", functions[1].Name)
	}
}

func TestParsePythonSource(t *testing.T) {
	p := New()
	defer p.Close()

	source := []byte(`import os

class Processor:
    def run(self):
        return 1

def process_data(items):
    return [i for i in items]
`)

	result, err := p.Parse(source, LangPython, "proc.py")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	functions := GetFunctions(result)
	if len(functions) != 2 {
		t.Fatalf("expected 2 functions, got %d", len(functions))
	}

	classes := GetClasses(result)
	if len(classes) != 1 {
		t.Fatalf("expected 1 class, got %d", len(classes))
	}
	if classes[0].Name != "Processor" {
		t.Errorf("expected class 'Processor', got %q", classes[0].Name)
	}

	imports := FindNodesByType(result.Tree.RootNode(), result.Source, "import_statement")
	if len(imports) != 1 {
		t.Errorf("expected 1 import statement, got %d", len(imports))
	}
}

func TestParseUnsupportedLanguage(t *testing.T) {
	p := New()
	defer p.Close()

	_, err := p.Parse([]byte("hello"), LangUnknown, "file.txt")
	if err == nil {
		t.Error("expected error for unsupported language")
	}
}

func TestFunctionLineSpans(t *testing.T) {
	p := New()
	defer p.Close()

	source := []byte(`def short():
    return 1

def longer(x):
    a = x + 1
    b = a * 2
    return b
`)

	result, err := p.Parse(source, LangPython, "spans.py")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	functions := GetFunctions(result)
	if len(functions) != 2 {
		t.Fatalf("expected 2 functions, got %d", len(functions))
	}

	short := functions[0]
	if short.EndLine-short.StartLine != 1 {
		t.Errorf("short() should span 2 lines, got %d-%d", short.StartLine, short.EndLine)
	}

	longer := functions[1]
	if longer.EndLine-longer.StartLine != 3 {
		t.Errorf("longer() should span 4 lines, got %d-%d", longer.StartLine, longer.EndLine)
	}
}
