// Package analyzer scores source files for code quality. Language-specific
// analyzers handle C/C++, Java and Go in depth; Python, JavaScript,
// TypeScript, HTML and CSS go through lighter checks and a generic scoring
// formula. Analysis always produces a result: unreadable or unsupported
// files yield an error-flagged result, and a failing deep analyzer falls
// back to the basic path.
package analyzer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Laadnanimoustapha/DevMatch-AI/internal/cache"
	"github.com/Laadnanimoustapha/DevMatch-AI/internal/fileproc"
	"github.com/Laadnanimoustapha/DevMatch-AI/pkg/config"
	"github.com/Laadnanimoustapha/DevMatch-AI/pkg/models"
	"github.com/Laadnanimoustapha/DevMatch-AI/pkg/stats"
)

// languageNames maps a file extension (without dot) to a display name.
var languageNames = map[string]string{
	"py":   "Python",
	"pyw":  "Python",
	"pyi":  "Python",
	"cpp":  "C++",
	"cc":   "C++",
	"cxx":  "C++",
	"hpp":  "C++",
	"c":    "C",
	"h":    "C/C++",
	"java": "Java",
	"go":   "Go",
	"js":   "JavaScript",
	"mjs":  "JavaScript",
	"cjs":  "JavaScript",
	"jsx":  "JavaScript",
	"ts":   "TypeScript",
	"tsx":  "TypeScript",
	"html": "HTML",
	"htm":  "HTML",
	"css":  "CSS",
}

// LanguageSupport describes how one file extension is analyzed.
type LanguageSupport struct {
	Extension string
	Language  string
	Deep      bool
}

// SupportedLanguages lists every analyzable extension, sorted by extension.
// Deep marks extensions with a dedicated category-scoring analyzer.
func SupportedLanguages() []LanguageSupport {
	deep := map[string]bool{
		"cpp": true, "cc": true, "cxx": true, "hpp": true, "c": true, "h": true,
		"java": true, "go": true,
	}

	out := make([]LanguageSupport, 0, len(languageNames))
	for ext, name := range languageNames {
		out = append(out, LanguageSupport{Extension: ext, Language: name, Deep: deep[ext]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Extension < out[j].Extension })
	return out
}

// complexityLanguage maps an extension to its keyword set for the generic
// complexity label.
var complexityLanguage = map[string]string{
	"py": "python", "pyw": "python", "pyi": "python",
	"cpp": "cpp", "cc": "cpp", "cxx": "cpp", "hpp": "cpp", "c": "cpp", "h": "cpp",
	"java": "java",
	"go":   "go",
	"js": "javascript", "mjs": "javascript", "cjs": "javascript",
	"jsx": "javascript", "ts": "javascript", "tsx": "javascript",
}

// Checker dispatches files to language analyzers and aggregates results.
type Checker struct {
	cfg      *config.Config
	cache    *cache.Cache
	advanced bool

	cpp    *CppAnalyzer
	java   *JavaAnalyzer
	golang *GoAnalyzer
	python *PythonAnalyzer
	js     *JSAnalyzer
	html   *HTMLAnalyzer
	css    *CSSAnalyzer
}

// Option configures a Checker.
type Option func(*Checker)

// WithConfig sets the configuration.
func WithConfig(cfg *config.Config) Option {
	return func(c *Checker) { c.cfg = cfg }
}

// WithCache enables result caching.
func WithCache(cc *cache.Cache) Option {
	return func(c *Checker) { c.cache = cc }
}

// WithoutAdvanced forces the basic analysis path for every language.
func WithoutAdvanced() Option {
	return func(c *Checker) { c.advanced = false }
}

// NewChecker creates a checker with the language analyzers wired up.
func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		cfg:      config.DefaultConfig(),
		advanced: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	if !c.cfg.Analysis.Advanced {
		c.advanced = false
	}

	c.cpp = NewCppAnalyzer()
	c.java = NewJavaAnalyzer()
	c.golang = NewGoAnalyzer()
	c.python = NewPythonAnalyzer(c.cfg.LimitsFor("python"))
	c.js = NewJSAnalyzer()
	c.html = NewHTMLAnalyzer()
	c.css = NewCSSAnalyzer()

	return c
}

// Close releases checker resources.
func (c *Checker) Close() error {
	return nil
}

// AnalyzeFile analyzes a single file. It never returns an error: failures
// surface as an error-flagged result with a zero score.
func (c *Checker) AnalyzeFile(path string) *models.FileAnalysis {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if _, ok := languageNames[ext]; !ok {
		return errorResult(path, "Unsupported file type: "+ext)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return errorResult(path, "Analysis failed: "+err.Error())
	}

	if max := c.cfg.Analysis.MaxFileSize; max > 0 && int64(len(content)) > max {
		return errorResult(path, "Analysis failed: file exceeds size limit")
	}

	if c.cache != nil {
		hash := cache.HashBytes(content)
		if data, ok := c.cache.GetWithHash(path, hash); ok {
			var cached models.FileAnalysis
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached
			}
		}

		result := c.AnalyzeSource(content, path)
		if data, err := json.Marshal(result); err == nil {
			c.cache.SetWithHash(path, hash, data)
		}
		return result
	}

	return c.AnalyzeSource(content, path)
}

// AnalyzeSource analyzes in-memory content as if it were the named file.
func (c *Checker) AnalyzeSource(content []byte, path string) *models.FileAnalysis {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	langName, ok := languageNames[ext]
	if !ok {
		return errorResult(path, "Unsupported file type: "+ext)
	}

	src := string(content)
	result := c.dispatch(src, path, ext)

	result.Path = path
	result.Filename = filepath.Base(path)
	result.Metrics = computeBasicMetrics(src)

	// Results without category scores take the generic formula.
	if len(result.Categories) == 0 {
		result.Language = langName
		if result.Complexity == "" {
			result.Complexity = complexityLabel(src, complexityLanguage[ext])
		}
		result.Maintainability = maintainabilityLabel(len(result.Issues), len(result.Practices))
		result.QualityScore = genericQualityScore(result.Metrics, len(result.Practices), len(result.Issues), result.Complexity)
	}

	result.Suggestions = capSuggestions(result.Suggestions)

	return result
}

// dispatch routes content to the right analyzer. A panic in a deep
// analyzer is recovered and the basic path produces the result instead.
func (c *Checker) dispatch(content, path, ext string) *models.FileAnalysis {
	switch ext {
	case "cpp", "cc", "cxx", "hpp", "c", "h":
		if c.advanced {
			if result := runSafely(func() *models.FileAnalysis { return c.cpp.Analyze(content, path) }); result != nil {
				return result
			}
		}
		result := basicCpp(content, c.cfg.LimitsFor("cpp").MaxLineLength)
		result.Fallback = c.advanced
		return result

	case "java":
		if c.advanced {
			if result := runSafely(func() *models.FileAnalysis { return c.java.Analyze(content, path) }); result != nil {
				return result
			}
		}
		result := basicJava(content, c.cfg.LimitsFor("java").MaxLineLength)
		result.Fallback = c.advanced
		return result

	case "go":
		if c.advanced {
			if result := runSafely(func() *models.FileAnalysis { return c.golang.Analyze(content, path) }); result != nil {
				return result
			}
		}
		result := basicGo(content)
		result.Fallback = c.advanced
		return result

	case "py", "pyw", "pyi":
		if result := runSafely(func() *models.FileAnalysis { return c.python.Analyze(content, path) }); result != nil {
			return result
		}
		return &models.FileAnalysis{Language: "Python", Fallback: true}

	case "js", "mjs", "cjs", "jsx", "ts", "tsx":
		return c.js.Analyze(content, path)

	case "html", "htm":
		return c.html.Analyze(content, path)

	default: // css
		return c.css.Analyze(content, path)
	}
}

// runSafely executes an analyzer, converting a panic into a nil result so
// the caller can fall back.
func runSafely(fn func() *models.FileAnalysis) (result *models.FileAnalysis) {
	defer func() {
		if recover() != nil {
			result = nil
		}
	}()
	return fn()
}

// errorResult builds the error-flagged analysis for unusable files.
func errorResult(path, message string) *models.FileAnalysis {
	return &models.FileAnalysis{
		Path:            path,
		Filename:        filepath.Base(path),
		Language:        "Unknown",
		Error:           true,
		Message:         message,
		Complexity:      models.ComplexityUnknown,
		Maintainability: models.MaintainabilityUnknown,
		Issues: []models.Issue{{
			Type:        "Analysis",
			Severity:    models.SeverityHigh,
			Description: message,
		}},
		Practices: []string{},
	}
}

// AnalyzeProject analyzes files in parallel and aggregates a summary.
func (c *Checker) AnalyzeProject(files []string) *models.ProjectAnalysis {
	return c.AnalyzeProjectWithProgress(files, nil)
}

// AnalyzeProjectWithProgress analyzes files in parallel, invoking
// onProgress after each file. Results are ordered by path so repeated
// runs over the same tree produce identical output.
func (c *Checker) AnalyzeProjectWithProgress(files []string, onProgress fileproc.ProgressFunc) *models.ProjectAnalysis {
	results := fileproc.ForEachFileN(files, c.cfg.Analysis.Workers,
		func(path string) (*models.FileAnalysis, error) {
			return c.AnalyzeFile(path), nil
		}, onProgress, nil)

	sort.Slice(results, func(i, j int) bool {
		return results[i].Path < results[j].Path
	})

	analysis := &models.ProjectAnalysis{
		Files:      make([]models.FileAnalysis, 0, len(results)),
		AnalyzedAt: time.Now(),
	}
	for _, r := range results {
		analysis.Files = append(analysis.Files, *r)
	}
	analysis.Summary = c.summarize(analysis.Files)

	return analysis
}

// summarize aggregates per-file results into project statistics.
func (c *Checker) summarize(files []models.FileAnalysis) models.QualitySummary {
	summary := models.NewQualitySummary()
	summary.TotalFiles = len(files)

	var scores, sizes []float64
	langScores := make(map[string][]float64)
	suggestionCount := make(map[string]int)

	for _, f := range files {
		if f.Error {
			summary.FailedFiles++
			continue
		}
		summary.AnalyzedFiles++

		score := float64(f.QualityScore)
		scores = append(scores, score)
		sizes = append(sizes, float64(f.Metrics.TotalLines))

		summary.ByLanguage[f.Language]++
		langScores[f.Language] = append(langScores[f.Language], score)

		summary.TotalIssues += len(f.Issues)
		for _, issue := range f.Issues {
			summary.IssuesBySeverity[string(issue.Severity)]++
		}
		for _, s := range f.Suggestions {
			suggestionCount[s]++
		}
	}

	scoreStats := stats.Summarize(scores)
	summary.AverageScore = round2(scoreStats.Mean)
	summary.ScoreStdDev = round2(scoreStats.StdDev)
	summary.SizeCorrelation = round2(stats.Correlation(sizes, scores))

	for lang, vals := range langScores {
		summary.ScoreByLanguage[lang] = round2(stats.Summarize(vals).Mean)
	}

	summary.TopSuggestions = topSuggestions(suggestionCount, 5)

	return summary
}

// topSuggestions returns the n most frequent suggestions, ties broken
// alphabetically for stable output.
func topSuggestions(counts map[string]int, n int) []string {
	type entry struct {
		text  string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for text, count := range counts {
		entries = append(entries, entry{text, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].text < entries[j].text
	})

	if len(entries) > n {
		entries = entries[:n]
	}
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.text
	}
	return out
}
