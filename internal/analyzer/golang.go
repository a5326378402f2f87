package analyzer

import (
	"regexp"
	"strings"

	"github.com/Laadnanimoustapha/DevMatch-AI/pkg/models"
)

// Structure patterns for Go sources.
var (
	goPackageRe   = regexp.MustCompile(`package\s+(\w+)`)
	goImportRe    = regexp.MustCompile(`(?s)import\s+(?:\(([^)]+)\)|"([^"]+)")`)
	goFuncDeclRe  = regexp.MustCompile(`func\s+(?:\(\s*\w+\s+\*?\w+\s*\)\s+)?(\w+)\s*\([^)]*\)(?:\s*\([^)]*\))?\s*(?:\w+\s*)?{`)
	goStructRe    = regexp.MustCompile(`type\s+(\w+)\s+struct\s*{`)
	goInterfaceRe = regexp.MustCompile(`type\s+(\w+)\s+interface\s*{`)
	goFuncRe      = regexp.MustCompile(`func\s+\w+\s*\(`)

	goGoroutineRe   = regexp.MustCompile(`go\s+\w+\s*\(`)
	goChannelRe     = regexp.MustCompile(`(?:make\s*\(\s*chan\s+\w+|<-\s*\w+|\w+\s*<-)`)
	goChanTokenRe   = regexp.MustCompile(`<-|chan`)
	goMakeChanRe    = regexp.MustCompile(`make\s*\(\s*chan\s+\w+`)
	goCloseChanRe   = regexp.MustCompile(`close\s*\(\s*\w+\s*\)`)
	goContextRe     = regexp.MustCompile(`context\.\w+`)
	goWaitGroupRe   = regexp.MustCompile(`sync\.WaitGroup`)
	goGoKeywordRe   = regexp.MustCompile(`go\s+\w+`)
	goSyncOrDoneRe  = regexp.MustCompile(`sync\.WaitGroup|<-.*done`)
	goBareForRe     = regexp.MustCompile(`for\s*{`)
	goIgnoredCallRe = regexp.MustCompile(`_\s*=\s*\w+\s*\([^)]*\)`)

	goErrorReturnRe  = regexp.MustCompile(`return\s+.*?,\s*(?:err|error|nil)`)
	goErrReturnOnly  = regexp.MustCompile(`return\s+.*?,\s*(?:err|error)`)
	goErrCheckRe     = regexp.MustCompile(`if\s+err\s*!=\s*nil`)
	goErrCheckBlock  = regexp.MustCompile(`if\s+err\s*!=\s*nil\s*{`)
	goCustomErrRe    = regexp.MustCompile(`errors\.New\s*\(|fmt\.Errorf\s*\(`)
	goPanicRe        = regexp.MustCompile(`panic\s*\(`)
	goDeferRe        = regexp.MustCompile(`defer\s+\w+`)
	goLowerFuncRe    = regexp.MustCompile(`func\s+[a-z]\w*\s*\(`)
	goUpperFuncRe    = regexp.MustCompile(`func\s+[A-Z]\w*\s*\(`)
	goLineCommentRe  = regexp.MustCompile(`//.*`)
	goZeroLenSlice   = regexp.MustCompile(`make\s*\(\s*\[\]\w+\s*,\s*0\s*\)`)
	goStrConcatRe    = regexp.MustCompile(`\+\s*=.*?"[^"]*"`)
	goAnyConcatRe    = regexp.MustCompile(`\+.*?"[^"]*"`)
	goRangeLoopRe    = regexp.MustCompile(`for\s+.*?range\s+\w+`)
	goIndexLoopRe    = regexp.MustCompile(`for\s+\w+\s*:=\s*0`)
	goCloseMethodRe  = regexp.MustCompile(`\.Close\(\)`)
	goForBodyRe      = regexp.MustCompile(`(?is)for\s*{[^}]*}`)
	goAnonGoBodyRe   = regexp.MustCompile(`(?is)go\s+func\s*\([^)]*\)\s*{[^}]*}`)
	goPanicCallRe    = regexp.MustCompile(`(?is)panic\s*\([^)]*\)`)
	goSyncPrimitives = []featureCheck{
		feature(`sync\.Mutex`, "Mutex"),
		feature(`sync\.RWMutex`, "RWMutex"),
		feature(`sync\.WaitGroup`, "WaitGroup"),
		feature(`sync\.Once`, "Once"),
		feature(`sync\.Cond`, "Cond"),
	}
)

// goConcurrencyPatterns list the recognized goroutine, channel and
// synchronization usages. Each found pattern adds 10 to the subscore.
var goConcurrencyPatterns = []featureCheck{
	feature(`go\s+func\s*\(`, "Anonymous goroutine"),
	feature(`go\s+\w+\s*\(`, "Named function goroutine"),
	feature(`sync\.WaitGroup`, "WaitGroup usage for synchronization"),
	feature(`context\.WithCancel|context\.WithTimeout`, "Context-based cancellation"),
	feature(`make\s*\(\s*chan\s+\w+\s*,\s*\d+\s*\)`, "Buffered channel"),
	feature(`make\s*\(\s*chan\s+\w+\s*\)`, "Unbuffered channel"),
	feature(`<-\s*done`, "Channel-based signaling"),
	feature(`select\s*{.*?default\s*:`, "Non-blocking select"),
	feature(`for\s+.*?range\s+\w+\s*{`, "Channel ranging"),
	feature(`sync\.Mutex`, "Mutex for mutual exclusion"),
	feature(`sync\.RWMutex`, "Read-write mutex"),
	feature(`sync\.Once`, "Once for one-time initialization"),
	feature(`atomic\.\w+`, "Atomic operations"),
	feature(`sync\.Cond`, "Condition variables"),
}

var goIdioms = []featureCheck{
	feature(`_\s*(?:=|,)`, "Blank identifier usage"),
	feature(`\.\s*\(\s*\w+\s*\)`, "Type assertions"),
	feature(`switch\s+\w+\s*:=\s*\w+\.\s*\(type\)`, "Type switches"),
	feature(`func\s+init\s*\(\s*\)\s*{`, "Init functions"),
	feature(`func\s+\w+\s*\([^)]*\.\.\.\w+\s*\)`, "Variadic functions"),
	feature(`for\s+(?:\w+\s*,\s*)?\w+\s*:=\s*range\s+\w+`, "Range loops"),
	feature(`if\s+\w+\s*:=\s*[^;]+;\s*\w+`, "If with initialization"),
	feature(`defer\s+\w+`, "Defer statements"),
}

var goOptimizations = []featureCheck{
	feature(`make\s*\(\s*\[\]\w+\s*,\s*0\s*,\s*\d+\s*\)`, "Pre-allocated slice capacity"),
	feature(`strings\.Builder`, "String builder for concatenation"),
	feature(`sync\.Pool`, "Object pooling for reuse"),
	feature(`context\.WithTimeout|context\.WithDeadline`, "Context-based timeouts"),
	feature(`(?s)go\s+func\s*\([^)]*\)\s*{.*?defer\s+.*?Done\(\)`, "Proper goroutine cleanup"),
}

var goPerfChecks = []perfCheck{
	{
		tier:        models.TierCritical,
		description: "Infinite loop without break",
		detect: func(content string) bool {
			return matchWithoutAnywhere(goForBodyRe, content, "break")
		},
	},
	reCheck(models.TierCritical, "Explicit garbage collection call", `(?i)runtime\.GC\s*\(\s*\)`),
	{
		tier:        models.TierCritical,
		description: "Goroutine without synchronization",
		detect: func(content string) bool {
			return matchWithoutAnywhere(goAnonGoBodyRe, content, "sync.waitgroup")
		},
	},
	{
		tier:        models.TierCritical,
		description: "Panic without recover",
		detect: func(content string) bool {
			return matchWithoutAnywhere(goPanicCallRe, content, "recover")
		},
	},
	reCheck(models.TierMajor, "String concatenation in loop", `(?is)\+\s*=.*?"[^"]*"`),
	reCheck(models.TierMajor, "Slice with zero length but capacity", `(?is)make\s*\(\s*\[\]\w+\s*,\s*0\s*,\s*\d+\s*\)`),
	reCheck(models.TierMajor, "Appending in range loop", `(?is)range\s+\w+\s*{[^}]*\w+\s*=\s*append\s*\(\s*\w+`),
	reCheck(models.TierMajor, "String formatting in concatenation", `(?is)fmt\.Sprintf\s*\([^)]*\)\s*\+`),
	reCheck(models.TierMinor, "Using len() == 0 instead of direct comparison", `(?is)len\s*\(\s*\w+\s*\)\s*==\s*0`),
	reCheck(models.TierMinor, "Using new() instead of struct literal", `(?is)new\s*\(\s*\w+\s*\)`),
	reCheck(models.TierMinor, "Empty interface usage", `(?is)interface\s*{\s*}`),
	reCheck(models.TierMinor, "Reflection usage (performance impact)", `(?is)reflect\.\w+`),
}

var goComplexityKeywords = compilePatterns(
	`\bif\b`, `\belse\b`, `\bfor\b`, `\bswitch\b`,
	`\bcase\b`, `\bselect\b`, `\bgo\b`, `\bdefer\b`,
	`\b&&\b`, `\b\|\|\b`,
)

// GoAnalyzer scores Go sources on concurrency safety, error handling,
// performance, idiom usage and best practices.
type GoAnalyzer struct{}

// NewGoAnalyzer creates a Go analyzer.
func NewGoAnalyzer() *GoAnalyzer {
	return &GoAnalyzer{}
}

// Analyze runs the full Go analysis over the file content.
func (a *GoAnalyzer) Analyze(content, path string) *models.FileAnalysis {
	structure, funcs, structs, imports := a.structureScore(content)
	concurrency, concurrencyFound := a.concurrencyScore(content)
	errorScore, errorFound := a.errorHandlingScore(content)
	perf, _ := performanceScore(content, goPerfChecks)
	idioms, idiomsFound := a.idiomScore(content)
	practices := a.practicesScore(content)
	maint := maintainabilityScore(content, 100, goFuncRe)

	estimate := complexityEstimate(content, goComplexityKeywords)

	found := append(idiomsFound, concurrencyFound...)
	found = append(found, errorFound...)
	for _, check := range goOptimizations {
		if check.re.MatchString(content) {
			found = append(found, check.name)
		}
	}

	result := &models.FileAnalysis{
		Language: "Go",
		Categories: map[models.Category]int{
			models.CategoryConcurrency:     models.ClampScore(float64(concurrency)),
			models.CategoryErrorHandling:   models.ClampScore(errorScore),
			models.CategoryPerformance:     models.ClampScore(float64(perf)),
			models.CategoryIdioms:          models.ClampScore(float64(idioms)),
			models.CategoryBestPractices:   models.ClampScore(float64(practices)),
			models.CategoryStructure:       models.ClampScore(float64(structure)),
			models.CategoryMaintainability: models.ClampScore(float64(maint)),
		},
		ComplexityEstimate: estimate,
		Complexity:         estimateLabel(estimate),
		Maintainability:    maintainabilityFromScore(maint),
		Functions:          funcs,
		Classes:            structs,
		Imports:            imports,
		Issues:             a.findIssues(content),
		Practices:          found,
		Suggestions:        a.suggestions(content),
	}

	result.QualityScore = models.ClampScore(
		float64(result.Categories[models.CategoryConcurrency])*0.25 +
			float64(result.Categories[models.CategoryErrorHandling])*0.25 +
			float64(result.Categories[models.CategoryPerformance])*0.20 +
			float64(result.Categories[models.CategoryIdioms])*0.15 +
			float64(result.Categories[models.CategoryBestPractices])*0.15)

	return result
}

// structureScore checks for a package clause, declared functions and a
// reasonable import count. Returns the score and the declaration counts.
func (a *GoAnalyzer) structureScore(content string) (score, funcs, structs, imports int) {
	score = 100

	if !goPackageRe.MatchString(content) {
		score -= 30
	}

	funcs = len(goFuncDeclRe.FindAllString(content, -1))
	if funcs == 0 {
		score -= 40
	}

	for _, m := range goImportRe.FindAllStringSubmatch(content, -1) {
		if m[1] != "" {
			for _, line := range strings.Split(m[1], "\n") {
				if strings.TrimSpace(line) != "" {
					imports++
				}
			}
		} else if m[2] != "" {
			imports++
		}
	}
	if imports > 20 {
		score -= 20
	}

	if score < 0 {
		score = 0
	}

	structs = len(goStructRe.FindAllString(content, -1)) +
		len(goInterfaceRe.FindAllString(content, -1))
	return score, funcs, structs, imports
}

// concurrencyScore rewards synchronization primitives, channels and known
// concurrency patterns, and penalizes goroutines that share memory with no
// synchronization in sight. A file with no goroutines scores 100.
func (a *GoAnalyzer) concurrencyScore(content string) (int, []string) {
	goroutines := len(goGoroutineRe.FindAllString(content, -1))
	channels := len(goChannelRe.FindAllString(content, -1))

	syncUsed := 0
	hasMutex := false
	for _, p := range goSyncPrimitives {
		if p.re.MatchString(content) {
			syncUsed++
			if p.name == "Mutex" || p.name == "RWMutex" {
				hasMutex = true
			}
		}
	}

	var found []string
	for _, p := range goConcurrencyPatterns {
		if p.re.MatchString(content) {
			found = append(found, p.name)
		}
	}

	if goroutines == 0 {
		return 100, found
	}

	races := 0
	if !hasMutex && !goChanTokenRe.MatchString(content) {
		races = 1
	}

	channelScore := channels * 15
	if channelScore > 60 {
		channelScore = 60
	}

	score := syncUsed*20 + channelScore + len(found)*10 - races*30
	if score < 0 {
		score = 0
	}
	return score, found
}

// errorHandlingScore measures the ratio of err checks to error returns,
// with bonuses for custom errors and defer and a penalty per panic.
func (a *GoAnalyzer) errorHandlingScore(content string) (float64, []string) {
	returns := len(goErrorReturnRe.FindAllString(content, -1))
	checks := len(goErrCheckBlock.FindAllString(content, -1))
	custom := len(goCustomErrRe.FindAllString(content, -1))
	panics := len(goPanicRe.FindAllString(content, -1))
	defers := len(goDeferRe.FindAllString(content, -1))

	var found []string
	if checks > 0 {
		found = append(found, "Explicit error checking")
	}
	if custom > 0 {
		found = append(found, "Custom error creation")
	}
	if defers > 0 {
		found = append(found, "Defer for cleanup")
	}

	if returns == 0 {
		return 100, found
	}

	score := float64(checks) / float64(returns) * 100
	if score > 100 {
		score = 100
	}
	if custom > 0 {
		score += 10
	}
	if defers > 0 {
		score += 10
	}
	score -= float64(panics * 15)

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score, found
}

func (a *GoAnalyzer) idiomScore(content string) (int, []string) {
	var found []string
	for _, idiom := range goIdioms {
		if idiom.re.MatchString(content) {
			found = append(found, idiom.name)
		}
	}

	score := len(found) * 15
	if score > 100 {
		score = 100
	}
	return score, found
}

func (a *GoAnalyzer) practicesScore(content string) int {
	score := 100

	if goLowerFuncRe.MatchString(content) && !goUpperFuncRe.MatchString(content) {
		score -= 10
	}

	returns := len(goErrReturnOnly.FindAllString(content, -1))
	checks := len(goErrCheckRe.FindAllString(content, -1))
	if returns > 0 && float64(checks)/float64(returns) < 0.8 {
		score -= 20
	}

	channels := len(goMakeChanRe.FindAllString(content, -1))
	closes := len(goCloseChanRe.FindAllString(content, -1))
	if channels > 0 && closes == 0 {
		score -= 15
	}

	if goBareForRe.MatchString(content) && !goContextRe.MatchString(content) {
		score -= 10
	}

	if score < 0 {
		score = 0
	}
	return score
}

func (a *GoAnalyzer) findIssues(content string) []models.Issue {
	var issues []models.Issue

	goroutines := len(goGoroutineRe.FindAllString(content, -1))
	if goroutines > 0 && !goSyncOrDoneRe.MatchString(content) {
		issues = append(issues, models.Issue{
			Type:        "Concurrency",
			Severity:    models.SeverityHigh,
			Description: "Goroutines without proper synchronization",
			Suggestion:  "Use sync.WaitGroup or channels for goroutine synchronization",
		})
	}

	if matchWithoutFollowing(goIgnoredCallRe, content, "err") {
		issues = append(issues, models.Issue{
			Type:        "Error Handling",
			Severity:    models.SeverityMedium,
			Description: "Ignoring potential errors",
			Suggestion:  "Always check and handle errors explicitly",
		})
	}

	if goStrConcatRe.MatchString(content) {
		issues = append(issues, models.Issue{
			Type:        "Performance",
			Severity:    models.SeverityMedium,
			Description: "String concatenation in loop",
			Suggestion:  "Use strings.Builder for efficient string concatenation",
		})
	}

	return issues
}

func (a *GoAnalyzer) suggestions(content string) []string {
	var suggestions []string

	if goGoKeywordRe.MatchString(content) {
		if !goContextRe.MatchString(content) {
			suggestions = append(suggestions, "Consider using context for goroutine cancellation and timeouts")
		}
		if !goWaitGroupRe.MatchString(content) {
			suggestions = append(suggestions, "Use sync.WaitGroup to wait for goroutines to complete")
		}
	}

	returns := len(goErrReturnOnly.FindAllString(content, -1))
	checks := len(goErrCheckRe.FindAllString(content, -1))
	if returns > checks {
		suggestions = append(suggestions, "Always check errors returned by functions")
	}

	if goZeroLenSlice.MatchString(content) {
		suggestions = append(suggestions, "Pre-allocate slice capacity when size is known to avoid reallocations")
	}
	if goAnyConcatRe.MatchString(content) {
		suggestions = append(suggestions, "Use strings.Builder for efficient string concatenation")
	}

	if !goRangeLoopRe.MatchString(content) && goIndexLoopRe.MatchString(content) {
		suggestions = append(suggestions, "Consider using range loops for iterating over slices and maps")
	}
	if !goDeferRe.MatchString(content) && goCloseMethodRe.MatchString(content) {
		suggestions = append(suggestions, "Use defer for cleanup operations like closing files or connections")
	}

	if !goPackageRe.MatchString(content) {
		suggestions = append(suggestions, "Every Go file should start with a package declaration")
	}
	if goLowerFuncRe.MatchString(content) && !goLineCommentRe.MatchString(content) {
		suggestions = append(suggestions, "Add comments to exported functions and types")
	}

	return capSuggestions(suggestions)
}
