package analyzer

import (
	"regexp"
	"strings"

	"github.com/Laadnanimoustapha/DevMatch-AI/pkg/models"
)

// Structure and OOP patterns for Java sources.
var (
	javaClassRe         = regexp.MustCompile(`(?:public\s+|private\s+|protected\s+)?class\s+(\w+)`)
	javaInterfaceRe     = regexp.MustCompile(`(?:public\s+)?interface\s+(\w+)`)
	javaMethodDeclRe    = regexp.MustCompile(`(?:public|private|protected)?\s*(?:static\s+)?(?:final\s+)?(\w+)\s+(\w+)\s*\([^)]*\)`)
	javaOverrideRe      = regexp.MustCompile(`@Override\s*\n\s*(?:public|private|protected)`)
	javaMaintFuncRe     = regexp.MustCompile(`(?:public|private|protected)\s+(?:static\s+)?\w+\s+\w+\s*\(`)
	javaImportStmtRe    = regexp.MustCompile(`import\s+[\w.]+\s*;`)

	javaPrivateFieldRe = regexp.MustCompile(`private\s+\w+\s+\w+`)
	javaGetterRe       = regexp.MustCompile(`public\s+\w+\s+get\w+\s*\(\s*\)`)
	javaSetterRe       = regexp.MustCompile(`public\s+void\s+set\w+\s*\([^)]+\)`)
	javaExtendsRe      = regexp.MustCompile(`class\s+\w+\s+extends\s+\w+`)
	javaExtendsAnyRe   = regexp.MustCompile(`extends\s+\w+`)
	javaOverrideAnnRe  = regexp.MustCompile(`@Override`)
	javaSuperCallRe    = regexp.MustCompile(`super\s*\.`)
	javaImplementsRe   = regexp.MustCompile(`implements\s+\w+`)
	javaInstanceofRe   = regexp.MustCompile(`instanceof\s+\w+`)
	javaCallSiteRe     = regexp.MustCompile(`(\w+)\s*\([^)]*\)`)
	javaAbstractSigRe  = regexp.MustCompile(`abstract\s+\w+\s+\w+\s*\([^)]*\)`)
	javaInterfaceSigRe = regexp.MustCompile(`interface\s+\w+`)
	javaAbstractDeclRe = regexp.MustCompile(`abstract\s+class\s+\w+`)

	javaTryCatchRe  = regexp.MustCompile(`(?s)try\s*{.*?}\s*catch\s*\([^)]+\)\s*{`)
	javaFinallyRe   = regexp.MustCompile(`finally\s*{`)
	javaThrowsRe    = regexp.MustCompile(`throws\s+[\w\s,]+`)
	javaCustomExcRe = regexp.MustCompile(`class\s+\w+Exception\s+extends\s+\w*Exception`)

	javaWhileTrueRe    = regexp.MustCompile(`(?i)while\s*\(\s*true\s*\)`)
	javaClassNamingRe  = regexp.MustCompile(`class\s+[A-Z][a-zA-Z0-9]*`)
	javaBadVarNameRe   = regexp.MustCompile(`[a-z][a-zA-Z0-9]*\s+[A-Z][a-zA-Z0-9]*\s*[=;]`)
	javaCatchGenericRe = regexp.MustCompile(`catch\s*\(\s*Exception\s+\w+\s*\)`)
	javaFileStreamRe   = regexp.MustCompile(`new\s+File(?:Input|Output)Stream`)
	javaTryResourceRe  = regexp.MustCompile(`try\s*\([^)]+\)`)
	javaPublicFieldRe  = regexp.MustCompile(`public\s+\w+\s+\w+\s*[=;]`)
	javaConstFieldRe   = regexp.MustCompile(`public\s+static\s+final`)
	javaStrConcatRe    = regexp.MustCompile(`\+\s*=.*?"[^"]*"`)
	javaVectorRe       = regexp.MustCompile(`Vector<`)
	javaNewStringRe    = regexp.MustCompile(`new\s+String\s*\(`)
	javaEnhancedForRe  = regexp.MustCompile(`for\s*\(\s*\w+\s+\w+\s*:\s*\w+\s*\)`)
	javaIndexForRe     = regexp.MustCompile(`for\s*\(\s*int\s+\w+\s*=`)
	javaPackageRe      = regexp.MustCompile(`package\s+[\w.]+\s*;`)
	javaQualifiedRe    = regexp.MustCompile(`java\.`)
)

var javaPerfChecks = []perfCheck{
	{
		tier:        models.TierCritical,
		description: "Infinite loop without break",
		detect: func(content string) bool {
			return matchWithoutFollowing(javaWhileTrueRe, content, "break")
		},
	},
	reCheck(models.TierCritical, "Explicit garbage collection call", `(?i)System\.gc\s*\(\s*\)`),
	reCheck(models.TierCritical, `String literal comparison (should use "literal".equals(variable))`, `(?i)\.equals\s*\(\s*"[^"]*"\s*\)`),
	reCheck(models.TierCritical, "Unnecessary String object creation", `(?i)new\s+String\s*\([^)]*\)`),
	reCheck(models.TierMajor, "String concatenation in loop (use StringBuilder)", `(?i)\+\s*=.*?"[^"]*"`),
	reCheck(models.TierMajor, "Using Vector instead of ArrayList", `(?i)Vector<`),
	reCheck(models.TierMajor, "Using Hashtable instead of HashMap", `(?i)Hashtable<`),
	reCheck(models.TierMajor, "Using size() == 0 instead of isEmpty()", `(?i)\.size\(\)\s*==\s*0`),
	reCheck(models.TierMinor, "Boxing primitive boolean", `(?i)new\s+Boolean\s*\(`),
	reCheck(models.TierMinor, "Boxing primitive int", `(?i)new\s+Integer\s*\(`),
	reCheck(models.TierMinor, "Converting to string for comparison", `(?i)\.toString\(\)\.equals\(`),
	reCheck(models.TierMinor, "Potential NullPointerException in equals", `(?i)if\s*\([^)]*!=\s*null\s*&&[^)]*\.equals\(`),
}

var javaOptimizations = []featureCheck{
	feature(`StringBuilder`, "StringBuilder usage for string concatenation"),
	feature(`ArrayList<`, "ArrayList usage (preferred over Vector)"),
	feature(`HashMap<`, "HashMap usage (preferred over Hashtable)"),
	feature(`for\s*\(\s*\w+\s+\w+\s*:\s*\w+\s*\)`, "Enhanced for loops"),
	feature(`try\s*\([^)]+\)\s*{`, "Try-with-resources usage"),
	feature(`\.isEmpty\(\)`, "isEmpty() usage instead of size() == 0"),
}

var javaComplexityKeywords = compilePatterns(
	`\bif\b`, `\belse\b`, `\bwhile\b`, `\bfor\b`,
	`\bswitch\b`, `\bcase\b`, `\bcatch\b`, `\b\?\s*.*?:`,
	`\b&&\b`, `\b\|\|\b`,
)

// JavaAnalyzer scores Java sources on OOP principles, performance, best
// practices, exception handling and maintainability.
type JavaAnalyzer struct{}

// NewJavaAnalyzer creates a Java analyzer.
func NewJavaAnalyzer() *JavaAnalyzer {
	return &JavaAnalyzer{}
}

// Analyze runs the full Java analysis over the file content.
func (a *JavaAnalyzer) Analyze(content, path string) *models.FileAnalysis {
	classDesign, classes := a.classDesignScore(content)
	oop := a.oopScore(content)
	methodDesign, methods := a.methodDesignScore(content)
	exceptions := a.exceptionScore(content)
	perf, _ := performanceScore(content, javaPerfChecks)
	practices := a.practicesScore(content)
	maint := maintainabilityScore(content, 120, javaMaintFuncRe)

	estimate := complexityEstimate(content, javaComplexityKeywords)

	var found []string
	for _, check := range javaOptimizations {
		if check.re.MatchString(content) {
			found = append(found, check.name)
		}
	}

	result := &models.FileAnalysis{
		Language: "Java",
		Categories: map[models.Category]int{
			models.CategoryOOP:             models.ClampScore(oop),
			models.CategoryPerformance:     models.ClampScore(float64(perf)),
			models.CategoryBestPractices:   models.ClampScore(float64(practices)),
			models.CategoryExceptions:      models.ClampScore(float64(exceptions)),
			models.CategoryMaintainability: models.ClampScore(float64(maint)),
			models.CategoryClassDesign:     models.ClampScore(float64(classDesign)),
			models.CategoryMethodDesign:    models.ClampScore(methodDesign),
		},
		ComplexityEstimate: estimate,
		Complexity:         estimateLabel(estimate),
		Maintainability:    maintainabilityFromScore(maint),
		Functions:          methods,
		Classes:            classes,
		Imports:            len(javaImportStmtRe.FindAllString(content, -1)),
		Issues:             a.findIssues(content),
		Practices:          found,
		Suggestions:        a.suggestions(content),
	}

	result.QualityScore = models.ClampScore(
		float64(result.Categories[models.CategoryOOP])*0.30 +
			float64(result.Categories[models.CategoryPerformance])*0.25 +
			float64(result.Categories[models.CategoryBestPractices])*0.20 +
			float64(result.Categories[models.CategoryExceptions])*0.15 +
			float64(result.Categories[models.CategoryMaintainability])*0.10)

	return result
}

// classDesignScore penalizes multiple top-level classes per file and files
// declaring no class or interface at all.
func (a *JavaAnalyzer) classDesignScore(content string) (int, int) {
	classes := len(javaClassRe.FindAllString(content, -1))
	interfaces := len(javaInterfaceRe.FindAllString(content, -1))

	score := 100
	if classes > 1 {
		score -= 20
	}
	if classes == 0 && interfaces == 0 {
		score -= 50
	}
	if score < 0 {
		score = 0
	}
	return score, classes
}

// oopScore combines encapsulation, inheritance, polymorphism and
// abstraction subscores with fixed weights.
func (a *JavaAnalyzer) oopScore(content string) float64 {
	privateFields := len(javaPrivateFieldRe.FindAllString(content, -1))
	getters := len(javaGetterRe.FindAllString(content, -1))
	setters := len(javaSetterRe.FindAllString(content, -1))

	encapsulation := 0.0
	if privateFields > 0 {
		encapsulation = float64(getters+setters)/float64(privateFields)*50 + 50
		if encapsulation > 100 {
			encapsulation = 100
		}
	}

	inheritanceCount := len(javaExtendsRe.FindAllString(content, -1)) +
		len(javaOverrideAnnRe.FindAllString(content, -1)) +
		len(javaSuperCallRe.FindAllString(content, -1))
	inheritance := float64(inheritanceCount * 25)
	if inheritance > 100 {
		inheritance = 100
	}

	polymorphismCount := len(javaImplementsRe.FindAllString(content, -1)) +
		a.overloadCount(content) +
		len(javaInstanceofRe.FindAllString(content, -1))
	polymorphism := float64(polymorphismCount * 30)
	if polymorphism > 100 {
		polymorphism = 100
	}

	abstractionCount := len(javaAbstractDeclRe.FindAllString(content, -1)) +
		len(javaInterfaceSigRe.FindAllString(content, -1)) +
		len(javaAbstractSigRe.FindAllString(content, -1))
	abstraction := float64(abstractionCount * 35)
	if abstraction > 100 {
		abstraction = 100
	}

	return encapsulation*0.3 + inheritance*0.25 + polymorphism*0.25 + abstraction*0.2
}

// overloadCount counts repeated parenthesized identifiers as overload
// candidates: each name appearing more than once adds its extra uses.
func (a *JavaAnalyzer) overloadCount(content string) int {
	seen := make(map[string]int)
	for _, m := range javaCallSiteRe.FindAllStringSubmatch(content, -1) {
		seen[m[1]]++
	}
	count := 0
	for _, n := range seen {
		if n > 1 {
			count += n - 1
		}
	}
	return count
}

// methodDesignScore rewards @Override usage relative to total methods.
// Returns the score and the total method count.
func (a *JavaAnalyzer) methodDesignScore(content string) (float64, int) {
	total := len(javaMethodDeclRe.FindAllString(content, -1))
	overridden := len(javaOverrideRe.FindAllString(content, -1))

	if total == 0 {
		return 0, 0
	}

	score := float64(overridden)/float64(total)*50 + 50
	if score > 100 {
		score = 100
	}
	return score, total
}

// exceptionScore counts try/catch, finally, throws and custom exception
// declarations, 20 points per feature.
func (a *JavaAnalyzer) exceptionScore(content string) int {
	total := len(javaTryCatchRe.FindAllString(content, -1)) +
		len(javaFinallyRe.FindAllString(content, -1)) +
		len(javaThrowsRe.FindAllString(content, -1)) +
		len(javaCustomExcRe.FindAllString(content, -1))

	score := total * 20
	if score > 100 {
		score = 100
	}
	return score
}

func (a *JavaAnalyzer) practicesScore(content string) int {
	score := 100

	if !javaClassNamingRe.MatchString(content) {
		score -= 10
	}
	if javaBadVarNameRe.MatchString(content) {
		score -= 10
	}
	if javaCatchGenericRe.MatchString(content) {
		score -= 15
	}
	if javaFileStreamRe.MatchString(content) && !javaTryResourceRe.MatchString(content) {
		score -= 20
	}

	// Public mutable fields; static final constants are exempt.
	publicFields := 0
	for _, m := range javaPublicFieldRe.FindAllString(content, -1) {
		if !strings.HasPrefix(m, "public static final") {
			publicFields++
		}
	}
	score -= publicFields * 5

	if score < 0 {
		score = 0
	}
	return score
}

func (a *JavaAnalyzer) findIssues(content string) []models.Issue {
	var issues []models.Issue

	if javaPublicFieldRe.MatchString(content) && !javaConstFieldRe.MatchString(content) {
		issues = append(issues, models.Issue{
			Type:        "Encapsulation",
			Severity:    models.SeverityMedium,
			Description: "Public fields found (breaks encapsulation)",
			Suggestion:  "Make fields private and provide getter/setter methods",
		})
	}

	if javaStrConcatRe.MatchString(content) {
		issues = append(issues, models.Issue{
			Type:        "Performance",
			Severity:    models.SeverityMedium,
			Description: "String concatenation in loop",
			Suggestion:  "Use StringBuilder for efficient string concatenation",
		})
	}

	if javaCatchGenericRe.MatchString(content) {
		issues = append(issues, models.Issue{
			Type:        "Exception Handling",
			Severity:    models.SeverityLow,
			Description: "Catching generic Exception",
			Suggestion:  "Catch specific exception types instead of generic Exception",
		})
	}

	return issues
}

func (a *JavaAnalyzer) suggestions(content string) []string {
	var suggestions []string

	if !javaPrivateFieldRe.MatchString(content) {
		suggestions = append(suggestions, "Use private fields and provide public getter/setter methods for better encapsulation")
	}
	if !javaOverrideAnnRe.MatchString(content) && javaExtendsAnyRe.MatchString(content) {
		suggestions = append(suggestions, "Use @Override annotation when overriding methods for better code clarity")
	}

	if javaVectorRe.MatchString(content) {
		suggestions = append(suggestions, "Consider using ArrayList instead of Vector for better performance")
	}
	if javaNewStringRe.MatchString(content) {
		suggestions = append(suggestions, "Avoid unnecessary String object creation; use string literals directly")
	}

	if !javaEnhancedForRe.MatchString(content) && javaIndexForRe.MatchString(content) {
		suggestions = append(suggestions, "Consider using enhanced for loops (for-each) for better readability")
	}
	if !javaTryResourceRe.MatchString(content) && javaFileStreamRe.MatchString(content) {
		suggestions = append(suggestions, "Use try-with-resources for automatic resource management")
	}

	if !javaPackageRe.MatchString(content) {
		suggestions = append(suggestions, "Organize code in packages for better namespace management")
	}
	if !javaImportStmtRe.MatchString(content) && javaQualifiedRe.MatchString(content) {
		suggestions = append(suggestions, "Use import statements instead of fully qualified class names")
	}

	return capSuggestions(suggestions)
}
