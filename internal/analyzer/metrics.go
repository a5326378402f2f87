package analyzer

import (
	"math"
	"regexp"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/Laadnanimoustapha/DevMatch-AI/pkg/models"
)

// computeBasicMetrics calculates language-independent line and size counts.
// Guards against empty input so a 0-line file never divides by zero.
func computeBasicMetrics(content string) models.BasicMetrics {
	lines := strings.Split(content, "\n")

	m := models.BasicMetrics{
		TotalLines: len(lines),
		TotalChars: len(content),
		TotalWords: len(strings.Fields(content)),
	}

	nonEmpty := 0
	lineLenSum := 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			m.BlankLines++
			continue
		}
		nonEmpty++
		lineLenSum += len(line)
	}

	m.CommentLines = countCommentLines(lines)
	m.CodeLines = m.TotalLines - m.BlankLines - m.CommentLines

	if nonEmpty > 0 {
		m.AvgLineLength = round2(float64(lineLenSum) / float64(nonEmpty))
	}
	if m.TotalLines > 0 {
		m.CommentRatio = round2(float64(m.CommentLines) / float64(m.TotalLines) * 100)
	}

	m.DuplicateLines = countDuplicateLines(lines)

	return m
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// countCommentLines counts single-line comments and tracks block comments
// with a small state machine. Detection is intentionally approximate: a
// line opening a block comment counts, and following lines count until a
// closer appears.
func countCommentLines(lines []string) int {
	count := 0
	inBlock := false

	for _, line := range lines {
		stripped := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(stripped, "//") ||
			strings.HasPrefix(stripped, "#") ||
			strings.HasPrefix(stripped, "<!--"):
			count++

		case strings.Contains(stripped, "/*") ||
			strings.Contains(stripped, `"""`) ||
			strings.Contains(stripped, "'''"):
			count++
			rest := ""
			if len(stripped) >= 3 {
				rest = stripped[3:]
			}
			if !strings.Contains(stripped, "*/") &&
				!strings.Contains(rest, `"""`) &&
				!strings.Contains(rest, "'''") {
				inBlock = true
			}

		case inBlock:
			count++
			if strings.Contains(stripped, "*/") ||
				strings.Contains(stripped, `"""`) ||
				strings.Contains(stripped, "'''") {
				inBlock = false
			}
		}
	}

	return count
}

// countDuplicateLines fingerprints substantial lines and counts repeats
// beyond the first occurrence. Short lines (braces, returns) are ignored.
func countDuplicateLines(lines []string) int {
	const minLineLen = 10

	seen := make(map[uint64]int)
	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if len(stripped) < minLineLen {
			continue
		}
		seen[xxhash.Sum64String(stripped)]++
	}

	duplicates := 0
	for _, n := range seen {
		if n > 1 {
			duplicates += n - 1
		}
	}
	return duplicates
}

// complexityKeywords lists the control-flow markers counted per language
// for the coarse complexity label.
var complexityKeywords = map[string][]string{
	"python":     {"if", "elif", "for", "while", "try", "except", "and", "or"},
	"cpp":        {"if", "else", "for", "while", "switch", "case", "&&", "||"},
	"java":       {"if", "else", "for", "while", "switch", "case", "&&", "||"},
	"go":         {"if", "for", "switch", "case", "&&", "||"},
	"javascript": {"if", "else", "for", "while", "switch", "case", "&&", "||"},
}

// complexityLabel buckets a file by counting control-flow keyword
// occurrences as plain substrings.
func complexityLabel(content, language string) models.ComplexityLabel {
	keywords, ok := complexityKeywords[language]
	if !ok {
		keywords = []string{"if", "for", "while"}
	}

	lower := strings.ToLower(content)
	total := 0
	for _, kw := range keywords {
		total += strings.Count(lower, kw)
	}

	switch {
	case total <= 5:
		return models.ComplexityLow
	case total <= 15:
		return models.ComplexityMedium
	default:
		return models.ComplexityHigh
	}
}

// estimateLabel buckets a numeric complexity estimate for display.
func estimateLabel(estimate int) models.ComplexityLabel {
	switch {
	case estimate <= 5:
		return models.ComplexityLow
	case estimate <= 15:
		return models.ComplexityMedium
	default:
		return models.ComplexityHigh
	}
}

// maintainabilityLabel rates a file by its practice-to-issue ratio.
func maintainabilityLabel(issues, practices int) models.MaintainabilityLabel {
	switch {
	case practices >= issues*2:
		return models.MaintainabilityExcellent
	case practices >= issues:
		return models.MaintainabilityGood
	case issues <= practices*2:
		return models.MaintainabilityFair
	default:
		return models.MaintainabilityPoor
	}
}

// genericQualityScore is the scoring formula for files analyzed without a
// language-specific analyzer: base 50, bonuses for practices, comments and
// low complexity, penalties for issues and long lines.
func genericQualityScore(m models.BasicMetrics, practices, issues int, complexity models.ComplexityLabel) int {
	score := 50.0

	bonus := float64(practices * 3)
	if bonus > 30 {
		bonus = 30
	}
	score += bonus

	// CommentRatio is a percentage
	if m.CommentRatio >= 10 {
		score += 10
	} else if m.CommentRatio >= 5 {
		score += 5
	}

	switch complexity {
	case models.ComplexityLow:
		score += 10
	case models.ComplexityMedium:
		score += 5
	}

	penalty := float64(issues * 2)
	if penalty > 25 {
		penalty = 25
	}
	score -= penalty

	if m.AvgLineLength > 120 {
		score -= 5
	}

	return models.ClampScore(score)
}

// complexityEstimate counts control-flow regex matches plus a base of 1,
// capped at 50.
func complexityEstimate(content string, keywords []*regexp.Regexp) int {
	estimate := 1
	for _, re := range keywords {
		estimate += len(re.FindAllStringIndex(content, -1))
	}
	if estimate > 50 {
		estimate = 50
	}
	return estimate
}

// maintainabilityScore is the shared formula for the advanced analyzers:
// 100 minus deductions for long lines, sparse comments and a file with no
// detectable functions. The comment ratio here is line-comment lines over
// non-empty lines, distinct from BasicMetrics.CommentRatio.
func maintainabilityScore(content string, maxAvgLineLength float64, funcPattern *regexp.Regexp) int {
	lines := strings.Split(content, "\n")

	nonEmpty := 0
	lineLenSum := 0
	commentLines := 0
	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if stripped != "" {
			nonEmpty++
			lineLenSum += len(line)
		}
		if strings.HasPrefix(stripped, "//") {
			commentLines++
		}
	}

	denom := nonEmpty
	if denom == 0 {
		denom = 1
	}
	avgLineLength := float64(lineLenSum) / float64(denom)
	commentRatio := float64(commentLines) / float64(denom)

	score := 100
	if avgLineLength > maxAvgLineLength {
		score -= 20
	}
	if commentRatio < 0.1 {
		score -= 15
	}
	if !funcPattern.MatchString(content) {
		score -= 25
	}

	if score < 0 {
		score = 0
	}
	return score
}

// maintainabilityFromScore buckets an advanced maintainability subscore
// into the shared display label.
func maintainabilityFromScore(score int) models.MaintainabilityLabel {
	switch {
	case score >= 85:
		return models.MaintainabilityExcellent
	case score >= 70:
		return models.MaintainabilityGood
	case score >= 50:
		return models.MaintainabilityFair
	default:
		return models.MaintainabilityPoor
	}
}

// perfCheck is one anti-pattern probe. Each distinct check that fires
// subtracts its tier penalty once, regardless of how often it matches.
type perfCheck struct {
	tier        models.IssueTier
	description string
	detect      func(content string) bool
}

// reCheck builds a perfCheck from a single compiled pattern.
func reCheck(tier models.IssueTier, description, pattern string) perfCheck {
	re := regexp.MustCompile(pattern)
	return perfCheck{tier: tier, description: description, detect: re.MatchString}
}

// performanceScore runs the probes and returns the score with the
// descriptions of every check that fired.
func performanceScore(content string, checks []perfCheck) (int, []string) {
	score := 100
	var found []string

	for _, check := range checks {
		if check.detect(content) {
			score -= check.tier.Penalty()
			found = append(found, check.description)
		}
	}

	if score < 0 {
		score = 0
	}
	return score, found
}

// maxSuggestions bounds the suggestion list on every analysis result.
const maxSuggestions = 8

// capSuggestions truncates a suggestion list to the shared limit.
func capSuggestions(s []string) []string {
	if len(s) > maxSuggestions {
		return s[:maxSuggestions]
	}
	return s
}

// matchWithoutFollowing reports whether any line matches re with the
// remainder of that line (after the match) not containing follow.
// This mirrors a negative lookahead scoped to a single line.
func matchWithoutFollowing(re *regexp.Regexp, content, follow string) bool {
	follow = strings.ToLower(follow)
	for _, line := range strings.Split(content, "\n") {
		if loc := re.FindStringIndex(line); loc != nil {
			if !strings.Contains(strings.ToLower(line[loc[1]:]), follow) {
				return true
			}
		}
	}
	return false
}

// matchWithoutAnywhere reports whether re matches while the remainder of
// the whole content after the match lacks follow. Mirrors a negative
// lookahead in a dot-matches-newline pattern.
func matchWithoutAnywhere(re *regexp.Regexp, content, follow string) bool {
	follow = strings.ToLower(follow)
	for _, loc := range re.FindAllStringIndex(content, -1) {
		if !strings.Contains(strings.ToLower(content[loc[1]:]), follow) {
			return true
		}
	}
	return false
}
