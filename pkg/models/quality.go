package models

import (
	"math"
	"time"
)

// Category names a single scored concern within a file analysis.
type Category string

const (
	CategoryMemory          Category = "memory"
	CategoryPerformance     Category = "performance"
	CategoryModernization   Category = "modernization"
	CategoryBestPractices   Category = "best_practices"
	CategoryMaintainability Category = "maintainability"
	CategoryOOP             Category = "oop"
	CategoryConcurrency     Category = "concurrency"
	CategoryErrorHandling   Category = "error_handling"
	CategoryIdioms          Category = "idioms"
	CategoryStructure       Category = "structure"
	CategoryExceptions      Category = "exceptions"
	CategoryClassDesign     Category = "class_design"
	CategoryMethodDesign    Category = "method_design"
)

// Severity represents the urgency of a reported issue.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Weight returns a numeric weight for sorting.
func (s Severity) Weight() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// IssueTier classifies an anti-pattern for score penalties. Each distinct
// pattern found subtracts its tier penalty once, regardless of match count.
type IssueTier string

const (
	TierCritical IssueTier = "critical"
	TierMajor    IssueTier = "major"
	TierMinor    IssueTier = "minor"
)

// Penalty returns the score deduction for one distinct issue of this tier.
func (t IssueTier) Penalty() int {
	switch t {
	case TierCritical:
		return 30
	case TierMajor:
		return 15
	case TierMinor:
		return 5
	default:
		return 0
	}
}

// Issue is a single problem found in a file.
type Issue struct {
	Type        string   `json:"type"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
	Suggestion  string   `json:"suggestion,omitempty"`
}

// ComplexityLabel buckets an estimated complexity for display.
type ComplexityLabel string

const (
	ComplexityLow     ComplexityLabel = "Low"
	ComplexityMedium  ComplexityLabel = "Medium"
	ComplexityHigh    ComplexityLabel = "High"
	ComplexityUnknown ComplexityLabel = "Unknown"
)

// MaintainabilityLabel rates a file by its practice-to-issue ratio.
type MaintainabilityLabel string

const (
	MaintainabilityExcellent MaintainabilityLabel = "Excellent"
	MaintainabilityGood      MaintainabilityLabel = "Good"
	MaintainabilityFair      MaintainabilityLabel = "Fair"
	MaintainabilityPoor      MaintainabilityLabel = "Needs Improvement"
	MaintainabilityUnknown   MaintainabilityLabel = "Unknown"
)

// BasicMetrics holds language-independent line and size counts.
type BasicMetrics struct {
	TotalLines     int     `json:"total_lines"`
	CodeLines      int     `json:"code_lines"`
	BlankLines     int     `json:"blank_lines"`
	CommentLines   int     `json:"comment_lines"`
	TotalChars     int     `json:"total_chars"`
	TotalWords     int     `json:"total_words"`
	AvgLineLength  float64 `json:"avg_line_length"`
	CommentRatio   float64 `json:"comment_ratio"` // percentage of total lines
	DuplicateLines int     `json:"duplicate_lines,omitempty"`
}

// FileAnalysis is the result of analyzing a single source file.
// Created fresh per file and immutable once returned.
type FileAnalysis struct {
	Path     string `json:"path"`
	Filename string `json:"filename"`
	Language string `json:"language"`

	// Error flags an unusable result (unsupported extension, unreadable
	// file). Message carries the reason; QualityScore is 0.
	Error   bool   `json:"error,omitempty"`
	Message string `json:"message,omitempty"`

	// Fallback is set when the advanced analyzer failed and the basic
	// analyzer produced this result instead.
	Fallback bool `json:"fallback,omitempty"`

	Metrics    BasicMetrics     `json:"metrics"`
	Categories map[Category]int `json:"categories,omitempty"`

	QualityScore       int                  `json:"quality_score"`
	ComplexityEstimate int                  `json:"complexity_estimate,omitempty"`
	Complexity         ComplexityLabel      `json:"complexity"`
	Maintainability    MaintainabilityLabel `json:"maintainability"`

	Functions int `json:"functions_count"`
	Classes   int `json:"classes_count,omitempty"`
	Imports   int `json:"imports_count,omitempty"`

	Issues      []Issue  `json:"issues_found"`
	Practices   []string `json:"best_practices"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// ProjectAnalysis aggregates per-file results.
type ProjectAnalysis struct {
	Files      []FileAnalysis `json:"files"`
	Summary    QualitySummary `json:"summary"`
	AnalyzedAt time.Time      `json:"analyzed_at"`
}

// QualitySummary provides aggregate statistics over a project analysis.
type QualitySummary struct {
	TotalFiles       int                `json:"total_files"`
	AnalyzedFiles    int                `json:"analyzed_files"`
	FailedFiles      int                `json:"failed_files"`
	AverageScore     float64            `json:"average_score"`
	ScoreStdDev      float64            `json:"score_std_dev"`
	SizeCorrelation  float64            `json:"size_correlation"`
	ByLanguage       map[string]int     `json:"by_language"`
	ScoreByLanguage  map[string]float64 `json:"score_by_language"`
	TotalIssues      int                `json:"total_issues"`
	IssuesBySeverity map[string]int     `json:"issues_by_severity"`
	TopSuggestions   []string           `json:"top_suggestions,omitempty"`
}

// NewQualitySummary creates an initialized summary.
func NewQualitySummary() QualitySummary {
	return QualitySummary{
		ByLanguage:       make(map[string]int),
		ScoreByLanguage:  make(map[string]float64),
		IssuesBySeverity: make(map[string]int),
	}
}

// ClampScore rounds a raw score to the nearest integer and clamps it to
// [0, 100]. Every sub-score and overall score passes through here.
func ClampScore(v float64) int {
	s := int(math.Round(v))
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
