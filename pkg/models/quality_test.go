package models

import "testing"

func TestClampScore(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  int
	}{
		{"negative clamps to zero", -15.0, 0},
		{"zero stays zero", 0, 0},
		{"mid-range rounds down", 72.4, 72},
		{"mid-range rounds up", 72.5, 73},
		{"hundred stays hundred", 100, 100},
		{"over hundred clamps", 130.0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampScore(tt.input); got != tt.want {
				t.Errorf("ClampScore(%v) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestSeverityWeight(t *testing.T) {
	if SeverityHigh.Weight() <= SeverityMedium.Weight() {
		t.Error("high severity should outweigh medium")
	}
	if SeverityMedium.Weight() <= SeverityLow.Weight() {
		t.Error("medium severity should outweigh low")
	}
	if Severity("bogus").Weight() != 0 {
		t.Error("unknown severity should have zero weight")
	}
}

func TestIssueTierPenalty(t *testing.T) {
	tests := []struct {
		tier IssueTier
		want int
	}{
		{TierCritical, 30},
		{TierMajor, 15},
		{TierMinor, 5},
		{IssueTier("bogus"), 0},
	}

	for _, tt := range tests {
		if got := tt.tier.Penalty(); got != tt.want {
			t.Errorf("%s.Penalty() = %d, want %d", tt.tier, got, tt.want)
		}
	}
}

func TestNewQualitySummary(t *testing.T) {
	s := NewQualitySummary()
	if s.ByLanguage == nil || s.ScoreByLanguage == nil || s.IssuesBySeverity == nil {
		t.Fatal("NewQualitySummary should initialize all maps")
	}

	s.ByLanguage["Go"]++
	s.IssuesBySeverity[string(SeverityHigh)]++
	if s.ByLanguage["Go"] != 1 {
		t.Error("summary maps should be writable")
	}
}
