package domain

import (
	"math"
	"time"
)

// Severity is the risk level attached to an Issue. The set is ordinal for
// grouping and pass/fail policy only; the engine never enforces a total order.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityWarning  Severity = "warning"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
)

// severityRank orders severities for display grouping (lower is more severe).
var severityRank = map[Severity]int{
	SeverityCritical: 0,
	SeverityHigh:     1,
	SeverityMedium:   2,
	SeverityWarning:  3,
	SeverityLow:      4,
	SeverityInfo:     5,
}

func SeverityRank(s Severity) int {
	if r, ok := severityRank[s]; ok {
		return r
	}
	return len(severityRank)
}

// Standard names the three independent scoring dimensions.
const (
	StandardCode        = "code"
	StandardSecurity    = "security"
	StandardPerformance = "performance"
)

// ValidStandards enumerates the standards Validate accepts, in canonical order.
var ValidStandards = []string{StandardCode, StandardSecurity, StandardPerformance}

// Issue represents one detected rule violation. Issues are built as a single
// immutable record; no field is added after creation.
type Issue struct {
	File       string   `json:"file"`
	Line       int      `json:"line"`
	Kind       string   `json:"kind"`
	Severity   Severity `json:"severity"`
	Message    string   `json:"message"`
	Rule       string   `json:"rule"`
	SecretType string   `json:"secret_type,omitempty"`
	Package    string   `json:"package,omitempty"`
}

// AppliedFix records one auto-fix the code scanner applied to a file.
type AppliedFix struct {
	File        string `json:"file"`
	Line        int    `json:"line"`
	Rule        string `json:"rule"`
	Description string `json:"description"`
}

// StandardResult is the output of one scanner for one standard.
type StandardResult struct {
	Standard string         `json:"standard"`
	Score    int            `json:"score"`
	Issues   []Issue        `json:"issues"`
	Fixed    []AppliedFix   `json:"fixed,omitempty"`
	Metrics  map[string]int `json:"metrics"`
}

// ValidationReport is the orchestrator output handed to CLI and report writers.
type ValidationReport struct {
	OverallScore int              `json:"overall_score"`
	Passed       bool             `json:"passed"`
	Standards    []StandardResult `json:"standards"`
	Issues       []Issue          `json:"issues"`
	Timestamp    time.Time        `json:"timestamp"`
	CommitHash   string           `json:"commit_hash,omitempty"`
}

func (r *ValidationReport) Grade() string { return GradeFor(r.OverallScore) }

func GradeFor(score int) string {
	switch {
	case score >= 90:
		return "A+"
	case score >= 80:
		return "A"
	case score >= 70:
		return "B"
	case score >= 60:
		return "C"
	case score >= 50:
		return "D"
	default:
		return "F"
	}
}

func BadgeColor(score int) string {
	switch {
	case score >= 90:
		return "brightgreen"
	case score >= 80:
		return "green"
	case score >= 70:
		return "yellow"
	case score >= 60:
		return "orange"
	case score >= 50:
		return "red"
	default:
		return "critical"
	}
}

// ComputeOverallScore returns the rounded mean of the per-standard scores.
func ComputeOverallScore(standards []StandardResult) int {
	if len(standards) == 0 {
		return 0
	}
	total := 0
	for _, s := range standards {
		total += s.Score
	}
	return int(math.Round(float64(total) / float64(len(standards))))
}

// Verdict applies the pass policy: the overall score must reach the minimum
// and no issue may carry one of the failing severities.
func Verdict(overall int, issues []Issue, thresholds Thresholds) bool {
	if overall < thresholds.MinScore {
		return false
	}
	failing := make(map[Severity]bool, len(thresholds.FailOn))
	for _, s := range thresholds.FailOn {
		failing[s] = true
	}
	for _, i := range issues {
		if failing[i.Severity] {
			return false
		}
	}
	return true
}

// ClampScore bounds a raw score to [0, 100] and rounds to the nearest integer.
func ClampScore(raw float64) int {
	if raw < 0 {
		return 0
	}
	if raw > 100 {
		return 100
	}
	return int(math.Round(raw))
}

// ReportEntry is one line of persisted validation history.
type ReportEntry struct {
	Timestamp  string `json:"timestamp"`
	CommitHash string `json:"commit_hash,omitempty"`
	Overall    int    `json:"overall"`
	Passed     bool   `json:"passed"`
}
