package report_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praxisdev/praxis/internal/adapters/outbound/report"
	"github.com/praxisdev/praxis/internal/domain"
)

func sampleReport() *domain.ValidationReport {
	issues := []domain.Issue{
		{
			File:     "src/a.js",
			Line:     3,
			Kind:     "missing-comment",
			Severity: domain.SeverityWarning,
			Rule:     "enforce-comments",
			Message:  `function "add" has no comment explaining what it does`,
		},
		{
			File:       "src/config.js",
			Line:       1,
			Kind:       "hardcoded-secret",
			Severity:   domain.SeverityHigh,
			Rule:       "no-hardcoded-secrets",
			SecretType: "aws-access-key",
			Message:    "possible AWS access key ID",
		},
	}
	return &domain.ValidationReport{
		OverallScore: 82,
		Passed:       true,
		Timestamp:    time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		CommitHash:   "abc1234def",
		Standards: []domain.StandardResult{
			{
				Standard: domain.StandardCode,
				Score:    60,
				Issues:   issues[:1],
				Metrics:  map[string]int{"totalFunctions": 2, "commentedFunctions": 1, "longFunctions": 0},
			},
			{
				Standard: domain.StandardSecurity,
				Score:    85,
				Issues:   issues[1:],
				Metrics:  map[string]int{"secretsFound": 1, "filesScanned": 2, "vulnerabilities": 0},
			},
			{
				Standard: domain.StandardPerformance,
				Score:    100,
				Metrics:  map[string]int{"bundleSize": 1200, "largeFiles": 0, "performanceIssues": 0, "unusedDependencies": 0},
			},
		},
		Issues: issues,
	}
}

func TestRender(t *testing.T) {
	out := report.Render(sampleReport())

	assert.Contains(t, out, "praxis")
	assert.Contains(t, out, "PASSED")
	assert.Contains(t, out, domain.StandardCode)
	assert.Contains(t, out, domain.StandardSecurity)
	assert.Contains(t, out, domain.StandardPerformance)
	assert.Contains(t, out, "totalFunctions: 2")
	assert.Contains(t, out, "possible AWS access key ID")
}

func TestRender_Failed(t *testing.T) {
	r := sampleReport()
	r.Passed = false
	r.OverallScore = 40

	out := report.Render(r)
	assert.Contains(t, out, "FAILED")
}

func TestRender_NoIssues(t *testing.T) {
	r := sampleReport()
	r.Issues = nil
	r.Standards = r.Standards[2:]

	out := report.Render(r)
	assert.Contains(t, out, "No issues found.")
}

func TestRenderHistory(t *testing.T) {
	entries := []domain.ReportEntry{
		{Timestamp: "2026-08-29T10:00:00Z", Overall: 70, Passed: false},
		{Timestamp: "2026-08-30T10:00:00Z", CommitHash: "abc1234def", Overall: 85, Passed: true},
	}

	out := report.RenderHistory(entries)
	assert.Contains(t, out, "70/100")
	assert.Contains(t, out, "85/100")
	assert.Contains(t, out, "↑15")
	assert.Contains(t, out, "abc1234")
}

func TestRenderHistory_Empty(t *testing.T) {
	out := report.RenderHistory(nil)
	assert.Contains(t, out, "No validation history found.")
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteMarkdown(&buf, sampleReport()))
	out := buf.String()

	assert.Contains(t, out, "# Praxis Validation Report")
	assert.Contains(t, out, "**Overall score:** 82/100 (A) — ✅ Passed")
	assert.Contains(t, out, "| code | 60 | 1 | 0 |")
	assert.Contains(t, out, "`src/a.js:3`")
	assert.Contains(t, out, "- `secretsFound`: 1")
	assert.True(t, strings.Contains(out, "abc1234def"))
}

func TestWriteMarkdown_EscapesPipes(t *testing.T) {
	r := sampleReport()
	r.Issues = []domain.Issue{{
		File: "a.js", Line: 1, Severity: domain.SeverityLow,
		Rule: "r", Message: "left | right",
	}}

	var buf bytes.Buffer
	require.NoError(t, report.WriteMarkdown(&buf, r))
	assert.Contains(t, buf.String(), `left \| right`)
}

func TestWriteJSON_RoundTrips(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteJSON(&buf, sampleReport()))

	var decoded domain.ValidationReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, 82, decoded.OverallScore)
	assert.True(t, decoded.Passed)
	require.Len(t, decoded.Standards, 3)
	assert.Equal(t, "aws-access-key", decoded.Issues[1].SecretType)
}

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteHTML(&buf, sampleReport()))
	out := buf.String()

	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, "Praxis Validation Report")
	assert.Contains(t, out, "82/100")
	assert.Contains(t, out, "PASSED")
	assert.Contains(t, out, "no-hardcoded-secrets")
}
