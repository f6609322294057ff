package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/praxisdev/praxis/internal/domain"
)

// WriteMarkdown renders a validation report as a Markdown document.
func WriteMarkdown(w io.Writer, report *domain.ValidationReport) error {
	var b strings.Builder

	verdict := "✅ Passed"
	if !report.Passed {
		verdict = "❌ Failed"
	}

	fmt.Fprintf(&b, "# Praxis Validation Report\n\n")
	fmt.Fprintf(&b, "**Overall score:** %d/100 (%s) — %s\n\n", report.OverallScore, report.Grade(), verdict)
	if report.CommitHash != "" {
		fmt.Fprintf(&b, "**Commit:** `%s`\n\n", report.CommitHash)
	}
	fmt.Fprintf(&b, "**Generated:** %s\n\n", report.Timestamp.Format("2006-01-02 15:04:05"))

	fmt.Fprintf(&b, "## Standards\n\n")
	fmt.Fprintf(&b, "| Standard | Score | Issues | Fixed |\n")
	fmt.Fprintf(&b, "|----------|------:|-------:|------:|\n")
	for _, std := range report.Standards {
		fmt.Fprintf(&b, "| %s | %d | %d | %d |\n", std.Standard, std.Score, len(std.Issues), len(std.Fixed))
	}
	b.WriteString("\n")

	for _, std := range report.Standards {
		if len(std.Metrics) == 0 {
			continue
		}
		fmt.Fprintf(&b, "### %s metrics\n\n", std.Standard)
		for _, k := range sortedMetricKeys(std.Metrics) {
			fmt.Fprintf(&b, "- `%s`: %d\n", k, std.Metrics[k])
		}
		b.WriteString("\n")
	}

	if len(report.Issues) > 0 {
		fmt.Fprintf(&b, "## Issues (%d)\n\n", len(report.Issues))
		fmt.Fprintf(&b, "| Severity | Rule | Location | Message |\n")
		fmt.Fprintf(&b, "|----------|------|----------|--------|\n")
		issues := append([]domain.Issue(nil), report.Issues...)
		sortBySeverity(issues)
		for _, i := range issues {
			loc := i.File
			if i.Line > 1 {
				loc = fmt.Sprintf("%s:%d", loc, i.Line)
			}
			fmt.Fprintf(&b, "| %s | %s | `%s` | %s |\n", i.Severity, i.Rule, loc, escapePipes(i.Message))
		}
		b.WriteString("\n")
	} else {
		b.WriteString("No issues found.\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
