package report

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/praxisdev/praxis/internal/domain"
)

var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	info    = lipgloss.Color("#8B949E") // soft blue-gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	critTagStyle  = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	infoTagStyle  = lipgloss.NewStyle().Foreground(info)
	fileStyle     = lipgloss.NewStyle().Foreground(dim)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	stdNameStyle  = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// Render formats a validation report for terminal output.
func Render(report *domain.ValidationReport) string {
	var b strings.Builder

	verdict := passStyle.Render("PASSED")
	if !report.Passed {
		verdict = failStyle.Render("FAILED")
	}
	scoreStyled := lipgloss.NewStyle().
		Bold(true).
		Foreground(scoreColor(report.OverallScore)).
		Render(fmt.Sprintf("%d / 100", report.OverallScore))

	title := headerStyle.Render("praxis")
	subtitle := dimStyle.Render("Best Practices Validation")
	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + scoreStyled + "  " + verdict))
	b.WriteString("\n\n")

	for _, std := range report.Standards {
		renderStandard(&b, std)
	}

	b.WriteString("\n")
	b.WriteString("  " + separatorLine)
	b.WriteString("\n\n")

	if len(report.Issues) > 0 {
		renderIssueSummary(&b, report.Issues)
		issues := append([]domain.Issue(nil), report.Issues...)
		sortBySeverity(issues)
		for _, issue := range issues {
			renderIssue(&b, issue)
		}
	} else {
		b.WriteString("  " + passStyle.Render("No issues found.") + "\n")
	}

	b.WriteString("\n")
	return b.String()
}

func renderStandard(b *strings.Builder, std domain.StandardResult) {
	color := scoreColor(std.Score)
	scoreText := lipgloss.NewStyle().Bold(true).Foreground(color).Render(fmt.Sprintf("%d", std.Score))
	bar := coloredBar(std.Score, 20)
	name := stdNameStyle.Render(padRight(std.Standard, 14))
	issueCount := dimStyle.Render(fmt.Sprintf("%d issues", len(std.Issues)))

	fmt.Fprintf(b, "  %s %s  %s  %s\n", name, bar, scoreText, issueCount)

	for _, k := range sortedMetricKeys(std.Metrics) {
		fmt.Fprintf(b, "    %s\n", faintStyle.Render(fmt.Sprintf("%s: %d", k, std.Metrics[k])))
	}
	if len(std.Fixed) > 0 {
		fmt.Fprintf(b, "    %s\n", passStyle.Render(fmt.Sprintf("auto-fixed %d issue(s)", len(std.Fixed))))
	}
}

func renderIssueSummary(b *strings.Builder, issues []domain.Issue) {
	counts := make(map[domain.Severity]int)
	for _, i := range issues {
		counts[i.Severity]++
	}

	b.WriteString("  ")
	b.WriteString(titleStyle.Render("Issues"))
	b.WriteString("  ")
	for _, sev := range []domain.Severity{
		domain.SeverityCritical, domain.SeverityHigh, domain.SeverityMedium,
		domain.SeverityWarning, domain.SeverityLow, domain.SeverityInfo,
	} {
		if counts[sev] == 0 {
			continue
		}
		b.WriteString(severityTag(sev))
		b.WriteString(dimStyle.Render(fmt.Sprintf(" %d  ", counts[sev])))
	}
	b.WriteString("\n\n")
}

func renderIssue(b *strings.Builder, issue domain.Issue) {
	tag := severityTag(issue.Severity)
	loc := shortenPath(issue.File)
	if issue.Line > 1 {
		loc = fmt.Sprintf("%s:%d", loc, issue.Line)
	}

	fmt.Fprintf(b, "    %s %s\n", tag, fileStyle.Render(loc))
	fmt.Fprintf(b, "         %s\n", dimStyle.Render(issue.Message))
}

func severityTag(sev domain.Severity) string {
	switch sev {
	case domain.SeverityCritical, domain.SeverityHigh:
		return critTagStyle.Render(padRight(string(sev), 8))
	case domain.SeverityMedium, domain.SeverityWarning:
		return warnTagStyle.Render(padRight(string(sev), 8))
	default:
		return infoTagStyle.Render(padRight(string(sev), 8))
	}
}

func sortBySeverity(issues []domain.Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		return domain.SeverityRank(issues[i].Severity) < domain.SeverityRank(issues[j].Severity)
	})
}

func coloredBar(score, width int) string {
	filled := score * width / 100
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	empty := width - filled

	color := scoreColor(score)
	filledStr := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	emptyStr := lipgloss.NewStyle().Foreground(faint).Render(strings.Repeat("░", empty))
	return filledStr + emptyStr
}

func scoreColor(score int) lipgloss.Color {
	switch {
	case score >= 80:
		return success
	case score >= 60:
		return lipgloss.Color("#A3E635") // lime
	case score >= 40:
		return warning
	default:
		return danger
	}
}

func shortenPath(path string) string {
	if idx := strings.Index(path, "src/"); idx >= 0 {
		return path[idx:]
	}
	parts := strings.Split(filepath.ToSlash(path), "/")
	if len(parts) > 3 {
		return strings.Join(parts[len(parts)-3:], "/")
	}
	return path
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func sortedMetricKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RenderHistory formats validation history for terminal output.
func RenderHistory(entries []domain.ReportEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No validation history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Validation History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for i, e := range entries {
		hash := e.CommitHash
		if len(hash) > 7 {
			hash = hash[:7]
		}
		if hash == "" {
			hash = "·······"
		}

		scoreStyled := lipgloss.NewStyle().
			Foreground(scoreColor(e.Overall)).
			Render(fmt.Sprintf("%d/100", e.Overall))

		verdict := passStyle.Render("pass")
		if !e.Passed {
			verdict = failStyle.Render("fail")
		}

		date := e.Timestamp
		if len(date) > 10 {
			date = date[:10]
		}

		line := fmt.Sprintf("  %s  %s  %s  %s",
			dimStyle.Render(date),
			faintStyle.Render(hash),
			scoreStyled,
			verdict,
		)

		if i > 0 {
			diff := e.Overall - entries[i-1].Overall
			if diff > 0 {
				line += "  " + passStyle.Render(fmt.Sprintf("↑%d", diff))
			} else if diff < 0 {
				line += "  " + failStyle.Render(fmt.Sprintf("↓%d", -diff))
			}
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}
