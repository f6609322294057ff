package npmaudit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"time"

	"github.com/praxisdev/praxis/internal/domain"
)

// DefaultTimeout bounds a single audit invocation. npm audit hitting the
// registry can hang on flaky networks; a timeout surfaces as a scanner-level
// failure, not a fatal error.
const DefaultTimeout = 30 * time.Second

// Runner implements domain.AuditRunner by invoking `npm audit --json`.
type Runner struct {
	Timeout time.Duration
}

func New() *Runner {
	return &Runner{Timeout: DefaultTimeout}
}

// Run audits the project's manifest. npm audit exits non-zero whenever it
// finds anything, so the JSON on stdout is parsed before the exit code is
// trusted. A project without a package.json audits clean.
func (r *Runner) Run(ctx context.Context, projectPath string) (domain.AuditReport, error) {
	if _, err := os.Stat(filepath.Join(projectPath, "package.json")); err != nil {
		return domain.AuditReport{}, nil
	}

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "npm", "audit", "--json")
	cmd.Dir = projectPath
	out, runErr := cmd.Output()

	if len(out) > 0 {
		if report, err := ParseAuditJSON(out); err == nil {
			return report, nil
		}
	}
	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			return domain.AuditReport{}, fmt.Errorf("npm audit exited %d with unparseable output", exitErr.ExitCode())
		}
		return domain.AuditReport{}, fmt.Errorf("running npm audit: %w", runErr)
	}
	return domain.AuditReport{}, fmt.Errorf("npm audit produced no parseable output")
}

// auditOutput covers both the npm v7+ shape (vulnerabilities keyed by
// package) and the legacy v6 shape (advisories keyed by ID).
type auditOutput struct {
	Vulnerabilities map[string]struct {
		Name     string            `json:"name"`
		Severity string            `json:"severity"`
		Range    string            `json:"range"`
		Via      []json.RawMessage `json:"via"`
	} `json:"vulnerabilities"`
	Advisories map[string]struct {
		ModuleName string `json:"module_name"`
		Severity   string `json:"severity"`
		Title      string `json:"title"`
	} `json:"advisories"`
}

// ParseAuditJSON normalizes raw npm audit output into a domain.AuditReport.
// Entries are sorted by package name so issue order is deterministic.
func ParseAuditJSON(data []byte) (domain.AuditReport, error) {
	var out auditOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return domain.AuditReport{}, fmt.Errorf("parsing audit output: %w", err)
	}
	if out.Vulnerabilities == nil && out.Advisories == nil {
		return domain.AuditReport{}, fmt.Errorf("audit output has no vulnerabilities or advisories field")
	}

	var report domain.AuditReport
	for name, v := range out.Vulnerabilities {
		pkg := v.Name
		if pkg == "" {
			pkg = name
		}
		report.Vulnerabilities = append(report.Vulnerabilities, domain.AuditVulnerability{
			Package:  pkg,
			Severity: v.Severity,
			Title:    firstViaTitle(v.Via),
			Range:    v.Range,
		})
	}
	for _, a := range out.Advisories {
		report.Vulnerabilities = append(report.Vulnerabilities, domain.AuditVulnerability{
			Package:  a.ModuleName,
			Severity: a.Severity,
			Title:    a.Title,
		})
	}

	sort.Slice(report.Vulnerabilities, func(i, j int) bool {
		return report.Vulnerabilities[i].Package < report.Vulnerabilities[j].Package
	})
	return report, nil
}

// firstViaTitle digs the first advisory title out of a vulnerability's via
// chain; entries can be either advisory objects or plain package names.
func firstViaTitle(via []json.RawMessage) string {
	for _, raw := range via {
		var adv struct {
			Title string `json:"title"`
		}
		if err := json.Unmarshal(raw, &adv); err == nil && adv.Title != "" {
			return adv.Title
		}
	}
	return ""
}
