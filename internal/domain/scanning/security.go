package scanning

import (
	"context"
	"fmt"
	"strings"

	"github.com/praxisdev/praxis/internal/domain"
)

// SecurityScanner composes the secret scan and the dependency audit into one
// standard result.
type SecurityScanner struct {
	cfg    domain.SecurityConfig
	runner domain.AuditRunner
}

func NewSecurityScanner(cfg domain.SecurityConfig, runner domain.AuditRunner) *SecurityScanner {
	return &SecurityScanner{cfg: cfg, runner: runner}
}

// Scan runs the enabled security sub-scans. A failing audit run degrades to a
// critical issue rather than an error; only both sub-scans being disabled is a
// no-op that scores 100.
func (s *SecurityScanner) Scan(ctx context.Context, files []string, projectPath string) domain.StandardResult {
	result := domain.StandardResult{
		Standard: domain.StandardSecurity,
		Metrics:  map[string]int{},
	}

	secretsFound := 0
	filesScanned := 0
	if s.cfg.ScanSecrets {
		var issues []domain.Issue
		issues, secretsFound, filesScanned = NewSecretScanner(s.cfg.AllowedSecretPatterns).Scan(files)
		result.Issues = append(result.Issues, issues...)
	}

	vulnerabilityCount := 0
	auditFailed := false
	if s.cfg.VulnerabilityScan && s.runner != nil {
		issues, count, err := s.scanVulnerabilities(ctx, projectPath)
		if err != nil {
			// Scanner-level failure: keep partial secret results but degrade
			// the standard to 0 with one critical synthetic issue.
			auditFailed = true
			result.Issues = append(result.Issues, domain.Issue{
				File:     projectPath,
				Line:     1,
				Kind:     "audit-failure",
				Severity: domain.SeverityCritical,
				Rule:     "dependency-audit",
				Message:  fmt.Sprintf("dependency audit failed: %v", err),
			})
		} else {
			result.Issues = append(result.Issues, issues...)
			vulnerabilityCount = count
		}
	}

	result.Metrics["secretsFound"] = secretsFound
	result.Metrics["filesScanned"] = filesScanned
	result.Metrics["vulnerabilities"] = vulnerabilityCount
	if auditFailed {
		result.Score = 0
	} else {
		result.Score = securityScore(secretsFound, vulnerabilityCount)
	}
	return result
}

// scanVulnerabilities maps audit tool findings to issues. Severities come
// through verbatim from the tool, normalized onto the engine vocabulary.
func (s *SecurityScanner) scanVulnerabilities(ctx context.Context, projectPath string) ([]domain.Issue, int, error) {
	report, err := s.runner.Run(ctx, projectPath)
	if err != nil {
		return nil, 0, err
	}

	var issues []domain.Issue
	for _, v := range report.Vulnerabilities {
		msg := fmt.Sprintf("package %q has a known %s severity vulnerability", v.Package, v.Severity)
		if v.Title != "" {
			msg = fmt.Sprintf("%s: %s", msg, v.Title)
		}
		issues = append(issues, domain.Issue{
			File:     "package.json",
			Line:     1,
			Kind:     "vulnerability",
			Severity: auditSeverity(v.Severity),
			Rule:     "dependency-audit",
			Package:  v.Package,
			Message:  msg,
		})
	}
	return issues, len(issues), nil
}

// auditSeverity maps audit tool classifications onto the engine's severity
// vocabulary. npm reports "moderate" where the engine says "medium".
func auditSeverity(s string) domain.Severity {
	switch strings.ToLower(s) {
	case "critical":
		return domain.SeverityCritical
	case "high":
		return domain.SeverityHigh
	case "moderate", "medium":
		return domain.SeverityMedium
	case "low":
		return domain.SeverityLow
	case "info":
		return domain.SeverityInfo
	default:
		return domain.SeverityWarning
	}
}

// securityScore implements: 100 - 15*secrets - 10*vulnerabilities, floor 0.
func securityScore(secrets, vulnerabilities int) int {
	return domain.ClampScore(float64(100 - 15*secrets - 10*vulnerabilities))
}
