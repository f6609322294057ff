package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/praxisdev/praxis/internal/domain"
	"github.com/praxisdev/praxis/internal/domain/scanning"
)

// Per-standard include globs. Security additionally scans config and env
// files; performance additionally sums style files into the bundle.
var (
	codeGlobs     = []string{"**/*.js", "**/*.jsx", "**/*.ts", "**/*.tsx"}
	securityGlobs = append(append([]string{}, codeGlobs...),
		"**/*.json", "**/*.yaml", "**/*.yml", "**/.env*")
	performanceGlobs = append(append([]string{}, codeGlobs...),
		"**/*.css", "**/*.scss")
)

// ValidateService orchestrates the validation pipeline:
// load config → discover files per standard → run scanners → aggregate.
type ValidateService struct {
	discoverer   domain.FileDiscoverer
	configLoader domain.ConfigLoader
	audit        domain.AuditRunner
}

func NewValidateService(
	discoverer domain.FileDiscoverer,
	configLoader domain.ConfigLoader,
	audit domain.AuditRunner,
) *ValidateService {
	return &ValidateService{
		discoverer:   discoverer,
		configLoader: configLoader,
		audit:        audit,
	}
}

// Validate runs the requested standards against a project and aggregates a
// report. Standards run concurrently; a failure inside one standard degrades
// that standard to score 0 with a single critical issue instead of aborting
// the run. Only an unreadable root or invalid arguments return an error.
func (s *ValidateService) Validate(ctx context.Context, projectPath string, standards []string, autoFix bool) (*domain.ValidationReport, error) {
	if len(standards) == 0 {
		return nil, fmt.Errorf("at least one standard must be requested")
	}
	for _, std := range standards {
		if !knownStandard(std) {
			return nil, fmt.Errorf("unknown standard %q (valid: code, security, performance)", std)
		}
	}

	cfg, err := s.configLoader.Load(projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	// Probe the root once so an unreadable project fails the whole call
	// rather than every standard individually.
	if _, err := s.discoverer.Discover(projectPath, codeGlobs, cfg.ExcludePaths); err != nil {
		return nil, &domain.DiscoveryError{Path: projectPath, Err: err}
	}

	results := make([]domain.StandardResult, len(standards))
	var wg sync.WaitGroup
	for i, std := range standards {
		wg.Add(1)
		go func(i int, std string) {
			defer wg.Done()
			results[i] = s.runStandard(ctx, std, projectPath, cfg, autoFix)
		}(i, std)
	}
	wg.Wait()

	report := &domain.ValidationReport{
		OverallScore: domain.ComputeOverallScore(results),
		Standards:    results,
		Timestamp:    time.Now(),
	}
	for _, r := range results {
		report.Issues = append(report.Issues, r.Issues...)
	}
	report.Passed = domain.Verdict(report.OverallScore, report.Issues, cfg.Thresholds)
	return report, nil
}

func (s *ValidateService) runStandard(ctx context.Context, standard, projectPath string, cfg domain.Config, autoFix bool) domain.StandardResult {
	files, err := s.discoverer.Discover(projectPath, globsFor(standard), cfg.ExcludePaths)
	if err != nil {
		return failedResult(standard, err)
	}

	switch standard {
	case domain.StandardCode:
		return scanning.NewCodeScanner(cfg.Standards.Code).Scan(files, autoFix)
	case domain.StandardSecurity:
		return scanning.NewSecurityScanner(cfg.Standards.Security, s.audit).Scan(ctx, files, projectPath)
	case domain.StandardPerformance:
		return scanning.NewPerformanceScanner(cfg.Standards.Performance).Scan(files, projectPath)
	}
	return failedResult(standard, fmt.Errorf("unknown standard %q", standard))
}

// failedResult is the degraded result for a standard whose scan could not
// run: score 0 and one critical synthetic issue describing the failure.
func failedResult(standard string, err error) domain.StandardResult {
	return domain.StandardResult{
		Standard: standard,
		Score:    0,
		Metrics:  map[string]int{},
		Issues: []domain.Issue{{
			File:     ".",
			Line:     1,
			Kind:     "scan-failure",
			Severity: domain.SeverityCritical,
			Rule:     standard,
			Message:  fmt.Sprintf("%s scan failed: %v", standard, err),
		}},
	}
}

func globsFor(standard string) []string {
	switch standard {
	case domain.StandardSecurity:
		return securityGlobs
	case domain.StandardPerformance:
		return performanceGlobs
	default:
		return codeGlobs
	}
}

func knownStandard(s string) bool {
	for _, v := range domain.ValidStandards {
		if s == v {
			return true
		}
	}
	return false
}
