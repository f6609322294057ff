package scanning

import (
	"fmt"
	"os"
	"regexp"

	"github.com/praxisdev/praxis/internal/domain"
)

// largeFileBytes is the fixed per-file size threshold, independent of the
// configured bundle budget.
const largeFileBytes = 100000

// antiPattern is one line-level performance smell.
type antiPattern struct {
	rule     string
	kind     string
	pattern  *regexp.Regexp
	severity domain.Severity
	message  string
}

var antiPatterns = []antiPattern{
	{
		rule:     "no-console-log",
		kind:     "console-log",
		pattern:  regexp.MustCompile(`console\.(?:log|debug|trace)\s*\(`),
		severity: domain.SeverityLow,
		message:  "debug logging left in code",
	},
	{
		rule:     "cache-dom-lookups",
		kind:     "repeated-dom-lookup",
		pattern:  regexp.MustCompile(`document\.(?:getElementById|querySelector(?:All)?)\s*\([^)]*\).*document\.(?:getElementById|querySelector(?:All)?)\s*\(`),
		severity: domain.SeverityWarning,
		message:  "repeated DOM lookup on one line; cache the element instead",
	},
	{
		rule:     "no-nested-iteration",
		kind:     "nested-iteration",
		pattern:  regexp.MustCompile(`\.(?:forEach|map|filter|reduce)\s*\(.*\.(?:forEach|map|filter|reduce)\s*\(`),
		severity: domain.SeverityWarning,
		message:  "nested iteration callbacks multiply work per element",
	},
	{
		rule:     "no-serialize-clone",
		kind:     "inefficient-clone",
		pattern:  regexp.MustCompile(`JSON\.parse\s*\(\s*JSON\.stringify\s*\(`),
		severity: domain.SeverityWarning,
		message:  "deep clone via JSON serialize round-trip",
	},
}

var reLoopOpen = regexp.MustCompile(`^\s*(?:for|while)\s*(?:await\s*)?\(`)

// PerformanceScanner checks bundle size, per-file size, line-level
// anti-patterns, nested loops, and unused declared dependencies.
type PerformanceScanner struct {
	cfg domain.PerformanceConfig
}

func NewPerformanceScanner(cfg domain.PerformanceConfig) *PerformanceScanner {
	return &PerformanceScanner{cfg: cfg}
}

func (s *PerformanceScanner) Scan(files []string, projectPath string) domain.StandardResult {
	result := domain.StandardResult{
		Standard: domain.StandardPerformance,
		Metrics:  map[string]int{},
	}

	maxBundle := s.cfg.MaxBundleBytes()
	var bundleSize int64
	largeFiles := 0
	patternIssues := 0

	for _, file := range files {
		if info, err := os.Stat(file); err == nil {
			bundleSize += info.Size()
			if info.Size() > largeFileBytes {
				largeFiles++
				result.Issues = append(result.Issues, domain.Issue{
					File:     file,
					Line:     1,
					Kind:     "large-file",
					Severity: domain.SeverityWarning,
					Rule:     "max-file-size",
					Message:  fmt.Sprintf("file is %d bytes (max %d per file)", info.Size(), largeFileBytes),
				})
			}
		}

		lines, ok := readLines(file)
		if !ok {
			continue
		}
		fileIssues := scanLinePatterns(file, lines)
		fileIssues = append(fileIssues, scanNestedLoops(file, lines)...)
		patternIssues += len(fileIssues)
		result.Issues = append(result.Issues, fileIssues...)
	}

	if bundleSize > maxBundle {
		result.Issues = append(result.Issues, domain.Issue{
			File:     projectPath,
			Line:     1,
			Kind:     "bundle-size",
			Severity: domain.SeverityHigh,
			Rule:     "max-bundle-size",
			Message:  fmt.Sprintf("total source size %d bytes exceeds budget of %d bytes", bundleSize, maxBundle),
		})
	}

	unused := s.scanUnusedDependencies(files, projectPath)
	result.Issues = append(result.Issues, unused...)

	result.Metrics["bundleSize"] = int(bundleSize)
	result.Metrics["largeFiles"] = largeFiles
	result.Metrics["performanceIssues"] = patternIssues
	result.Metrics["unusedDependencies"] = len(unused)
	result.Score = performanceScore(bundleSize, maxBundle, largeFiles, len(unused), patternIssues)
	return result
}

func scanLinePatterns(file string, lines []string) []domain.Issue {
	var issues []domain.Issue
	for i, line := range lines {
		if isCommentLine(line) {
			continue
		}
		for _, ap := range antiPatterns {
			if ap.pattern.MatchString(line) {
				issues = append(issues, domain.Issue{
					File:     file,
					Line:     i + 1,
					Kind:     ap.kind,
					Severity: ap.severity,
					Rule:     ap.rule,
					Message:  ap.message,
				})
			}
		}
	}
	return issues
}

// scanNestedLoops tracks brace depth from each loop-opening line; a second
// loop opening while still inside the first body flags the inner line. The
// search stops when the outer loop closes, and at most one issue is emitted
// per outer loop.
func scanNestedLoops(file string, lines []string) []domain.Issue {
	var issues []domain.Issue
	for i := 0; i < len(lines); i++ {
		if !reLoopOpen.MatchString(lines[i]) {
			continue
		}
		depth := 0
		entered := false
		for j := i; j < len(lines); j++ {
			if j > i && entered && reLoopOpen.MatchString(lines[j]) {
				issues = append(issues, domain.Issue{
					File:     file,
					Line:     j + 1,
					Kind:     "nested-loop",
					Severity: domain.SeverityWarning,
					Rule:     "no-nested-loops",
					Message:  "nested loop; consider restructuring to avoid quadratic iteration",
				})
				break
			}
			depth += braceDelta(lines[j])
			if depth > 0 {
				entered = true
			}
			if entered && depth <= 0 {
				break
			}
		}
	}
	return issues
}

func (s *PerformanceScanner) scanUnusedDependencies(files []string, projectPath string) []domain.Issue {
	declared := declaredDependencies(projectPath)
	if len(declared) == 0 {
		return nil
	}
	used := usedPackages(files)

	var issues []domain.Issue
	for _, dep := range declared {
		if used[dep] {
			continue
		}
		issues = append(issues, domain.Issue{
			File:     "package.json",
			Line:     1,
			Kind:     "unused-dependency",
			Severity: domain.SeverityLow,
			Rule:     "no-unused-dependencies",
			Package:  dep,
			Message:  fmt.Sprintf("declared dependency %q is never imported", dep),
		})
	}
	return issues
}

// performanceScore starts at 100 and subtracts capped deductions: up to 30
// scaled by bundle overshoot, 5 per large file (cap 20), 2 per unused
// dependency (cap 15), 2 per anti-pattern issue (cap 25).
func performanceScore(bundleSize, maxBundle int64, largeFiles, unusedDeps, patternIssues int) int {
	score := 100.0

	if maxBundle > 0 && bundleSize > maxBundle {
		over := float64(bundleSize-maxBundle) / float64(maxBundle) * 30
		if over > 30 {
			over = 30
		}
		score -= over
	}

	score -= capped(5*largeFiles, 20)
	score -= capped(2*unusedDeps, 15)
	score -= capped(2*patternIssues, 25)

	return domain.ClampScore(score)
}

func capped(v, limit int) float64 {
	if v > limit {
		v = limit
	}
	return float64(v)
}
