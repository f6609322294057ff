package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Config holds project-level configuration loaded from .praxis.yaml.
type Config struct {
	Standards    StandardsConfig `yaml:"standards"    json:"standards"`
	Thresholds   Thresholds      `yaml:"thresholds"   json:"thresholds"`
	ExcludePaths []string        `yaml:"exclude_paths" json:"exclude_paths,omitempty"`
}

type StandardsConfig struct {
	Code        CodeConfig        `yaml:"code"        json:"code"`
	Security    SecurityConfig    `yaml:"security"    json:"security"`
	Performance PerformanceConfig `yaml:"performance" json:"performance"`
}

type CodeConfig struct {
	EnforceComments  bool `yaml:"enforce_comments"   json:"enforce_comments"`
	MaxFunctionLines int  `yaml:"max_function_lines" json:"max_function_lines"`
	// TestCoverage is informational; the engine records it but does not enforce it.
	TestCoverage int `yaml:"test_coverage" json:"test_coverage"`
}

type SecurityConfig struct {
	ScanSecrets           bool     `yaml:"scan_secrets"            json:"scan_secrets"`
	VulnerabilityScan     bool     `yaml:"vulnerability_scan"      json:"vulnerability_scan"`
	AllowedSecretPatterns []string `yaml:"allowed_secret_patterns" json:"allowed_secret_patterns,omitempty"`
}

type PerformanceConfig struct {
	BundleSize string `yaml:"bundle_size" json:"bundle_size"`
	LoadTime   string `yaml:"load_time"   json:"load_time"`
}

// Thresholds configures the pass verdict (see Verdict).
type Thresholds struct {
	MinScore int        `yaml:"min_score" json:"min_score"`
	FailOn   []Severity `yaml:"fail_on"   json:"fail_on"`
}

const (
	DefaultMaxBundleBytes = 500000
	DefaultMaxLoadMillis  = 2000
)

// DefaultConfig returns the engine defaults used when no .praxis.yaml exists.
func DefaultConfig() Config {
	return Config{
		Standards: StandardsConfig{
			Code: CodeConfig{
				EnforceComments:  true,
				MaxFunctionLines: 50,
				TestCoverage:     80,
			},
			Security: SecurityConfig{
				ScanSecrets:       true,
				VulnerabilityScan: true,
			},
			Performance: PerformanceConfig{
				BundleSize: "500KB",
				LoadTime:   "2s",
			},
		},
		Thresholds: Thresholds{
			MinScore: 80,
			FailOn:   []Severity{SeverityCritical},
		},
	}
}

// Validate catches typos in user-supplied config before it is used.
func (c Config) Validate() error {
	if c.Standards.Code.MaxFunctionLines < 1 {
		return fmt.Errorf("standards.code.max_function_lines must be positive, got %d", c.Standards.Code.MaxFunctionLines)
	}
	if c.Thresholds.MinScore < 0 || c.Thresholds.MinScore > 100 {
		return fmt.Errorf("thresholds.min_score must be in [0,100], got %d", c.Thresholds.MinScore)
	}
	for _, s := range c.Thresholds.FailOn {
		if _, ok := severityRank[s]; !ok {
			return fmt.Errorf("thresholds.fail_on: unknown severity %q", s)
		}
	}
	return nil
}

// MaxBundleBytes parses the configured bundle size. Unparsable input falls
// back to the documented default rather than failing.
func (p PerformanceConfig) MaxBundleBytes() int64 {
	if n, err := ParseByteSize(p.BundleSize); err == nil {
		return n
	}
	return DefaultMaxBundleBytes
}

// MaxLoadMillis parses the configured load-time budget with the same fallback.
func (p PerformanceConfig) MaxLoadMillis() int64 {
	if n, err := ParseMillis(p.LoadTime); err == nil {
		return n
	}
	return DefaultMaxLoadMillis
}

var byteUnits = []struct {
	suffix string
	factor int64
}{
	{"GB", 1000000000},
	{"MB", 1000000},
	{"KB", 1000},
	{"B", 1},
}

// ParseByteSize parses sizes like "500KB" or "1.5MB" into bytes.
func ParseByteSize(s string) (int64, error) {
	t := strings.ToUpper(strings.TrimSpace(s))
	if t == "" {
		return 0, fmt.Errorf("empty size")
	}
	for _, u := range byteUnits {
		if strings.HasSuffix(t, u.suffix) {
			num := strings.TrimSpace(strings.TrimSuffix(t, u.suffix))
			v, err := strconv.ParseFloat(num, 64)
			if err != nil || v < 0 {
				return 0, fmt.Errorf("invalid size %q", s)
			}
			return int64(v * float64(u.factor)), nil
		}
	}
	v, err := strconv.ParseInt(t, 10, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid size %q", s)
	}
	return v, nil
}

var timeUnits = []struct {
	suffix string
	factor float64
}{
	{"MS", 1},
	{"S", 1000},
	{"M", 60000},
}

// ParseMillis parses durations like "2s" or "1500ms" into milliseconds.
func ParseMillis(s string) (int64, error) {
	t := strings.ToUpper(strings.TrimSpace(s))
	if t == "" {
		return 0, fmt.Errorf("empty duration")
	}
	for _, u := range timeUnits {
		if strings.HasSuffix(t, u.suffix) {
			num := strings.TrimSpace(strings.TrimSuffix(t, u.suffix))
			v, err := strconv.ParseFloat(num, 64)
			if err != nil || v < 0 {
				return 0, fmt.Errorf("invalid duration %q", s)
			}
			return int64(v * u.factor), nil
		}
	}
	v, err := strconv.ParseInt(t, 10, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return v, nil
}
