package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praxisdev/praxis/internal/domain"
)

func TestDefaultConfig(t *testing.T) {
	cfg := domain.DefaultConfig()

	assert.True(t, cfg.Standards.Code.EnforceComments)
	assert.Equal(t, 50, cfg.Standards.Code.MaxFunctionLines)
	assert.True(t, cfg.Standards.Security.ScanSecrets)
	assert.True(t, cfg.Standards.Security.VulnerabilityScan)
	assert.Equal(t, "500KB", cfg.Standards.Performance.BundleSize)
	assert.Equal(t, "2s", cfg.Standards.Performance.LoadTime)
	assert.Equal(t, 80, cfg.Thresholds.MinScore)
	assert.Equal(t, []domain.Severity{domain.SeverityCritical}, cfg.Thresholds.FailOn)

	require.NoError(t, cfg.Validate())
}

func TestConfigValidate_Rejects(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Standards.Code.MaxFunctionLines = 0
	assert.Error(t, cfg.Validate())

	cfg = domain.DefaultConfig()
	cfg.Thresholds.MinScore = 101
	assert.Error(t, cfg.Validate())

	cfg = domain.DefaultConfig()
	cfg.Thresholds.FailOn = []domain.Severity{"severe"}
	assert.Error(t, cfg.Validate())
}

func TestParseByteSize(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"500KB", 500000},
		{"1.5MB", 1500000},
		{"2GB", 2000000000},
		{"100B", 100},
		{"800", 800},
		{"12kb", 12000},
		{" 250 KB ", 250000},
	}
	for _, tt := range tests {
		got, err := domain.ParseByteSize(tt.in)
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestParseByteSize_Invalid(t *testing.T) {
	for _, in := range []string{"", "abc", "-5KB", "KB", "1.2.3MB"} {
		_, err := domain.ParseByteSize(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestParseMillis(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"2s", 2000},
		{"1500ms", 1500},
		{"1m", 60000},
		{"0.5s", 500},
		{"250", 250},
	}
	for _, tt := range tests {
		got, err := domain.ParseMillis(tt.in)
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestParseMillis_Invalid(t *testing.T) {
	for _, in := range []string{"", "fast", "-2s", "s"} {
		_, err := domain.ParseMillis(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestPerformanceConfig_FallsBackOnUnparsableValues(t *testing.T) {
	p := domain.PerformanceConfig{BundleSize: "huge", LoadTime: "instant"}
	assert.Equal(t, int64(domain.DefaultMaxBundleBytes), p.MaxBundleBytes())
	assert.Equal(t, int64(domain.DefaultMaxLoadMillis), p.MaxLoadMillis())

	p = domain.PerformanceConfig{BundleSize: "1MB", LoadTime: "3s"}
	assert.Equal(t, int64(1000000), p.MaxBundleBytes())
	assert.Equal(t, int64(3000), p.MaxLoadMillis())
}
