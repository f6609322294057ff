package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/praxisdev/praxis/internal/domain"
)

const fileName = ".praxis.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .praxis.yaml.
type YAMLLoader struct {
	// Warnings receives recovered config problems; defaults to os.Stderr.
	Warnings io.Writer
}

func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .praxis.yaml from projectPath. A missing file yields defaults.
// A malformed or invalid file also yields defaults, with a warning: config
// problems are recoverable, never fatal.
func (l *YAMLLoader) Load(projectPath string) (domain.Config, error) {
	data, err := os.ReadFile(filepath.Join(projectPath, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		l.warnf("reading %s: %v; using defaults", fileName, err)
		return domain.DefaultConfig(), nil
	}

	// Unmarshal over the defaults so absent keys keep their default values.
	cfg := domain.DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		l.warnf("parsing %s: %v; using defaults", fileName, err)
		return domain.DefaultConfig(), nil
	}

	if err := cfg.Validate(); err != nil {
		l.warnf("invalid %s: %v; using defaults", fileName, err)
		return domain.DefaultConfig(), nil
	}

	return cfg, nil
}

func (l *YAMLLoader) warnf(format string, args ...any) {
	w := l.Warnings
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintf(w, "warning: "+format+"\n", args...)
}
