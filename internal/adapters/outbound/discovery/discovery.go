package discovery

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

// Directories that never contain scannable project sources.
var skipDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	".git":         true,
	"dist":         true,
	"build":        true,
	"out":          true,
	"coverage":     true,
	"__pycache__":  true,
	".next":        true,
}

// Minified and generated artifacts are never scanned.
var skipSuffixes = []string{".min.js", ".min.css", ".map"}

// GlobDiscoverer implements domain.FileDiscoverer by walking the filesystem
// and matching relative paths against doublestar globs.
type GlobDiscoverer struct{}

func New() *GlobDiscoverer {
	return &GlobDiscoverer{}
}

// Discover returns the sorted absolute paths under root matching the include
// globs and not matching the exclude globs. Each path appears at most once.
// The discoverer never opens files; it only lists them.
func (d *GlobDiscoverer) Discover(root string, includes, excludes []string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", absRoot)
	}

	var files []string
	err = filepath.WalkDir(absRoot, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if path == absRoot {
				return err
			}
			return nil // unreadable subtree: skip, not fatal
		}
		if entry.IsDir() {
			if skipDirs[entry.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		rel, _ := filepath.Rel(absRoot, path)
		rel = filepath.ToSlash(rel)

		if hasSkippedSuffix(rel) {
			return nil
		}
		if !matchAny(rel, includes) {
			return nil
		}
		if matchAny(rel, excludes) || underExcludedDir(rel, excludes) {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

func hasSkippedSuffix(rel string) bool {
	lower := strings.ToLower(rel)
	for _, s := range skipSuffixes {
		if strings.HasSuffix(lower, s) {
			return true
		}
	}
	return false
}

// underExcludedDir lets plain directory names in the exclude list (the common
// form in exclude_paths config) match everything beneath them.
func underExcludedDir(rel string, excludes []string) bool {
	for _, e := range excludes {
		e = strings.TrimSuffix(strings.TrimSpace(e), "/")
		if e == "" || strings.ContainsAny(e, "*?[") {
			continue
		}
		if rel == e || strings.HasPrefix(rel, e+"/") {
			return true
		}
	}
	return false
}

// matchAny tries each glob against the full relative path and, for patterns
// without a directory component, against the base name.
func matchAny(rel string, globs []string) bool {
	base := filepath.Base(rel)
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, rel); ok {
			return true
		}
		if !strings.Contains(g, "/") {
			if ok, _ := doublestar.Match(g, base); ok {
				return true
			}
		}
	}
	return false
}
