package scanning

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// packageManifest is the subset of package.json the engine needs.
type packageManifest struct {
	Dependencies map[string]string `json:"dependencies"`
}

// declaredDependencies reads the manifest's runtime dependencies, sorted for
// deterministic issue order. A missing or malformed manifest yields none.
func declaredDependencies(projectPath string) []string {
	data, err := os.ReadFile(filepath.Join(projectPath, "package.json"))
	if err != nil {
		return nil
	}
	var m packageManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil
	}
	deps := make([]string, 0, len(m.Dependencies))
	for name := range m.Dependencies {
		deps = append(deps, name)
	}
	sort.Strings(deps)
	return deps
}

var importPatterns = []*regexp.Regexp{
	regexp.MustCompile(`import\s+(?:[\w{},*\s]+\s+from\s+)?["']([^"']+)["']`),
	regexp.MustCompile(`require\s*\(\s*["']([^"']+)["']\s*\)`),
	regexp.MustCompile(`import\s*\(\s*["']([^"']+)["']\s*\)`),
}

// usedPackages collects the root names of every package imported or required
// across the given files. Relative and absolute path imports are excluded.
func usedPackages(files []string) map[string]bool {
	used := make(map[string]bool)
	for _, file := range files {
		lines, ok := readLines(file)
		if !ok {
			continue
		}
		for _, line := range lines {
			for _, re := range importPatterns {
				for _, m := range re.FindAllStringSubmatch(line, -1) {
					if root, ok := packageRoot(m[1]); ok {
						used[root] = true
					}
				}
			}
		}
	}
	return used
}

// packageRoot normalizes an import specifier to its package root name;
// scoped packages keep the @scope/name form.
func packageRoot(spec string) (string, bool) {
	if spec == "" || strings.HasPrefix(spec, ".") || strings.HasPrefix(spec, "/") {
		return "", false
	}
	parts := strings.Split(spec, "/")
	if strings.HasPrefix(spec, "@") {
		if len(parts) < 2 {
			return "", false
		}
		return parts[0] + "/" + parts[1], true
	}
	return parts[0], true
}
