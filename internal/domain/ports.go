package domain

import "context"

// FileDiscoverer lists candidate files for scanning. It never opens files;
// per-file read failures are the scanner's concern.
type FileDiscoverer interface {
	Discover(root string, includes, excludes []string) ([]string, error)
}

// ConfigLoader loads project configuration. A malformed config file must be
// recovered with defaults, not surfaced as an error.
type ConfigLoader interface {
	Load(projectPath string) (Config, error)
}

// AuditRunner runs the external dependency audit for a project. It must
// return whatever findings could be parsed even when the tool exits non-zero.
type AuditRunner interface {
	Run(ctx context.Context, projectPath string) (AuditReport, error)
}

// AuditReport is the normalized output of a dependency audit run.
type AuditReport struct {
	Vulnerabilities []AuditVulnerability `json:"vulnerabilities"`
}

// AuditVulnerability is one vulnerable package as classified by the audit tool.
type AuditVulnerability struct {
	Package  string `json:"package"`
	Severity string `json:"severity"`
	Title    string `json:"title,omitempty"`
	Range    string `json:"range,omitempty"`
}

// GitInfo exposes version-control metadata for a project.
type GitInfo interface {
	IsGitRepo(projectPath string) bool
	CommitHash(projectPath string) (string, error)
}

// ReportHistory persists validation outcomes across runs.
type ReportHistory interface {
	Save(projectPath string, entry ReportEntry) error
	Load(projectPath string) ([]ReportEntry, error)
}
