package scanning

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/fatih/camelcase"

	"github.com/praxisdev/praxis/internal/domain"
)

// placeholderTokens suppress matches that are clearly documentation values,
// not real credentials. Comparison is against the lowercased line.
var placeholderTokens = []string{
	"example", "placeholder", "dummy", "sample", "changeme",
	"your-", "your_", "not-a-real", "fake", "redacted", "xxxx",
}

// credentialWords flag identifier assignments that look like secrets even when
// no provider-specific signature matches. Identifier names are split into
// words (camelCase and snake_case both) before the check.
var credentialWords = map[string]bool{
	"key": true, "secret": true, "token": true, "password": true,
	"passwd": true, "credential": true, "credentials": true,
}

var reAssignment = regexp.MustCompile(`([A-Za-z_$][\w$]*)\s*[:=]\s*["']([^"']{12,})["']`)

// SecretScanner scans file lines against the secret signature table.
type SecretScanner struct {
	allowed []string // caller-supplied extra placeholder tokens, lowercased
}

func NewSecretScanner(allowedPatterns []string) *SecretScanner {
	allowed := make([]string, 0, len(allowedPatterns))
	for _, p := range allowedPatterns {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			allowed = append(allowed, p)
		}
	}
	return &SecretScanner{allowed: allowed}
}

// Scan returns hardcoded-secret issues plus the secretsFound and filesScanned
// counters. Comment lines and test files are skipped entirely.
func (s *SecretScanner) Scan(files []string) ([]domain.Issue, int, int) {
	var issues []domain.Issue
	filesScanned := 0

	for _, file := range files {
		if isTestFile(file) {
			continue
		}
		lines, ok := readLines(file)
		if !ok {
			continue
		}
		filesScanned++

		for i, line := range lines {
			if isCommentLine(line) {
				continue
			}
			if s.isAllowListed(line) {
				continue
			}
			if sig, match, found := matchSignature(line); found {
				issues = append(issues, domain.Issue{
					File:       file,
					Line:       i + 1,
					Kind:       "hardcoded-secret",
					Severity:   sig.Severity,
					Rule:       "no-hardcoded-secrets",
					SecretType: sig.ID,
					Message:    fmt.Sprintf("possible %s: %q", sig.Description, truncateSecret(match)),
				})
				continue
			}
			if name, match, found := matchCredentialAssignment(line); found {
				issues = append(issues, domain.Issue{
					File:       file,
					Line:       i + 1,
					Kind:       "hardcoded-secret",
					Severity:   domain.SeverityHigh,
					Rule:       "no-hardcoded-secrets",
					SecretType: "credential-assignment",
					Message:    fmt.Sprintf("identifier %q is assigned a literal that looks like a credential: %q", name, truncateSecret(match)),
				})
			}
		}
	}

	return issues, len(issues), filesScanned
}

func (s *SecretScanner) isAllowListed(line string) bool {
	lower := strings.ToLower(line)
	for _, tok := range placeholderTokens {
		if strings.Contains(lower, tok) {
			return true
		}
	}
	for _, tok := range s.allowed {
		if strings.Contains(lower, tok) {
			return true
		}
	}
	return false
}

func matchSignature(line string) (SecretSignature, string, bool) {
	for _, sig := range secretSignatures {
		if m := sig.Pattern.FindString(line); m != "" {
			return sig, m, true
		}
	}
	return SecretSignature{}, "", false
}

// matchCredentialAssignment splits the assigned identifier into words and
// checks whether any word names a credential.
func matchCredentialAssignment(line string) (name, value string, found bool) {
	m := reAssignment.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	name, value = m[1], m[2]
	for _, part := range strings.Split(name, "_") {
		for _, word := range camelcase.Split(part) {
			if credentialWords[strings.ToLower(word)] {
				return name, value, true
			}
		}
	}
	return "", "", false
}

// truncateSecret keeps a short preview of a match; the full secret never
// appears in a message.
func truncateSecret(s string) string {
	const keep = 8
	if len(s) <= keep {
		return s
	}
	return s[:keep] + "…"
}

var testDirNames = map[string]bool{
	"test": true, "tests": true, "__tests__": true,
}

// isTestFile classifies test files by filename and directory segments. Paths
// under a fixtures directory simulate real source trees, so only the sub-path
// past the fixture project name counts toward the classification.
func isTestFile(path string) bool {
	base := filepath.Base(path)
	if strings.Contains(base, ".test.") || strings.Contains(base, ".spec.") {
		return true
	}

	segs := strings.Split(filepath.ToSlash(path), "/")
	dirs := segs[:len(segs)-1]

	for i, seg := range dirs {
		if seg == "fixtures" {
			if i+2 >= len(dirs) {
				return false
			}
			return hasTestDir(dirs[i+2:])
		}
	}
	return hasTestDir(dirs)
}

func hasTestDir(dirs []string) bool {
	for _, d := range dirs {
		if testDirNames[d] {
			return true
		}
	}
	return false
}
