package scanning

import (
	"regexp"

	"github.com/praxisdev/praxis/internal/domain"
)

// SecretSignature is a named pattern that detects a likely hardcoded
// credential. Matching is per line; case sensitivity is baked into each
// pattern.
type SecretSignature struct {
	ID          string
	Description string
	Pattern     *regexp.Regexp
	Severity    domain.Severity
}

// secretSignatures is the ordered signature table. Narrow, provider-specific
// patterns come first so the generic assignment patterns only catch what the
// specific ones missed.
var secretSignatures = []SecretSignature{
	{
		ID:          "aws-access-key",
		Description: "AWS access key ID",
		Pattern:     regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
		Severity:    domain.SeverityHigh,
	},
	{
		ID:          "aws-secret-key",
		Description: "AWS secret access key",
		Pattern:     regexp.MustCompile(`(?i)aws_?secret_?(?:access_?)?key["'\s:=]+[A-Za-z0-9/+=]{40}`),
		Severity:    domain.SeverityHigh,
	},
	{
		ID:          "github-token",
		Description: "GitHub personal access token",
		Pattern:     regexp.MustCompile(`gh[pousr]_[A-Za-z0-9]{36,}`),
		Severity:    domain.SeverityHigh,
	},
	{
		ID:          "slack-token",
		Description: "Slack bot or user token",
		Pattern:     regexp.MustCompile(`xox[baprs]-[A-Za-z0-9-]{10,}`),
		Severity:    domain.SeverityHigh,
	},
	{
		ID:          "stripe-secret-key",
		Description: "Stripe live secret key",
		Pattern:     regexp.MustCompile(`sk_live_[0-9a-zA-Z]{24,}`),
		Severity:    domain.SeverityHigh,
	},
	{
		ID:          "google-api-key",
		Description: "Google API key",
		Pattern:     regexp.MustCompile(`AIza[0-9A-Za-z_-]{35}`),
		Severity:    domain.SeverityHigh,
	},
	{
		ID:          "sendgrid-api-key",
		Description: "SendGrid API key",
		Pattern:     regexp.MustCompile(`SG\.[A-Za-z0-9_-]{22}\.[A-Za-z0-9_-]{43}`),
		Severity:    domain.SeverityHigh,
	},
	{
		ID:          "twilio-api-key",
		Description: "Twilio API key SID",
		Pattern:     regexp.MustCompile(`SK[0-9a-fA-F]{32}`),
		Severity:    domain.SeverityHigh,
	},
	{
		ID:          "private-key-block",
		Description: "PEM private key header",
		Pattern:     regexp.MustCompile(`-----BEGIN (?:RSA |EC |DSA |OPENSSH |PGP )?PRIVATE KEY-----`),
		Severity:    domain.SeverityHigh,
	},
	{
		ID:          "jwt-token",
		Description: "JSON Web Token",
		Pattern:     regexp.MustCompile(`eyJ[A-Za-z0-9_-]{10,}\.eyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}`),
		Severity:    domain.SeverityHigh,
	},
	{
		ID:          "npm-token",
		Description: "npm access token",
		Pattern:     regexp.MustCompile(`npm_[A-Za-z0-9]{36}`),
		Severity:    domain.SeverityHigh,
	},
	{
		ID:          "connection-string-credentials",
		Description: "database URI with inline credentials",
		Pattern:     regexp.MustCompile(`(?i)(?:postgres|postgresql|mysql|mongodb(?:\+srv)?|redis|amqp)://[^\s:/]+:[^\s@/]+@`),
		Severity:    domain.SeverityHigh,
	},
	{
		ID:          "password-assignment",
		Description: "password assigned to a string literal",
		Pattern:     regexp.MustCompile(`(?i)(?:password|passwd|pwd)\s*[:=]\s*["'][^"']{6,}["']`),
		Severity:    domain.SeverityHigh,
	},
	{
		ID:          "generic-api-key",
		Description: "API key or secret assigned to a string literal",
		Pattern:     regexp.MustCompile(`(?i)(?:api[_-]?key|apikey|secret|token)["']?\s*[:=]\s*["'][A-Za-z0-9_\-/+=]{16,}["']`),
		Severity:    domain.SeverityHigh,
	},
}

// Signatures returns the signature table. Callers must treat it as read-only.
func Signatures() []SecretSignature {
	return secretSignatures
}
