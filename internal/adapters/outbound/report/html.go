package report

import (
	"html/template"
	"io"

	"github.com/praxisdev/praxis/internal/domain"
)

var htmlTmpl = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Praxis Validation Report</title>
<style>
body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 2rem auto; max-width: 960px; color: #1f2937; }
h1 { border-bottom: 2px solid #d97706; padding-bottom: .3rem; }
.score { font-size: 2.5rem; font-weight: bold; }
.pass { color: #16a34a; } .fail { color: #dc2626; }
table { border-collapse: collapse; width: 100%; margin: 1rem 0; }
th, td { border: 1px solid #e5e7eb; padding: .4rem .6rem; text-align: left; }
th { background: #f9fafb; }
.sev-critical, .sev-high { color: #dc2626; font-weight: bold; }
.sev-medium, .sev-warning { color: #d97706; }
.sev-low, .sev-info { color: #6b7280; }
code { background: #f3f4f6; padding: .1rem .3rem; border-radius: 3px; }
</style>
</head>
<body>
<h1>Praxis Validation Report</h1>
<p class="score">{{.OverallScore}}/100
{{if .Passed}}<span class="pass">PASSED</span>{{else}}<span class="fail">FAILED</span>{{end}}</p>
{{if .CommitHash}}<p>Commit: <code>{{.CommitHash}}</code></p>{{end}}
<p>Generated: {{.Timestamp.Format "2006-01-02 15:04:05"}}</p>

<h2>Standards</h2>
<table>
<tr><th>Standard</th><th>Score</th><th>Issues</th><th>Fixed</th></tr>
{{range .Standards}}<tr><td>{{.Standard}}</td><td>{{.Score}}</td><td>{{len .Issues}}</td><td>{{len .Fixed}}</td></tr>
{{end}}</table>

<h2>Issues ({{len .Issues}})</h2>
{{if .Issues}}
<table>
<tr><th>Severity</th><th>Rule</th><th>Location</th><th>Message</th></tr>
{{range .Issues}}<tr><td class="sev-{{.Severity}}">{{.Severity}}</td><td>{{.Rule}}</td><td><code>{{.File}}{{if gt .Line 1}}:{{.Line}}{{end}}</code></td><td>{{.Message}}</td></tr>
{{end}}</table>
{{else}}<p>No issues found.</p>{{end}}
</body>
</html>
`))

// WriteHTML renders a validation report as a standalone HTML page.
func WriteHTML(w io.Writer, report *domain.ValidationReport) error {
	return htmlTmpl.Execute(w, report)
}
