package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	configadapter "github.com/praxisdev/praxis/internal/adapters/outbound/config"
	"github.com/praxisdev/praxis/internal/adapters/outbound/discovery"
	"github.com/praxisdev/praxis/internal/adapters/outbound/gitinfo"
	"github.com/praxisdev/praxis/internal/adapters/outbound/history"
	"github.com/praxisdev/praxis/internal/adapters/outbound/npmaudit"
	"github.com/praxisdev/praxis/internal/adapters/outbound/report"
	"github.com/praxisdev/praxis/internal/application"
	"github.com/praxisdev/praxis/internal/domain"
)

func newValidateCmd() *cobra.Command {
	var (
		standardsFlag string
		autoFix       bool
		jsonOutput    bool
		outputPath    string
		outputFormat  string
		minScore      int
		badge         bool
		showHistory   bool
	)

	cmd := &cobra.Command{
		Use:   "validate [path]",
		Short: "Validate a project against best-practice standards",
		Long:  "Scan a project for code quality, security, and performance issues and produce a scored pass/fail report.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			hist := history.New()
			if showHistory {
				entries, err := hist.Load(absPath)
				if err != nil {
					return fmt.Errorf("loading history: %w", err)
				}
				fmt.Fprint(cmd.OutOrStdout(), report.RenderHistory(entries))
				return nil
			}

			svc := application.NewValidateService(
				discovery.New(),
				configadapter.New(),
				npmaudit.New(),
			)

			result, err := svc.Validate(cmd.Context(), absPath, parseStandards(standardsFlag), autoFix)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			// Attach git commit hash if available
			gi := gitinfo.New()
			if hash, err := gi.CommitHash(absPath); err == nil {
				result.CommitHash = hash
			}

			// Save to history
			entry := domain.ReportEntry{
				Timestamp:  time.Now().Format(time.RFC3339),
				CommitHash: result.CommitHash,
				Overall:    result.OverallScore,
				Passed:     result.Passed,
			}
			_ = hist.Save(absPath, entry) // best-effort

			if outputPath != "" {
				if err := writeReportFile(outputPath, outputFormat, result); err != nil {
					return fmt.Errorf("writing report: %w", err)
				}
			}

			switch {
			case jsonOutput:
				if err := report.WriteJSON(cmd.OutOrStdout(), result); err != nil {
					return err
				}
			case badge:
				color := domain.BadgeColor(result.OverallScore)
				fmt.Fprintf(cmd.OutOrStdout(), "https://img.shields.io/badge/praxis-%d%%2F100-%s\n", result.OverallScore, color)
			default:
				fmt.Fprint(cmd.OutOrStdout(), report.Render(result))
			}

			if minScore > 0 && result.OverallScore < minScore {
				return fmt.Errorf("score %d is below minimum %d", result.OverallScore, minScore)
			}
			if !result.Passed {
				return fmt.Errorf("validation did not pass (score %d)", result.OverallScore)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&standardsFlag, "standards", "code,security,performance", "Comma-separated standards to run")
	cmd.Flags().BoolVar(&autoFix, "auto-fix", false, "Insert placeholder comments above undocumented functions")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output report as JSON")
	cmd.Flags().StringVar(&outputPath, "output", "", "Write the report to a file")
	cmd.Flags().StringVar(&outputFormat, "format", "markdown", "Report file format: markdown, html, or json")
	cmd.Flags().IntVar(&minScore, "min", 0, "Fail when the overall score is below this value")
	cmd.Flags().BoolVar(&badge, "badge", false, "Output shields.io badge URL")
	cmd.Flags().BoolVar(&showHistory, "history", false, "Show validation history")

	return cmd
}

func parseStandards(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func writeReportFile(path, format string, result *domain.ValidationReport) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch format {
	case "markdown", "md":
		return report.WriteMarkdown(f, result)
	case "html":
		return report.WriteHTML(f, result)
	case "json":
		return report.WriteJSON(f, result)
	default:
		return fmt.Errorf("unknown report format %q (valid: markdown, html, json)", format)
	}
}
