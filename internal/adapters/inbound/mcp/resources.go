package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	configadapter "github.com/praxisdev/praxis/internal/adapters/outbound/config"
	"github.com/praxisdev/praxis/internal/adapters/outbound/history"
	"github.com/praxisdev/praxis/internal/domain"
)

// registerResources registers all Praxis MCP resources on the given server.
func registerResources(s *server.MCPServer, projectPath string) {
	// 1. praxis://report - latest full validation report
	s.AddResource(
		mcplib.NewResource(
			"praxis://report",
			"Validation Report",
			mcplib.WithResourceDescription("Full best-practices validation report for the project"),
			mcplib.WithMIMEType("application/json"),
		),
		handleReportResource(projectPath),
	)

	// 2. praxis://history - past validation outcomes
	s.AddResource(
		mcplib.NewResource(
			"praxis://history",
			"Validation History",
			mcplib.WithResourceDescription("Past validation scores and verdicts recorded for the project"),
			mcplib.WithMIMEType("application/json"),
		),
		handleHistoryResource(projectPath),
	)

	// 3. praxis://config - effective configuration
	s.AddResource(
		mcplib.NewResource(
			"praxis://config",
			"Configuration",
			mcplib.WithResourceDescription("Effective validation configuration including defaults"),
			mcplib.WithMIMEType("application/json"),
		),
		handleConfigResource(projectPath),
	)
}

func handleReportResource(projectPath string) server.ResourceHandlerFunc {
	return func(ctx context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		result, err := newService().Validate(ctx, projectPath, domain.ValidStandards, false)
		if err != nil {
			return nil, fmt.Errorf("validation failed: %w", err)
		}
		return jsonContents("praxis://report", result)
	}
}

func handleHistoryResource(projectPath string) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		entries, err := history.New().Load(projectPath)
		if err != nil {
			return nil, fmt.Errorf("loading history: %w", err)
		}
		return jsonContents("praxis://history", entries)
	}
}

func handleConfigResource(projectPath string) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		cfg, err := configadapter.New().Load(projectPath)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		return jsonContents("praxis://config", cfg)
	}
}

func jsonContents(uri string, v interface{}) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling resource: %w", err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
