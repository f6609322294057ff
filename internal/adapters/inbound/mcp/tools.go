package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	configadapter "github.com/praxisdev/praxis/internal/adapters/outbound/config"
	"github.com/praxisdev/praxis/internal/adapters/outbound/discovery"
	"github.com/praxisdev/praxis/internal/adapters/outbound/npmaudit"
	"github.com/praxisdev/praxis/internal/application"
	"github.com/praxisdev/praxis/internal/domain"
)

// registerTools registers all Praxis MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string) {
	// 1. praxis_validate
	s.AddTool(
		mcplib.NewTool("praxis_validate",
			mcplib.WithDescription("Validate the project against best-practice standards and return the full report as JSON"),
			mcplib.WithString("standards",
				mcplib.Description("Comma-separated standards to run (code, security, performance); defaults to all"),
			),
			mcplib.WithBoolean("auto_fix",
				mcplib.Description("Insert placeholder comments above undocumented functions"),
			),
		),
		handleValidate(projectPath),
	)

	// 2. praxis_scan
	s.AddTool(
		mcplib.NewTool("praxis_scan",
			mcplib.WithDescription("Run a single standard's scanner and return its result as JSON"),
			mcplib.WithString("standard",
				mcplib.Required(),
				mcplib.Description("Standard to run: code, security, or performance"),
			),
		),
		handleScan(projectPath),
	)

	// 3. praxis_config
	s.AddTool(
		mcplib.NewTool("praxis_config",
			mcplib.WithDescription("Return the effective validation configuration for the project"),
		),
		handleConfig(projectPath),
	)
}

func newService() *application.ValidateService {
	return application.NewValidateService(
		discovery.New(),
		configadapter.New(),
		npmaudit.New(),
	)
}

func handleValidate(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		standards := domain.ValidStandards
		args := request.GetArguments()
		if raw, ok := args["standards"].(string); ok && raw != "" {
			standards = splitAndTrim(raw)
		}
		autoFix, _ := args["auto_fix"].(bool)

		result, err := newService().Validate(ctx, projectPath, standards, autoFix)
		if err != nil {
			return errorResult(fmt.Sprintf("validate failed: %v", err)), nil
		}
		return jsonResult(result)
	}
}

func handleScan(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		standard, err := request.RequireString("standard")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		result, err := newService().Validate(ctx, projectPath, []string{standard}, false)
		if err != nil {
			return errorResult(fmt.Sprintf("scan failed: %v", err)), nil
		}
		if len(result.Standards) != 1 {
			return errorResult("scan produced no result"), nil
		}
		return jsonResult(result.Standards[0])
	}
}

func handleConfig(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		cfg, err := configadapter.New().Load(projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("loading config failed: %v", err)), nil
		}
		return jsonResult(cfg)
	}
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
