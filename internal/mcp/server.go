package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"workflow-hub-be/internal/dto"
	"workflow-hub-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server exposes the workflow catalog as MCP tools.
type Server struct {
	mcpServer      *server.MCPServer
	catalogService service.ICatalogService
}

func NewServer(catalogService service.ICatalogService, version string) *Server {
	s := &Server{
		mcpServer: server.NewMCPServer(
			"Workflow Hub",
			version,
			server.WithToolCapabilities(true),
		),
		catalogService: catalogService,
	}

	s.registerTools()
	return s
}

// RegisterRoutes mounts the streamable HTTP transport at /mcp under r.
func (s *Server) RegisterRoutes(r fiber.Router) {
	r.All("/mcp", adaptor.HTTPHandler(server.NewStreamableHTTPServer(s.mcpServer)))
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool(
			"search_workflows",
			mcp.WithDescription("Search the workflow catalog by name or description, optionally within one category"),
			mcp.WithString("query", mcp.Description("Case-insensitive text matched against workflow names and descriptions")),
			mcp.WithString("category", mcp.Description("Category slug, e.g. email-automation")),
		),
		s.handleSearchWorkflows,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"list_categories",
			mcp.WithDescription("List workflow categories with their workflow counts"),
		),
		s.handleListCategories,
	)
}

func (s *Server) handleSearchWorkflows(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})

	query, _ := args["query"].(string)
	category, _ := args["category"].(string)

	workflows, err := s.catalogService.List(ctx, &dto.ListWorkflowsRequest{Query: query, Category: category})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to search workflows: %v", err)), nil
	}

	jsonBytes, _ := json.Marshal(workflows)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleListCategories(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	categories, err := s.catalogService.Categories(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list categories: %v", err)), nil
	}

	jsonBytes, _ := json.Marshal(categories)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}
