package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"workflow-hub-be/internal/dto"
	"workflow-hub-be/internal/entity"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCatalog struct {
	lastReq *dto.ListWorkflowsRequest
	err     error
}

func (s *stubCatalog) List(ctx context.Context, req *dto.ListWorkflowsRequest) ([]*dto.WorkflowResponse, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return []*dto.WorkflowResponse{{WorkflowName: "Email Parser", CategoryUrl: "email-automation"}}, nil
}

func (s *stubCatalog) GetByName(ctx context.Context, name string) (*dto.WorkflowResponse, error) {
	return nil, nil
}

func (s *stubCatalog) Categories(ctx context.Context) ([]*dto.CategoryResponse, error) {
	return []*dto.CategoryResponse{{CategoryUrl: "crm", Name: "Crm", TotalCountExtracted: 4}}, nil
}

func (s *stubCatalog) Snapshot(ctx context.Context) ([]*entity.Workflow, error) { return nil, nil }
func (s *stubCatalog) Invalidate()                                              {}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	switch c := res.Content[0].(type) {
	case mcp.TextContent:
		return c.Text
	case *mcp.TextContent:
		return c.Text
	}
	t.Fatalf("unexpected content %T", res.Content[0])
	return ""
}

func callRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func TestSearchWorkflowsTool(t *testing.T) {
	cat := &stubCatalog{}
	s := NewServer(cat, "test")

	res, err := s.handleSearchWorkflows(context.Background(), callRequest("search_workflows", map[string]interface{}{
		"query":    "email",
		"category": "email-automation",
	}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, &dto.ListWorkflowsRequest{Query: "email", Category: "email-automation"}, cat.lastReq)

	var workflows []dto.WorkflowResponse
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &workflows))
	require.Len(t, workflows, 1)
	assert.Equal(t, "Email Parser", workflows[0].WorkflowName)
}

func TestSearchWorkflowsToolWithoutArguments(t *testing.T) {
	cat := &stubCatalog{}
	s := NewServer(cat, "test")

	res, err := s.handleSearchWorkflows(context.Background(), callRequest("search_workflows", nil))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, &dto.ListWorkflowsRequest{}, cat.lastReq)
}

func TestSearchWorkflowsToolError(t *testing.T) {
	s := NewServer(&stubCatalog{err: errors.New("db down")}, "test")

	res, err := s.handleSearchWorkflows(context.Background(), callRequest("search_workflows", nil))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "db down")
}

func TestListCategoriesTool(t *testing.T) {
	s := NewServer(&stubCatalog{}, "test")

	res, err := s.handleListCategories(context.Background(), callRequest("list_categories", nil))
	require.NoError(t, err)

	var categories []dto.CategoryResponse
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &categories))
	require.Len(t, categories, 1)
	assert.Equal(t, 4, categories[0].TotalCountExtracted)
}
