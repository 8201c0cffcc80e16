package service

import (
	"context"
	"errors"
	"testing"

	"workflow-hub-be/internal/dto"
	"workflow-hub-be/internal/model"
	"workflow-hub-be/internal/pkg/serverutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func workflowNames(res []*dto.WorkflowResponse) []string {
	out := make([]string, len(res))
	for i, w := range res {
		out[i] = w.WorkflowName
	}
	return out
}

func TestCatalogList(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t)

	tests := []struct {
		name string
		req  dto.ListWorkflowsRequest
		want []string
	}{
		{"everything", dto.ListWorkflowsRequest{}, []string{"Email Parser", "Inbox Zero", "CRM Sync"}},
		{"name match ignores case", dto.ListWorkflowsRequest{Query: "inbox"}, []string{"Inbox Zero"}},
		{"description match", dto.ListWorkflowsRequest{Query: "HUBSPOT"}, []string{"CRM Sync"}},
		{"category only", dto.ListWorkflowsRequest{Category: "email-automation"}, []string{"Email Parser", "Inbox Zero"}},
		{"query and category", dto.ListWorkflowsRequest{Query: "invoices", Category: "email-automation"}, []string{"Email Parser"}},
		{"query outside category", dto.ListWorkflowsRequest{Query: "invoices", Category: "crm"}, []string{}},
		{"no match", dto.ListWorkflowsRequest{Query: "kubernetes"}, []string{}},
	}

	services := map[string]ICatalogService{
		"cached":   env.catalog,
		"uncached": NewCatalogService(env.uow, nil),
	}

	for mode, svc := range services {
		for _, tt := range tests {
			t.Run(mode+"/"+tt.name, func(t *testing.T) {
				req := tt.req
				res, err := svc.List(context.Background(), &req)
				require.NoError(t, err)
				assert.Equal(t, tt.want, workflowNames(res))
			})
		}
	}
}

func TestCatalogListResponseFields(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t)

	res, err := env.catalog.List(context.Background(), &dto.ListWorkflowsRequest{Query: "CRM Sync"})
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "crm", res[0].CategoryUrl)
	assert.Equal(t, "Crm", res[0].CategoryName)
	assert.Equal(t, "Free", res[0].PaidOrFree)
}

func TestCatalogSnapshotIsInvalidatedByImport(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	before, err := env.catalog.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, before)

	env.seed(t)

	after, err := env.catalog.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, after, 3)
}

func TestCatalogGetByName(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t)

	got, err := env.catalog.GetByName(context.Background(), "Inbox Zero")
	require.NoError(t, err)
	assert.Equal(t, "https://n8n.io/workflows/inbox-zero", got.WorkflowUrl)
	assert.Equal(t, "email-automation", got.CategoryUrl)

	_, err = env.catalog.GetByName(context.Background(), "Nope")
	var appErr *serverutils.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 404, appErr.StatusCode())
}

func TestCatalogCategories(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t)

	res, err := env.catalog.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "Crm", res[0].Name)
	assert.Equal(t, 1, res[0].TotalCountExtracted)
	assert.Equal(t, "Email Automation", res[1].Name)
	assert.Equal(t, 2, res[1].TotalCountExtracted)
}

func TestCatalogWithoutCache(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t)
	uncached := NewCatalogService(env.uow, nil)

	res, err := uncached.List(context.Background(), &dto.ListWorkflowsRequest{})
	require.NoError(t, err)
	assert.Len(t, res, 3)

	require.NoError(t, env.db.Where("1 = 1").Delete(&model.Workflow{}).Error)

	res, err = uncached.List(context.Background(), &dto.ListWorkflowsRequest{})
	require.NoError(t, err)
	assert.Empty(t, res)
}
