package catalog

import (
	"testing"

	"workflow-hub-be/internal/entity"

	"github.com/stretchr/testify/assert"
)

func fixture() []*entity.Workflow {
	email := &entity.WorkflowCategory{CategoryUrl: "email-automation"}
	crm := &entity.WorkflowCategory{CategoryUrl: "crm"}

	return []*entity.Workflow{
		{Name: "Email Parser", Description: "Extracts fields from inbound mail", Category: email, PaidOrFree: "Free", Url: "https://n8n.io/workflows/email-parser-123"},
		{Name: "Lead Sync", Description: "Pushes new EMAIL leads into HubSpot", Category: crm, PaidOrFree: "Paid", Url: "https://n8n.io/workflows/lead-sync"},
		{Name: "Slack Digest", Description: "Daily summary", PaidOrFree: "Free", Url: "https://n8n.io/workflows/slack-digest"},
	}
}

func names(ws []*entity.Workflow) []string {
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.Name
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name  string
		query Query
		want  []string
	}{
		{"empty query returns all", Query{}, []string{"Email Parser", "Lead Sync", "Slack Digest"}},
		{"matches name or description ignoring case", Query{Text: "email"}, []string{"Email Parser", "Lead Sync"}},
		{"surrounding whitespace ignored", Query{Text: "  digest "}, []string{"Slack Digest"}},
		{"category only", Query{Category: "crm"}, []string{"Lead Sync"}},
		{"category is exact slug, case-insensitive", Query{Category: "EMAIL-AUTOMATION"}, []string{"Email Parser"}},
		{"category substring does not match", Query{Category: "email"}, []string{}},
		{"text and category combine", Query{Text: "email", Category: "crm"}, []string{"Lead Sync"}},
		{"no matches", Query{Text: "blockchain"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(fixture(), tt.query)
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func TestFilterEmptyCatalog(t *testing.T) {
	got := Filter(nil, Query{Text: "x"})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCategoryName(t *testing.T) {
	assert.Equal(t, "Email Automation", CategoryName("email-automation"))
	assert.Equal(t, "Ai Agents", CategoryName("https://n8n.io/workflows/categories/ai_agents/"))
	assert.Equal(t, "", CategoryName(""))
}

func TestFlatten(t *testing.T) {
	text := Flatten(fixture())

	assert.Contains(t, text, "- Name: Email Parser")
	assert.Contains(t, text, "URL: https://n8n.io/workflows/lead-sync")
	assert.Contains(t, text, "Category: Email Automation")
	assert.Contains(t, text, "Pricing: Paid")

	assert.Equal(t, "(the catalog is currently empty)", Flatten(nil))
}
