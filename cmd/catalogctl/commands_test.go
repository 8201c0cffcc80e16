package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"workflow-hub-be/internal/model"
	"workflow-hub-be/pkg/database"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `[{"category_url": "email-automation", "workflows": [
	{"workflow_name": "Email Parser", "workflow_url": "https://n8n.io/workflows/email-parser", "workflow_description": "Parses invoices",
	 "creator_name": "Ada", "creator_avatar": "https://cdn/ada.png", "icon_urls": ["https://cdn/gmail.svg"], "paid_or_free": "Free"},
	{"workflow_name": "Inbox Zero", "workflow_url": "https://n8n.io/workflows/inbox-zero", "workflow_description": "Archives newsletters",
	 "creator_name": "Grace", "creator_avatar": "https://cdn/grace.png", "icon_urls": ["https://cdn/gmail.svg"], "paid_or_free": "Paid"}
]}]`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCatalogctl(t *testing.T) {
	color.NoColor = true
	dir := t.TempDir()

	dsn := "sqlite://" + filepath.Join(dir, "catalog.db")
	db, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err)
	database.MustMigrate(db, model.All()...)
	sqlDB, _ := db.DB()
	require.NoError(t, sqlDB.Close())

	file := filepath.Join(dir, "catalog.json")
	require.NoError(t, os.WriteFile(file, []byte(fixture), 0o644))

	out, err := run(t, "--dsn", dsn, "import", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 workflows in 1 categories")

	out, err = run(t, "--dsn", dsn, "categories")
	require.NoError(t, err)
	assert.Contains(t, out, "Email Automation")
	assert.Contains(t, out, fmt.Sprintf("%-30s %d", "email-automation", 2))

	out, err = run(t, "--dsn", dsn, "search", "inbox")
	require.NoError(t, err)
	assert.Contains(t, out, "Inbox Zero [Paid] https://n8n.io/workflows/inbox-zero")
	assert.NotContains(t, out, "Email Parser")

	out, err = run(t, "--dsn", dsn, "search", "--category", "crm")
	require.NoError(t, err)
	assert.Contains(t, out, "No workflows found")
}

func TestCatalogctlImportValidation(t *testing.T) {
	dir := t.TempDir()
	dsn := "sqlite://" + filepath.Join(dir, "catalog.db")
	db, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err)
	database.MustMigrate(db, model.All()...)

	file := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(file, []byte(`[{"workflow_name": "Lonely"}]`), 0o644))

	_, err = run(t, "--dsn", dsn, "import", file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing or empty workflow_url")
}

func TestCatalogctlNeedsDSN(t *testing.T) {
	_, err := run(t, "--dsn", "", "categories")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no database configured")
}
