package dto

import (
	"fmt"
	"net/http"
)

// ImportCategory is one element of the nested import shape. Workflow records
// stay untyped so validation can name the exact bad field.
type ImportCategory struct {
	CategoryUrl string                   `json:"category_url"`
	FullUrl     string                   `json:"full_url"`
	Name        string                   `json:"name"`
	Workflows   []map[string]interface{} `json:"workflows"`
}

type ImportResponse struct {
	Categories int `json:"categories"`
	Workflows  int `json:"workflows"`
}

// ImportValidationError aborts a whole import batch.
type ImportValidationError struct {
	Field    string
	Workflow string // workflow_name when present
	Index    int    // position in the flattened batch
	Reason   string // empty means missing or empty
}

func (e *ImportValidationError) Error() string {
	name := e.Workflow
	if name == "" {
		name = "unnamed workflow"
	}
	if e.Reason != "" {
		return fmt.Sprintf("Invalid workflow data: %s %s for workflow \"%s\"", e.Field, e.Reason, name)
	}
	return fmt.Sprintf("Invalid workflow data: missing or empty %s for workflow \"%s\"", e.Field, name)
}

func (e *ImportValidationError) StatusCode() int {
	return http.StatusBadRequest
}

func (e *ImportValidationError) ResponseData() any {
	return map[string]interface{}{
		"field":    e.Field,
		"workflow": e.Workflow,
		"index":    e.Index,
	}
}
