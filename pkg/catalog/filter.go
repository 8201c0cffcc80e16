// Package catalog holds the pure catalog operations shared by the HTTP API,
// the chat prompt builder and the MCP tools.
package catalog

import (
	"strings"

	"workflow-hub-be/internal/entity"
)

type Query struct {
	Text     string
	Category string // category slug, empty means any
}

// Filter keeps workflows whose name or description contains q.Text
// (case-insensitive) and, when q.Category is set, whose category slug equals
// it. Input order is preserved. The result is never nil.
func Filter(workflows []*entity.Workflow, q Query) []*entity.Workflow {
	text := strings.ToLower(strings.TrimSpace(q.Text))
	category := strings.TrimSpace(q.Category)

	out := make([]*entity.Workflow, 0, len(workflows))
	for _, w := range workflows {
		if category != "" && !strings.EqualFold(w.CategorySlug(), category) {
			continue
		}
		if text != "" &&
			!strings.Contains(strings.ToLower(w.Name), text) &&
			!strings.Contains(strings.ToLower(w.Description), text) {
			continue
		}
		out = append(out, w)
	}
	return out
}
