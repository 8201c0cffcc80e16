package specification

import (
	"strings"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// WorkflowSearchQuery is a case-insensitive substring match on name OR description.
type WorkflowSearchQuery struct {
	Query string
}

func (s WorkflowSearchQuery) Apply(db *gorm.DB) *gorm.DB {
	q := strings.TrimSpace(s.Query)
	if q == "" {
		return db
	}
	pattern := "%" + likeEscaper.Replace(strings.ToLower(q)) + "%"
	return db.Where(
		`(LOWER(workflow.workflow_name) LIKE ? ESCAPE '\' OR LOWER(workflow.workflow_description) LIKE ? ESCAPE '\')`,
		pattern, pattern,
	)
}

// ByCategorySlug keeps workflows whose category slug equals Slug, ignoring case.
type ByCategorySlug struct {
	Slug string
}

func (s ByCategorySlug) Apply(db *gorm.DB) *gorm.DB {
	slug := strings.TrimSpace(s.Slug)
	if slug == "" {
		return db
	}
	return db.Joins("JOIN workflow_categories ON workflow_categories.id = workflow.category_id").
		Where("LOWER(workflow_categories.category_url) = ?", strings.ToLower(slug))
}
