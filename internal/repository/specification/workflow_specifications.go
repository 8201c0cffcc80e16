package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByCategoryURL matches a category row by its slug.
type ByCategoryURL struct {
	CategoryURL string
}

func (s ByCategoryURL) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category_url = ?", s.CategoryURL)
}

type ByCategoryID struct {
	CategoryID uuid.UUID
}

func (s ByCategoryID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category_id = ?", s.CategoryID)
}

type ByWorkflowName struct {
	Name string
}

func (s ByWorkflowName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("workflow_name = ?", s.Name)
}

// WithCategory eager loads the category association.
type WithCategory struct{}

func (s WithCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Preload("Category")
}
