package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	PricingFree = "Free"
	PricingPaid = "Paid"
)

type Workflow struct {
	Id            uuid.UUID
	Name          string
	Url           string
	Description   string
	CreatorName   string
	CreatorAvatar string
	IconUrls      []string
	PaidOrFree    string
	CategoryId    *uuid.UUID
	Category      *WorkflowCategory
	CreatedBy     string
	CreatedAt     time.Time
}

// CategorySlug is empty for uncategorised workflows.
func (w *Workflow) CategorySlug() string {
	if w.Category == nil {
		return ""
	}
	return w.Category.CategoryUrl
}

type WorkflowCategory struct {
	Id                  uuid.UUID
	CategoryUrl         string
	FullUrl             string
	Name                string
	TotalCountExtracted int
	CreatedAt           time.Time
}
