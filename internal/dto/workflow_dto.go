package dto

import (
	"time"

	"github.com/google/uuid"
)

type ListWorkflowsRequest struct {
	Query    string `query:"q"`
	Category string `query:"category"`
}

type WorkflowResponse struct {
	Id                  uuid.UUID `json:"id"`
	WorkflowName        string    `json:"workflow_name"`
	WorkflowUrl         string    `json:"workflow_url"`
	WorkflowDescription string    `json:"workflow_description"`
	CreatorName         string    `json:"creator_name"`
	CreatorAvatar       string    `json:"creator_avatar"`
	IconUrls            []string  `json:"icon_urls"`
	PaidOrFree          string    `json:"paid_or_free"`
	CategoryUrl         string    `json:"category_url,omitempty"`
	CategoryName        string    `json:"category_name,omitempty"`
	CreatedBy           string    `json:"created_by"`
	CreatedAt           time.Time `json:"created_at"`
}

type CategoryResponse struct {
	Id                  uuid.UUID `json:"id"`
	CategoryUrl         string    `json:"category_url"`
	FullUrl             string    `json:"full_url,omitempty"`
	Name                string    `json:"name"`
	TotalCountExtracted int       `json:"total_count_extracted"`
}
