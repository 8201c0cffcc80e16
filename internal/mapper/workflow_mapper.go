package mapper

import (
	"workflow-hub-be/internal/entity"
	"workflow-hub-be/internal/model"
)

type WorkflowMapper struct{}

func NewWorkflowMapper() *WorkflowMapper {
	return &WorkflowMapper{}
}

func (m *WorkflowMapper) WorkflowToEntity(w *model.Workflow) *entity.Workflow {
	if w == nil {
		return nil
	}

	iconUrls := make([]string, len(w.IconUrls))
	copy(iconUrls, w.IconUrls)

	return &entity.Workflow{
		Id:            w.Id,
		Name:          w.WorkflowName,
		Url:           w.WorkflowUrl,
		Description:   w.WorkflowDescription,
		CreatorName:   w.CreatorName,
		CreatorAvatar: w.CreatorAvatar,
		IconUrls:      iconUrls,
		PaidOrFree:    w.PaidOrFree,
		CategoryId:    w.CategoryId,
		Category:      m.CategoryToEntity(w.Category),
		CreatedBy:     w.CreatedBy,
		CreatedAt:     w.CreatedAt,
	}
}

// WorkflowToModel leaves the Category association unset so GORM never upserts it.
func (m *WorkflowMapper) WorkflowToModel(w *entity.Workflow) *model.Workflow {
	if w == nil {
		return nil
	}

	return &model.Workflow{
		Id:                  w.Id,
		WorkflowName:        w.Name,
		WorkflowUrl:         w.Url,
		WorkflowDescription: w.Description,
		CreatorName:         w.CreatorName,
		CreatorAvatar:       w.CreatorAvatar,
		IconUrls:            w.IconUrls,
		PaidOrFree:          w.PaidOrFree,
		CategoryId:          w.CategoryId,
		CreatedBy:           w.CreatedBy,
		CreatedAt:           w.CreatedAt,
	}
}

func (m *WorkflowMapper) WorkflowsToEntities(models []*model.Workflow) []*entity.Workflow {
	out := make([]*entity.Workflow, len(models))
	for i, w := range models {
		out[i] = m.WorkflowToEntity(w)
	}
	return out
}

func (m *WorkflowMapper) CategoryToEntity(c *model.WorkflowCategory) *entity.WorkflowCategory {
	if c == nil {
		return nil
	}

	return &entity.WorkflowCategory{
		Id:                  c.Id,
		CategoryUrl:         c.CategoryUrl,
		FullUrl:             c.FullUrl,
		Name:                c.Name,
		TotalCountExtracted: c.TotalCountExtracted,
		CreatedAt:           c.CreatedAt,
	}
}

func (m *WorkflowMapper) CategoryToModel(c *entity.WorkflowCategory) *model.WorkflowCategory {
	if c == nil {
		return nil
	}

	return &model.WorkflowCategory{
		Id:                  c.Id,
		CategoryUrl:         c.CategoryUrl,
		FullUrl:             c.FullUrl,
		Name:                c.Name,
		TotalCountExtracted: c.TotalCountExtracted,
		CreatedAt:           c.CreatedAt,
	}
}
