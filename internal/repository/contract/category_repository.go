package contract

import (
	"context"

	"workflow-hub-be/internal/entity"
	"workflow-hub-be/internal/repository/specification"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.WorkflowCategory) error
	Update(ctx context.Context, category *entity.WorkflowCategory) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.WorkflowCategory, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.WorkflowCategory, error)
}
