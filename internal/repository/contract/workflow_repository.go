package contract

import (
	"context"

	"workflow-hub-be/internal/entity"
	"workflow-hub-be/internal/repository/specification"
)

type WorkflowRepository interface {
	CreateBulk(ctx context.Context, workflows []*entity.Workflow) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Workflow, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Workflow, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
