package contract

import (
	"context"

	"workflow-hub-be/internal/entity"
)

type AssistantConfigRepository interface {
	// FindFirst returns nil, nil when no assistant has been created yet.
	FindFirst(ctx context.Context) (*entity.AssistantConfig, error)
	Create(ctx context.Context, cfg *entity.AssistantConfig) error
}
