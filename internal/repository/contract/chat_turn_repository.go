package contract

import (
	"context"

	"workflow-hub-be/internal/entity"
	"workflow-hub-be/internal/repository/specification"
)

type ChatTurnRepository interface {
	Create(ctx context.Context, turn *entity.ChatTurn) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatTurn, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
