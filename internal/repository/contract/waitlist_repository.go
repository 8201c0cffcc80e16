package contract

import (
	"context"

	"workflow-hub-be/internal/entity"
	"workflow-hub-be/internal/repository/specification"
)

type WaitlistRepository interface {
	Create(ctx context.Context, entry *entity.WaitlistEntry) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.WaitlistEntry, error)
}
