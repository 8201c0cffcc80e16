package unitofwork

import (
	"context"

	"workflow-hub-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	WorkflowRepository() contract.WorkflowRepository
	CategoryRepository() contract.CategoryRepository
	ChatTurnRepository() contract.ChatTurnRepository
	AssistantConfigRepository() contract.AssistantConfigRepository
	WaitlistRepository() contract.WaitlistRepository
}
