package unitofwork

import (
	"context"
	"fmt"

	"workflow-hub-be/internal/repository/contract"
	"workflow-hub-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB // set between Begin and Commit/Rollback
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

// Rollback is a no-op after Commit so it can always be deferred.
func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return nil
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) WorkflowRepository() contract.WorkflowRepository {
	return implementation.NewWorkflowRepository(u.getDB())
}

func (u *UnitOfWorkImpl) CategoryRepository() contract.CategoryRepository {
	return implementation.NewCategoryRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ChatTurnRepository() contract.ChatTurnRepository {
	return implementation.NewChatTurnRepository(u.getDB())
}

func (u *UnitOfWorkImpl) AssistantConfigRepository() contract.AssistantConfigRepository {
	return implementation.NewAssistantConfigRepository(u.getDB())
}

func (u *UnitOfWorkImpl) WaitlistRepository() contract.WaitlistRepository {
	return implementation.NewWaitlistRepository(u.getDB())
}
