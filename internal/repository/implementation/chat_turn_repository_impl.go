package implementation

import (
	"context"

	"workflow-hub-be/internal/entity"
	"workflow-hub-be/internal/mapper"
	"workflow-hub-be/internal/model"
	"workflow-hub-be/internal/repository/contract"
	"workflow-hub-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ChatTurnRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewChatTurnRepository(db *gorm.DB) contract.ChatTurnRepository {
	return &ChatTurnRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *ChatTurnRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ChatTurnRepositoryImpl) Create(ctx context.Context, turn *entity.ChatTurn) error {
	m := r.mapper.ChatTurnToModel(turn)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*turn = *r.mapper.ChatTurnToEntity(m)
	return nil
}

func (r *ChatTurnRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatTurn, error) {
	var models []*model.ChatTurn
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.ChatTurn, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ChatTurnToEntity(m)
	}
	return entities, nil
}

func (r *ChatTurnRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ChatTurn{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
