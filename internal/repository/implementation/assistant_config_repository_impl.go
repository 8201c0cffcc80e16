package implementation

import (
	"context"
	"errors"

	"workflow-hub-be/internal/entity"
	"workflow-hub-be/internal/mapper"
	"workflow-hub-be/internal/model"
	"workflow-hub-be/internal/repository/contract"

	"gorm.io/gorm"
)

type AssistantConfigRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewAssistantConfigRepository(db *gorm.DB) contract.AssistantConfigRepository {
	return &AssistantConfigRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *AssistantConfigRepositoryImpl) FindFirst(ctx context.Context) (*entity.AssistantConfig, error) {
	var m model.AssistantConfig
	if err := r.db.WithContext(ctx).Order("created_at ASC").First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.AssistantConfigToEntity(&m), nil
}

func (r *AssistantConfigRepositoryImpl) Create(ctx context.Context, cfg *entity.AssistantConfig) error {
	m := r.mapper.AssistantConfigToModel(cfg)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*cfg = *r.mapper.AssistantConfigToEntity(m)
	return nil
}
