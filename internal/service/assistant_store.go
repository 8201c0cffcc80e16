package service

import (
	"context"
	"time"

	"workflow-hub-be/internal/entity"
	"workflow-hub-be/internal/repository/unitofwork"
	"workflow-hub-be/pkg/llm/openai"

	"github.com/google/uuid"
)

// assistantStore keeps the remote assistant id in the assistant_config table.
type assistantStore struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewAssistantStore(uowFactory unitofwork.RepositoryFactory) openai.AssistantStore {
	return &assistantStore{uowFactory: uowFactory}
}

func (s *assistantStore) LoadAssistant(ctx context.Context) (*openai.AssistantRecord, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	cfg, err := uow.AssistantConfigRepository().FindFirst(ctx)
	if err != nil || cfg == nil {
		return nil, err
	}
	return &openai.AssistantRecord{
		AssistantID:  cfg.AssistantId,
		Name:         cfg.Name,
		Instructions: cfg.Instructions,
	}, nil
}

func (s *assistantStore) SaveAssistant(ctx context.Context, rec openai.AssistantRecord) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.AssistantConfigRepository().Create(ctx, &entity.AssistantConfig{
		Id:           uuid.New(),
		AssistantId:  rec.AssistantID,
		Name:         rec.Name,
		Instructions: rec.Instructions,
		CreatedAt:    time.Now(),
	})
}
