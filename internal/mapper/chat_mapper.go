package mapper

import (
	"workflow-hub-be/internal/entity"
	"workflow-hub-be/internal/model"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) ChatTurnToEntity(t *model.ChatTurn) *entity.ChatTurn {
	if t == nil {
		return nil
	}

	return &entity.ChatTurn{
		Id:                t.Id,
		ThreadId:          t.ThreadId,
		UserInput:         t.UserInput,
		AssistantResponse: t.AssistantResponse,
		AssistantId:       t.AssistantId,
		CreatedAt:         t.CreatedAt,
	}
}

func (m *ChatMapper) ChatTurnToModel(t *entity.ChatTurn) *model.ChatTurn {
	if t == nil {
		return nil
	}

	return &model.ChatTurn{
		Id:                t.Id,
		ThreadId:          t.ThreadId,
		UserInput:         t.UserInput,
		AssistantResponse: t.AssistantResponse,
		AssistantId:       t.AssistantId,
		CreatedAt:         t.CreatedAt,
	}
}

func (m *ChatMapper) AssistantConfigToEntity(c *model.AssistantConfig) *entity.AssistantConfig {
	if c == nil {
		return nil
	}

	return &entity.AssistantConfig{
		Id:           c.Id,
		AssistantId:  c.AssistantId,
		Name:         c.Name,
		Instructions: c.Instructions,
		CreatedAt:    c.CreatedAt,
	}
}

func (m *ChatMapper) AssistantConfigToModel(c *entity.AssistantConfig) *model.AssistantConfig {
	if c == nil {
		return nil
	}

	return &model.AssistantConfig{
		Id:           c.Id,
		AssistantId:  c.AssistantId,
		Name:         c.Name,
		Instructions: c.Instructions,
		CreatedAt:    c.CreatedAt,
	}
}
