package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatTurn struct {
	Id                uuid.UUID `gorm:"type:uuid;primaryKey"`
	ThreadId          string    `gorm:"type:text;not null;index"`
	UserInput         string    `gorm:"type:text;not null"`
	AssistantResponse string    `gorm:"type:text"`
	AssistantId       string    `gorm:"type:text"`
	CreatedAt         time.Time `gorm:"autoCreateTime;index"`
}

func (ChatTurn) TableName() string {
	return "chat_sessions"
}

type AssistantConfig struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey"`
	AssistantId  string    `gorm:"type:text;not null"`
	Name         string    `gorm:"type:text"`
	Instructions string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (AssistantConfig) TableName() string {
	return "assistant_config"
}
