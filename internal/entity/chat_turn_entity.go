package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatTurn is one user/assistant exchange. A thread is every turn sharing ThreadId.
type ChatTurn struct {
	Id                uuid.UUID
	ThreadId          string
	UserInput         string
	AssistantResponse string
	AssistantId       string
	CreatedAt         time.Time
}

type AssistantConfig struct {
	Id           uuid.UUID
	AssistantId  string
	Name         string
	Instructions string
	CreatedAt    time.Time
}
