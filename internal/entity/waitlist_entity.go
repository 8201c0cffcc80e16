package entity

import (
	"time"

	"github.com/google/uuid"
)

type WaitlistEntry struct {
	Id              uuid.UUID
	IpAddress       string
	Email           string
	HasApiKey       bool
	EncryptedApiKey string
	Paid            bool
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}
