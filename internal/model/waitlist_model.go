package model

import (
	"time"

	"github.com/google/uuid"
)

type WaitlistEntry struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	IpAddress string    `gorm:"type:text;not null;index"`
	Email     *string   `gorm:"type:text"`
	Apikey    bool      `gorm:"column:apikey;not null;default:false"`
	ApiKey    *string   `gorm:"column:api_key;type:text"` // secretbox sealed, base64
	Paid      bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (WaitlistEntry) TableName() string {
	return "cody"
}
