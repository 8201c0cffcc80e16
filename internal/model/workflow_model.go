package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Workflow struct {
	Id                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	WorkflowName        string    `gorm:"type:text;not null;index"`
	WorkflowUrl         string    `gorm:"type:text;not null"`
	WorkflowDescription string    `gorm:"type:text;not null"`
	CreatorName         string    `gorm:"type:text;not null"`
	CreatorAvatar       string    `gorm:"type:text;not null"`
	IconUrls            datatypes.JSONSlice[string]
	PaidOrFree          string            `gorm:"type:varchar(8);not null"`
	CategoryId          *uuid.UUID        `gorm:"type:uuid;index"`
	Category            *WorkflowCategory `gorm:"foreignKey:CategoryId;constraint:OnDelete:SET NULL"`
	CreatedBy           string            `gorm:"type:text;not null;default:system"`
	CreatedAt           time.Time         `gorm:"autoCreateTime"`
}

func (Workflow) TableName() string {
	return "workflow"
}

type WorkflowCategory struct {
	Id                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	CategoryUrl         string    `gorm:"type:text;not null;uniqueIndex"`
	FullUrl             string    `gorm:"type:text"`
	Name                string    `gorm:"type:text"`
	TotalCountExtracted int       `gorm:"not null;default:0"`
	CreatedAt           time.Time `gorm:"autoCreateTime"`
}

func (WorkflowCategory) TableName() string {
	return "workflow_categories"
}
