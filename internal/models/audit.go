package models

import (
	"time"

	"gorm.io/gorm"
)

// Audit holds the timestamps shared by every entity. Embed it by value.
type Audit struct {
	CreatedAt time.Time      `json:"createdAt" gorm:"column:created_at;not null;autoCreateTime"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"column:deleted_at;index"`
}
