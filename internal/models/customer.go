package models

import (
	"time"

	"gorm.io/gorm"
)

type Customer struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	Gender    string         `gorm:"type:varchar(50);not null" json:"gender"`
	Type      string         `gorm:"type:varchar(50);not null;default:'cat'" json:"type"`
	Birthday  *time.Time     `json:"birthday"`
	Breed     *string        `gorm:"type:varchar(255)" json:"breed"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
