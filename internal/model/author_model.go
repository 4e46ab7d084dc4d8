package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuthorModel struct {
	ID         string    `gorm:"type:uuid;primary_key" json:"id"`
	ExternalID string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"external_id"`
	Name       string    `gorm:"type:varchar(255)" json:"name"`
	Email      string    `gorm:"type:varchar(255)" json:"email"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (AuthorModel) TableName() string {
	return "authors"
}

func (a *AuthorModel) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}
