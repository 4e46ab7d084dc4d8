package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostModel struct {
	ID        string      `gorm:"type:uuid;primary_key" json:"id"`
	Title     string      `gorm:"type:varchar(255);not null" json:"title"`
	Content   string      `gorm:"type:text;not null" json:"content"`
	ImageURL  *string     `gorm:"type:varchar(500)" json:"image_url,omitempty"`
	VideoURL  *string     `gorm:"type:varchar(500)" json:"video_url,omitempty"`
	Published bool        `gorm:"not null;default:false;index" json:"published"`
	AuthorID  string      `gorm:"type:uuid;not null;index" json:"author_id"`
	Author    AuthorModel `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func (PostModel) TableName() string {
	return "posts"
}

func (p *PostModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
