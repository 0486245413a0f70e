package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostListModel marks that a user's post list exists, even while empty.
type PostListModel struct {
	UserID    string    `gorm:"type:varchar(128);primary_key"`
	CreatedAt time.Time `gorm:"not null"`
}

func (PostListModel) TableName() string {
	return "post_lists"
}

type PostRecordModel struct {
	ID         string    `gorm:"type:uuid;primary_key"`
	UserID     string    `gorm:"type:varchar(128);not null;uniqueIndex:idx_post_records_user_number"`
	PostNumber int       `gorm:"not null;uniqueIndex:idx_post_records_user_number"`
	Title      string    `gorm:"type:text;not null"`
	Content    string    `gorm:"type:text;not null"`
	Media      *string   `gorm:"type:text"`
	Advert     string    `gorm:"type:text;not null;default:''"`
	CreatedAt  time.Time `gorm:"not null"`
}

func (PostRecordModel) TableName() string {
	return "post_records"
}

func (p *PostRecordModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
