package model

import "gorm.io/gorm"

// Message rows are immutable once created: nothing in the backend updates
// or deletes them.
type Message struct {
	gorm.Model
	Content   string `json:"content"`
	AuthorID  uint   `json:"author_id"`
	Author    User   `json:"-" gorm:"foreignKey:AuthorID"`
	ChannelID uint   `json:"channel_id"`
}
