package repository

import (
	"concord/internal/model"

	"gorm.io/gorm"
)

type MessageRepository interface {
	Create(message *model.Message) error
	ListForChannel(channelID uint) ([]model.Message, error)
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(message *model.Message) error {
	return r.db.Create(message).Error
}

// ListForChannel preloads the author so history can expose usernames, and
// orders by id so insertion order is stable even for equal timestamps.
func (r *messageRepository) ListForChannel(channelID uint) ([]model.Message, error) {
	var messages []model.Message
	err := r.db.
		Preload("Author").
		Where("channel_id = ?", channelID).
		Order("id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}
