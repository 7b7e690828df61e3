package service

import (
	"errors"
	"fmt"

	"concord/internal/model"
	"concord/internal/repository"
)

type messageService struct {
	messageRepo repository.MessageRepository
	channelRepo repository.ChannelRepository
}

func NewMessageService(messageRepo repository.MessageRepository, channelRepo repository.ChannelRepository) MessageService {
	return &messageService{
		messageRepo: messageRepo,
		channelRepo: channelRepo,
	}
}

// CreateMessage persists a message after checking its channel still exists.
// The author and channel references must be live at creation time; the row
// is immutable afterwards.
func (s *messageService) CreateMessage(message *model.Message) error {
	if message == nil {
		return errors.New("message cannot be nil")
	}

	if message.AuthorID == 0 {
		return errors.New("authorID cannot be zero")
	}

	if message.ChannelID == 0 {
		return errors.New("channelID cannot be zero")
	}

	if _, err := s.channelRepo.FindByID(message.ChannelID); err != nil {
		return fmt.Errorf("channel %d not found: %w", message.ChannelID, err)
	}

	return s.messageRepo.Create(message)
}

func (s *messageService) GetChannelHistory(channelID uint) ([]model.Message, error) {
	if channelID == 0 {
		return nil, errors.New("channelID cannot be zero")
	}

	return s.messageRepo.ListForChannel(channelID)
}
