package service

import (
	"errors"
	"strings"

	"concord/internal/model"
	"concord/internal/repository"
)

type channelService struct {
	channelRepo repository.ChannelRepository
}

func NewChannelService(channelRepo repository.ChannelRepository) ChannelService {
	return &channelService{channelRepo: channelRepo}
}

func (s *channelService) CreateChannel(channel *model.Channel) error {
	if channel == nil {
		return errors.New("channel cannot be nil")
	}

	if strings.TrimSpace(channel.Name) == "" {
		return errors.New("channel name cannot be empty")
	}

	if channel.ServerID == 0 {
		return errors.New("serverID cannot be zero")
	}

	return s.channelRepo.Create(channel)
}

func (s *channelService) GetChannelByID(id uint) (*model.Channel, error) {
	if id == 0 {
		return nil, errors.New("channelID cannot be zero")
	}

	return s.channelRepo.FindByID(id)
}

func (s *channelService) ListChannelsForServer(serverID uint) ([]model.Channel, error) {
	if serverID == 0 {
		return nil, errors.New("serverID cannot be zero")
	}

	return s.channelRepo.ListForServer(serverID)
}
