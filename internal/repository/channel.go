package repository

import (
	"concord/internal/model"

	"gorm.io/gorm"
)

type ChannelRepository interface {
	Create(channel *model.Channel) error
	FindByID(id uint) (*model.Channel, error)
	ListForServer(serverID uint) ([]model.Channel, error)
}

type channelRepository struct {
	db *gorm.DB
}

func NewChannelRepository(db *gorm.DB) ChannelRepository {
	return &channelRepository{db: db}
}

func (r *channelRepository) Create(channel *model.Channel) error {
	return r.db.Create(channel).Error
}

func (r *channelRepository) FindByID(id uint) (*model.Channel, error) {
	var channel model.Channel
	if err := r.db.First(&channel, id).Error; err != nil {
		return nil, err
	}
	return &channel, nil
}

func (r *channelRepository) ListForServer(serverID uint) ([]model.Channel, error) {
	var channels []model.Channel
	err := r.db.Where("server_id = ?", serverID).Find(&channels).Error
	if err != nil {
		return nil, err
	}
	return channels, nil
}
