package repository

import (
	"concord/internal/model"

	"gorm.io/gorm"
)

type ServerRepository interface {
	Create(server *model.Server) error
	FindByID(id uint) (*model.Server, error)
	ListForUser(userID uint) ([]model.Server, error)
	AddMember(serverID, userID uint) error
	IsMember(serverID, userID uint) (bool, error)
}

type serverRepository struct {
	db *gorm.DB
}

func NewServerRepository(db *gorm.DB) ServerRepository {
	return &serverRepository{db: db}
}

func (r *serverRepository) Create(server *model.Server) error {
	return r.db.Create(server).Error
}

func (r *serverRepository) FindByID(id uint) (*model.Server, error) {
	var server model.Server
	if err := r.db.First(&server, id).Error; err != nil {
		return nil, err
	}
	return &server, nil
}

// ListForUser returns only the servers the user is a member of, mirroring
// the membership filter on the server list endpoint.
func (r *serverRepository) ListForUser(userID uint) ([]model.Server, error) {
	var servers []model.Server
	err := r.db.
		Joins("JOIN server_members ON server_members.server_id = servers.id").
		Where("server_members.user_id = ?", userID).
		Find(&servers).Error
	if err != nil {
		return nil, err
	}
	return servers, nil
}

func (r *serverRepository) AddMember(serverID, userID uint) error {
	return r.db.Exec(`
        INSERT INTO server_members (server_id, user_id)
        VALUES (?, ?)
        ON CONFLICT DO NOTHING
    `, serverID, userID).Error
}

func (r *serverRepository) IsMember(serverID, userID uint) (bool, error) {
	var count int64
	err := r.db.Table("server_members").
		Where("server_id = ? AND user_id = ?", serverID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
