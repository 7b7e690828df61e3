package service

import (
	"errors"
	"fmt"
	"strings"

	"concord/internal/model"
	"concord/internal/repository"
)

type serverService struct {
	serverRepo repository.ServerRepository
}

func NewServerService(serverRepo repository.ServerRepository) ServerService {
	return &serverService{serverRepo: serverRepo}
}

func (s *serverService) CreateServer(server *model.Server) error {
	if server == nil {
		return errors.New("server cannot be nil")
	}

	if strings.TrimSpace(server.Name) == "" {
		return errors.New("server name cannot be empty")
	}

	if server.OwnerID == 0 {
		return errors.New("ownerID cannot be zero")
	}

	if err := s.serverRepo.Create(server); err != nil {
		return err
	}

	// The owner is always a member of their own server.
	if err := s.serverRepo.AddMember(server.ID, server.OwnerID); err != nil {
		return fmt.Errorf("failed to add owner as member: %w", err)
	}

	return nil
}

func (s *serverService) GetServerByID(id uint) (*model.Server, error) {
	if id == 0 {
		return nil, errors.New("serverID cannot be zero")
	}

	return s.serverRepo.FindByID(id)
}

func (s *serverService) ListServersForUser(userID uint) ([]model.Server, error) {
	if userID == 0 {
		return nil, errors.New("userID cannot be zero")
	}

	return s.serverRepo.ListForUser(userID)
}

func (s *serverService) AddMember(serverID, userID uint) error {
	if serverID == 0 || userID == 0 {
		return errors.New("serverID and userID cannot be zero")
	}

	return s.serverRepo.AddMember(serverID, userID)
}

func (s *serverService) IsMember(serverID, userID uint) (bool, error) {
	if serverID == 0 || userID == 0 {
		return false, errors.New("serverID and userID cannot be zero")
	}

	return s.serverRepo.IsMember(serverID, userID)
}
