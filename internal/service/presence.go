package service

import (
	"context"
	"log"

	"concord/internal/repository"
)

// presenceService mirrors hub membership into redis so the REST side can
// answer "who is online" without touching the hub. Failures are logged and
// tolerated: presence is advisory, delivery never depends on it.
type presenceService struct {
	presenceRepo repository.PresenceRepository
}

func NewPresenceService(presenceRepo repository.PresenceRepository) PresenceService {
	return &presenceService{presenceRepo: presenceRepo}
}

func (s *presenceService) UserJoined(ctx context.Context, channelID, userID uint) error {
	if channelID == 0 || userID == 0 {
		return nil
	}

	if err := s.presenceRepo.MarkJoined(ctx, channelID, userID); err != nil {
		log.Printf("failed to mark user %d joined in channel %d: %v", userID, channelID, err)
		return err
	}

	return nil
}

func (s *presenceService) UserLeft(ctx context.Context, channelID, userID uint) error {
	if channelID == 0 || userID == 0 {
		return nil
	}

	if _, err := s.presenceRepo.MarkLeft(ctx, channelID, userID); err != nil {
		log.Printf("failed to mark user %d left in channel %d: %v", userID, channelID, err)
		return err
	}

	return nil
}

func (s *presenceService) ActiveUsers(ctx context.Context, channelID uint) ([]uint, error) {
	if channelID == 0 {
		return nil, nil
	}

	return s.presenceRepo.ActiveUsers(ctx, channelID)
}
