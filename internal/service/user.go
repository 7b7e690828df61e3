package service

import (
	"errors"

	"concord/internal/model"
	"concord/internal/repository"
)

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) CreateUser(user *model.User) error {
	if user.Username == "" {
		return errors.New("username is required")
	}
	if user.Password == "" {
		return errors.New("password is required")
	}

	return s.userRepo.Create(user)
}

func (s *userService) GetUserByID(id uint) (*model.User, error) {
	if id == 0 {
		return nil, errors.New("invalid user ID")
	}

	return s.userRepo.FindByID(id)
}

func (s *userService) GetUserByUsername(username string) (*model.User, error) {
	if username == "" {
		return nil, errors.New("invalid username")
	}

	return s.userRepo.FindByUsername(username)
}

func (s *userService) UsernameExists(username string) (bool, error) {
	return s.userRepo.UsernameExists(username)
}
