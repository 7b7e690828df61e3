package service

import (
	"context"
	"io"
	"time"

	"concord/internal/model"
)

type UserService interface {
	CreateUser(user *model.User) error
	GetUserByID(id uint) (*model.User, error)
	GetUserByUsername(username string) (*model.User, error)
	UsernameExists(username string) (bool, error)
}

type ServerService interface {
	// CreateServer persists the server and makes the owner its first member.
	CreateServer(server *model.Server) error
	GetServerByID(id uint) (*model.Server, error)
	ListServersForUser(userID uint) ([]model.Server, error)
	AddMember(serverID, userID uint) error
	IsMember(serverID, userID uint) (bool, error)
}

type ChannelService interface {
	CreateChannel(channel *model.Channel) error
	GetChannelByID(id uint) (*model.Channel, error)
	ListChannelsForServer(serverID uint) ([]model.Channel, error)
}

type MessageService interface {
	CreateMessage(message *model.Message) error
	GetChannelHistory(channelID uint) ([]model.Message, error)
}

type PresenceService interface {
	UserJoined(ctx context.Context, channelID, userID uint) error
	UserLeft(ctx context.Context, channelID, userID uint) error
	ActiveUsers(ctx context.Context, channelID uint) ([]uint, error)
}

type AttachmentService interface {
	Upload(ctx context.Context, file io.Reader, filename, contentType string, size int64, uploaderID, channelID uint) (*model.Attachment, error)
	DownloadURL(ctx context.Context, id string, expires time.Duration) (string, error)
}
