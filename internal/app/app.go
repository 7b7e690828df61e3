package app

import (
	"log"

	"concord/internal/config"
	"concord/internal/handler"
	"concord/internal/pkg/auth"
	"concord/internal/repository"
	"concord/internal/service"
	"concord/internal/ws"

	"github.com/redis/go-redis/v9"
)

func Run(cfg *config.Config) {
	db, err := repository.NewDB(cfg.DSN())
	if err != nil {
		log.Fatal(err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	tokens := auth.NewTokenManager(cfg.JWTKey)

	userRepo := repository.NewUserRepository(db)
	serverRepo := repository.NewServerRepository(db)
	channelRepo := repository.NewChannelRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	attachmentRepo := repository.NewAttachmentRepository(db)
	presenceRepo := repository.NewPresenceRepository(rdb)

	userService := service.NewUserService(userRepo)
	serverService := service.NewServerService(serverRepo)
	channelService := service.NewChannelService(channelRepo)
	messageService := service.NewMessageService(messageRepo, channelRepo)
	presenceService := service.NewPresenceService(presenceRepo)

	attachmentService, err := service.NewAttachmentService(cfg, attachmentRepo)
	if err != nil {
		log.Fatal(err)
	}

	hub := ws.NewHub()
	defer hub.Shutdown()

	userHandler := handler.NewUserHandler(userService, tokens)
	serverHandler := handler.NewServerHandler(serverService, channelService, tokens)
	messageHandler := handler.NewMessageHandler(messageService, channelService, serverService, tokens)
	attachmentHandler := handler.NewAttachmentHandler(attachmentService, channelService, serverService, tokens)
	realtimeHandler := handler.NewRealtimeHandler(hub, userService, serverService, channelService, messageService, presenceService, tokens)

	server := NewServer(userHandler, serverHandler, messageHandler, attachmentHandler, realtimeHandler)
	server.Run(cfg.ServerPort)
}
