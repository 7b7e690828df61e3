package handler

import (
	"context"
	"log"
	"net/http"

	"concord/internal/model"
	"concord/internal/pkg/auth"
	"concord/internal/pkg/httputils"
	"concord/internal/service"
	"concord/internal/ws"

	"github.com/gorilla/mux"
)

// RealtimeHandler accepts websocket sessions scoped to one channel and runs
// the persist-then-broadcast loop for each of them.
type RealtimeHandler struct {
	hub             *ws.Hub
	userService     service.UserService
	serverService   service.ServerService
	channelService  service.ChannelService
	messageService  service.MessageService
	presenceService service.PresenceService
	tokens          *auth.TokenManager
}

func NewRealtimeHandler(
	hub *ws.Hub,
	userService service.UserService,
	serverService service.ServerService,
	channelService service.ChannelService,
	messageService service.MessageService,
	presenceService service.PresenceService,
	tokens *auth.TokenManager,
) *RealtimeHandler {
	return &RealtimeHandler{
		hub:             hub,
		userService:     userService,
		serverService:   serverService,
		channelService:  channelService,
		messageService:  messageService,
		presenceService: presenceService,
		tokens:          tokens,
	}
}

func (h *RealtimeHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/realtime/chat/{channel_id}/", h.serveChannel)
	router.HandleFunc("/realtime/chat/{channel_id}", h.serveChannel)
}

// serveChannel is the accept transition: resolve identity, check the
// channel and the caller's membership in its parent server, then upgrade
// and register the connection into the channel's room.
func (h *RealtimeHandler) serveChannel(w http.ResponseWriter, r *http.Request) {
	claims, err := h.tokens.FromRequest(r)
	if err != nil {
		httputils.ResponseError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	user, err := h.userService.GetUserByID(claims.UserID)
	if err != nil {
		httputils.ResponseError(w, http.StatusUnauthorized, "unknown user")
		return
	}

	channelID, err := parsePathID(r, "channel_id")
	if err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "failed to parse channel ID")
		return
	}

	channel, err := h.channelService.GetChannelByID(channelID)
	if err != nil {
		httputils.ResponseError(w, http.StatusNotFound, "no such channel")
		return
	}

	member, err := h.serverService.IsMember(channel.ServerID, user.ID)
	if err != nil || !member {
		httputils.ResponseError(w, http.StatusForbidden, "not a member of this server")
		return
	}

	conn, err := ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	client := ws.NewClient(context.Background(), conn, user.ID, user.Username, channel.ID)
	room := h.hub.GetRoom(channel.ID)
	room.Register(client)
	h.hub.Metrics().Connections.Inc()

	if err := h.presenceService.UserJoined(r.Context(), channel.ID, user.ID); err != nil {
		log.Printf("presence join failed for user %d: %v", user.ID, err)
	}

	go client.WritePump()
	client.ReadPump(h.handleInbound)

	// ReadPump returned: the transport is closed, leave the room.
	room.Unregister(client)
	client.Close()

	if err := h.presenceService.UserLeft(context.Background(), channel.ID, user.ID); err != nil {
		log.Printf("presence leave failed for user %d: %v", user.ID, err)
	}
}

// handleInbound is the receive transition: validate, persist, broadcast.
// All failures stay local to this sender; other members are unaffected.
func (h *RealtimeHandler) handleInbound(client *ws.Client, ev ws.InEvent) {
	h.hub.Metrics().MessagesReceived.Inc()

	if ev.Message == nil {
		client.SendJSON(ws.NewErrorEvent("message field is required"))
		h.hub.Metrics().Errors.Inc()
		return
	}

	msg := &model.Message{
		Content:   *ev.Message,
		AuthorID:  client.UserID,
		ChannelID: client.ChannelID,
	}

	// Persist before touching the registry so a slow insert never holds
	// the room lock, and a failed insert never reaches other members.
	if err := h.messageService.CreateMessage(msg); err != nil {
		log.Printf("failed to persist message from user %d: %v", client.UserID, err)
		client.SendJSON(ws.NewErrorEvent("failed to persist message"))
		h.hub.Metrics().Errors.Inc()
		return
	}

	h.hub.BroadcastChatMessage(client.ChannelID, msg.Content, client.Username)
}
