package handler

import (
	"net/http"
	"time"

	"concord/internal/pkg/auth"
	"concord/internal/pkg/httputils"
	"concord/internal/service"

	"github.com/gorilla/mux"
)

type MessageHandler struct {
	messageService service.MessageService
	channelService service.ChannelService
	serverService  service.ServerService
	tokens         *auth.TokenManager
}

func NewMessageHandler(
	messageService service.MessageService,
	channelService service.ChannelService,
	serverService service.ServerService,
	tokens *auth.TokenManager,
) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		channelService: channelService,
		serverService:  serverService,
		tokens:         tokens,
	}
}

func (h *MessageHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/channels/{id}/messages", h.getHistory).Methods("GET", "OPTIONS")
}

type messageResponse struct {
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	Timestamp time.Time `json:"timestamp"`
}

// @Summary Channel history
// @Description Persisted messages of a channel in insertion order
// @ID channel-history
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path int true "Channel ID"
// @Success 200 {object} []messageResponse
// @Failure 401 {object} httputils.ErrorResponse
// @Failure 403 {object} httputils.ErrorResponse
// @Failure 404 {object} httputils.ErrorResponse
// @Router /channels/{id}/messages [get]
func (h *MessageHandler) getHistory(w http.ResponseWriter, r *http.Request) {
	claims, err := h.tokens.FromRequest(r)
	if err != nil {
		httputils.ResponseError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	channelID, err := parsePathID(r, "id")
	if err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "failed to parse channel ID")
		return
	}

	channel, err := h.channelService.GetChannelByID(channelID)
	if err != nil {
		httputils.ResponseError(w, http.StatusNotFound, "no such channel")
		return
	}

	member, err := h.serverService.IsMember(channel.ServerID, claims.UserID)
	if err != nil || !member {
		httputils.ResponseError(w, http.StatusForbidden, "not a member of this server")
		return
	}

	messages, err := h.messageService.GetChannelHistory(channelID)
	if err != nil {
		httputils.ResponseError(w, http.StatusInternalServerError, "failed to get messages for channel")
		return
	}

	response := make([]messageResponse, 0, len(messages))
	for _, msg := range messages {
		response = append(response, messageResponse{
			Content:   msg.Content,
			Author:    msg.Author.Username,
			Timestamp: msg.CreatedAt,
		})
	}

	httputils.ResponseJSON(w, http.StatusOK, response)
}
