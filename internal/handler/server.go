package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"concord/internal/model"
	"concord/internal/pkg/auth"
	"concord/internal/pkg/httputils"
	"concord/internal/service"

	"github.com/gorilla/mux"
)

type ServerHandler struct {
	serverService  service.ServerService
	channelService service.ChannelService
	tokens         *auth.TokenManager
}

func NewServerHandler(serverService service.ServerService, channelService service.ChannelService, tokens *auth.TokenManager) *ServerHandler {
	return &ServerHandler{
		serverService:  serverService,
		channelService: channelService,
		tokens:         tokens,
	}
}

func (h *ServerHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/servers", h.listServers).Methods("GET", "OPTIONS")
	router.HandleFunc("/servers", h.createServer).Methods("POST", "OPTIONS")
	router.HandleFunc("/servers/{id}/channels", h.listChannels).Methods("GET", "OPTIONS")
	router.HandleFunc("/servers/{id}/channels", h.createChannel).Methods("POST", "OPTIONS")
}

// @Summary List servers
// @Description List servers the caller is a member of
// @ID list-servers
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} []model.Server
// @Failure 401 {object} httputils.ErrorResponse
// @Failure 500 {object} httputils.ErrorResponse
// @Router /servers [get]
func (h *ServerHandler) listServers(w http.ResponseWriter, r *http.Request) {
	claims, err := h.tokens.FromRequest(r)
	if err != nil {
		httputils.ResponseError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	servers, err := h.serverService.ListServersForUser(claims.UserID)
	if err != nil {
		httputils.ResponseError(w, http.StatusInternalServerError, "failed to list servers")
		return
	}

	httputils.ResponseJSON(w, http.StatusOK, servers)
}

type createServerRequest struct {
	Name string `json:"name"`
}

// @Summary Create server
// @Description Create a server owned by the caller
// @ID create-server
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param serverData body createServerRequest true "Server data"
// @Success 201 {object} model.Server
// @Failure 400 {object} httputils.ErrorResponse
// @Failure 401 {object} httputils.ErrorResponse
// @Router /servers [post]
func (h *ServerHandler) createServer(w http.ResponseWriter, r *http.Request) {
	claims, err := h.tokens.FromRequest(r)
	if err != nil {
		httputils.ResponseError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	var request createServerRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "invalid request format")
		return
	}
	r.Body.Close()

	server := &model.Server{
		Name:    request.Name,
		OwnerID: claims.UserID,
	}

	if err := h.serverService.CreateServer(server); err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "failed to create server")
		return
	}

	httputils.ResponseJSON(w, http.StatusCreated, server)
}

type createChannelRequest struct {
	Name string `json:"name"`
}

// @Summary Create channel
// @Description Create a channel inside a server
// @ID create-channel
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path int true "Server ID"
// @Param channelData body createChannelRequest true "Channel data"
// @Success 201 {object} model.Channel
// @Failure 400 {object} httputils.ErrorResponse
// @Failure 401 {object} httputils.ErrorResponse
// @Failure 403 {object} httputils.ErrorResponse
// @Router /servers/{id}/channels [post]
func (h *ServerHandler) createChannel(w http.ResponseWriter, r *http.Request) {
	claims, err := h.tokens.FromRequest(r)
	if err != nil {
		httputils.ResponseError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	serverID, err := parsePathID(r, "id")
	if err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "failed to parse server ID")
		return
	}

	member, err := h.serverService.IsMember(serverID, claims.UserID)
	if err != nil || !member {
		httputils.ResponseError(w, http.StatusForbidden, "not a member of this server")
		return
	}

	var request createChannelRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "invalid request format")
		return
	}
	r.Body.Close()

	channel := &model.Channel{
		Name:     request.Name,
		ServerID: serverID,
	}

	if err := h.channelService.CreateChannel(channel); err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "failed to create channel")
		return
	}

	httputils.ResponseJSON(w, http.StatusCreated, channel)
}

// @Summary List channels
// @Description List channels of a server
// @ID list-channels
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path int true "Server ID"
// @Success 200 {object} []model.Channel
// @Failure 401 {object} httputils.ErrorResponse
// @Failure 403 {object} httputils.ErrorResponse
// @Router /servers/{id}/channels [get]
func (h *ServerHandler) listChannels(w http.ResponseWriter, r *http.Request) {
	claims, err := h.tokens.FromRequest(r)
	if err != nil {
		httputils.ResponseError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	serverID, err := parsePathID(r, "id")
	if err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "failed to parse server ID")
		return
	}

	member, err := h.serverService.IsMember(serverID, claims.UserID)
	if err != nil || !member {
		httputils.ResponseError(w, http.StatusForbidden, "not a member of this server")
		return
	}

	channels, err := h.channelService.ListChannelsForServer(serverID)
	if err != nil {
		httputils.ResponseError(w, http.StatusInternalServerError, "failed to list channels")
		return
	}

	httputils.ResponseJSON(w, http.StatusOK, channels)
}

func parsePathID(r *http.Request, name string) (uint, error) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars[name])
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
