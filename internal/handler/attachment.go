package handler

import (
	"net/http"
	"time"

	"concord/internal/pkg/auth"
	"concord/internal/pkg/httputils"
	"concord/internal/service"

	"github.com/gorilla/mux"
)

const maxUploadSize = 32 << 20 // 32MB

type AttachmentHandler struct {
	attachmentService service.AttachmentService
	channelService    service.ChannelService
	serverService     service.ServerService
	tokens            *auth.TokenManager
}

func NewAttachmentHandler(
	attachmentService service.AttachmentService,
	channelService service.ChannelService,
	serverService service.ServerService,
	tokens *auth.TokenManager,
) *AttachmentHandler {
	return &AttachmentHandler{
		attachmentService: attachmentService,
		channelService:    channelService,
		serverService:     serverService,
		tokens:            tokens,
	}
}

func (h *AttachmentHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/channels/{id}/attachments", h.upload).Methods("POST", "OPTIONS")
	router.HandleFunc("/attachments/{id}", h.download).Methods("GET", "OPTIONS")
}

// @Summary Upload attachment
// @Description Upload a file into a channel
// @ID upload-attachment
// @Accept mpfd
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path int true "Channel ID"
// @Param file formData file true "File"
// @Success 201 {object} model.Attachment
// @Failure 400 {object} httputils.ErrorResponse
// @Failure 401 {object} httputils.ErrorResponse
// @Failure 403 {object} httputils.ErrorResponse
// @Router /channels/{id}/attachments [post]
func (h *AttachmentHandler) upload(w http.ResponseWriter, r *http.Request) {
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

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	attachment, err := h.attachmentService.Upload(
		r.Context(),
		file,
		header.Filename,
		header.Header.Get("Content-Type"),
		header.Size,
		claims.UserID,
		channelID,
	)
	if err != nil {
		httputils.ResponseError(w, http.StatusInternalServerError, "failed to upload attachment")
		return
	}

	httputils.ResponseJSON(w, http.StatusCreated, attachment)
}

// @Summary Download attachment
// @Description Redirect to a presigned URL for the attachment
// @ID download-attachment
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Attachment ID"
// @Success 307
// @Failure 401 {object} httputils.ErrorResponse
// @Failure 404 {object} httputils.ErrorResponse
// @Router /attachments/{id} [get]
func (h *AttachmentHandler) download(w http.ResponseWriter, r *http.Request) {
	if _, err := h.tokens.FromRequest(r); err != nil {
		httputils.ResponseError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	vars := mux.Vars(r)
	attachmentID := vars["id"]

	url, err := h.attachmentService.DownloadURL(r.Context(), attachmentID, 15*time.Minute)
	if err != nil {
		httputils.ResponseError(w, http.StatusNotFound, "no such attachment")
		return
	}

	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}
