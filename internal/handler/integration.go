package handler

import (
	"net/http"

	"github.com/dreamtask/dreamtask/internal/ctxkeys"
	"github.com/dreamtask/dreamtask/internal/model"
	"github.com/dreamtask/dreamtask/internal/service"
)

type IntegrationHandler struct {
	integrationService *service.IntegrationService
}

func NewIntegrationHandler(integrationService *service.IntegrationService) *IntegrationHandler {
	return &IntegrationHandler{
		integrationService: integrationService,
	}
}

type integrationRequest struct {
	IntegrationID string `json:"integrationId"`
	PlatformID    string `json:"platformId"`
	PlatformName  string `json:"platformName"`
}

func (h *IntegrationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	integrations, err := h.integrationService.Integrations(userID)
	if err != nil {
		respondError(w, err, "get integrations", "user_id", userID)
		return
	}

	writeJSON(w, http.StatusOK, integrations)
}

func (h *IntegrationHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var req integrationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err, "decode integration")
		return
	}

	integration, err := h.integrationService.Create(userID, req.PlatformID, req.PlatformName)
	if err != nil {
		respondError(w, err, "create integration", "user_id", userID, "platform_id", req.PlatformID)
		return
	}

	writeJSON(w, http.StatusOK, integration)
}

func (h *IntegrationHandler) Connect(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var req integrationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err, "decode integration")
		return
	}

	integration, err := h.integrationService.Connect(userID, req.PlatformID)
	if err != nil {
		respondError(w, err, "connect integration", "user_id", userID, "platform_id", req.PlatformID)
		return
	}

	writeJSON(w, http.StatusOK, integration)
}

func (h *IntegrationHandler) Sync(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var req integrationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err, "decode integration")
		return
	}

	integration, err := h.integrationService.Sync(userID, req.IntegrationID, req.PlatformID)
	if err != nil {
		respondError(w, err, "sync integration", "user_id", userID, "integration_id", req.IntegrationID)
		return
	}

	writeJSON(w, http.StatusOK, integration)
}

// Disconnect handles DELETE /api/integrations/{id}. The record is kept.
func (h *IntegrationHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	integrationID := r.PathValue("id")

	integration, err := h.integrationService.Disconnect(userID, integrationID)
	if err != nil {
		respondError(w, err, "disconnect integration", "user_id", userID, "integration_id", integrationID)
		return
	}

	writeJSON(w, http.StatusOK, integration)
}

func (h *IntegrationHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	integrationID := r.PathValue("id")

	settings := model.DefaultIntegrationSettings()
	if err := decodeJSON(w, r, &settings); err != nil {
		respondError(w, err, "decode integration settings")
		return
	}

	integration, err := h.integrationService.UpdateSettings(userID, integrationID, settings)
	if err != nil {
		respondError(w, err, "update integration settings", "user_id", userID, "integration_id", integrationID)
		return
	}

	writeJSON(w, http.StatusOK, integration)
}
