package handler

import (
	"encoding/json"
	"net/http"

	"github.com/dreamtask/dreamtask/internal/ctxkeys"
	"github.com/dreamtask/dreamtask/internal/service"
)

type SettingsHandler struct {
	settingsService *service.SettingsService
}

func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
	}
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	prefs, err := h.settingsService.Preferences(userID)
	if err != nil {
		respondError(w, err, "get preferences", "user_id", userID)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"preferences": prefs.Data,
	})
}

func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var req struct {
		Preferences json.RawMessage `json:"preferences"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err, "decode preferences")
		return
	}

	prefs, err := h.settingsService.Update(userID, req.Preferences)
	if err != nil {
		respondError(w, err, "update preferences", "user_id", userID)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"message":     "Settings updated successfully",
		"preferences": prefs.Data,
	})
}
