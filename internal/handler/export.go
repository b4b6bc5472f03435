package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dreamtask/dreamtask/internal/ctxkeys"
	"github.com/dreamtask/dreamtask/internal/service"
)

type ExportHandler struct {
	exportService *service.ExportService
}

func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
	}
}

// Export answers with a download URL, or with the snapshot itself as an
// attachment when no object storage is configured.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	result, err := h.exportService.Export(userID)
	if err != nil {
		respondError(w, err, "export data", "user_id", userID)
		return
	}

	if result.Export == nil {
		filename := fmt.Sprintf("dreamtask-export-%s.json", time.Now().UTC().Format("2006-01-02"))
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(result.Snapshot)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"export":  result.Export,
		"url":     result.Export.URL,
	})
}

func (h *ExportHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	exports, err := h.exportService.Exports(userID)
	if err != nil {
		respondError(w, err, "get exports", "user_id", userID)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"exports": exports,
	})
}
