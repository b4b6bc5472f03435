package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/dreamtask/dreamtask/internal/repository"
	"github.com/dreamtask/dreamtask/internal/service"
)

// maxBodyBytes caps a decoded request body.
const maxBodyBytes = 1 << 20

var errInvalidBody = errors.New("invalid request body")

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeSuccess(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// decodeJSON reads one JSON document into v. An empty body leaves v untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return fmt.Errorf("%w: %w", errInvalidBody, err)
}

var notFoundMessages = []struct {
	err     error
	message string
}{
	{repository.ErrUserNotFound, "User not found"},
	{repository.ErrGoalNotFound, "Goal not found"},
	{repository.ErrTaskNotFound, "Task not found"},
	{repository.ErrIntegrationNotFound, "Integration not found"},
	{repository.ErrTemplateNotFound, "Template not found"},
	{repository.ErrWorkflowNotFound, "Workflow not found"},
	{repository.ErrExportNotFound, "Export not found"},
}

// respondError maps a service error to its status. Only unexpected errors
// are logged; action and attrs describe what failed.
func respondError(w http.ResponseWriter, err error, action string, attrs ...any) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		writeError(w, http.StatusBadRequest, validationErr.Message)
		return
	case errors.Is(err, errInvalidBody):
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	case errors.Is(err, service.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, "Unauthorized")
		return
	case errors.Is(err, service.ErrEmailAlreadyExists):
		writeError(w, http.StatusConflict, "Email is already taken")
		return
	}

	for _, nf := range notFoundMessages {
		if errors.Is(err, nf.err) {
			writeError(w, http.StatusNotFound, nf.message)
			return
		}
	}

	slog.Error("failed to "+action, append([]any{"error", err}, attrs...)...)
	writeError(w, http.StatusInternalServerError, "Internal server error")
}

func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Not found")
}
