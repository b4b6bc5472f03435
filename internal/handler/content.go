package handler

import (
	"net/http"

	"github.com/dreamtask/dreamtask/internal/service"
)

type ContentHandler struct {
	contentService *service.ContentService
}

func NewContentHandler(contentService *service.ContentService) *ContentHandler {
	return &ContentHandler{
		contentService: contentService,
	}
}

func (h *ContentHandler) Get(w http.ResponseWriter, r *http.Request) {
	content, err := h.contentService.Content()
	if err != nil {
		respondError(w, err, "get content")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"content": content,
	})
}

func (h *ContentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content map[string]string `json:"content"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err, "decode content")
		return
	}

	err := h.contentService.Update(req.Content)
	if err != nil {
		respondError(w, err, "update content")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Content updated successfully",
	})
}

func (h *ContentHandler) Templates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.contentService.Templates(r.URL.Query().Get("category"))
	if err != nil {
		respondError(w, err, "get templates")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"templates": templates,
	})
}

func (h *ContentHandler) Render(w http.ResponseWriter, r *http.Request) {
	templateID := r.PathValue("id")

	var req struct {
		Variables map[string]string `json:"variables"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err, "decode template variables")
		return
	}

	rendered, err := h.contentService.Render(templateID, req.Variables)
	if err != nil {
		respondError(w, err, "render template", "template_id", templateID)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"content": rendered.Content,
		"html":    rendered.HTML,
	})
}
