package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/punchstack/punchclock-backend-go/internal/domain/export"
	"github.com/punchstack/punchclock-backend-go/internal/handler/http/response"
)

type ExportHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	Preview(w http.ResponseWriter, r *http.Request)
	ListRecent(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Download(w http.ResponseWriter, r *http.Request)
}

type ExportHandlerImpl struct {
	exportService export.ExportService
}

func NewExportHandler(exportService export.ExportService) ExportHandler {
	return &ExportHandlerImpl{exportService: exportService}
}

// Generate implements ExportHandler.
func (h *ExportHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req export.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.RequestedBy = actor.UserID

	job, err := h.exportService.Generate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Export generated successfully", job)
}

// Preview implements ExportHandler. Runs the same row pipeline as Generate
// without writing a file.
func (h *ExportHandlerImpl) Preview(w http.ResponseWriter, r *http.Request) {
	var req export.PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit > 0 {
		req.Limit = limit
	}

	preview, err := h.exportService.Preview(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, preview)
}

// ListRecent implements ExportHandler.
func (h *ExportHandlerImpl) ListRecent(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.exportService.ListRecent(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, jobs)
}

// Delete implements ExportHandler.
func (h *ExportHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.exportService.DeleteJob(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Export deleted successfully", nil)
}

// Download implements ExportHandler. Streams the stored report file.
func (h *ExportHandlerImpl) Download(w http.ResponseWriter, r *http.Request) {
	data, filename, contentType, err := h.exportService.Download(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
