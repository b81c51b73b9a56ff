package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/punchstack/punchclock-backend-go/internal/domain/media"
	"github.com/punchstack/punchclock-backend-go/internal/handler/http/response"
	"github.com/punchstack/punchclock-backend-go/internal/pkg/imaging"
)

const maxUploadBytes = 10 << 20

type MediaHandler interface {
	GetProfilePicture(w http.ResponseWriter, r *http.Request)
	UploadProfilePicture(w http.ResponseWriter, r *http.Request)
	DeleteProfilePicture(w http.ResponseWriter, r *http.Request)
	UploadEmployeeProfilePicture(w http.ResponseWriter, r *http.Request)
	GetLogo(w http.ResponseWriter, r *http.Request)
	UploadLogo(w http.ResponseWriter, r *http.Request)
	DeleteLogo(w http.ResponseWriter, r *http.Request)
}

type MediaHandlerImpl struct {
	mediaService media.MediaService
}

func NewMediaHandler(mediaService media.MediaService) MediaHandler {
	return &MediaHandlerImpl{mediaService: mediaService}
}

// decodeUpload reads an image from either a multipart form ("image" field,
// with optional crop_* fields) or a JSON body carrying a base64 data URL.
func decodeUpload(r *http.Request) (media.UploadRequest, error) {
	var req media.UploadRequest

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return req, err
		}
		file, _, err := r.FormFile("image")
		if err != nil {
			return req, err
		}
		defer file.Close()

		raw, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
		if err != nil {
			return req, err
		}
		req.Raw = raw

		if size, err := strconv.Atoi(r.FormValue("crop_size")); err == nil && size > 0 {
			x, _ := strconv.Atoi(r.FormValue("crop_x"))
			y, _ := strconv.Atoi(r.FormValue("crop_y"))
			req.Crop = &imaging.CropSpec{X: x, Y: y, Size: size}
		}
		return req, nil
	}

	err := json.NewDecoder(io.LimitReader(r.Body, maxUploadBytes)).Decode(&req)
	return req, err
}

// GetProfilePicture implements MediaHandler. Returns the caller's picture
// URL.
func (h *MediaHandlerImpl) GetProfilePicture(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	img, err := h.mediaService.GetProfilePicture(r.Context(), actor.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, img)
}

// UploadProfilePicture implements MediaHandler.
func (h *MediaHandlerImpl) UploadProfilePicture(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	req, err := decodeUpload(r)
	if err != nil {
		response.BadRequest(w, "Invalid upload format", nil)
		return
	}

	img, err := h.mediaService.UploadProfilePicture(r.Context(), actor.EmployeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Profile picture updated successfully", img)
}

// DeleteProfilePicture implements MediaHandler.
func (h *MediaHandlerImpl) DeleteProfilePicture(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.mediaService.DeleteProfilePicture(r.Context(), actor.EmployeeID); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Profile picture removed successfully", nil)
}

// UploadEmployeeProfilePicture implements MediaHandler. Admin variant that
// sets the picture for any employee.
func (h *MediaHandlerImpl) UploadEmployeeProfilePicture(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	if employeeID == "" {
		employeeID = r.URL.Query().Get("employee_id")
	}
	if employeeID == "" {
		response.BadRequest(w, "employee_id is required", nil)
		return
	}

	req, err := decodeUpload(r)
	if err != nil {
		response.BadRequest(w, "Invalid upload format", nil)
		return
	}

	img, err := h.mediaService.UploadProfilePicture(r.Context(), employeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Profile picture updated successfully", img)
}

// GetLogo implements MediaHandler.
func (h *MediaHandlerImpl) GetLogo(w http.ResponseWriter, r *http.Request) {
	img, err := h.mediaService.GetLogo(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, img)
}

// UploadLogo implements MediaHandler.
func (h *MediaHandlerImpl) UploadLogo(w http.ResponseWriter, r *http.Request) {
	req, err := decodeUpload(r)
	if err != nil {
		response.BadRequest(w, "Invalid upload format", nil)
		return
	}

	img, err := h.mediaService.UploadLogo(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Company logo updated successfully", img)
}

// DeleteLogo implements MediaHandler.
func (h *MediaHandlerImpl) DeleteLogo(w http.ResponseWriter, r *http.Request) {
	if err := h.mediaService.DeleteLogo(r.Context()); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Company logo removed successfully", nil)
}
