package photo

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/Young-Flame/PhotoYo/internal/middleware"
	"github.com/Young-Flame/PhotoYo/internal/pkg/response"
	"github.com/Young-Flame/PhotoYo/internal/pkg/storage"
	"github.com/Young-Flame/PhotoYo/internal/pkg/validator"
)

// Handler handles photo HTTP requests
type Handler struct {
	service   *Service
	maxUpload int64
}

// NewHandler creates a new photo handler
func NewHandler(service *Service, maxUpload int64) *Handler {
	return &Handler{service: service, maxUpload: maxUpload}
}

// List handles GET /api/v1/photos?category=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	photos, err := h.service.List(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		log.Error().Err(err).Msg("Failed to list photos")
		response.InternalError(w)
		return
	}

	response.OK(w, photos)
}

// Featured handles GET /api/v1/photos/featured
func (h *Handler) Featured(w http.ResponseWriter, r *http.Request) {
	photos, err := h.service.Featured(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list featured photos")
		response.InternalError(w)
		return
	}

	response.OK(w, photos)
}

// Detail handles GET /api/v1/photos/{id}
func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	id, ok := photoID(w, r)
	if !ok {
		return
	}

	detail, err := h.service.GetDetail(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrPhotoNotFound):
			response.NotFound(w, "Photo not found")
		default:
			log.Error().Err(err).Int64("photo_id", id).Msg("Failed to load photo")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, detail)
}

// Upload handles POST /api/v1/photos (multipart/form-data)
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	// Cap the whole request body; the per-file limit is enforced again in
	// the service.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+1<<20)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		response.BadRequest(w, "Invalid multipart form or file too large")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "Missing file field")
		return
	}
	defer file.Close()

	// Trim before validating so whitespace-only titles fail "required"
	req := &UploadRequest{
		Title:       strings.TrimSpace(r.FormValue("title")),
		Description: strings.TrimSpace(r.FormValue("description")),
		Category:    strings.TrimSpace(r.FormValue("category")),
	}

	if fields := validator.Validate(req); fields != nil {
		response.ValidationError(w, fields)
		return
	}

	resp, err := h.service.Upload(r.Context(), actor, req, file, header.Filename)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrExtNotAllowed):
			response.BadRequest(w, "File type not allowed. Use png, jpg, jpeg or gif")
		case errors.Is(err, storage.ErrFileTooLarge):
			response.BadRequest(w, "File exceeds the upload size limit")
		case errors.Is(err, storage.ErrEmptyFile):
			response.BadRequest(w, "Uploaded file is empty")
		default:
			log.Error().Err(err).Msg("Failed to upload photo")
			response.InternalError(w)
		}
		return
	}

	response.Created(w, resp)
}

// Update handles PATCH /api/v1/photos/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	id, ok := photoID(w, r)
	if !ok {
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.Category = strings.TrimSpace(req.Category)

	if fields := validator.Validate(&req); fields != nil {
		response.ValidationError(w, fields)
		return
	}

	resp, err := h.service.Update(r.Context(), actor, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrPhotoNotFound):
			response.NotFound(w, "Photo not found")
		case errors.Is(err, ErrNotOwner):
			response.Forbidden(w, "You can only edit your own photos")
		default:
			log.Error().Err(err).Int64("photo_id", id).Msg("Failed to update photo")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, resp)
}

// Delete handles DELETE /api/v1/photos/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	id, ok := photoID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), actor, id); err != nil {
		switch {
		case errors.Is(err, ErrPhotoNotFound):
			response.NotFound(w, "Photo not found")
		case errors.Is(err, ErrNotOwner):
			response.Forbidden(w, "You can only delete your own photos")
		default:
			log.Error().Err(err).Int64("photo_id", id).Msg("Failed to delete photo")
			response.InternalError(w)
		}
		return
	}

	response.NoContent(w)
}

// Like handles POST /api/v1/photos/{id}/like
func (h *Handler) Like(w http.ResponseWriter, r *http.Request) {
	id, ok := photoID(w, r)
	if !ok {
		return
	}

	resp, err := h.service.Like(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrPhotoNotFound):
			response.NotFound(w, "Photo not found")
		default:
			log.Error().Err(err).Int64("photo_id", id).Msg("Failed to like photo")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, resp)
}

// AddComment handles POST /api/v1/photos/{id}/comments
func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	id, ok := photoID(w, r)
	if !ok {
		return
	}

	var req CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	// Trim before validating so a whitespace-only comment fails "required"
	req.Content = strings.TrimSpace(req.Content)

	if fields := validator.Validate(&req); fields != nil {
		response.ValidationError(w, fields)
		return
	}

	comment, err := h.service.AddComment(r.Context(), actor, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrPhotoNotFound):
			response.NotFound(w, "Photo not found")
		default:
			log.Error().Err(err).Int64("photo_id", id).Msg("Failed to add comment")
			response.InternalError(w)
		}
		return
	}

	response.Created(w, comment)
}

func photoID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(w, "Invalid photo ID")
		return 0, false
	}
	return id, true
}
