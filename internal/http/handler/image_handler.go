package handler

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/voyagedesk/travel-api/internal/domain"
	"github.com/voyagedesk/travel-api/internal/service"
	"go.uber.org/zap"
)

const imagesFormField = "files"

// ImageHandler serves tour image uploads
type ImageHandler struct {
	imageService *service.ImageService
	maxUploadMB  int64
	logger       *zap.Logger
}

func NewImageHandler(imageService *service.ImageService, maxUploadMB int64, logger *zap.Logger) *ImageHandler {
	if maxUploadMB <= 0 {
		maxUploadMB = 50
	}
	return &ImageHandler{
		imageService: imageService,
		maxUploadMB:  maxUploadMB,
		logger:       logger,
	}
}

// Upload godoc
// @Summary Upload tour images
// @Description Each file gets its own slot. A file that fails does not stop the others; the
// @Description response lists every slot with its state. 200 when at least one file was stored,
// @Description 400 when none was.
// @Tags Tour Images
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Tour ID" format(uuid)
// @Param group formData string true "Image group" Enums(tour, destination, activity, hotel, itinerary)
// @Param dayKey formData string false "Itinerary day: first_day, last_day or day_N"
// @Param files formData file true "Images"
// @Success 200 {object} domain.ImageUploadResultDTO
// @Failure 400 {object} domain.ImageUploadResultDTO
// @Failure 404 {object} domain.ErrorResponse
// @Failure 413 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /tours/{id}/images [post]
func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	tourID, ok := parseID(w, r, "id", "tour")
	if !ok {
		return
	}

	limit := h.maxUploadMB * 1024 * 1024
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(limit); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("Upload too large: maximum size is %dMB", h.maxUploadMB))
			return
		}
		respondError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	headers := r.MultipartForm.File[imagesFormField]
	uploads := make([]service.ImageUpload, 0, len(headers))
	for _, fh := range headers {
		file, err := fh.Open()
		if err != nil {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Could not read %s", fh.Filename))
			return
		}
		defer func(f multipart.File) { _ = f.Close() }(file)

		uploads = append(uploads, service.ImageUpload{
			FileName:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        file,
		})
	}

	group := domain.ImageGroup(r.FormValue("group"))
	result, err := h.imageService.Upload(r.Context(), tourID, group, r.FormValue("dayKey"), uploads)
	if errors.Is(err, service.ErrAllImagesFailed) {
		respondJSON(w, http.StatusBadRequest, result)
		return
	}
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to upload images")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// List godoc
// @Summary List tour image slots
// @Tags Tour Images
// @Produce json
// @Param id path string true "Tour ID" format(uuid)
// @Param group query string false "Only this group"
// @Success 200 {array} domain.TourImageDTO
// @Failure 404 {object} domain.ErrorResponse
// @Router /tours/{id}/images [get]
func (h *ImageHandler) List(w http.ResponseWriter, r *http.Request) {
	tourID, ok := parseID(w, r, "id", "tour")
	if !ok {
		return
	}

	images, err := h.imageService.List(r.Context(), tourID, domain.ImageGroup(r.URL.Query().Get("group")))
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to list images")
		return
	}
	respondJSON(w, http.StatusOK, images)
}

// Delete godoc
// @Summary Remove a tour image
// @Tags Tour Images
// @Param id path string true "Tour ID" format(uuid)
// @Param imageId path string true "Image ID" format(uuid)
// @Success 204
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /tours/{id}/images/{imageId} [delete]
func (h *ImageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tourID, ok := parseID(w, r, "id", "tour")
	if !ok {
		return
	}
	imageID, ok := parseID(w, r, "imageId", "image")
	if !ok {
		return
	}

	if err := h.imageService.Delete(r.Context(), tourID, imageID); err != nil {
		respondServiceError(w, h.logger, err, "Failed to delete image")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteAt godoc
// @Summary Remove a tour image by position
// @Tags Tour Images
// @Param id path string true "Tour ID" format(uuid)
// @Param group path string true "Image group"
// @Param index path int true "Position in the group"
// @Success 204
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /tours/{id}/images/{group}/{index} [delete]
func (h *ImageHandler) DeleteAt(w http.ResponseWriter, r *http.Request) {
	tourID, ok := parseID(w, r, "id", "tour")
	if !ok {
		return
	}
	index, ok := parseIndex(w, r, "index")
	if !ok {
		return
	}

	group := domain.ImageGroup(chi.URLParam(r, "group"))
	if err := h.imageService.DeleteAt(r.Context(), tourID, group, index); err != nil {
		respondServiceError(w, h.logger, err, "Failed to delete image")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
