package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/BYRON-lang/dashboard/internal/dto"
	"github.com/BYRON-lang/dashboard/internal/service"
)

// WebsitesHandler exposes the showcase catalog endpoints.
type WebsitesHandler struct {
	service      *service.WebsitesService
	maxVideoSize int64
}

// NewWebsitesHandler creates a new handler instance.
func NewWebsitesHandler(service *service.WebsitesService, maxVideoSize int64) *WebsitesHandler {
	return &WebsitesHandler{service: service, maxVideoSize: maxVideoSize}
}

// Submit handles POST /websites requests.
func (h *WebsitesHandler) Submit(c echo.Context) error {
	sub := dto.WebsiteSubmission{
		Name:              c.FormValue("name"),
		URL:               c.FormValue("url"),
		Categories:        c.FormValue("categories"),
		Twitter:           c.FormValue("twitter"),
		Instagram:         c.FormValue("instagram"),
		BuiltWith:         c.FormValue("builtWith"),
		OtherTechnologies: c.FormValue("otherTechnologies"),
	}

	video, err := h.readVideo(c)
	if err != nil {
		return Error(c, http.StatusBadRequest, err.Error())
	}

	id, err := h.service.Submit(c.Request().Context(), sub, video)
	if err != nil {
		var validationErr service.ValidationError
		if errors.As(err, &validationErr) {
			return Error(c, http.StatusBadRequest, validationErr.Error())
		}
		var ingestionErr service.IngestionError
		if errors.As(err, &ingestionErr) {
			return Error(c, http.StatusBadGateway, "video upload failed")
		}
		return Error(c, http.StatusInternalServerError, "failed to save website")
	}

	return Success(c, http.StatusCreated, "website submitted", map[string]any{"id": id})
}

// readVideo extracts the optional video part, enforcing the content type and
// size limits before the payload reaches the service.
func (h *WebsitesHandler) readVideo(c echo.Context) (*dto.VideoUpload, error) {
	fileHeader, err := c.FormFile("video")
	if err != nil {
		// A submission without a video is valid.
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, fmt.Errorf("malformed video upload")
	}

	if fileHeader.Size > h.maxVideoSize {
		return nil, fmt.Errorf("video exceeds the %d MiB limit", h.maxVideoSize>>20)
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "video/") {
		return nil, fmt.Errorf("file must be a video, got %q", contentType)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("unable to open video file")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxVideoSize+1))
	if err != nil {
		return nil, fmt.Errorf("unable to read video file")
	}
	if int64(len(data)) > h.maxVideoSize {
		return nil, fmt.Errorf("video exceeds the %d MiB limit", h.maxVideoSize>>20)
	}

	return &dto.VideoUpload{
		FileName:    fileHeader.Filename,
		ContentType: contentType,
		Data:        data,
	}, nil
}

// List handles GET /websites requests.
func (h *WebsitesHandler) List(c echo.Context) error {
	websites, err := h.service.ListWebsites(c.Request().Context())
	if err != nil {
		return Error(c, http.StatusInternalServerError, "failed to load websites")
	}
	return Success(c, http.StatusOK, "", map[string]any{"websites": websites})
}

// Delete handles DELETE /websites/:id requests.
func (h *WebsitesHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid website id")
	}

	if err := h.service.DeleteWebsite(c.Request().Context(), id); err != nil {
		return Error(c, http.StatusInternalServerError, "failed to delete website")
	}

	return Success(c, http.StatusOK, "website deleted", nil)
}
