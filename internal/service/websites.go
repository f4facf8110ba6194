package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/net/idna"

	"github.com/BYRON-lang/dashboard/internal/blob"
	"github.com/BYRON-lang/dashboard/internal/dto"
	"github.com/BYRON-lang/dashboard/internal/entity"
	"github.com/BYRON-lang/dashboard/internal/repository"
)

// ValidationError indicates the submitted form data is invalid.
type ValidationError struct {
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return e.Message
}

// IngestionError indicates the demo video could not be uploaded. When it is
// returned the catalog has not been written.
type IngestionError struct {
	Err error
}

// Error implements the error interface.
func (e IngestionError) Error() string {
	return fmt.Sprintf("video upload failed: %v", e.Err)
}

// Unwrap exposes the underlying upload failure.
func (e IngestionError) Unwrap() error {
	return e.Err
}

// WebsitesService orchestrates showcase submissions: optional video upload
// first, then the catalog write.
type WebsitesService struct {
	repo     repository.WebsitesRepository
	uploader *blob.Uploader
}

// NewWebsitesService creates a new instance of WebsitesService.
func NewWebsitesService(repo repository.WebsitesRepository, uploader *blob.Uploader) *WebsitesService {
	return &WebsitesService{repo: repo, uploader: uploader}
}

// Submit validates the form, uploads the optional video, and persists the
// entry, returning the new id. An upload failure aborts before any catalog
// write so no entry ever references a missing asset. A persistence failure
// after a successful upload leaves the blob orphaned; that limitation is
// accepted rather than masked. Neither failure is retried here.
func (s *WebsitesService) Submit(ctx context.Context, sub dto.WebsiteSubmission, video *dto.VideoUpload) (uuid.UUID, error) {
	input, err := buildEntry(sub)
	if err != nil {
		return uuid.Nil, err
	}

	if video != nil {
		videoURL, err := s.uploader.UploadVideo(ctx, video.FileName, video.ContentType, video.Data)
		if err != nil {
			return uuid.Nil, IngestionError{Err: err}
		}
		input.VideoURL = &videoURL
	}

	id, err := s.repo.Create(ctx, input)
	if err != nil {
		return uuid.Nil, err
	}

	return id, nil
}

// ListWebsites returns all entries, most recent first.
func (s *WebsitesService) ListWebsites(ctx context.Context) ([]entity.Website, error) {
	return s.repo.List(ctx)
}

// DeleteWebsite removes an entry. Unknown ids are a no-op.
func (s *WebsitesService) DeleteWebsite(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func buildEntry(sub dto.WebsiteSubmission) (repository.NewWebsite, error) {
	name := strings.TrimSpace(sub.Name)
	if name == "" {
		return repository.NewWebsite{}, ValidationError{Message: "name is required"}
	}

	siteURL := strings.TrimSpace(sub.URL)
	if siteURL == "" {
		return repository.NewWebsite{}, ValidationError{Message: "url is required"}
	}
	if err := validateURL(siteURL); err != nil {
		return repository.NewWebsite{}, ValidationError{Message: fmt.Sprintf("invalid url: %v", err)}
	}

	return repository.NewWebsite{
		Name:              name,
		URL:               siteURL,
		Categories:        ParseCategories(sub.Categories),
		Twitter:           profileURL("twitter.com", sub.Twitter),
		Instagram:         profileURL("instagram.com", sub.Instagram),
		BuiltWith:         strings.TrimSpace(sub.BuiltWith),
		OtherTechnologies: normalizeString(sub.OtherTechnologies),
	}, nil
}

// ParseCategories splits the operator's comma separated input, trimming each
// segment and dropping empties.
func ParseCategories(raw string) []string {
	parts := strings.Split(raw, ",")
	categories := make([]string, 0, len(parts))
	for _, part := range parts {
		category := strings.TrimSpace(part)
		if category == "" {
			continue
		}
		categories = append(categories, category)
	}
	return categories
}

// profileURL expands a bare handle into a full profile URL, or nil when the
// operator left the field empty.
func profileURL(host, handle string) *string {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return nil
	}
	expanded := "https://" + host + "/" + handle
	return &expanded
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https")
	}
	host := u.Hostname()
	if host == "" {
		return fmt.Errorf("missing host")
	}
	if _, err := idna.Lookup.ToASCII(host); err != nil {
		return fmt.Errorf("invalid host %q", host)
	}
	return nil
}

func normalizeString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
