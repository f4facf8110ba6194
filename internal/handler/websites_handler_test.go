package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/BYRON-lang/dashboard/internal/blob"
	"github.com/BYRON-lang/dashboard/internal/entity"
	"github.com/BYRON-lang/dashboard/internal/repository"
	"github.com/BYRON-lang/dashboard/internal/service"
)

type capturingRepo struct {
	created   *repository.NewWebsite
	createErr error
	listErr   error
	deleted   *uuid.UUID
	deleteErr error
}

func (r *capturingRepo) Create(ctx context.Context, input repository.NewWebsite) (uuid.UUID, error) {
	if r.createErr != nil {
		return uuid.Nil, r.createErr
	}
	r.created = &input
	return uuid.MustParse("eeeeeeee-eeee-eeee-eeee-eeeeeeeeeeee"), nil
}

func (r *capturingRepo) List(ctx context.Context) ([]entity.Website, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return []entity.Website{{Name: "Grovio"}}, nil
}

func (r *capturingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.deleted = &id
	return r.deleteErr
}

type stubStore struct {
	putErr error
}

func (s *stubStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	return s.putErr
}

func (s *stubStore) List(ctx context.Context, prefix string) ([]string, error) {
	return nil, nil
}

const testMaxVideoSize = 1 << 20

func newWebsitesHandler(repo repository.WebsitesRepository, store blob.Store) *WebsitesHandler {
	svc := service.NewWebsitesService(repo, blob.NewUploader(store, "cdn.test"))
	return NewWebsitesHandler(svc, testMaxVideoSize)
}

type videoPart struct {
	filename    string
	contentType string
	data        []byte
}

func newSubmitRequest(t *testing.T, fields map[string]string, video *videoPart) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if video != nil {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="video"; filename=%q`, video.filename))
		header.Set("Content-Type", video.contentType)
		part, err := writer.CreatePart(header)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		if _, err := part.Write(video.data); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/websites", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func validFields() map[string]string {
	return map[string]string{
		"name":       "Grovio",
		"url":        "https://grovio.xyz",
		"categories": "portfolio, blog",
		"builtWith":  "Next.js",
	}
}

func TestSubmitWithoutVideo(t *testing.T) {
	repo := &capturingRepo{}
	handler := newWebsitesHandler(repo, &stubStore{})

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(newSubmitRequest(t, validFields(), nil), rec)

	if err := handler.Submit(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if repo.created == nil {
		t.Fatalf("expected catalog write")
	}
	if repo.created.VideoURL != nil {
		t.Fatalf("entry without video must have no video url")
	}

	var payload APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.Status != "success" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestSubmitWithVideo(t *testing.T) {
	repo := &capturingRepo{}
	handler := newWebsitesHandler(repo, &stubStore{})

	video := &videoPart{filename: "demo.mp4", contentType: "video/mp4", data: []byte("payload")}
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(newSubmitRequest(t, validFields(), video), rec)

	if err := handler.Submit(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if repo.created == nil || repo.created.VideoURL == nil {
		t.Fatalf("expected video url on the persisted entry")
	}
}

func TestSubmitRejectsNonVideoFile(t *testing.T) {
	repo := &capturingRepo{}
	handler := newWebsitesHandler(repo, &stubStore{})

	video := &videoPart{filename: "slides.pdf", contentType: "application/pdf", data: []byte("x")}
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(newSubmitRequest(t, validFields(), video), rec)

	_ = handler.Submit(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if repo.created != nil {
		t.Fatalf("rejected upload must not reach the catalog")
	}
}

func TestSubmitRejectsOversizedVideo(t *testing.T) {
	repo := &capturingRepo{}
	handler := newWebsitesHandler(repo, &stubStore{})

	video := &videoPart{filename: "huge.mp4", contentType: "video/mp4", data: bytes.Repeat([]byte("a"), testMaxVideoSize+1)}
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(newSubmitRequest(t, validFields(), video), rec)

	_ = handler.Submit(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSubmitRejectsMalformedMultipart(t *testing.T) {
	repo := &capturingRepo{}
	handler := newWebsitesHandler(repo, &stubStore{})

	req := httptest.NewRequest(http.MethodPost, "/websites", bytes.NewBufferString("not a multipart body"))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=deadbeef")
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = handler.Submit(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a broken multipart body, got %d", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("malformed video upload")) {
		t.Fatalf("expected malformed upload message, got %s", rec.Body.String())
	}
	if repo.created != nil {
		t.Fatalf("malformed request must not reach the catalog")
	}
}

func TestSubmitUploadFailure(t *testing.T) {
	repo := &capturingRepo{}
	handler := newWebsitesHandler(repo, &stubStore{putErr: errors.New("network down")})

	video := &videoPart{filename: "demo.mp4", contentType: "video/mp4", data: []byte("payload")}
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(newSubmitRequest(t, validFields(), video), rec)

	_ = handler.Submit(c)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	if repo.created != nil {
		t.Fatalf("catalog must not be written after a failed upload")
	}
}

func TestSubmitValidationFailure(t *testing.T) {
	handler := newWebsitesHandler(&capturingRepo{}, &stubStore{})

	fields := validFields()
	fields["name"] = ""
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(newSubmitRequest(t, fields, nil), rec)

	_ = handler.Submit(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSubmitPersistenceFailure(t *testing.T) {
	repo := &capturingRepo{createErr: errors.New("store unreachable")}
	handler := newWebsitesHandler(repo, &stubStore{})

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(newSubmitRequest(t, validFields(), nil), rec)

	_ = handler.Submit(c)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestListWebsites(t *testing.T) {
	handler := newWebsitesHandler(&capturingRepo{}, &stubStore{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/websites", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestListWebsitesError(t *testing.T) {
	handler := newWebsitesHandler(&capturingRepo{listErr: errors.New("read failed")}, &stubStore{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/websites", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = handler.List(c)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestDeleteWebsite(t *testing.T) {
	repo := &capturingRepo{}
	handler := newWebsitesHandler(repo, &stubStore{})

	id := uuid.New()
	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/websites/"+id.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	if err := handler.Delete(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if repo.deleted == nil || *repo.deleted != id {
		t.Fatalf("expected delete forwarded")
	}
}

func TestDeleteWebsiteInvalidID(t *testing.T) {
	handler := newWebsitesHandler(&capturingRepo{}, &stubStore{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/websites/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	_ = handler.Delete(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
