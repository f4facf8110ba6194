package blob

import (
	"context"
	"fmt"
	"regexp"

	"github.com/google/uuid"
)

// VideoFolder is the storage prefix all demo videos live under. The usage
// report and the CDN path both rely on it.
const VideoFolder = "videos/"

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// SanitizeFileName replaces every character outside [A-Za-z0-9._-] with an
// underscore, preserving length and extension.
func SanitizeFileName(name string) string {
	return unsafeFileChars.ReplaceAllString(name, "_")
}

// VideoKey composes the collision-free storage key for an uploaded video.
func VideoKey(token, sanitizedName string) string {
	return VideoFolder + token + "_" + sanitizedName
}

// PublicURL derives the CDN address for a storage key by substituting the
// configured delivery host. The URL is constructed, never fetched from the
// provider, so the CDN path always mirrors the blob key exactly.
func PublicURL(cdnHost, key string) string {
	return "https://" + cdnHost + "/" + key
}

// Uploader stores video payloads under fresh collision-free names and hands
// back the public URL the catalog should reference.
type Uploader struct {
	store   Store
	cdnHost string
}

// NewUploader wires an uploader over the given store.
func NewUploader(store Store, cdnHost string) *Uploader {
	return &Uploader{store: store, cdnHost: cdnHost}
}

// UploadVideo writes the payload to the store and returns its CDN URL. It
// performs exactly one write and no retries; retry policy belongs to callers.
func (u *Uploader) UploadVideo(ctx context.Context, fileName, contentType string, data []byte) (string, error) {
	key := VideoKey(uuid.NewString(), SanitizeFileName(fileName))
	if err := u.store.Put(ctx, key, data, contentType); err != nil {
		return "", fmt.Errorf("upload video %q: %w", key, err)
	}
	return PublicURL(u.cdnHost, key), nil
}
