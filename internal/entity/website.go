package entity

import (
	"time"

	"github.com/google/uuid"
)

// SocialLinks stores full profile URLs for the networks an operator supplied.
type SocialLinks struct {
	Twitter   *string `json:"twitter,omitempty"`
	Instagram *string `json:"instagram,omitempty"`
}

// Website is a catalogued showcase entry. ID and UploadedAt are assigned by
// the store on creation and never change afterwards.
type Website struct {
	ID                uuid.UUID   `json:"id"`
	Name              string      `json:"name"`
	URL               string      `json:"url"`
	Categories        []string    `json:"categories"`
	SocialLinks       SocialLinks `json:"socialLinks"`
	BuiltWith         string      `json:"builtWith"`
	OtherTechnologies *string     `json:"otherTechnologies,omitempty"`
	VideoURL          *string     `json:"videoUrl,omitempty"`
	UploadedAt        time.Time   `json:"uploadedAt"`
}
