package render

import (
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/domain"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/theme"
)

type Header struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Bio         string `json:"bio,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

// Page is the view model of a public profile page. It is derived on every
// request and never stored, except as a short-lived cache entry.
type Page struct {
	ProfileID int64        `json:"profile_id"`
	Header    Header       `json:"header"`
	Theme     theme.Params `json:"theme"`
	Blocks    []BlockUnit  `json:"blocks"`
	Links     []LinkUnit   `json:"links"`
}

func NewHeader(p *domain.Profile) Header {
	return Header{
		Username:    p.Username,
		DisplayName: p.DisplayName,
		Bio:         p.Bio,
		AvatarURL:   p.AvatarURL,
	}
}
