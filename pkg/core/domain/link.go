package domain

import (
	"strings"
	"time"
)

// IconSource names a built-in icon, or IconCustom for an uploaded image.
type IconSource string

const (
	IconInstagram IconSource = "instagram"
	IconX         IconSource = "x"
	IconTwitter   IconSource = "twitter"
	IconFacebook  IconSource = "facebook"
	IconLinkedIn  IconSource = "linkedin"
	IconYouTube   IconSource = "youtube"
	IconGitHub    IconSource = "github"
	IconEmail     IconSource = "email"
	IconPhone     IconSource = "phone"
	IconWebsite   IconSource = "website"
	IconLocation  IconSource = "location"
	IconDefault   IconSource = "default"
	IconCustom    IconSource = "custom"
)

// IconStyle is the visual treatment applied to a link icon.
type IconStyle string

const (
	IconStyleFilled   IconStyle = "filled"
	IconStyleOutlined IconStyle = "outlined"
	IconStyleRounded  IconStyle = "rounded"
	IconStyleSquare   IconStyle = "square"
)

var iconStyles = map[IconStyle]struct{}{
	IconStyleFilled:   {},
	IconStyleOutlined: {},
	IconStyleRounded:  {},
	IconStyleSquare:   {},
}

// Valid reports whether s is one of the known styles.
func (s IconStyle) Valid() bool {
	_, ok := iconStyles[s]
	return ok
}

// Link is a single destination on a profile page
type Link struct {
	ID            int64      `json:"id" yaml:"id"`
	UserID        string     `json:"user_id" yaml:"user_id"`
	Title         string     `json:"title" yaml:"title"`
	URL           string     `json:"url" yaml:"url"`
	Icon          IconSource `json:"icon" yaml:"icon"`
	IconStyle     IconStyle  `json:"icon_style" yaml:"icon_style"`
	CustomIconURL string     `json:"custom_icon_url,omitempty" yaml:"custom_icon_url,omitempty"`
	Description   string     `json:"description,omitempty" yaml:"description,omitempty"`
	Active        bool       `json:"is_active" yaml:"is_active"`
	Position      int        `json:"position" yaml:"position"`
	Clicks        int64      `json:"clicks" yaml:"clicks"`
	CreatedAt     time.Time  `json:"created_at" yaml:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" yaml:"updated_at"`
}

func (l Link) ItemID() int64 { return l.ID }
func (l Link) Ordinal() int  { return l.Position }
func (l Link) Enabled() bool { return l.Active }

func (l Link) Repositioned(position int) Link {
	l.Position = position
	return l
}

// NormalizeURL prefixes https:// to destinations entered without a scheme.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, "http") || strings.HasPrefix(raw, "mailto:") || strings.HasPrefix(raw, "tel:") {
		return raw
	}
	return "https://" + raw
}
