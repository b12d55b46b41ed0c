package render

import (
	"strconv"

	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/domain"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/icon"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/theme"
)

// ClickPathPrefix is where link activations are routed so they can be counted.
const ClickPathPrefix = "/go/"

type LinkUnit struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	URL         string          `json:"url"`
	Href        string          `json:"href"`
	Icon        icon.Descriptor `json:"icon"`
	IconColor   string          `json:"icon_color"`
	Background  string          `json:"background"`
	Border      string          `json:"border"`
	TextColor   string          `json:"text_color"`
	IconEdge    string          `json:"icon_edge"`
}

// RenderLink is pure: the same link and theme always give the same unit.
func RenderLink(l domain.Link, p theme.Params) LinkUnit {
	return LinkUnit{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
		URL:         l.URL,
		Href:        ClickPath(l.ID),
		Icon:        icon.Resolve(l.Icon, l.IconStyle, l.CustomIconURL),
		IconColor:   p.PrimaryColor,
		Background:  p.LinkBackground,
		Border:      p.LinkBorder,
		TextColor:   p.HeadingColor,
		IconEdge:    p.IconEdge,
	}
}

func ClickPath(linkID int64) string {
	return ClickPathPrefix + strconv.FormatInt(linkID, 10)
}
