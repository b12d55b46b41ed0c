// Package icon maps a link's icon settings onto something a renderer can draw.
package icon

import (
	"strings"

	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/domain"
)

type Kind string

const (
	KindImage Kind = "image"
	KindGlyph Kind = "glyph"
)

// FallbackGlyph is drawn for unrecognized sources.
const FallbackGlyph = "external-link"

// Descriptor is a resolved icon. Exactly one of Glyph and ImageURL is set.
type Descriptor struct {
	Kind       Kind              `json:"kind"`
	Source     domain.IconSource `json:"source"`
	Glyph      string            `json:"glyph,omitempty"`
	ImageURL   string            `json:"image_url,omitempty"`
	Label      string            `json:"label"`
	BrandColor string            `json:"brand_color,omitempty"`
	// Corner applies to images: full, none or md.
	Corner string `json:"corner,omitempty"`
	// Variant applies to glyphs: fill, outline or plain.
	Variant string `json:"variant,omitempty"`
}

type entry struct {
	glyph string
	label string
	color string
}

var builtin = map[domain.IconSource]entry{
	domain.IconInstagram: {glyph: "instagram", label: "Instagram", color: "#E4405F"},
	domain.IconX:         {glyph: "twitter", label: "X", color: "#000000"},
	domain.IconTwitter:   {glyph: "twitter", label: "X", color: "#000000"},
	domain.IconFacebook:  {glyph: "facebook", label: "Facebook", color: "#1877F2"},
	domain.IconLinkedIn:  {glyph: "linkedin", label: "LinkedIn", color: "#0077B5"},
	domain.IconYouTube:   {glyph: "youtube", label: "YouTube", color: "#FF0000"},
	domain.IconGitHub:    {glyph: "github", label: "GitHub", color: "#333333"},
	domain.IconEmail:     {glyph: "mail", label: "Email"},
	domain.IconPhone:     {glyph: "phone", label: "Phone"},
	domain.IconWebsite:   {glyph: "globe", label: "Website", color: "#4285F4"},
	domain.IconLocation:  {glyph: "map-pin", label: "Location"},
	domain.IconDefault:   {glyph: FallbackGlyph, label: "Link", color: "#6B7280"},
}

// Known reports whether source can be selected when editing a link.
func Known(source domain.IconSource) bool {
	if source == domain.IconCustom {
		return true
	}
	_, ok := builtin[source]
	return ok
}

// Resolve never fails. A custom source without an image URL and any unknown
// source both resolve to the fallback glyph.
func Resolve(source domain.IconSource, style domain.IconStyle, customURL string) Descriptor {
	customURL = strings.TrimSpace(customURL)
	if source == domain.IconCustom && customURL != "" {
		return Descriptor{
			Kind:     KindImage,
			Source:   domain.IconCustom,
			ImageURL: customURL,
			Label:    "Custom",
			Corner:   cornerFor(style),
		}
	}

	e, ok := builtin[source]
	if !ok {
		source = domain.IconDefault
		e = builtin[domain.IconDefault]
	}
	return Descriptor{
		Kind:       KindGlyph,
		Source:     source,
		Glyph:      e.glyph,
		Label:      e.label,
		BrandColor: e.color,
		Variant:    variantFor(style),
	}
}

func cornerFor(style domain.IconStyle) string {
	switch style {
	case domain.IconStyleRounded:
		return "full"
	case domain.IconStyleSquare:
		return "none"
	default:
		return "md"
	}
}

func variantFor(style domain.IconStyle) string {
	switch style {
	case domain.IconStyleOutlined:
		return "outline"
	case domain.IconStyleFilled, "":
		return "fill"
	default:
		return "plain"
	}
}
