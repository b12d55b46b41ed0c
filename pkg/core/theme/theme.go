// Package theme turns the appearance settings stored on a profile into the
// concrete values a page renderer needs. Resolution never fails: anything
// unknown falls back to a catalog default.
package theme

import (
	"regexp"
	"strings"

	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/domain"
)

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Settings are the raw appearance fields of a profile.
type Settings struct {
	Template        string
	PrimaryColor    string
	BackgroundColor string
	FontFamily      string
	FontSize        string
	PageWidth       string
	RTL             bool
}

func SettingsFor(p *domain.Profile) Settings {
	return Settings{
		Template:        p.Template,
		PrimaryColor:    p.PrimaryColor,
		BackgroundColor: p.BackgroundColor,
		FontFamily:      p.FontFamily,
		FontSize:        p.FontSize,
		PageWidth:       p.PageWidth,
		RTL:             p.IsRTL,
	}
}

// Background is the resolved page background.
type Background struct {
	Template string `json:"template"`
	From     string `json:"from"`
	To       string `json:"to"`
	Color    string `json:"color,omitempty"`
	CSS      string `json:"css"`
}

// Params are the concrete render parameters.
type Params struct {
	Template   string     `json:"template"`
	Dark       bool       `json:"dark"`
	Background Background `json:"background"`

	PrimaryColor        string `json:"primary_color"`
	HeadingColor        string `json:"heading_color"`
	TextColor           string `json:"text_color"`
	LinkBackground      string `json:"link_background"`
	LinkBorder          string `json:"link_border"`
	TextBlockBackground string `json:"text_block_background"`

	FontFamily string `json:"font_family"`
	FontSize   string `json:"font_size"`
	MaxWidth   string `json:"max_width"`

	Direction string `json:"direction"`
	TextAlign string `json:"text_align"`
	// IconEdge is the side of a link row that holds the icon; TrailingEdge holds the arrow.
	IconEdge     string `json:"icon_edge"`
	TrailingEdge string `json:"trailing_edge"`
}

func Resolve(s Settings) Params {
	tpl, _ := lookupTemplate(s.Template)

	fontSize, ok := lookupTier(fontSizes, s.FontSize)
	if !ok {
		fontSize, _ = lookupTier(fontSizes, domain.DefaultFontSize)
	}
	width, ok := lookupTier(pageWidths, s.PageWidth)
	if !ok {
		width, _ = lookupTier(pageWidths, domain.DefaultPageWidth)
	}

	primary := normalizeColor(s.PrimaryColor, domain.DefaultPrimaryColor)
	font := strings.TrimSpace(s.FontFamily)
	if font == "" {
		font = domain.DefaultFontFamily
	}

	bg := Background{
		Template: tpl.ID,
		From:     tpl.From,
		To:       tpl.To,
		Color:    normalizeColor(s.BackgroundColor, ""),
		CSS:      "linear-gradient(to bottom right, " + tpl.From + ", " + tpl.To + ")",
	}

	p := Params{
		Template:            tpl.ID,
		Dark:                tpl.Dark,
		Background:          bg,
		PrimaryColor:        primary,
		HeadingColor:        "#1F2937",
		TextColor:           "#4B5563",
		LinkBackground:      primary + "15",
		LinkBorder:          primary + "30",
		TextBlockBackground: primary + "10",
		FontFamily:          font,
		FontSize:            fontSize,
		MaxWidth:            width,
		Direction:           "ltr",
		TextAlign:           "left",
		IconEdge:            "left",
		TrailingEdge:        "right",
	}
	if tpl.Dark {
		p.HeadingColor = "#FFFFFF"
		p.TextColor = "#D1D5DB"
	}
	if s.RTL {
		p.Direction = "rtl"
		p.TextAlign = "right"
		p.IconEdge, p.TrailingEdge = p.TrailingEdge, p.IconEdge
	}
	return p
}

// normalizeColor expands #abc to #AABBCC and upper-cases the result.
func normalizeColor(c, fallback string) string {
	c = strings.TrimSpace(c)
	if !hexColor.MatchString(c) {
		return fallback
	}
	if len(c) == 4 {
		c = "#" + strings.Repeat(c[1:2], 2) + strings.Repeat(c[2:3], 2) + strings.Repeat(c[3:4], 2)
	}
	return strings.ToUpper(c)
}

// IsHexColor reports whether c is a #rgb or #rrggbb color.
func IsHexColor(c string) bool {
	return hexColor.MatchString(c)
}
