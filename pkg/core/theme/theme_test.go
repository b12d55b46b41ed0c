package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCatalogRoundTrip(t *testing.T) {
	for _, tpl := range templates {
		t.Run(tpl.ID, func(t *testing.T) {
			p := Resolve(Settings{Template: tpl.ID})
			assert.Equal(t, tpl.ID, p.Template)
			assert.Equal(t, tpl.From, p.Background.From)
			assert.Equal(t, tpl.To, p.Background.To)
			assert.Equal(t, tpl.Dark, p.Dark)
		})
	}
}

func TestResolveFallbacks(t *testing.T) {
	first := Resolve(Settings{Template: templates[0].ID})

	tests := []struct {
		name     string
		settings Settings
		check    func(t *testing.T, p Params)
	}{
		{
			name:     "unknown template uses first catalog entry",
			settings: Settings{Template: "unknown-template"},
			check: func(t *testing.T, p Params) {
				assert.Equal(t, "designer", p.Template)
				assert.Equal(t, first.Background, p.Background)
			},
		},
		{
			name:     "empty template",
			settings: Settings{},
			check: func(t *testing.T, p Params) {
				assert.Equal(t, first.Background, p.Background)
			},
		},
		{
			name:     "unknown font size is medium",
			settings: Settings{FontSize: "huge"},
			check: func(t *testing.T, p Params) {
				assert.Equal(t, "1rem", p.FontSize)
			},
		},
		{
			name:     "unknown width is normal",
			settings: Settings{PageWidth: "galactic"},
			check: func(t *testing.T, p Params) {
				assert.Equal(t, "28rem", p.MaxWidth)
			},
		},
		{
			name:     "invalid primary color",
			settings: Settings{PrimaryColor: "blue"},
			check: func(t *testing.T, p Params) {
				assert.Equal(t, "#6366F1", p.PrimaryColor)
				assert.Equal(t, "#6366F115", p.LinkBackground)
			},
		},
		{
			name:     "empty font family",
			settings: Settings{FontFamily: "  "},
			check: func(t *testing.T, p Params) {
				assert.Equal(t, "Inter, sans-serif", p.FontFamily)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, Resolve(tt.settings))
		})
	}
}

func TestResolveKnownTiers(t *testing.T) {
	p := Resolve(Settings{FontSize: "xl", PageWidth: "full", PrimaryColor: "#abc"})
	assert.Equal(t, "1.25rem", p.FontSize)
	assert.Equal(t, "56rem", p.MaxWidth)
	assert.Equal(t, "#AABBCC", p.PrimaryColor)
	assert.Equal(t, "#AABBCC30", p.LinkBorder)
}

func TestResolveDirection(t *testing.T) {
	ltr := Resolve(Settings{Template: "doctor", PrimaryColor: "#10B981"})
	rtl := Resolve(Settings{Template: "doctor", PrimaryColor: "#10B981", RTL: true})

	assert.Equal(t, "ltr", ltr.Direction)
	assert.Equal(t, "rtl", rtl.Direction)
	assert.Equal(t, "right", rtl.TextAlign)
	assert.Equal(t, ltr.IconEdge, rtl.TrailingEdge)
	assert.Equal(t, ltr.TrailingEdge, rtl.IconEdge)

	// direction does not touch colors or fonts
	assert.Equal(t, ltr.PrimaryColor, rtl.PrimaryColor)
	assert.Equal(t, ltr.Background, rtl.Background)
	assert.Equal(t, ltr.FontFamily, rtl.FontFamily)
}

func TestResolveDarkTemplate(t *testing.T) {
	p := Resolve(Settings{Template: "developer"})
	require.True(t, p.Dark)
	assert.Equal(t, "#FFFFFF", p.HeadingColor)
}

func TestResolveIsPure(t *testing.T) {
	s := Settings{Template: "chef", PrimaryColor: "#EF4444", FontSize: "large", PageWidth: "wide", RTL: true}
	assert.Equal(t, Resolve(s), Resolve(s))
}

func TestCatalog(t *testing.T) {
	c := GetCatalog()
	assert.Len(t, c.Templates, 12)
	assert.Equal(t, "designer", c.Templates[0].ID)
	assert.Equal(t, []string{"small", "medium", "large", "xl"}, c.FontSizes)
	assert.Equal(t, []string{"narrow", "normal", "wide", "full"}, c.PageWidths)
	assert.Len(t, c.ColorPresets, 12)
	assert.True(t, IsTemplate("teacher"))
	assert.False(t, IsTemplate("astronaut"))
}
