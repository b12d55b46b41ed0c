package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/domain"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/icon"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/theme"
)

func TestRenderGallery(t *testing.T) {
	params := theme.Resolve(theme.Settings{})

	tests := []struct {
		name    string
		payload string
		want    []string
		warns   int
	}{
		{name: "empty array", payload: "[]", want: []string{}},
		{name: "malformed", payload: "{not json", want: []string{}, warns: 1},
		{name: "object instead of array", payload: `{"a":"b"}`, want: []string{}, warns: 1},
		{name: "two images", payload: `["https://a/1.png"," https://a/2.png "]`, want: []string{"https://a/1.png", "https://a/2.png"}},
		{name: "blank entries dropped", payload: `["", "https://a/1.png"]`, want: []string{"https://a/1.png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.WarnLevel)
			r := NewBlockRenderer(zap.New(core))

			unit := r.Render(domain.ContentBlock{ID: 7, Kind: domain.BlockGallery, Content: tt.payload}, params)
			assert.Equal(t, tt.want, unit.Images)
			assert.Equal(t, GalleryColumns, unit.Columns)
			assert.Equal(t, tt.warns, logs.Len())
		})
	}
}

func TestRenderImageAndText(t *testing.T) {
	params := theme.Resolve(theme.Settings{PrimaryColor: "#10B981"})
	r := NewBlockRenderer(nil)

	img := r.Render(domain.ContentBlock{ID: 1, Kind: domain.BlockImage, Title: "Cover"}, params)
	assert.Equal(t, domain.BlockImage, img.Kind)
	assert.Equal(t, "Cover", img.Title)
	assert.Empty(t, img.ImageURL)

	markup := `<p><strong>Hi</strong> <script>x</script></p>`
	text := r.Render(domain.ContentBlock{ID: 2, Kind: domain.BlockText, Content: markup}, params)
	assert.Equal(t, markup, text.HTML)
	assert.Equal(t, "#10B98110", text.Style.Background)
}

func TestRenderLink(t *testing.T) {
	params := theme.Resolve(theme.Settings{PrimaryColor: "#EC4899", RTL: true})
	l := domain.Link{
		ID:          42,
		Title:       "Portfolio",
		URL:         "https://example.com",
		Icon:        domain.IconWebsite,
		IconStyle:   domain.IconStyleOutlined,
		Description: "My work",
	}

	unit := RenderLink(l, params)
	require.Equal(t, "/go/42", unit.Href)
	assert.Equal(t, "https://example.com", unit.URL)
	assert.Equal(t, icon.KindGlyph, unit.Icon.Kind)
	assert.Equal(t, "outline", unit.Icon.Variant)
	assert.Equal(t, "#EC489915", unit.Background)
	assert.Equal(t, "#EC489930", unit.Border)
	assert.Equal(t, "right", unit.IconEdge)
	assert.Equal(t, unit, RenderLink(l, params))
}
