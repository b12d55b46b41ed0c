// Package render turns links and content blocks into display units for a
// resolved theme. Renderers never fail: bad payloads degrade to empty output.
package render

import (
	"strings"

	"go.uber.org/zap"

	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/domain"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/theme"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/json"
)

// GalleryColumns is the fixed grid width of gallery blocks.
const GalleryColumns = 2

type BlockStyle struct {
	Background   string `json:"background,omitempty"`
	HeadingColor string `json:"heading_color"`
	TextColor    string `json:"text_color"`
	FontFamily   string `json:"font_family"`
	FontSize     string `json:"font_size"`
}

// BlockUnit is one rendered content block. Which payload field is set depends on Kind.
type BlockUnit struct {
	ID       int64            `json:"id"`
	Kind     domain.BlockKind `json:"type"`
	Title    string           `json:"title,omitempty"`
	ImageURL string           `json:"image_url,omitempty"`
	HTML     string           `json:"html,omitempty"`
	Images   []string         `json:"images,omitempty"`
	Columns  int              `json:"columns,omitempty"`
	Style    BlockStyle       `json:"style"`
}

type BlockRenderer struct {
	log *zap.Logger
}

func NewBlockRenderer(log *zap.Logger) *BlockRenderer {
	if log == nil {
		log = zap.NewNop()
	}
	return &BlockRenderer{log: log}
}

func (r *BlockRenderer) Render(b domain.ContentBlock, p theme.Params) BlockUnit {
	unit := BlockUnit{
		ID:    b.ID,
		Kind:  b.Kind,
		Title: b.Title,
		Style: BlockStyle{
			HeadingColor: p.HeadingColor,
			TextColor:    p.TextColor,
			FontFamily:   p.FontFamily,
			FontSize:     p.FontSize,
		},
	}

	switch b.Kind {
	case domain.BlockImage:
		// an empty URL still renders; the frame is shown without a picture
		unit.ImageURL = strings.TrimSpace(b.Content)
	case domain.BlockText:
		// markup is replayed verbatim; sanitizing belongs to the presentation layer
		unit.HTML = b.Content
		unit.Style.Background = p.TextBlockBackground
	case domain.BlockGallery:
		images, err := ParseGallery(b.Content)
		if err != nil {
			r.log.Warn("malformed gallery payload",
				zap.Int64("block_id", b.ID),
				zap.Error(err),
			)
		}
		unit.Images = images
		unit.Columns = GalleryColumns
	default:
		r.log.Warn("unknown block type", zap.Int64("block_id", b.ID), zap.String("type", string(b.Kind)))
	}
	return unit
}

// ParseGallery decodes a JSON array of image URLs. On error it returns an empty
// list alongside the error so callers can log and carry on.
func ParseGallery(payload string) ([]string, error) {
	images := []string{}
	if strings.TrimSpace(payload) == "" {
		return images, nil
	}
	var raw []string
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return images, err
	}
	for _, u := range raw {
		if u = strings.TrimSpace(u); u != "" {
			images = append(images, u)
		}
	}
	return images, nil
}
