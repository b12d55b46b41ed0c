package domain

import (
	"fmt"
	"time"
)

// BlockKind is the closed set of content block variants.
type BlockKind string

const (
	BlockImage   BlockKind = "image"
	BlockText    BlockKind = "text"
	BlockGallery BlockKind = "gallery"
)

// ParseBlockKind rejects anything outside the known variants.
func ParseBlockKind(s string) (BlockKind, error) {
	switch k := BlockKind(s); k {
	case BlockImage, BlockText, BlockGallery:
		return k, nil
	default:
		return "", &ValidationError{Field: "type", Reason: fmt.Sprintf("unknown block type %q", s)}
	}
}

// ContentBlock is a piece of rich content shown above the links.
// Content holds an image URL, rich-text markup, or a JSON array of image URLs depending on Kind.
type ContentBlock struct {
	ID        int64     `json:"id" yaml:"id"`
	UserID    string    `json:"user_id" yaml:"user_id"`
	Kind      BlockKind `json:"type" yaml:"type"`
	Title     string    `json:"title,omitempty" yaml:"title,omitempty"`
	Content   string    `json:"content" yaml:"content"`
	Position  int       `json:"position" yaml:"position"`
	Active    bool      `json:"is_active" yaml:"is_active"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

func (b ContentBlock) ItemID() int64 { return b.ID }
func (b ContentBlock) Ordinal() int  { return b.Position }
func (b ContentBlock) Enabled() bool { return b.Active }

func (b ContentBlock) Repositioned(position int) ContentBlock {
	b.Position = position
	return b
}
