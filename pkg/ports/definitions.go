package ports

import (
	"context"
	"time"

	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/domain"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/render"
)

// ProfileRepository defines storage operations for profiles.
// Lookups return nil, nil when nothing matches.
type ProfileRepository interface {
	CreateProfile(ctx context.Context, profile *domain.Profile) error // domain.ErrUsernameTaken on conflict
	GetProfileByUsername(ctx context.Context, username string) (*domain.Profile, error)
	GetProfileByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, profile *domain.Profile) error
	ListOwners(ctx context.Context) ([]string, error)
}

// LinkRepository defines storage operations for links
type LinkRepository interface {
	CreateLink(ctx context.Context, link *domain.Link) error
	GetLink(ctx context.Context, id int64) (*domain.Link, error)
	UpdateLink(ctx context.Context, link *domain.Link) error
	DeleteLink(ctx context.Context, id int64) error
	// ListLinks returns an owner's links ordered by position, then id.
	ListLinks(ctx context.Context, userID string, activeOnly bool) ([]domain.Link, error)
	// UpdateLinkPositions writes every position in a single transaction.
	UpdateLinkPositions(ctx context.Context, userID string, positions map[int64]int) error
}

// BlockRepository defines storage operations for content blocks
type BlockRepository interface {
	CreateBlock(ctx context.Context, block *domain.ContentBlock) error
	GetBlock(ctx context.Context, id int64) (*domain.ContentBlock, error)
	UpdateBlock(ctx context.Context, block *domain.ContentBlock) error
	DeleteBlock(ctx context.Context, id int64) error
	ListBlocks(ctx context.Context, userID string, activeOnly bool) ([]domain.ContentBlock, error)
	UpdateBlockPositions(ctx context.Context, userID string, positions map[int64]int) error
}

// EventRepository stores analytics events and aggregates them.
type EventRepository interface {
	// RecordEvent stores e. A link_click also increments the link's click counter in the same transaction.
	RecordEvent(ctx context.Context, e domain.Event) error
	GetDashboardStats(ctx context.Context, profileID int64, userID string, since time.Time, topLinks int) (*domain.DashboardStats, error)
}

// SnapshotRepository swaps an owner's whole authoring state at once.
type SnapshotRepository interface {
	// ReplaceOwnerContent creates or updates profile and replaces the owner's
	// links and blocks in a single transaction.
	ReplaceOwnerContent(ctx context.Context, profile *domain.Profile, links []domain.Link, blocks []domain.ContentBlock) error
}

// Repository is everything the sqlite adapter provides.
type Repository interface {
	ProfileRepository
	LinkRepository
	BlockRepository
	EventRepository
	SnapshotRepository
	Close() error
}

type UploadOptions struct {
	Upsert      bool
	ContentType string
}

type UploadResult struct {
	Path      string
	PublicURL string
}

// Storage persists binary media and returns a public URL for it.
type Storage interface {
	Upload(ctx context.Context, data []byte, destPath string, opts UploadOptions) (*UploadResult, error)
}

// PageCache holds composed public pages keyed by username.
// Misses and backend errors both report ok == false.
type PageCache interface {
	Get(ctx context.Context, username string) (*render.Page, bool)
	Set(ctx context.Context, username string, page *render.Page)
	Invalidate(ctx context.Context, username string)
}

// AnalyticsSink is the delivery target behind the emitter.
type AnalyticsSink interface {
	Deliver(ctx context.Context, e domain.Event) error
	Close() error
}

// Emitter records analytics without ever failing or blocking the caller.
type Emitter interface {
	Log(ctx context.Context, name string, attributes map[string]any)
}

type ProfileInput struct {
	Username        string `json:"username" yaml:"username" validate:"required,username"`
	DisplayName     string `json:"display_name" yaml:"display_name" validate:"max=100"`
	Bio             string `json:"bio" yaml:"bio" validate:"max=500"`
	AvatarURL       string `json:"avatar_url" yaml:"avatar_url" validate:"max=2048"`
	Template        string `json:"template" yaml:"template" validate:"template"`
	PrimaryColor    string `json:"primary_color" yaml:"primary_color" validate:"hexcolor_or_empty"`
	BackgroundColor string `json:"background_color" yaml:"background_color" validate:"hexcolor_or_empty"`
	FontFamily      string `json:"font_family" yaml:"font_family" validate:"max=100"`
	FontSize        string `json:"font_size" yaml:"font_size" validate:"font_size"`
	PageWidth       string `json:"page_width" yaml:"page_width" validate:"page_width"`
	IsRTL           bool   `json:"is_rtl" yaml:"is_rtl"`
}

type LinkInput struct {
	Title         string            `json:"title" validate:"required,max=200"`
	URL           string            `json:"url" validate:"required,max=2048"`
	Icon          domain.IconSource `json:"icon" validate:"icon_source"`
	IconStyle     domain.IconStyle  `json:"icon_style" validate:"icon_style"`
	CustomIconURL string            `json:"custom_icon_url" validate:"max=2048"`
	Description   string            `json:"description" validate:"max=500"`
	Active        *bool             `json:"is_active"`
}

type BlockInput struct {
	Type    string `json:"type" validate:"required,block_kind"`
	Title   string `json:"title" validate:"max=200"`
	Content string `json:"content"`
	Active  *bool  `json:"is_active"`
}

// MediaKind selects the storage folder for an upload.
type MediaKind string

const (
	MediaAvatar  MediaKind = "avatar"
	MediaIcon    MediaKind = "icon"
	MediaContent MediaKind = "content"
)

// PageService serves the public profile page
type PageService interface {
	Compose(ctx context.Context, username string) (*render.Page, error)
	// ResolveClick records a link activation and returns its destination.
	ResolveClick(ctx context.Context, linkID int64) (string, error)
}

// ProfileService defines the business logic for the owner's profile
type ProfileService interface {
	GetOrCreate(ctx context.Context, user domain.User) (*domain.Profile, error)
	Update(ctx context.Context, userID string, in ProfileInput) (*domain.Profile, error)
	UploadAvatar(ctx context.Context, userID, filename string, data []byte) (*domain.Profile, error)
}

// LinkService defines the dashboard operations on links
type LinkService interface {
	List(ctx context.Context, userID string) ([]domain.Link, error)
	Create(ctx context.Context, userID string, in LinkInput) (*domain.Link, error)
	Update(ctx context.Context, userID string, id int64, in LinkInput) (*domain.Link, error)
	Delete(ctx context.Context, userID string, id int64) error
	SetActive(ctx context.Context, userID string, id int64, active bool) (*domain.Link, error)
	Move(ctx context.Context, userID string, id int64, from, to int) ([]domain.Link, error)
}

// BlockService defines the dashboard operations on content blocks
type BlockService interface {
	List(ctx context.Context, userID string) ([]domain.ContentBlock, error)
	Create(ctx context.Context, userID string, in BlockInput) (*domain.ContentBlock, error)
	Update(ctx context.Context, userID string, id int64, in BlockInput) (*domain.ContentBlock, error)
	Delete(ctx context.Context, userID string, id int64) error
	SetActive(ctx context.Context, userID string, id int64, active bool) (*domain.ContentBlock, error)
	Move(ctx context.Context, userID string, id int64, from, to int) ([]domain.ContentBlock, error)
}

type MediaService interface {
	Upload(ctx context.Context, userID string, kind MediaKind, filename string, data []byte) (string, error)
}

type StatsService interface {
	Dashboard(ctx context.Context, userID string) (*domain.DashboardStats, error)
}
