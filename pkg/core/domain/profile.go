package domain

import "time"

const (
	DefaultTemplate        = "designer"
	DefaultPrimaryColor    = "#6366F1"
	DefaultBackgroundColor = "#F8FAFC"
	DefaultFontFamily      = "Inter, sans-serif"
	DefaultFontSize        = "medium"
	DefaultPageWidth       = "normal"
	DefaultBio             = "مرحباً بكم في صفحتي!"
)

// Profile is the public page owned by a single user
type Profile struct {
	ID              int64     `json:"id" yaml:"id"`
	UserID          string    `json:"user_id" yaml:"user_id"`
	Username        string    `json:"username" yaml:"username"`
	DisplayName     string    `json:"display_name" yaml:"display_name"`
	Bio             string    `json:"bio" yaml:"bio"`
	AvatarURL       string    `json:"avatar_url" yaml:"avatar_url"`
	Template        string    `json:"template" yaml:"template"`
	PrimaryColor    string    `json:"primary_color" yaml:"primary_color"`
	BackgroundColor string    `json:"background_color" yaml:"background_color"`
	FontFamily      string    `json:"font_family" yaml:"font_family"`
	FontSize        string    `json:"font_size" yaml:"font_size"`
	PageWidth       string    `json:"page_width" yaml:"page_width"`
	IsRTL           bool      `json:"is_rtl" yaml:"is_rtl"`
	CreatedAt       time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" yaml:"updated_at"`
}

// NewDefaultProfile builds the profile created on a user's first dashboard visit.
func NewDefaultProfile(userID, username, displayName string, now time.Time) *Profile {
	if displayName == "" {
		displayName = username
	}
	return &Profile{
		UserID:          userID,
		Username:        username,
		DisplayName:     displayName,
		Bio:             DefaultBio,
		Template:        DefaultTemplate,
		PrimaryColor:    DefaultPrimaryColor,
		BackgroundColor: DefaultBackgroundColor,
		FontFamily:      DefaultFontFamily,
		FontSize:        DefaultFontSize,
		PageWidth:       DefaultPageWidth,
		IsRTL:           true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// User is the authenticated dashboard identity.
type User struct {
	ID    string
	Email string
	Name  string
}
