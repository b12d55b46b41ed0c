package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/domain"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/ports"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/validation"
)

const (
	maxUsernameLen = 32
	minUsernameLen = 3
	// numbered suffixes tried before falling back to a random one
	usernameAttempts = 5
)

type ProfileService struct {
	repo  ports.ProfileRepository
	media ports.MediaService
	cache ports.PageCache
	log   *zap.Logger
}

var _ ports.ProfileService = (*ProfileService)(nil)

func NewProfileService(repo ports.ProfileRepository, media ports.MediaService, cache ports.PageCache, log *zap.Logger) *ProfileService {
	return &ProfileService{repo: repo, media: media, cache: cache, log: log.With(zap.String("component", "profiles"))}
}

// GetOrCreate returns the profile of user, creating it with defaults on the
// first visit. The username is derived from the email address.
func (s *ProfileService) GetOrCreate(ctx context.Context, user domain.User) (*domain.Profile, error) {
	p, err := s.repo.GetProfileByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if p != nil {
		return p, nil
	}

	base := usernameFromEmail(user.Email)
	for attempt := 0; attempt <= usernameAttempts; attempt++ {
		candidate, err := usernameCandidate(base, attempt)
		if err != nil {
			return nil, err
		}

		p = domain.NewDefaultProfile(user.ID, candidate, user.Name, time.Now())
		err = s.repo.CreateProfile(ctx, p)
		if err == nil {
			s.log.Info("created profile", zap.String("user_id", user.ID), zap.String("username", candidate))
			return p, nil
		}
		if !errors.Is(err, domain.ErrUsernameTaken) {
			return nil, err
		}

		// the user may have raced us from another tab
		if existing, lookupErr := s.repo.GetProfileByUserID(ctx, user.ID); lookupErr == nil && existing != nil {
			return existing, nil
		}
	}
	return nil, fmt.Errorf("no free username for %s: %w", user.ID, domain.ErrUsernameTaken)
}

func (s *ProfileService) Update(ctx context.Context, userID string, in ports.ProfileInput) (*domain.Profile, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	p, err := s.repo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProfileNotFound
	}
	previous := p.Username

	p.Username = strings.ToLower(strings.TrimSpace(in.Username))
	p.DisplayName = strings.TrimSpace(in.DisplayName)
	p.Bio = in.Bio
	p.AvatarURL = strings.TrimSpace(in.AvatarURL)
	p.Template = orDefault(in.Template, p.Template)
	p.PrimaryColor = orDefault(in.PrimaryColor, p.PrimaryColor)
	p.BackgroundColor = orDefault(in.BackgroundColor, p.BackgroundColor)
	p.FontFamily = orDefault(in.FontFamily, p.FontFamily)
	p.FontSize = orDefault(in.FontSize, p.FontSize)
	p.PageWidth = orDefault(in.PageWidth, p.PageWidth)
	p.IsRTL = in.IsRTL
	p.UpdatedAt = time.Now()

	if err := s.repo.UpdateProfile(ctx, p); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, previous)
	if !strings.EqualFold(previous, p.Username) {
		s.cache.Invalidate(ctx, p.Username)
	}
	return p, nil
}

// UploadAvatar stores the image and points the profile at it. When the
// upload fails the profile is left untouched.
func (s *ProfileService) UploadAvatar(ctx context.Context, userID, filename string, data []byte) (*domain.Profile, error) {
	p, err := s.repo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProfileNotFound
	}

	url, err := s.media.Upload(ctx, userID, ports.MediaAvatar, filename, data)
	if err != nil {
		return nil, err
	}

	p.AvatarURL = url
	p.UpdatedAt = time.Now()
	if err := s.repo.UpdateProfile(ctx, p); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, p.Username)
	return p, nil
}

func orDefault(v, fallback string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return fallback
}

// usernameFromEmail keeps the characters of the local part a username may
// contain. The result may still be too short to use.
func usernameFromEmail(email string) string {
	local, _, _ := strings.Cut(strings.ToLower(strings.TrimSpace(email)), "@")
	var b strings.Builder
	for _, r := range local {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '.', r == '-':
			b.WriteRune(r)
		case r == '+':
			// plus-addressing tags are not part of the name
			return truncate(b.String(), maxUsernameLen)
		}
	}
	return truncate(b.String(), maxUsernameLen)
}

func usernameCandidate(base string, attempt int) (string, error) {
	if len(base) < minUsernameLen || attempt == usernameAttempts {
		suffix, err := generateSuffix(6)
		if err != nil {
			return "", err
		}
		if len(base) < minUsernameLen {
			base = "user"
		}
		return truncate(base, maxUsernameLen-len(suffix)-1) + "_" + suffix, nil
	}
	if attempt == 0 {
		return base, nil
	}
	suffix := fmt.Sprintf("_%d", attempt+1)
	return truncate(base, maxUsernameLen-len(suffix)) + suffix, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

const charset = "abcdefghijklmnopqrstuvwxyz0123456789"

func generateSuffix(length int) (string, error) {
	b := make([]byte, length)
	for i := range b {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		b[i] = charset[num.Int64()]
	}
	return string(b), nil
}

// checkUsername reports whether s is acceptable; used by snapshot import.
func checkUsername(s string) error {
	if !validation.ValidUsername(s) {
		return &domain.ValidationError{Field: "username", Reason: "must be 3-32 letters, digits, dots, dashes or underscores"}
	}
	return nil
}
