package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/domain"
)

const profileColumns = `id, user_id, username, display_name, bio, avatar_url, template, primary_color,
	background_color, font_family, font_size, page_width, is_rtl, created_at, updated_at`

func (r *SQLiteRepository) CreateProfile(ctx context.Context, p *domain.Profile) error {
	return insertProfile(ctx, r.db, p)
}

func insertProfile(ctx context.Context, db execer, p *domain.Profile) error {
	query := `INSERT INTO profiles (user_id, username, display_name, bio, avatar_url, template, primary_color,
			  background_color, font_family, font_size, page_width, is_rtl, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	res, err := db.ExecContext(ctx, query,
		p.UserID, p.Username, p.DisplayName, p.Bio, p.AvatarURL, p.Template, p.PrimaryColor,
		p.BackgroundColor, p.FontFamily, p.FontSize, p.PageWidth, encodeFlag(p.IsRTL), p.CreatedAt, p.UpdatedAt,
	)
	if isUniqueViolation(err, "profiles.username") {
		return domain.ErrUsernameTaken
	}
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = id
	return nil
}

func (r *SQLiteRepository) GetProfileByUsername(ctx context.Context, username string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE username = ?`
	return scanProfile(r.db.QueryRowContext(ctx, query, username))
}

func (r *SQLiteRepository) GetProfileByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = ?`
	return scanProfile(r.db.QueryRowContext(ctx, query, userID))
}

func (r *SQLiteRepository) UpdateProfile(ctx context.Context, p *domain.Profile) error {
	return updateProfile(ctx, r.db, p)
}

func updateProfile(ctx context.Context, db execer, p *domain.Profile) error {
	query := `UPDATE profiles SET username = ?, display_name = ?, bio = ?, avatar_url = ?, template = ?,
			  primary_color = ?, background_color = ?, font_family = ?, font_size = ?, page_width = ?,
			  is_rtl = ?, updated_at = ? WHERE id = ?`

	_, err := db.ExecContext(ctx, query,
		p.Username, p.DisplayName, p.Bio, p.AvatarURL, p.Template,
		p.PrimaryColor, p.BackgroundColor, p.FontFamily, p.FontSize, p.PageWidth,
		encodeFlag(p.IsRTL), p.UpdatedAt, p.ID,
	)
	if isUniqueViolation(err, "profiles.username") {
		return domain.ErrUsernameTaken
	}
	return err
}

// ListOwners returns every user id that owns links or content blocks.
func (r *SQLiteRepository) ListOwners(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id FROM links
		UNION
		SELECT user_id FROM content_blocks
		ORDER BY user_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var owners []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		owners = append(owners, id)
	}
	return owners, rows.Err()
}

func scanProfile(row *sql.Row) (*domain.Profile, error) {
	var p domain.Profile
	var isRTL string
	err := row.Scan(
		&p.ID, &p.UserID, &p.Username, &p.DisplayName, &p.Bio, &p.AvatarURL, &p.Template, &p.PrimaryColor,
		&p.BackgroundColor, &p.FontFamily, &p.FontSize, &p.PageWidth, &isRTL, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.IsRTL = decodeFlag(isRTL)
	return &p, nil
}
