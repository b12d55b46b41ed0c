package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/domain"
)

const linkColumns = `id, user_id, title, url, icon, icon_style, custom_icon_url, description,
	is_active, position, clicks, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteRepository) CreateLink(ctx context.Context, l *domain.Link) error {
	return insertLink(ctx, r.db, l)
}

func insertLink(ctx context.Context, db execer, l *domain.Link) error {
	query := `INSERT INTO links (user_id, title, url, icon, icon_style, custom_icon_url, description,
			  is_active, position, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	res, err := db.ExecContext(ctx, query,
		l.UserID, l.Title, l.URL, string(l.Icon), string(l.IconStyle), l.CustomIconURL, l.Description,
		encodeFlag(l.Active), l.Position, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	l.ID = id
	return nil
}

func (r *SQLiteRepository) GetLink(ctx context.Context, id int64) (*domain.Link, error) {
	query := `SELECT ` + linkColumns + ` FROM links WHERE id = ?`

	l, err := scanLink(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *SQLiteRepository) UpdateLink(ctx context.Context, l *domain.Link) error {
	query := `UPDATE links SET title = ?, url = ?, icon = ?, icon_style = ?, custom_icon_url = ?,
			  description = ?, is_active = ?, position = ?, updated_at = ? WHERE id = ?`

	_, err := r.db.ExecContext(ctx, query,
		l.Title, l.URL, string(l.Icon), string(l.IconStyle), l.CustomIconURL,
		l.Description, encodeFlag(l.Active), l.Position, l.UpdatedAt, l.ID,
	)
	return err
}

func (r *SQLiteRepository) DeleteLink(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM links WHERE id = ?`, id)
	return err
}

func (r *SQLiteRepository) ListLinks(ctx context.Context, userID string, activeOnly bool) ([]domain.Link, error) {
	query := `SELECT ` + linkColumns + ` FROM links WHERE user_id = ?`
	if activeOnly {
		query += ` AND is_active = '1'`
	}
	query += ` ORDER BY position ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	links := []domain.Link{}
	for rows.Next() {
		l, err := scanLink(rows)
		if err != nil {
			return nil, err
		}
		links = append(links, *l)
	}
	return links, rows.Err()
}

// UpdateLinkPositions applies a full reindex atomically: either every
// position is written or none is.
func (r *SQLiteRepository) UpdateLinkPositions(ctx context.Context, userID string, positions map[int64]int) error {
	return r.updatePositions(ctx, "links", userID, positions, domain.ErrLinkNotFound)
}

func (r *SQLiteRepository) updatePositions(ctx context.Context, table, userID string, positions map[int64]int, missing error) error {
	if len(positions) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `UPDATE `+table+` SET position = ?, updated_at = ? WHERE id = ? AND user_id = ?`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	ids := make([]int64, 0, len(positions))
	for id := range positions {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	now := time.Now()
	for _, id := range ids {
		res, err := stmt.ExecContext(ctx, positions[id], now, id, userID)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("reindex %s id %d: %w", table, id, missing)
		}
	}

	return tx.Commit()
}

func scanLink(row rowScanner) (*domain.Link, error) {
	var l domain.Link
	var icon, iconStyle, active string
	err := row.Scan(
		&l.ID, &l.UserID, &l.Title, &l.URL, &icon, &iconStyle, &l.CustomIconURL, &l.Description,
		&active, &l.Position, &l.Clicks, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	l.Icon = domain.IconSource(icon)
	l.IconStyle = domain.IconStyle(iconStyle)
	l.Active = decodeFlag(active)
	return &l, nil
}
