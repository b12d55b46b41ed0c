package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/domain"
)

const blockColumns = `id, user_id, type, title, content, is_active, position, created_at, updated_at`

func (r *SQLiteRepository) CreateBlock(ctx context.Context, b *domain.ContentBlock) error {
	return insertBlock(ctx, r.db, b)
}

func insertBlock(ctx context.Context, db execer, b *domain.ContentBlock) error {
	query := `INSERT INTO content_blocks (user_id, type, title, content, is_active, position, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	res, err := db.ExecContext(ctx, query,
		b.UserID, string(b.Kind), b.Title, b.Content, encodeFlag(b.Active), b.Position, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = id
	return nil
}

func (r *SQLiteRepository) GetBlock(ctx context.Context, id int64) (*domain.ContentBlock, error) {
	query := `SELECT ` + blockColumns + ` FROM content_blocks WHERE id = ?`

	b, err := scanBlock(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *SQLiteRepository) UpdateBlock(ctx context.Context, b *domain.ContentBlock) error {
	query := `UPDATE content_blocks SET type = ?, title = ?, content = ?, is_active = ?, position = ?, updated_at = ?
			  WHERE id = ?`

	_, err := r.db.ExecContext(ctx, query,
		string(b.Kind), b.Title, b.Content, encodeFlag(b.Active), b.Position, b.UpdatedAt, b.ID,
	)
	return err
}

func (r *SQLiteRepository) DeleteBlock(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM content_blocks WHERE id = ?`, id)
	return err
}

func (r *SQLiteRepository) ListBlocks(ctx context.Context, userID string, activeOnly bool) ([]domain.ContentBlock, error) {
	query := `SELECT ` + blockColumns + ` FROM content_blocks WHERE user_id = ?`
	if activeOnly {
		query += ` AND is_active = '1'`
	}
	query += ` ORDER BY position ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blocks := []domain.ContentBlock{}
	for rows.Next() {
		b, err := scanBlock(rows)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, *b)
	}
	return blocks, rows.Err()
}

func (r *SQLiteRepository) UpdateBlockPositions(ctx context.Context, userID string, positions map[int64]int) error {
	return r.updatePositions(ctx, "content_blocks", userID, positions, domain.ErrBlockNotFound)
}

func scanBlock(row rowScanner) (*domain.ContentBlock, error) {
	var b domain.ContentBlock
	var kind, active string
	err := row.Scan(&b.ID, &b.UserID, &kind, &b.Title, &b.Content, &active, &b.Position, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	b.Kind = domain.BlockKind(kind)
	b.Active = decodeFlag(active)
	return &b, nil
}
