package sqlite

import (
	"context"
	"fmt"

	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/domain"
)

// ReplaceOwnerContent writes p (inserting it when p.ID is zero) and swaps the
// owner's links and blocks for the given ones. Either all of it lands or none.
func (r *SQLiteRepository) ReplaceOwnerContent(ctx context.Context, p *domain.Profile, links []domain.Link, blocks []domain.ContentBlock) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if p.ID == 0 {
		err = insertProfile(ctx, tx, p)
	} else {
		err = updateProfile(ctx, tx, p)
	}
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM links WHERE user_id = ?`, p.UserID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM content_blocks WHERE user_id = ?`, p.UserID); err != nil {
		return err
	}

	for i := range links {
		if err := insertLink(ctx, tx, &links[i]); err != nil {
			return fmt.Errorf("link %q: %w", links[i].Title, err)
		}
	}
	for i := range blocks {
		if err := insertBlock(ctx, tx, &blocks[i]); err != nil {
			return fmt.Errorf("block %d: %w", i, err)
		}
	}

	return tx.Commit()
}
