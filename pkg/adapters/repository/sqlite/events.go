package sqlite

import (
	"context"
	"time"

	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/domain"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/json"
)

// RecordEvent is idempotent on the event id, so a redelivered link_click
// does not count twice.
func (r *SQLiteRepository) RecordEvent(ctx context.Context, e domain.Event) error {
	attrs, err := json.Marshal(e.Attributes)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO events (id, name, profile_id, link_id, attributes, occurred_at) VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Name, e.Int64("profile_id"), e.Int64("link_id"), string(attrs), e.OccurredAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return err
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if inserted > 0 && e.Name == domain.EventLinkClick {
		if _, err := tx.ExecContext(ctx, `UPDATE links SET clicks = clicks + 1 WHERE id = ?`, e.Int64("link_id")); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *SQLiteRepository) GetDashboardStats(ctx context.Context, profileID int64, userID string, since time.Time, topLinks int) (*domain.DashboardStats, error) {
	stats := &domain.DashboardStats{
		DailyViews: []domain.DailyCount{},
		TopLinks:   []domain.LinkClicks{},
	}

	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM events WHERE name = ? AND profile_id = ?`,
		domain.EventProfileView, profileID,
	).Scan(&stats.TotalViews)
	if err != nil {
		return nil, err
	}

	// the clicks column is kept in step with link_click events
	err = r.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(clicks), 0) FROM links WHERE user_id = ?`, userID).Scan(&stats.TotalClicks)
	if err != nil {
		return nil, err
	}

	if stats.TotalViews > 0 {
		stats.ClickThroughRate = float64(stats.TotalClicks) / float64(stats.TotalViews) * 100
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT strftime('%Y-%m-%d', occurred_at) AS date, COUNT(*)
		FROM events
		WHERE name = ? AND profile_id = ? AND occurred_at >= ?
		GROUP BY date
		ORDER BY date ASC`,
		domain.EventProfileView, profileID, since.UTC().Format(timeLayout),
	)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var dc domain.DailyCount
		if err := rows.Scan(&dc.Date, &dc.Count); err != nil {
			rows.Close()
			return nil, err
		}
		stats.DailyViews = append(stats.DailyViews, dc)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.db.QueryContext(ctx, `
		SELECT id, title, clicks
		FROM links
		WHERE user_id = ? AND clicks > 0
		ORDER BY clicks DESC, id ASC
		LIMIT ?`,
		userID, topLinks,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var lc domain.LinkClicks
		if err := rows.Scan(&lc.LinkID, &lc.Title, &lc.Clicks); err != nil {
			return nil, err
		}
		stats.TopLinks = append(stats.TopLinks, lc)
	}

	return stats, rows.Err()
}
