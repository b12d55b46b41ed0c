package domain

// DashboardStats aggregates the analytics shown to a profile owner
type DashboardStats struct {
	TotalViews       int64        `json:"total_views"`
	TotalClicks      int64        `json:"total_clicks"`
	ClickThroughRate float64      `json:"click_through_rate"` // percent
	DailyViews       []DailyCount `json:"daily_views"`
	TopLinks         []LinkClicks `json:"top_links"`
}

type DailyCount struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int64  `json:"count"`
}

type LinkClicks struct {
	LinkID int64  `json:"link_id"`
	Title  string `json:"title"`
	Clicks int64  `json:"clicks"`
}

// Snapshot is the full authoring state of one user, used for export and import.
type Snapshot struct {
	Profile *Profile       `json:"profile" yaml:"profile"`
	Links   []Link         `json:"links" yaml:"links"`
	Blocks  []ContentBlock `json:"blocks" yaml:"blocks"`
}
