package domain

import (
	"strconv"
	"time"
)

const (
	EventProfileView = "profile_view"
	EventLinkClick   = "link_click"
)

// Event is an analytics record produced by the public page.
type Event struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Attributes map[string]any `json:"attributes"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// Int64 reads a numeric attribute regardless of how it was encoded.
func (e Event) Int64(key string) int64 {
	switch v := e.Attributes[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	default:
		return 0
	}
}

func (e Event) String(key string) string {
	s, _ := e.Attributes[key].(string)
	return s
}
