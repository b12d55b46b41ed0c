package eventstream

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/domain"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/json"
)

func TestNewMessage(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	e := domain.Event{
		ID:         "evt-1",
		Name:       domain.EventLinkClick,
		Attributes: map[string]any{"profile_id": int64(12), "link_id": int64(3), "link_title": "Blog"},
		OccurredAt: at,
	}

	msg, err := NewMessage(e)
	require.NoError(t, err)
	assert.Equal(t, "12", string(msg.Key))
	assert.Equal(t, at, msg.Time)
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, domain.EventLinkClick, string(msg.Headers[0].Value))

	var decoded domain.Event
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "evt-1", decoded.ID)
	assert.Equal(t, int64(3), decoded.Int64("link_id"))
	assert.Equal(t, "Blog", decoded.String("link_title"))
}
