package kafka

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/zonal-anomaly-viz/internal/domain"
)

func TestSerializeToMessage(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	band := 4
	evt := domain.GroupingEvent{
		Action:     domain.ActionCycle,
		Band:       &band,
		Grouping:   domain.DefaultGrouping(),
		OccurredAt: now,
	}

	msg, err := serializeToMessage(evt)
	require.NoError(t, err)

	assert.Equal(t, []byte(domain.ActionCycle), msg.Key)
	assert.Contains(t, string(msg.Value), `"action":"cycle"`)
	assert.Contains(t, string(msg.Value), `"band":4`)
	assert.Contains(t, string(msg.Value), `"grouping":[1,2,3,3,2,1]`)

	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "action", msg.Headers[0].Key)
	assert.Equal(t, []byte("cycle"), msg.Headers[0].Value)
	assert.Equal(t, "occurred_at", msg.Headers[1].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[1].Value)
}

func TestSerializeToMessage_NoBandForResets(t *testing.T) {
	evt := domain.GroupingEvent{
		Action:   domain.ActionClear,
		Grouping: domain.EmptyGrouping(),
	}

	msg, err := serializeToMessage(evt)
	require.NoError(t, err)

	assert.Equal(t, []byte(domain.ActionClear), msg.Key)
	assert.NotContains(t, string(msg.Value), `"band"`)
}
