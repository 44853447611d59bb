package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/gomemo/internal/dependencies/clock"
	"github.com/mcoot/gomemo/internal/dependencies/random"
	"github.com/mcoot/gomemo/internal/model"
	"github.com/mcoot/gomemo/internal/services/replay"
	"github.com/mcoot/gomemo/internal/testutil"
	"github.com/mcoot/gomemo/internal/web/sse"
)

func newTestController(t *testing.T) *replay.Controller {
	t.Helper()
	record := &model.GameRecord{
		ID:        "rec-1",
		Name:      "one move",
		BoardSize: 9,
		Moves:     []model.Move{{X: 2, Y: 2, Color: model.Black, MoveNumber: 1}},
	}
	c, err := replay.NewController("session-1", record, clock.New(), random.New(), nil,
		replay.DefaultConfig(), nil, testutil.NopLogger())
	require.NoError(t, err)
	return c
}

func TestJoinHub(t *testing.T) {
	hubs := sse.NewHubManager(testutil.NopLogger())
	defer hubs.CloseAll()
	h := NewSessionHandler(nil, hubs, testutil.NopLogger())

	c := newTestController(t)
	hub, err := h.joinHub(c)
	require.NoError(t, err)
	assert.Same(t, hub, hubs.GetHub(c.ID()))
}

func TestJoinHub_ClosedSession(t *testing.T) {
	hubs := sse.NewHubManager(testutil.NopLogger())
	defer hubs.CloseAll()
	h := NewSessionHandler(nil, hubs, testutil.NopLogger())

	// Closed between the snapshot and the hub lookup
	c := newTestController(t)
	c.Close()

	hub, err := h.joinHub(c)
	assert.ErrorIs(t, err, model.ErrSessionClosed)
	assert.Nil(t, hub)
	assert.Nil(t, hubs.GetHub(c.ID()), "hub left behind for a closed session")
}
