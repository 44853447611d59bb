package web_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionPage_Study(t *testing.T) {
	ts := newWebTestServer(t)
	path := ts.openSession(ts.importSample())

	rr := ts.get(path)
	require.Equal(t, http.StatusOK, rr.Code)
	doc := parseHTML(rr.Body)

	assertContainsText(t, doc, "#record-name", "Sample")
	assert.Equal(t, 81, doc.Find("#board .cell").Length())
	assertNotContainsElement(t, doc, "#board .stone")
	// Read-only outside replay
	assertNotContainsElement(t, doc, "#board button")
	assertContainsElement(t, doc, "#study-prev[disabled]")
	assertContainsElement(t, doc, "#replay-form")
	assertContainsText(t, doc, "script", "/events")

	// Step forward twice
	for range 2 {
		rr = ts.post(path+"/study/next", nil)
		require.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, path, rr.Header().Get("Location"))
	}

	doc = parseHTML(ts.get(path).Body)
	assertContainsText(t, doc, "#study-position", "2")
	assertContainsElement(t, doc, "#board .cell[data-x='2'][data-y='2'] .stone.black")
	assertContainsElement(t, doc, "#board .cell[data-x='6'][data-y='6'] .stone.white.last")
}

func TestSessionPage_ReplayWithHints(t *testing.T) {
	ts := newWebTestServer(t)
	path := ts.openSession(ts.importSample())

	rr := ts.post(path+"/replay", url.Values{"start_move": {"1"}, "end_move": {"5"}, "side": {""}})
	doc := parseHTML(ts.followRedirect(rr).Body)
	assertContainsText(t, doc, "#replay-position", "1")
	assert.Equal(t, 81, doc.Find("#board button.cell").Length())
	assertContainsElement(t, doc, "#pass")

	// A wrong click highlights the quadrant holding the answer
	rr = ts.post(path+"/click", url.Values{"point": {"8,8"}})
	doc = parseHTML(ts.followRedirect(rr).Body)
	assertContainsText(t, doc, ".flash-error", "highlighted area")
	assert.Equal(t, 16, doc.Find("#board .cell.hint").Length())
	assertContainsElement(t, doc, "#board .cell.hint[data-x='0'][data-y='0']")
	assertNotContainsElement(t, doc, "#board .cell.hint[data-x='4'][data-y='4']")
	assertContainsText(t, doc, "#stat-wrong-moves", "1")

	// The right click places the stone and clears the hint
	rr = ts.post(path+"/click", url.Values{"point": {"2,2"}})
	doc = parseHTML(ts.followRedirect(rr).Body)
	assertNotContainsElement(t, doc, ".flash")
	assertNotContainsElement(t, doc, "#board .cell.hint")
	assertContainsElement(t, doc, "#board .cell[data-x='2'][data-y='2'] .stone.black")
	assertContainsText(t, doc, "#replay-position", "2")

	for _, p := range []string{"6,6", "6,2", "2,6"} {
		rr = ts.post(path+"/click", url.Values{"point": {p}})
		require.Equal(t, http.StatusSeeOther, rr.Code)
	}
	rr = ts.post(path+"/pass", nil)
	doc = parseHTML(ts.followRedirect(rr).Body)

	assertContainsText(t, doc, ".flash-success", "Replay complete")
	assertContainsElement(t, doc, "#complete")
	assertContainsText(t, doc, "#stat-accuracy", "80%")
	assertContainsElement(t, doc, "#difficult li[data-move='0']")

	// The home page now shows the best score
	doc = parseHTML(ts.get("/").Body)
	assertContainsText(t, doc, "#records .best", "80%")
}

func TestSessionPage_OpponentMoves(t *testing.T) {
	ts := newWebTestServer(t)
	path := ts.openSession(ts.importSample())

	// Play white; black's first move comes from the opponent
	rr := ts.post(path+"/replay", url.Values{"start_move": {"1"}, "end_move": {"4"}, "side": {"W"}})
	doc := parseHTML(ts.followRedirect(rr).Body)
	assertContainsElement(t, doc, "#waiting")
	assertNotContainsElement(t, doc, "#board button")

	rr = ts.post(path+"/click", url.Values{"point": {"2,2"}})
	doc = parseHTML(ts.followRedirect(rr).Body)
	assertContainsText(t, doc, ".flash-error", "Wait for the opponent")

	ts.app.MockClock.Advance(time.Second)

	doc = parseHTML(ts.get(path).Body)
	assertNotContainsElement(t, doc, "#waiting")
	assertContainsElement(t, doc, "#board .cell[data-x='2'][data-y='2'] .stone.black")
	assertContainsText(t, doc, "#controls", "White to play")
}

func TestSessionPage_ExactHint(t *testing.T) {
	ts := newWebTestServer(t)
	path := ts.openSession(ts.importSample())

	rr := ts.post(path+"/replay", url.Values{"start_move": {"1"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)

	// 9x9: quadrant 4x4, one bisection to 2x2, then the exact point
	for range 3 {
		rr = ts.post(path+"/click", url.Values{"point": {"8,8"}})
		require.Equal(t, http.StatusSeeOther, rr.Code)
	}
	doc := parseHTML(ts.followRedirect(rr).Body)
	assertContainsText(t, doc, ".flash-error", "marked in red")
	assertContainsElement(t, doc, "#board .cell.hint-exact[data-x='2'][data-y='2']")
	assert.Equal(t, 1, doc.Find("#board .hint-exact").Length())
}

func TestSessionPage_OccupiedPoint(t *testing.T) {
	ts := newWebTestServer(t)
	path := ts.openSession(ts.importSample())

	rr := ts.post(path+"/replay", url.Values{"start_move": {"1"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	rr = ts.post(path+"/click", url.Values{"point": {"2,2"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)

	// The stone at 2,2 has no button, but a forged post is still refused
	rr = ts.post(path+"/click", url.Values{"point": {"2,2"}})
	doc := parseHTML(ts.followRedirect(rr).Body)
	assertContainsText(t, doc, ".flash-error", "Invalid point")
	assertContainsText(t, doc, "#replay-position", "2")
	assertContainsText(t, doc, "#stat-wrong-moves", "0")
	assertNotContainsElement(t, doc, "#board button.cell[data-x='2'][data-y='2']")
}

func TestSessionPage_InvalidActions(t *testing.T) {
	ts := newWebTestServer(t)
	path := ts.openSession(ts.importSample())

	tests := []struct {
		name    string
		action  string
		form    url.Values
		message string
	}{
		{"pass during study", "/pass", nil, "Start a replay first"},
		{"bad range", "/replay", url.Values{"start_move": {"4"}, "end_move": {"2"}}, "Invalid move range"},
		{"bad side", "/replay", url.Values{"side": {"X"}}, "Choose black, white or both"},
		{"click during study", "/click", url.Values{"point": {"1,1"}}, "Start a replay first"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := ts.post(path+tt.action, tt.form)
			doc := parseHTML(ts.followRedirect(rr).Body)
			assertContainsText(t, doc, ".flash-error", tt.message)
		})
	}
}

func TestSessionPage_ResetAndClose(t *testing.T) {
	ts := newWebTestServer(t)
	path := ts.openSession(ts.importSample())

	rr := ts.post(path+"/replay", url.Values{"start_move": {"1"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)

	rr = ts.post(path+"/reset", nil)
	doc := parseHTML(ts.followRedirect(rr).Body)
	assertContainsElement(t, doc, "#study-next")
	assertContainsText(t, doc, "#study-position", "0")

	rr = ts.post(path+"/close", nil)
	assert.Equal(t, "/", rr.Header().Get("Location"))
	assert.Equal(t, 0, ts.app.SessionManager.Count())

	rr = ts.get(path)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.True(t, strings.HasSuffix(rr.Header().Get("Location"), "/"))
}
