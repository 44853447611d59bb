package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mcoot/gomemo/internal/model"
	"github.com/mcoot/gomemo/internal/services/replay"
	"github.com/mcoot/gomemo/internal/session"
	"github.com/mcoot/gomemo/internal/web/middleware"
	"github.com/mcoot/gomemo/internal/web/templates/layout"
	"github.com/mcoot/gomemo/internal/web/templates/pages"
)

// difficultOnPage bounds the difficult moves listed beside the board
const difficultOnPage = 5

// SessionHandler handles the session page and its form actions.
// Every action redirects back to the page (post/redirect/get).
type SessionHandler struct {
	manager *replay.Manager
	logger  *slog.Logger
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(manager *replay.Manager, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		manager: manager,
		logger:  logger,
	}
}

// Create opens a session over a record and redirects to it
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	id := model.RecordID(mux.Vars(r)["id"])

	c, err := h.manager.Create(r.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrRecordNotFound) {
			middleware.SetFlash(w, "error", "Record not found")
		} else {
			h.logger.Error("failed to create session", slog.Any("error", err))
			middleware.SetFlash(w, "error", "Could not open the record")
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, sessionPath(c.ID()), http.StatusSeeOther)
}

// View renders the session page
func (h *SessionHandler) View(w http.ResponseWriter, r *http.Request) {
	c, ok := h.controller(w, r)
	if !ok {
		return
	}

	state, err := c.State()
	if err != nil {
		h.sessionGone(w, r)
		return
	}

	data := pages.SessionData{
		PageData: layout.PageData{
			Title: c.Record().Name,
			Flash: middleware.GetFlash(r.Context()),
		},
		SessionID:  string(c.ID()),
		RecordName: c.Record().Name,
		State:      state,
	}
	if state.Phase == session.PhaseComplete {
		if stats, err := c.CompletionStats(); err == nil {
			data.Completion = &stats
		}
	}
	if difficult, err := c.DifficultMoves(difficultOnPage); err == nil {
		data.Difficult = difficult
	}

	render(w, r, pages.Session(data))
}

// StudyNext steps forward through the record
func (h *SessionHandler) StudyNext(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(c *replay.Controller) error {
		_, err := c.StudyNext()
		return err
	})
}

// StudyPrev steps backward through the record
func (h *SessionHandler) StudyPrev(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(c *replay.Controller) error {
		_, err := c.StudyPrev()
		return err
	})
}

// StartReplay starts a replay from the form's one-based move numbers
func (h *SessionHandler) StartReplay(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(c *replay.Controller) error {
		start, err := formInt(r, "start_move", 1)
		if err != nil {
			return err
		}
		end, err := formInt(r, "end_move", c.Record().TotalMoves())
		if err != nil {
			return err
		}
		side, err := model.ParseColor(r.FormValue("side"))
		if err != nil {
			return err
		}
		return c.StartReplay(start-1, end-1, side)
	})
}

// Click validates a click on the board. The form posts the point as "x,y".
func (h *SessionHandler) Click(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(c *replay.Controller) error {
		x, y, err := parsePoint(r.FormValue("point"))
		if err != nil {
			return err
		}
		valid, err := c.IsValidPosition(x, y)
		if err != nil {
			return err
		}
		if !valid {
			return model.ErrInvalidPosition
		}
		result, err := c.ValidateMove(x, y)
		if err != nil {
			return err
		}
		flashMoveResult(w, result)
		return nil
	})
}

// Pass validates a pass
func (h *SessionHandler) Pass(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(c *replay.Controller) error {
		result, err := c.ValidatePass()
		if err != nil {
			return err
		}
		flashMoveResult(w, result)
		return nil
	})
}

// Reset returns the session to study
func (h *SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, (*replay.Controller).Reset)
}

// Close ends the session and returns home
func (h *SessionHandler) Close(w http.ResponseWriter, r *http.Request) {
	id := model.SessionID(mux.Vars(r)["id"])
	if err := h.manager.Close(id); err != nil {
		middleware.SetFlash(w, "error", "Session not found")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// act runs an action against the session and redirects back to its page,
// flashing any error
func (h *SessionHandler) act(w http.ResponseWriter, r *http.Request, action func(*replay.Controller) error) {
	c, ok := h.controller(w, r)
	if !ok {
		return
	}

	if err := action(c); err != nil {
		if errors.Is(err, model.ErrSessionClosed) {
			h.sessionGone(w, r)
			return
		}
		middleware.SetFlash(w, "error", actionError(err))
	}
	http.Redirect(w, r, sessionPath(c.ID()), http.StatusSeeOther)
}

// controller looks up the session in the path, redirecting home if it is gone
func (h *SessionHandler) controller(w http.ResponseWriter, r *http.Request) (*replay.Controller, bool) {
	c, err := h.manager.Get(model.SessionID(mux.Vars(r)["id"]))
	if err != nil {
		h.sessionGone(w, r)
		return nil, false
	}
	return c, true
}

func (h *SessionHandler) sessionGone(w http.ResponseWriter, r *http.Request) {
	middleware.SetFlash(w, "info", "That session has ended")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func sessionPath(id model.SessionID) string {
	return "/sessions/" + string(id)
}

func flashMoveResult(w http.ResponseWriter, result session.MoveResult) {
	switch {
	case result.GameComplete:
		middleware.SetFlash(w, "success", "Replay complete!")
	case result.Correct:
		// The board already shows it
	case result.ExpectedPass:
		middleware.SetFlash(w, "error", "Not a stone: the player passed here")
	case result.Hint != nil && result.Hint.Position != nil:
		middleware.SetFlash(w, "error", "Not quite. The move is marked in red.")
	default:
		middleware.SetFlash(w, "error", fmt.Sprintf("Not quite. Look in the highlighted area (attempt %d).", result.Attempts))
	}
}

// actionError turns an error into a message for the user
func actionError(err error) string {
	switch {
	case errors.Is(err, model.ErrNotInStudy):
		return "Finish or reset the replay first"
	case errors.Is(err, model.ErrNotInReplay):
		return "Start a replay first"
	case errors.Is(err, model.ErrReplayExhausted):
		return "No moves left to replay"
	case errors.Is(err, model.ErrNotUserTurn):
		return "Wait for the opponent's move"
	case errors.Is(err, model.ErrInvalidRange):
		return "Invalid move range"
	case errors.Is(err, model.ErrInvalidColor):
		return "Choose black, white or both"
	case errors.Is(err, model.ErrInvalidPosition):
		return "Invalid point"
	default:
		return "Something went wrong"
	}
}

func formInt(r *http.Request, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(r.FormValue(key))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, model.ErrInvalidRange
	}
	return n, nil
}

func parsePoint(raw string) (int, int, error) {
	xs, ys, ok := strings.Cut(raw, ",")
	if !ok {
		return 0, 0, model.ErrInvalidPosition
	}
	x, errX := strconv.Atoi(xs)
	y, errY := strconv.Atoi(ys)
	if errX != nil || errY != nil {
		return 0, 0, model.ErrInvalidPosition
	}
	return x, y, nil
}
