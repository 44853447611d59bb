package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/gomemo/internal/api/request"
	"github.com/mcoot/gomemo/internal/api/response"
	"github.com/mcoot/gomemo/internal/model"
	"github.com/mcoot/gomemo/internal/services/replay"
	"github.com/mcoot/gomemo/internal/session"
	"github.com/mcoot/gomemo/internal/web/sse"
)

// SessionHandler handles study and replay session endpoints
type SessionHandler struct {
	manager    *replay.Manager
	hubManager *sse.HubManager
	logger     *slog.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(manager *replay.Manager, hubManager *sse.HubManager, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		manager:    manager,
		hubManager: hubManager,
		logger:     logger,
	}
}

// controller looks up the session named in the path
func (h *SessionHandler) controller(r *http.Request) (*replay.Controller, error) {
	return h.manager.Get(model.SessionID(mux.Vars(r)["id"]))
}

// writeSession writes the session with its current state
func (h *SessionHandler) writeSession(w http.ResponseWriter, status int, c *replay.Controller) {
	state, err := c.State()
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, status, response.Session{
		ID:        string(c.ID()),
		RecordID:  string(c.Record().ID),
		Name:      c.Record().Name,
		CreatedAt: c.CreatedAt(),
		State:     state,
	})
}

// Create handles POST /api/v1/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}
	if req.RecordID == "" {
		WriteError(w, NewInvalidRequestError("record_id is required"))
		return
	}

	c, err := h.manager.Create(r.Context(), model.RecordID(req.RecordID))
	if err != nil {
		WriteError(w, err)
		return
	}

	h.writeSession(w, http.StatusCreated, c)
}

// Get handles GET /api/v1/sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.controller(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.writeSession(w, http.StatusOK, c)
}

// Close handles DELETE /api/v1/sessions/{id}
func (h *SessionHandler) Close(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.Close(model.SessionID(mux.Vars(r)["id"])); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// StudyNext handles POST /api/v1/sessions/{id}/study/next
func (h *SessionHandler) StudyNext(w http.ResponseWriter, r *http.Request) {
	h.study(w, r, (*replay.Controller).StudyNext)
}

// StudyPrev handles POST /api/v1/sessions/{id}/study/prev
func (h *SessionHandler) StudyPrev(w http.ResponseWriter, r *http.Request) {
	h.study(w, r, (*replay.Controller).StudyPrev)
}

func (h *SessionHandler) study(w http.ResponseWriter, r *http.Request, step func(*replay.Controller) (session.StudyResult, error)) {
	c, err := h.controller(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	result, err := step(c)
	if err != nil {
		WriteError(w, err)
		return
	}

	state, err := c.State()
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.StudyResponse{Result: result, State: state})
}

// StartReplay handles POST /api/v1/sessions/{id}/replay
func (h *SessionHandler) StartReplay(w http.ResponseWriter, r *http.Request) {
	c, err := h.controller(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.StartReplayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	side, err := model.ParseColor(req.Side)
	if err != nil {
		WriteError(w, err)
		return
	}
	endMove := c.Record().TotalMoves() - 1
	if req.EndMove != nil {
		endMove = *req.EndMove
	}

	if err := c.StartReplay(req.StartMove, endMove, side); err != nil {
		WriteError(w, err)
		return
	}

	h.writeSession(w, http.StatusOK, c)
}

// Reset handles POST /api/v1/sessions/{id}/reset
func (h *SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	c, err := h.controller(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := c.Reset(); err != nil {
		WriteError(w, err)
		return
	}

	h.writeSession(w, http.StatusOK, c)
}

// Move handles POST /api/v1/sessions/{id}/moves
func (h *SessionHandler) Move(w http.ResponseWriter, r *http.Request) {
	c, err := h.controller(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}
	if req.X == nil || req.Y == nil {
		WriteError(w, NewInvalidRequestError("x and y are required"))
		return
	}
	size := c.Record().BoardSize
	if *req.X < 0 || *req.X >= size || *req.Y < 0 || *req.Y >= size {
		WriteError(w, model.ErrInvalidPosition)
		return
	}

	result, err := c.ValidateMove(*req.X, *req.Y)
	h.writeMove(w, c, result, err)
}

// Pass handles POST /api/v1/sessions/{id}/pass
func (h *SessionHandler) Pass(w http.ResponseWriter, r *http.Request) {
	c, err := h.controller(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	result, err := c.ValidatePass()
	h.writeMove(w, c, result, err)
}

func (h *SessionHandler) writeMove(w http.ResponseWriter, c *replay.Controller, result session.MoveResult, err error) {
	if err != nil {
		WriteError(w, err)
		return
	}

	state, err := c.State()
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.MoveResponse{Result: result, State: state})
}

// Hint handles GET /api/v1/sessions/{id}/hint
func (h *SessionHandler) Hint(w http.ResponseWriter, r *http.Request) {
	c, err := h.controller(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	current, err := c.CurrentHint()
	if err != nil {
		WriteError(w, err)
		return
	}
	state, err := c.State()
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.HintResponse{Hint: current, Attempts: state.Attempts})
}

// Board handles GET /api/v1/sessions/{id}/boards/{position}
func (h *SessionHandler) Board(w http.ResponseWriter, r *http.Request) {
	c, err := h.controller(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	position, err := strconv.Atoi(mux.Vars(r)["position"])
	if err != nil {
		WriteError(w, NewInvalidRequestError("position must be an integer"))
		return
	}

	state, err := c.BoardAt(position)
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := response.BoardResponse{
		Position:  position,
		BoardSize: state.Size(),
		Board:     state.Grid(),
	}
	resp.Captures.Black = state.Captures(model.Black)
	resp.Captures.White = state.Captures(model.White)
	response.JSON(w, http.StatusOK, resp)
}

// WrongAttempts handles GET /api/v1/sessions/{id}/wrong-attempts/{move}
func (h *SessionHandler) WrongAttempts(w http.ResponseWriter, r *http.Request) {
	c, err := h.controller(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	moveIndex, err := strconv.Atoi(mux.Vars(r)["move"])
	if err != nil {
		WriteError(w, NewInvalidRequestError("move must be an integer"))
		return
	}

	attempts, err := c.WrongAttempts(moveIndex)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.WrongAttemptsResponse{MoveIndex: moveIndex, WrongAttempts: attempts})
}

// Difficult handles GET /api/v1/sessions/{id}/difficult?limit=n.
// Without a limit every difficult move is listed.
func (h *SessionHandler) Difficult(w http.ResponseWriter, r *http.Request) {
	c, err := h.controller(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	limit := c.Record().TotalMoves()
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			WriteError(w, NewInvalidRequestError("limit must be a non-negative integer"))
			return
		}
	}

	moves, err := c.DifficultMoves(limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.DifficultMovesResponse{Moves: moves})
}

// Stats handles GET /api/v1/sessions/{id}/stats
func (h *SessionHandler) Stats(w http.ResponseWriter, r *http.Request) {
	c, err := h.controller(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	stats, err := c.CompletionStats()
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, stats)
}

// Events handles GET /api/v1/sessions/{id}/events.
// The stream opens with a snapshot of the current state and then carries
// every event the session publishes until it is closed.
func (h *SessionHandler) Events(w http.ResponseWriter, r *http.Request) {
	c, err := h.controller(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	event, err := c.SnapshotEvent()
	if err != nil {
		WriteError(w, err)
		return
	}
	initial, err := sse.FormatEvent(event)
	if err != nil {
		h.logger.Error("failed to encode snapshot", slog.String("error", err.Error()))
		WriteError(w, err)
		return
	}

	hub, err := h.joinHub(c)
	if err != nil {
		WriteError(w, err)
		return
	}
	sse.ServeSSE(w, r, hub, initial)
}

// joinHub returns the session's hub. A session that closed before the hub
// existed never removes it, so the hub is dropped here instead.
func (h *SessionHandler) joinHub(c *replay.Controller) (*sse.Hub, error) {
	hub := h.hubManager.GetOrCreateHub(c.ID())
	if _, err := c.State(); err != nil {
		h.hubManager.RemoveHub(c.ID())
		return nil, err
	}
	return hub, nil
}
