package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/gomemo/internal/api/apierr"
	"github.com/mcoot/gomemo/internal/api/request"
	"github.com/mcoot/gomemo/internal/api/response"
	"github.com/mcoot/gomemo/internal/model"
	"github.com/mcoot/gomemo/internal/services/history"
	"github.com/mcoot/gomemo/internal/services/records"
)

// RecordHandler handles game record endpoints
type RecordHandler struct {
	records *records.Service
	history *history.Service
}

// NewRecordHandler creates a new record handler
func NewRecordHandler(records *records.Service, history *history.Service) *RecordHandler {
	return &RecordHandler{
		records: records,
		history: history,
	}
}

// Import handles POST /api/v1/records
func (h *RecordHandler) Import(w http.ResponseWriter, r *http.Request) {
	// The SGF travels JSON-escaped, so allow some headroom over the raw limit
	r.Body = http.MaxBytesReader(w, r.Body, 2*records.MaxSGFSize)

	var req request.ImportRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteError(w, apierr.NewRequestTooLargeError())
			return
		}
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}
	if req.SGF == "" {
		WriteError(w, NewInvalidRequestError("sgf is required"))
		return
	}

	record, err := h.records.Import(r.Context(), req.Name, []byte(req.SGF))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, record)
}

// List handles GET /api/v1/records
func (h *RecordHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.records.List(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RecordListFromModel(list))
}

// Get handles GET /api/v1/records/{id}
func (h *RecordHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.RecordID(mux.Vars(r)["id"])

	record, err := h.records.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, record)
}

// Delete handles DELETE /api/v1/records/{id}
func (h *RecordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := model.RecordID(mux.Vars(r)["id"])

	if err := h.records.Delete(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Results handles GET /api/v1/records/{id}/results
func (h *RecordHandler) Results(w http.ResponseWriter, r *http.Request) {
	id := model.RecordID(mux.Vars(r)["id"])

	results, err := h.history.List(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	best, err := h.history.Best(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ResultList{Results: results, Best: best})
}
