package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mcoot/gomemo/internal/model"
	"github.com/mcoot/gomemo/internal/services/history"
	"github.com/mcoot/gomemo/internal/services/records"
	"github.com/mcoot/gomemo/internal/web/middleware"
	"github.com/mcoot/gomemo/internal/web/templates/layout"
	"github.com/mcoot/gomemo/internal/web/templates/pages"
)

// HomeHandler handles the record list and imports
type HomeHandler struct {
	records *records.Service
	history *history.Service
	logger  *slog.Logger
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(records *records.Service, history *history.Service, logger *slog.Logger) *HomeHandler {
	return &HomeHandler{
		records: records,
		history: history,
		logger:  logger,
	}
}

// Home renders the home page
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	list, err := h.records.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list records", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	best := make(map[model.RecordID]*model.ReplayResult, len(list))
	for _, rec := range list {
		res, err := h.history.Best(r.Context(), rec.ID)
		if err != nil {
			// Records deleted meanwhile just show no score
			continue
		}
		if res != nil {
			best[rec.ID] = res
		}
	}

	data := pages.HomeData{
		PageData: layout.PageData{
			Title: "Records",
			Flash: middleware.GetFlash(r.Context()),
		},
		Records: list,
		Best:    best,
	}

	render(w, r, pages.Home(data))
}

// Import handles the upload form. The SGF can come as a file or pasted text.
func (h *HomeHandler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 2*records.MaxSGFSize)

	data, filename, err := readUpload(r)
	if err != nil {
		middleware.SetFlash(w, "error", err.Error())
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" && filename != "" {
		name = strings.TrimSuffix(filename, filepath.Ext(filename))
	}

	record, err := h.records.Import(r.Context(), name, data)
	if err != nil {
		if errors.Is(err, model.ErrInvalidSGF) || errors.Is(err, model.ErrInvalidRecord) {
			middleware.SetFlash(w, "error", "Could not import: "+err.Error())
		} else {
			h.logger.Error("failed to import record", slog.Any("error", err))
			middleware.SetFlash(w, "error", "Could not import the record")
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	middleware.SetFlash(w, "success", "Imported "+record.Name)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// readUpload returns the SGF from the file field, falling back to the
// text area
func readUpload(r *http.Request) ([]byte, string, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(records.MaxSGFSize); err != nil {
			return nil, "", errors.New("upload too large")
		}
		file, header, err := r.FormFile("sgf_file")
		if err == nil {
			defer file.Close()
			data, err := io.ReadAll(file)
			if err != nil {
				return nil, "", errors.New("could not read the uploaded file")
			}
			if len(data) > 0 {
				return data, header.Filename, nil
			}
		}
	} else if err := r.ParseForm(); err != nil {
		return nil, "", errors.New("invalid form")
	}

	text := strings.TrimSpace(r.FormValue("sgf"))
	if text == "" {
		return nil, "", errors.New("choose an SGF file or paste one")
	}
	return []byte(text), "", nil
}

// Delete removes a record and its history
func (h *HomeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := model.RecordID(mux.Vars(r)["id"])

	if err := h.records.Delete(r.Context(), id); err != nil {
		middleware.SetFlash(w, "error", "Record not found")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	middleware.SetFlash(w, "success", "Record deleted")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
