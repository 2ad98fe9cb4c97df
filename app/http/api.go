package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"
	"promptgen.arpa/app/engine"
	"promptgen.arpa/app/record"
	"promptgen.arpa/app/session"
	"promptgen.arpa/app/share"
	"promptgen.arpa/tools/random"
)

type categoryResponse struct {
	Key         string `json:"key"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Strategy    string `json:"strategy"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeErr maps domain errors onto status codes.
func (h *Server) writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engine.ErrUnknownCategory), errors.Is(err, session.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, random.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.log.Error("Request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *Server) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	s, err := h.sessions.Session(r.PathValue("category"))
	if err != nil {
		h.writeErr(w, err)
		return nil, false
	}
	return s, true
}

func (h *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	categories := h.sessions.Engine().Categories()
	out := make([]categoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, categoryResponse{
			Key:         c.Key,
			Title:       h.sessions.Engine().Catalog().Title(c.Key),
			Description: c.Description,
			Strategy:    c.Strategy.Kind().String(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Server) generate(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	batch := 1
	if v := r.URL.Query().Get("batch"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid batch %q", v))
			return
		}
		batch = n
	}

	rec, err := s.Generate(batch)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (h *Server) current(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	rec, ok := s.Current()
	if !ok {
		writeError(w, http.StatusNotFound, "nothing generated yet")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *Server) history(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, nonNil(s.History()))
}

func (h *Server) clearHistory(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	s.ClearHistory()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Server) saved(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, nonNil(s.Saved()))
}

func (h *Server) save(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	rec, err := s.Find(r.PathValue("id"))
	if err != nil {
		h.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"saved":  s.Save(rec),
		"record": rec,
	})
}

func (h *Server) unsave(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if !s.Unsave(r.PathValue("id")) {
		h.writeErr(w, fmt.Errorf("%w: %s", session.ErrNotFound, r.PathValue("id")))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Server) favorites(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, nonNil(s.Favorites()))
}

func (h *Server) toggleFavorite(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	rec, err := s.Find(r.PathValue("id"))
	if err != nil {
		h.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"favorited": s.ToggleFavorite(rec),
		"id":        rec.ID,
	})
}

func (h *Server) share(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	rec, err := s.Find(r.PathValue("id"))
	if err != nil {
		h.writeErr(w, err)
		return
	}

	method := share.MethodNone
	if h.sharer != nil {
		method = h.sharer.Share(r.Context(), rec.Text)
	}
	writeJSON(w, http.StatusOK, map[string]string{"method": string(method)})
}

func (h *Server) export(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	e, err := s.ExportSaved(&buf, r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	w.Header().Set("Content-Type", e.ContentType())
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", s.Feature()+"-saved."+e.Extension()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func nonNil(records []record.Record) []record.Record {
	if records == nil {
		return []record.Record{}
	}
	return records
}
