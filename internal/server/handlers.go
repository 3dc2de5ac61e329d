package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dbsmedya/swimrecords/internal/records"
	"github.com/dbsmedya/swimrecords/internal/report"
	"github.com/dbsmedya/swimrecords/internal/types"
)

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

type healthResponse struct {
	Status       string     `json:"status"`
	Source       string     `json:"source"`
	LoadedAt     *time.Time `json:"loaded_at,omitempty"`
	Performances int        `json:"performances"`
}

type performanceResponse struct {
	Performance types.Performance  `json:"performance"`
	Annotation  records.Annotation `json:"annotation"`
	Relay       *records.RelayLeg  `json:"relay,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	resp := errorResponse{Error: err.Error()}
	var typed *types.Error
	if errors.As(err, &typed) {
		resp.Kind = typed.Kind.String()
	}
	writeJSON(w, status, resp)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "loading", Source: s.source.Name()}
	if snap := s.snapshot(); snap != nil {
		resp.Status = "ok"
		loadedAt := snap.loadedAt
		resp.LoadedAt = &loadedAt
		resp.Performances = len(snap.inputs.Dataset.Performances)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) refresh(w http.ResponseWriter, r *http.Request) {
	if err := s.Refresh(r.Context()); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	s.health(w, r)
}

func (s *Server) records(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, report.BuildRecords(s.snapshot().inputs))
}

func (s *Server) annotations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshot().inputs.Book.Annotations())
}

func (s *Server) performance(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("performance id must be an integer"))
		return
	}

	in := s.snapshot().inputs
	p, ok := in.Book.Performance(id)
	if !ok {
		writeError(w, http.StatusNotFound, errors.New("performance not found"))
		return
	}

	resp := performanceResponse{Performance: p}
	if ann, ok := in.Book.Annotation(id); ok {
		resp.Annotation = ann
	}
	if leg, ok := in.Relays.Lookup(id); ok {
		resp.Relay = &leg
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) meet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("meet id must be an integer"))
		return
	}
	view, err := report.BuildMeet(s.snapshot().inputs, id)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) swimmer(w http.ResponseWriter, r *http.Request) {
	view, err := report.BuildSwimmer(s.snapshot().inputs, swimmerParam(r))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) swimmerBests(w http.ResponseWriter, r *http.Request) {
	bests := s.snapshot().inputs.Book.PersonalBests(swimmerParam(r))
	if bests == nil {
		bests = []records.Standing{}
	}
	writeJSON(w, http.StatusOK, bests)
}

func swimmerParam(r *http.Request) string {
	name := chi.URLParam(r, "name")
	if unescaped, err := url.PathUnescape(name); err == nil {
		return unescaped
	}
	return name
}
