package server

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jsphweid/diatonicpad/chord"
	"github.com/jsphweid/diatonicpad/library"
	"github.com/jsphweid/diatonicpad/model"
	"github.com/jsphweid/diatonicpad/session"
	"github.com/jsphweid/diatonicpad/store"
	"github.com/pkg/errors"
	"github.com/rs/cors"
)

var errBadRequest = errors.New("bad request")

// Server exposes a session over HTTP.
type Server struct {
	session *session.Session
	lib     *library.Library
}

func New(s *session.Session, lib *library.Library) *Server {
	return &Server{session: s, lib: lib}
}

func (s *Server) Router() *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/status", s.handleStatus).Methods("GET")
	router.HandleFunc("/context", s.handleGetContext).Methods("GET")
	router.HandleFunc("/context", s.handlePutContext).Methods("PUT")
	router.HandleFunc("/trigger", s.handleTrigger).Methods("POST")
	router.HandleFunc("/undo", s.handleUndo).Methods("POST")
	router.HandleFunc("/redo", s.handleRedo).Methods("POST")
	router.HandleFunc("/history", s.handleClearHistory).Methods("DELETE")
	router.HandleFunc("/events", s.handleEvents).Methods("GET")
	router.HandleFunc("/voices", s.handleVoices).Methods("GET")
	router.HandleFunc("/voices", s.handleStopAll).Methods("DELETE")
	router.HandleFunc("/voices/{id}", s.handleStopVoice).Methods("DELETE")
	router.HandleFunc("/progressions", s.handleListProgressions).Methods("GET")
	router.HandleFunc("/progressions", s.handleSave).Methods("POST")
	router.HandleFunc("/progressions/latest/load", s.handleLoadLatest).Methods("POST")
	router.HandleFunc("/progressions/{id}/load", s.handleLoad).Methods("POST")
	router.HandleFunc("/export", s.handleExport).Methods("POST")
	router.HandleFunc("/assets", s.handleAssets).Methods("GET")
	return router
}

// Handler is the router with permissive CORS so browser pads can call it.
func (s *Server) Handler() http.Handler {
	return cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
	}).Handler(s.Router())
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Could not encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, chord.ErrInvalidContext), errors.Is(err, errBadRequest):
		status = http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound), errors.Is(err, library.ErrMissingAsset):
		status = http.StatusNotFound
	}
	writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}

func decodeBody(r *http.Request, v interface{}) error {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return errors.Wrap(err, "reading request body")
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.Wrapf(errBadRequest, "could not unmarshal request body: %v", err)
	}
	return nil
}

func (s *Server) history(w http.ResponseWriter, changed bool) {
	writeJSON(w, http.StatusOK, model.HistoryResponse{Changed: changed, Events: s.session.Events()})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.StatusResponse{
		Status:  s.session.Status(),
		Context: s.session.Context(),
		Voices:  s.session.Voices(),
	})
}

func (s *Server) handleGetContext(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Context())
}

// handlePutContext merges the request body over the current context, so
// clients may send only the fields they change.
func (s *Server) handlePutContext(w http.ResponseWriter, r *http.Request) {
	next := s.session.Context()
	if err := decodeBody(r, &next); err != nil {
		writeError(w, err)
		return
	}
	if err := s.session.SetContext(next); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.session.Context())
}

func (s *Server) handleTrigger(w http.ResponseWriter, r *http.Request) {
	var input model.TriggerRequestBody
	if err := decodeBody(r, &input); err != nil {
		writeError(w, err)
		return
	}
	gain := 1.0
	if input.Gain != nil {
		gain = *input.Gain
	}

	res, err := s.session.Trigger(input.Degree, gain)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.TriggerResponse{
		Played:    res.Played,
		VoiceID:   res.VoiceID,
		AssetPath: res.AssetPath,
		Pitches:   res.Chord.Pitches,
		Notes:     res.Chord.NoteNames(),
		Event:     res.Event,
	})
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	s.history(w, s.session.Undo())
}

func (s *Server) handleRedo(w http.ResponseWriter, r *http.Request) {
	s.history(w, s.session.Redo())
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	s.session.ClearHistory()
	s.history(w, true)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Events())
}

func (s *Server) handleVoices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Voices())
}

func (s *Server) handleStopAll(w http.ResponseWriter, r *http.Request) {
	s.session.StopAll()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStopVoice(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !s.session.StopVoice(id) {
		writeJSON(w, http.StatusNotFound, model.ErrorResponse{Error: "voice " + id + " is not playing"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListProgressions(w http.ResponseWriter, r *http.Request) {
	all, err := s.session.Progressions(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if all == nil {
		all = []*model.Progression{}
	}
	writeJSON(w, http.StatusOK, all)
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	var input model.SaveRequestBody
	if err := decodeBody(r, &input); err != nil {
		writeError(w, err)
		return
	}
	p, err := s.session.Save(r.Context(), input.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	p, err := s.session.Load(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleLoadLatest(w http.ResponseWriter, r *http.Request) {
	p, err := s.session.LoadLatest(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	path, err := s.session.Export()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, model.ExportResponse{Path: path})
}

func (s *Server) handleAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := s.lib.List()
	if err != nil {
		writeError(w, err)
		return
	}
	if assets == nil {
		assets = []string{}
	}
	writeJSON(w, http.StatusOK, assets)
}
