package server

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"stillnoob/internal/config"
	"stillnoob/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type Server struct {
	cfg          *config.Config
	characterSvc *service.CharacterService
	importSvc    *service.ImportService
	analysisSvc  *service.AnalysisService
	logger       zerolog.Logger
}

func New(cfg *config.Config, characterSvc *service.CharacterService, importSvc *service.ImportService, analysisSvc *service.AnalysisService, logger zerolog.Logger) *Server {
	return &Server{
		cfg:          cfg,
		characterSvc: characterSvc,
		importSvc:    importSvc,
		analysisSvc:  analysisSvc,
		logger:       logger,
	}
}

func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/healthz", s.handleHealthz)

		r.Route("/characters", func(r chi.Router) {
			r.Post("/", s.handleTrackCharacter)
			r.Get("/", s.handleListCharacters)
			r.Get("/{id}", s.handleGetCharacter)
			r.Delete("/{id}", s.handleUntrackCharacter)
			r.Get("/{id}/snapshots", s.handleSnapshots)
			r.Get("/{id}/push-targets", s.handlePushTargets)
		})

		r.Post("/reports/import", s.handleImportReport)
		r.Get("/analysis/character/{id}", s.handleAnalysis)
	})
	return r
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type trackCharacterRequest struct {
	Name   string `json:"name"`
	Realm  string `json:"realm"`
	Region string `json:"region"`
	UserID string `json:"user_id,omitempty"`
}

func (s *Server) handleTrackCharacter(w http.ResponseWriter, r *http.Request) {
	var req trackCharacterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.Realm == "" {
		writeError(w, http.StatusBadRequest, "name and realm are required")
		return
	}
	if req.Region == "" {
		req.Region = s.cfg.DefaultRegion
	}

	character, err := s.characterSvc.Track(r.Context(), req.Name, req.Realm, req.Region, req.UserID)
	if err != nil {
		s.logger.Error().Err(err).Str("name", req.Name).Msg("failed to track character")
		writeError(w, http.StatusBadGateway, "failed to track character")
		return
	}
	writeJSON(w, http.StatusCreated, character)
}

func (s *Server) handleListCharacters(w http.ResponseWriter, r *http.Request) {
	characters, err := s.characterSvc.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list characters")
		return
	}
	writeJSON(w, http.StatusOK, characters)
}

func (s *Server) handleGetCharacter(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	refresh := r.URL.Query().Get("refresh") == "true"

	character, err := s.characterSvc.Get(r.Context(), id, refresh)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "character not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch character")
		return
	}
	writeJSON(w, http.StatusOK, character)
}

func (s *Server) handleUntrackCharacter(w http.ResponseWriter, r *http.Request) {
	if err := s.characterSvc.Untrack(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to untrack character")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSnapshots(w http.ResponseWriter, r *http.Request) {
	snapshots, err := s.characterSvc.Snapshots(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list snapshots")
		return
	}
	writeJSON(w, http.StatusOK, snapshots)
}

func (s *Server) handlePushTargets(w http.ResponseWriter, r *http.Request) {
	targets, err := s.characterSvc.PushTargets(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "character not found")
			return
		}
		writeError(w, http.StatusBadGateway, "failed to compute push targets")
		return
	}
	writeJSON(w, http.StatusOK, targets)
}

type importReportRequest struct {
	Code string `json:"code"`
}

func (s *Server) handleImportReport(w http.ResponseWriter, r *http.Request) {
	var req importReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Code == "" {
		writeError(w, http.StatusBadRequest, "code is required")
		return
	}

	result, err := s.importSvc.Import(r.Context(), req.Code)
	if err != nil {
		s.logger.Error().Err(err).Str("code", req.Code).Msg("import failed")
		writeError(w, http.StatusBadGateway, "import failed")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	payload, err := s.analysisSvc.Analyze(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "character not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "analysis failed")
		return
	}
	writeJSON(w, http.StatusOK, payload)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
