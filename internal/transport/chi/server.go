// Package chi exposes the HTTP API: photo identification plus catalog
// management, with domain sentinel errors mapped to HTTP statuses.
package chi

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/realmeta/artlens/internal/domain"
	"github.com/realmeta/artlens/internal/domain/lang"
	artworkuc "github.com/realmeta/artlens/internal/usecase/artwork"
	healthuc "github.com/realmeta/artlens/internal/usecase/health"
	recognitionuc "github.com/realmeta/artlens/internal/usecase/recognition"
)

// photoField is the multipart field carrying the visitor photo.
const photoField = "photo"

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server handles the artlens HTTP API.
type Server struct {
	artworks      *artworkuc.Service
	recognition   *recognitionuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	maxUpload     int64
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server. maxUploadBytes bounds the photo size.
func NewServer(
	artworks *artworkuc.Service,
	recognition *recognitionuc.Service,
	health *healthuc.Service,
	maxUploadBytes int64,
	logger *zap.Logger,
) *Server {
	s := &Server{
		artworks:    artworks,
		recognition: recognition,
		health:      health,
		logger:      logger,
		maxUpload:   maxUploadBytes,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrScopeNotFound, http.StatusNotFound, codeMuseumNotFound),
		sentinelHandler(domain.ErrArtworkNotFound, http.StatusNotFound, codeArtworkNotFound),
		sentinelHandler(domain.ErrNoCandidates, http.StatusUnprocessableEntity, codeNoCandidates),
		sentinelHandler(domain.ErrEmbeddingFailed, http.StatusBadGateway, codeEmbeddingFailure),
		sentinelHandler(domain.ErrDimensionMismatch, http.StatusBadGateway, codeEmbeddingFailure),
		sentinelHandler(domain.ErrInvalidArtwork, http.StatusBadRequest, codeValidation),
		sentinelHandler(domain.ErrInvalidMuseum, http.StatusBadRequest, codeValidation),
		sentinelHandler(domain.ErrInvalidLanguage, http.StatusBadRequest, codeValidation),
	}
	return s
}

// Routes registers all handlers on the router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api/v1/museums/{museum}", func(r chi.Router) {
		r.Post("/identify", s.Identify)
		r.Get("/artworks", s.ListArtworks)
		r.Put("/artworks/{id}", s.UpsertArtwork)
		r.Get("/artworks/{id}", s.GetArtwork)
		r.Delete("/artworks/{id}", s.DeleteArtwork)
	})
}

// Identify handles POST /api/v1/museums/{museum}/identify.
// Multipart form: "photo" (required file), "language" (optional code).
func (s *Server) Identify(w http.ResponseWriter, r *http.Request) {
	museumID := chi.URLParam(r, "museum")

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest,
			"Invalid multipart request: "+err.Error())
		return
	}

	language := lang.Default
	if raw := r.FormValue("language"); raw != "" {
		code, err := lang.Parse(raw)
		if err != nil {
			s.handleDomainError(w, err)
			return
		}
		language = code
	}

	photo, _, err := r.FormFile(photoField)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest,
			fmt.Sprintf("Multipart field %q is required", photoField))
		return
	}
	defer photo.Close()

	res, err := s.recognition.Identify(r.Context(), museumID, photo, language)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	ident := res.Identification
	alternatives := make([]matchItem, len(ident.Alternatives()))
	for i, c := range ident.Alternatives() {
		alternatives[i] = candidateToMatch(c, language)
	}

	writeJSON(w, http.StatusOK, identifyResponse{
		Confident:    ident.Confident(),
		Best:         candidateToMatch(ident.Best(), language),
		Alternatives: alternatives,
		Museum:       res.MuseumID,
		Language:     string(language),
		Candidates:   res.TotalCandidates,
	})
}

// UpsertArtwork handles PUT /api/v1/museums/{museum}/artworks/{id}.
func (s *Server) UpsertArtwork(w http.ResponseWriter, r *http.Request) {
	museumID := chi.URLParam(r, "museum")
	id := chi.URLParam(r, "id")

	var req upsertArtworkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	var image []byte
	if req.ImageBase64 != "" {
		decoded, err := base64.StdEncoding.DecodeString(req.ImageBase64)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeValidation, "image_base64 is not valid base64")
			return
		}
		image = decoded
	}

	art, created, err := s.artworks.Register(r.Context(), artworkuc.RegisterInput{
		ID:           id,
		MuseumID:     museumID,
		Title:        req.Title,
		Artist:       req.Artist,
		Description:  req.Description,
		Descriptions: descriptionsFromRequest(req.Descriptions),
		Image:        image,
		Embedding:    req.Embedding,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
		w.Header().Set("Location",
			fmt.Sprintf("/api/v1/museums/%s/artworks/%s", museumID, id))
	}
	writeJSON(w, status, artworkToResponse(&art))
}

// GetArtwork handles GET /api/v1/museums/{museum}/artworks/{id}.
func (s *Server) GetArtwork(w http.ResponseWriter, r *http.Request) {
	art, err := s.artworks.Get(r.Context(), chi.URLParam(r, "museum"), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, artworkToResponse(&art))
}

// ListArtworks handles GET /api/v1/museums/{museum}/artworks.
func (s *Server) ListArtworks(w http.ResponseWriter, r *http.Request) {
	arts, err := s.artworks.List(r.Context(), chi.URLParam(r, "museum"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]artworkResponse, len(arts))
	for i := range arts {
		items[i] = artworkToResponse(&arts[i])
	}
	writeJSON(w, http.StatusOK, artworkListResponse{Items: items, Total: len(items)})
}

// DeleteArtwork handles DELETE /api/v1/museums/{museum}/artworks/{id}.
func (s *Server) DeleteArtwork(w http.ResponseWriter, r *http.Request) {
	if err := s.artworks.Delete(r.Context(), chi.URLParam(r, "museum"), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrScopeNotFound,
		domain.ErrArtworkNotFound,
		domain.ErrNoCandidates,
		domain.ErrEmbeddingFailed,
		domain.ErrDimensionMismatch,
		domain.ErrInvalidArtwork,
		domain.ErrInvalidMuseum,
		domain.ErrInvalidLanguage,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternal, "internal error")
}
