// Package api exposes the presign pipeline over HTTP for callers that should
// not hold the bucket credentials themselves.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/objstore/presign"
)

// SignerConfig carries the server-side half of every signed request. The
// secret key never leaves the process; clients only name the object they
// want a URL for.
type SignerConfig struct {
	Bucket          string
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

// SignHandler handles HTTP requests for presigned URLs.
type SignHandler struct {
	cfg    SignerConfig
	logger zerolog.Logger
	now    func() time.Time
}

// NewSignHandler creates a new sign handler.
func NewSignHandler(cfg SignerConfig, logger zerolog.Logger) *SignHandler {
	return &SignHandler{
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// Routes returns the routes for presigned URLs.
func (h *SignHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/sign", h.SignURL)
	r.Get("/healthz", h.Health)

	return r
}

// SignRequest is the request body for a presigned URL. Method and ExpiresIn
// fall back to the package defaults when omitted.
type SignRequest struct {
	Key       string `json:"key"`
	Method    string `json:"method,omitempty"`
	ExpiresIn int    `json:"expires_in,omitempty"`
}

// SignResponse is the response body for a presigned URL.
type SignResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
	RequestID string    `json:"request_id"`
}

// ErrorResponse is the response body for a rejected request.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id"`
}

// SignURL issues a presigned URL for the configured bucket.
func (h *SignHandler) SignURL(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	logger := h.logger.With().Str("request_id", requestID).Logger()

	var req SignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn().Err(err).Msg("malformed sign request body")
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "malformed request body", RequestID: requestID})
		return
	}

	pr := presign.NewRequest(h.cfg.Bucket, h.cfg.Endpoint, req.Key)
	pr.AccessKeyID = h.cfg.AccessKeyID
	pr.SecretAccessKey = h.cfg.SecretAccessKey
	pr.Date = h.now().UTC()
	if h.cfg.Region != "" {
		pr.Region = h.cfg.Region
	}
	if req.Method != "" {
		pr.Method = req.Method
	}
	if req.ExpiresIn != 0 {
		pr.ExpiresIn = req.ExpiresIn
	}

	url, err := presign.SignURL(pr)
	if err != nil {
		if errors.Is(err, presign.ErrInvalidRequest) {
			logger.Warn().Err(err).Str("key", req.Key).Msg("rejected sign request")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, ErrorResponse{Error: err.Error(), RequestID: requestID})
			return
		}
		logger.Error().Err(err).Str("key", req.Key).Msg("signing failed")
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: "internal error", RequestID: requestID})
		return
	}

	logger.Info().
		Str("key", req.Key).
		Str("method", pr.Method).
		Int("expires_in", pr.ExpiresIn).
		Msg("issued presigned url")

	render.JSON(w, r, SignResponse{
		URL:       url,
		ExpiresAt: pr.Date.Add(time.Duration(pr.ExpiresIn) * time.Second),
		RequestID: requestID,
	})
}

// Health reports liveness.
func (h *SignHandler) Health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}
