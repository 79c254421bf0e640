// Package api provides the JSON HTTP binding over the reading service.
// The core stays transport-agnostic: this binding only moves plain
// title/body strings and image bytes, no chat-platform markup.
package api

import (
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/victorward/dailytarot/internal/api/shared"
	"github.com/victorward/dailytarot/internal/domain"
	"github.com/victorward/dailytarot/internal/platform/logger"
	"github.com/victorward/dailytarot/internal/service"
)

// SelectDomainRequest starts a reading for a sphere.
type SelectDomainRequest struct {
	UserID int64  `json:"user_id"`
	Sphere string `json:"sphere"`
}

// DrawOfferResponse describes the face-down cards on offer.
type DrawOfferResponse struct {
	Day    string `json:"day"`
	Sphere string `json:"sphere"`
	Slots  int    `json:"slots"`
}

// PickRequest records the user's card choice.
type PickRequest struct {
	UserID int64 `json:"user_id"`
	Index  int   `json:"index"`
}

// RevealRequest re-delivers an already-picked card.
type RevealRequest struct {
	UserID int64 `json:"user_id"`
}

// RestartRequest discards today's session.
type RestartRequest struct {
	UserID int64 `json:"user_id"`
}

// RevealResponse carries the revealed card and its caption.
type RevealResponse struct {
	CardID      string `json:"card_id"`
	Orientation string `json:"orientation"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	ImageBase64 string `json:"image_base64"`
	ImageFormat string `json:"image_format"`
}

// ReadingHandler handles reading-flow HTTP requests.
type ReadingHandler struct {
	readings *service.ReadingService
	logger   *slog.Logger
}

// NewReadingHandler creates a ReadingHandler.
func NewReadingHandler(readings *service.ReadingService, log *slog.Logger) *ReadingHandler {
	if readings == nil {
		panic("readings cannot be nil for ReadingHandler")
	}
	if log == nil {
		log = slog.Default()
	}
	return &ReadingHandler{
		readings: readings,
		logger:   log.With(slog.String("component", "reading_handler")),
	}
}

// SelectDomain handles POST /api/readings/domain.
func (h *ReadingHandler) SelectDomain(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req SelectDomainRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	offer, err := h.readings.SelectDomain(r.Context(), domain.UserID(req.UserID), req.Sphere)
	if err != nil {
		respondWithCoreError(w, r, err)
		return
	}

	log.Debug("sphere selected",
		slog.Int64("user_id", req.UserID),
		slog.String("sphere", string(offer.Sphere)))
	shared.RespondWithJSON(w, r, http.StatusOK, DrawOfferResponse{
		Day:    offer.Day,
		Sphere: string(offer.Sphere),
		Slots:  offer.Slots,
	})
}

// Pick handles POST /api/readings/pick.
func (h *ReadingHandler) Pick(w http.ResponseWriter, r *http.Request) {
	var req PickRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	reveal, err := h.readings.Pick(r.Context(), domain.UserID(req.UserID), req.Index)
	if err != nil {
		respondWithCoreError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, revealToResponse(reveal))
}

// Reveal handles POST /api/readings/reveal, the re-delivery path after a
// failed Pick delivery.
func (h *ReadingHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	var req RevealRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	reveal, err := h.readings.Reveal(r.Context(), domain.UserID(req.UserID))
	if err != nil {
		respondWithCoreError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, revealToResponse(reveal))
}

// Restart handles POST /api/readings/restart.
func (h *ReadingHandler) Restart(w http.ResponseWriter, r *http.Request) {
	var req RestartRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	h.readings.Restart(r.Context(), domain.UserID(req.UserID))
	w.WriteHeader(http.StatusNoContent)
}

func revealToResponse(reveal *service.Reveal) RevealResponse {
	return RevealResponse{
		CardID:      string(reveal.CardID),
		Orientation: string(reveal.Orientation),
		Title:       reveal.Title,
		Body:        reveal.Body,
		ImageBase64: base64.StdEncoding.EncodeToString(reveal.Image),
		ImageFormat: reveal.ImageFormat,
	}
}

func decodeRequest(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	return true
}

func respondWithCoreError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}
