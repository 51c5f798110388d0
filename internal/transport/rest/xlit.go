package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/gujarati-xlit/internal/domain"
)

// xlitService defines the minimal interface needed by XlitHandler.
type xlitService interface {
	TranslitWord(ctx context.Context, direction domain.Direction, word string, topK int) ([]string, error)
	TranslitSentence(ctx context.Context, direction domain.Direction, sentence string) (string, error)
}

// XlitHandler serves the transliteration REST endpoints.
type XlitHandler struct {
	svc         xlitService
	defaultTopK int
	maxTopK     int
	log         *slog.Logger
}

// NewXlitHandler creates an XlitHandler. defaultTopK is used when the
// num_suggestions query parameter is absent; requested values are
// clamped to [1, maxTopK].
func NewXlitHandler(svc xlitService, defaultTopK, maxTopK int, logger *slog.Logger) *XlitHandler {
	return &XlitHandler{
		svc:         svc,
		defaultTopK: defaultTopK,
		maxTopK:     maxTopK,
		log:         logger.With("handler", "xlit"),
	}
}

// envelope is the response shape shared by all transliteration
// endpoints, success and failure alike.
type envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	At      int64  `json:"at"`
	Input   string `json:"input"`
	Result  any    `json:"result"`
}

func ok(input string, result any) envelope {
	return envelope{Success: true, At: time.Now().UnixMilli(), Input: input, Result: result}
}

func fail(input, msg string) envelope {
	return envelope{Success: false, Error: msg, At: time.Now().UnixMilli(), Input: input}
}

// Word handles GET /tl/gu/{word}: Roman input, Gujarati candidates.
func (h *XlitHandler) Word(w http.ResponseWriter, r *http.Request) {
	h.word(w, r, domain.DirectionRomanToGujarati)
}

// ReverseWord handles GET /rtl/gu/{word}: Gujarati input, Roman
// candidates.
func (h *XlitHandler) ReverseWord(w http.ResponseWriter, r *http.Request) {
	h.word(w, r, domain.DirectionGujaratiToRoman)
}

func (h *XlitHandler) word(w http.ResponseWriter, r *http.Request, direction domain.Direction) {
	word := r.PathValue("word")

	result, err := h.svc.TranslitWord(r.Context(), direction, word, h.topK(r))
	if err != nil {
		h.handleError(w, r, word, err)
		return
	}
	if result == nil {
		result = []string{}
	}

	writeJSON(w, http.StatusOK, ok(word, result))
}

// sentenceRequest distinguishes an absent "text" field from an empty
// one; the former is a client error, the latter transliterates to an
// empty sentence.
type sentenceRequest struct {
	Text *string `json:"text"`
}

// Sentence handles POST /sentence/{direction}.
func (h *XlitHandler) Sentence(w http.ResponseWriter, r *http.Request) {
	direction, err := domain.ParseDirection(r.PathValue("direction"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, fail("", err.Error()))
		return
	}

	var req sentenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, fail("", "invalid request body"))
		return
	}
	if req.Text == nil {
		writeJSON(w, http.StatusBadRequest, fail("", `missing "text" field in request body`))
		return
	}

	result, err := h.svc.TranslitSentence(r.Context(), direction, *req.Text)
	if err != nil {
		h.handleError(w, r, *req.Text, err)
		return
	}

	writeJSON(w, http.StatusOK, ok(*req.Text, result))
}

// topK resolves the num_suggestions query parameter, falling back to
// the default and clamping to [1, maxTopK]. Unparseable values get the
// default rather than an error.
func (h *XlitHandler) topK(r *http.Request) int {
	raw := r.URL.Query().Get("num_suggestions")
	if raw == "" {
		return h.defaultTopK
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return h.defaultTopK
	}
	if n < 1 {
		return 1
	}
	if n > h.maxTopK {
		return h.maxTopK
	}
	return n
}

func (h *XlitHandler) handleError(w http.ResponseWriter, r *http.Request, input string, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusBadRequest, fail(input, err.Error()))
	case errors.Is(err, domain.ErrProvisioning):
		h.log.ErrorContext(r.Context(), "model provisioning failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusServiceUnavailable, fail(input, "model artifacts unavailable"))
	case errors.Is(err, domain.ErrMalformedOutput):
		h.log.ErrorContext(r.Context(), "decoder produced malformed output", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadGateway, fail(input, "transliteration backend error"))
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, fail(input, "internal server error"))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}
