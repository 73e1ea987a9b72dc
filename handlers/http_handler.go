// Package handlers provides HTTP request handlers for the recommendation API.
// This file implements the HTTPHandler interface with dependency injection.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/giygas/magistral-api/entities"
	"github.com/giygas/magistral-api/interfaces"
	"github.com/giygas/magistral-api/logging"
	"github.com/giygas/magistral-api/pricing"
)

// MaxTopK bounds the top_k accepted from clients.
const MaxTopK = 20

// RecommendationRequest is the body of POST /v1/recommendations.
type RecommendationRequest struct {
	Symptoms     string `json:"symptoms" validate:"required"`
	TopK         int    `json:"top_k" validate:"gte=0,lte=20"`
	IncludeQuote bool   `json:"include_quote"`
}

// QuoteRequest is the body of POST /v1/quotes.
type QuoteRequest struct {
	Formula entities.Formula `json:"formula"`
}

// HTTPHandlerImpl implements the interfaces.HTTPHandler interface
type HTTPHandlerImpl struct {
	recommender   interfaces.Recommender
	quoter        interfaces.Quoter
	validator     interfaces.InputValidator
	healthChecker interfaces.HealthChecker
	structs       *validator.Validate
	startTime     time.Time
}

// NewHTTPHandler creates a new HTTP handler with injected dependencies
func NewHTTPHandler(recommender interfaces.Recommender, quoter interfaces.Quoter, inputValidator interfaces.InputValidator, healthChecker interfaces.HealthChecker) interfaces.HTTPHandler {
	return &HTTPHandlerImpl{
		recommender:   recommender,
		quoter:        quoter,
		validator:     inputValidator,
		healthChecker: healthChecker,
		structs:       validator.New(),
		startTime:     time.Now(),
	}
}

// HealthResponseImpl defines the structure for consistent JSON ordering
type HealthResponseImpl struct {
	Status        string         `json:"status"`
	UptimeSeconds float64        `json:"uptime_seconds"`
	Uptime        string         `json:"uptime"`
	Data          map[string]any `json:"data"`
	System        map[string]any `json:"system"`
}

// RespondWithJSON writes a JSON response
func (h *HTTPHandlerImpl) RespondWithJSON(w http.ResponseWriter, code int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	w.Write(data)
}

// RespondWithError writes a JSON error response
func (h *HTTPHandlerImpl) RespondWithError(w http.ResponseWriter, code int, message string) {
	errorResponse := map[string]any{
		"error":   http.StatusText(code),
		"message": message,
		"code":    code,
	}
	h.RespondWithJSON(w, code, errorResponse)
}

// StatusForError maps pipeline failures to HTTP status codes.
func StatusForError(err error) int {
	var recErr *entities.RecommendationError
	if !errors.As(err, &recErr) {
		return http.StatusInternalServerError
	}

	switch recErr.Kind {
	case entities.ErrorKindCorpusLimitation, entities.ErrorKindUnresolvableName:
		return http.StatusUnprocessableEntity
	case entities.ErrorKindMalformedResponse, entities.ErrorKindUpstreamUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusUnprocessableEntity
	}
}

// respondWithDecodeError answers 413 when the body hit the request size
// limit and 400 for any other decode failure.
func (h *HTTPHandlerImpl) respondWithDecodeError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		h.RespondWithError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("Request body too large. Maximum allowed size is %d bytes", tooLarge.Limit))
		return
	}
	h.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
}

// CreateRecommendation runs the pipeline for the submitted symptoms.
func (h *HTTPHandlerImpl) CreateRecommendation(w http.ResponseWriter, r *http.Request) {
	var req RecommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithDecodeError(w, err)
		return
	}

	if err := h.structs.Struct(req); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, describeValidation(err))
		return
	}

	req.Symptoms = strings.TrimSpace(req.Symptoms)
	if err := h.validator.ValidateSymptoms(req.Symptoms); err != nil {
		logging.Warn("Unusual user input", "request_id", middleware.GetReqID(r.Context()), "error", err)
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := h.recommender.Recommend(r.Context(), req.Symptoms, req.TopK)
	if err != nil {
		var recErr *entities.RecommendationError
		if errors.As(err, &recErr) {
			h.RespondWithJSON(w, StatusForError(err), recErr)
			return
		}
		logging.Error("Recommendation failed", "request_id", middleware.GetReqID(r.Context()), "error", err)
		h.RespondWithError(w, http.StatusInternalServerError, "Failed to generate recommendation")
		return
	}

	if req.IncludeQuote {
		breakdown := h.quoter.Price(rec.Formula)
		rec.Quote = &entities.Quote{Breakdown: breakdown, Formatted: pricing.Format(breakdown.TotalPrice)}
	}

	h.RespondWithJSON(w, http.StatusOK, rec)
}

// CreateQuote prices a client-supplied formula.
func (h *HTTPHandlerImpl) CreateQuote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithDecodeError(w, err)
		return
	}

	if err := h.structs.Struct(req); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, describeValidation(err))
		return
	}

	breakdown := h.quoter.Price(req.Formula)
	h.RespondWithJSON(w, http.StatusOK, entities.Quote{
		Breakdown: breakdown,
		Formatted: pricing.Format(breakdown.TotalPrice),
	})
}

// HealthCheck returns server health information
func (h *HTTPHandlerImpl) HealthCheck(w http.ResponseWriter, r *http.Request) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	status, data, httpStatus := h.healthChecker.HealthCheck()
	uptime := time.Since(h.startTime)

	response := HealthResponseImpl{
		Status:        status,
		UptimeSeconds: uptime.Seconds(),
		Uptime:        formatUptimeHuman(uptime),
		Data:          data,
		System: map[string]any{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb": int(m.Alloc / 1024 / 1024),
				"sys_mb":   int(m.Sys / 1024 / 1024),
				"num_gc":   m.NumGC,
			},
		},
	}

	h.RespondWithJSON(w, httpStatus, response)
}

// describeValidation turns validator errors into a short client message.
func describeValidation(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return "Invalid request"
	}

	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", fe.Namespace()))
		case "min":
			parts = append(parts, fmt.Sprintf("%s must have at least %s item(s)", fe.Namespace(), fe.Param()))
		case "gte", "lte":
			parts = append(parts, fmt.Sprintf("%s must be between 0 and %d", fe.Namespace(), MaxTopK))
		default:
			parts = append(parts, fmt.Sprintf("%s is invalid", fe.Namespace()))
		}
	}
	return strings.Join(parts, "; ")
}

// formatUptimeHuman formats duration into a human-readable string
func formatUptimeHuman(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	var parts []string

	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 || days > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 || hours > 0 || days > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	parts = append(parts, fmt.Sprintf("%ds", seconds))

	return strings.Join(parts, " ")
}
