// Package handler internal/infrastructure/handler/overview_handler.go
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/damon-houk/exchange-rate-overview/internal/application/service"
	"github.com/damon-houk/exchange-rate-overview/internal/domain/entity"
	"github.com/damon-houk/exchange-rate-overview/internal/infrastructure/logger"
	"github.com/damon-houk/exchange-rate-overview/internal/infrastructure/middleware"
	"github.com/gorilla/mux"
)

// OverviewHandler serves exchange rate overviews over HTTP
type OverviewHandler struct {
	service *service.OverviewService
	logger  logger.Logger
}

// NewOverviewHandler creates a new overview handler
func NewOverviewHandler(service *service.OverviewService, log logger.Logger) *OverviewHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &OverviewHandler{
		service: service,
		logger:  log,
	}
}

// GetOverview handles GET /overview?from=EUR&to=USD&start=2021-03-01&end=2021-03-05
func (h *OverviewHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	query := r.URL.Query()

	currencyFrom := query.Get("from")
	currencyTo := query.Get("to")
	if len(currencyFrom) != 3 || len(currencyTo) != 3 {
		h.logger.Warn("Invalid currency code", map[string]interface{}{
			"request_id": requestID,
			"from":       currencyFrom,
			"to":         currencyTo,
		})
		sendErrorResponse(w, h.logger, "Invalid currency code",
			"The 'from' and 'to' query parameters must be 3 character currency codes (e.g., EUR, GBP, USD)",
			http.StatusBadRequest, requestID)
		return
	}

	start, errStart := entity.ParseDate(query.Get("start"))
	end, errEnd := entity.ParseDate(query.Get("end"))
	if errStart != nil || errEnd != nil {
		h.logger.Warn("Invalid date parameter", map[string]interface{}{
			"request_id": requestID,
			"start":      query.Get("start"),
			"end":        query.Get("end"),
		})
		sendErrorResponse(w, h.logger, "Invalid date",
			"The 'start' and 'end' query parameters must be dates in YYYY-MM-DD format",
			http.StatusBadRequest, requestID)
		return
	}

	summary, err := h.service.GetOverview(r.Context(), currencyFrom, currencyTo, entity.NewDateRange(start, end))
	if err != nil {
		h.handleServiceError(w, err, requestID)
		return
	}

	resp := OverviewResponse{
		CurrencyFrom: currencyFrom,
		CurrencyTo:   currencyTo,
		DateFrom:     start.Format(entity.DateLayout),
		DateTo:       end.Format(entity.DateLayout),
		MeanRate:     summary.MeanRate,
		MinRate: RateSampleResponse{
			Value: summary.MinRate.Value,
			Date:  summary.MinRate.Date.Format(entity.DateLayout),
		},
		MaxRate: RateSampleResponse{
			Value: summary.MaxRate.Value,
			Date:  summary.MaxRate.Date.Format(entity.DateLayout),
		},
		Notice: summary.Notice,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("Failed to encode response", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
	}
}

func (h *OverviewHandler) handleServiceError(w http.ResponseWriter, err error, requestID string) {
	fields := map[string]interface{}{
		"request_id": requestID,
		"error":      err.Error(),
	}

	switch {
	case errors.Is(err, entity.ErrInvalidInput):
		h.logger.Warn("Invalid overview request", fields)
		sendErrorResponse(w, h.logger, "Invalid input", err.Error(), http.StatusBadRequest, requestID)
	case errors.Is(err, entity.ErrNoData):
		h.logger.Warn("No rates retrieved", fields)
		sendErrorResponse(w, h.logger, "No exchange rate available", err.Error(), http.StatusNotFound, requestID)
	case errors.Is(err, entity.ErrExcessiveFailureRate):
		h.logger.Error("Too many rate lookups failed", fields)
		sendErrorResponse(w, h.logger, "Exchange rate service unavailable", err.Error(), http.StatusBadGateway, requestID)
	default:
		h.logger.Error("Unexpected error in overview handler", fields)
		sendErrorResponse(w, h.logger, "Internal server error",
			"An unexpected error occurred. Please try again later.", http.StatusInternalServerError, requestID)
	}
}

// RegisterRoutes registers the overview handler routes
func (h *OverviewHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/overview", h.GetOverview).Methods(http.MethodGet)

	h.logger.Info("Overview routes registered", map[string]interface{}{
		"routes": []string{
			"GET /overview",
		},
	})
}

func sendErrorResponse(w http.ResponseWriter, log logger.Logger, message, description string, statusCode int, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	resp := ErrorResponse{
		Error:       message,
		Status:      statusCode,
		Description: description,
		RequestID:   requestID,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Error("Failed to encode error response", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
	}
}
