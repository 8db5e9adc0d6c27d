package handler

import (
	"github.com/damon-houk/exchange-rate-overview/internal/infrastructure/logger"
	"github.com/damon-houk/exchange-rate-overview/internal/infrastructure/middleware"
	"github.com/gorilla/mux"
)

// NewRouter builds the HTTP router with request id and request logging middleware
func NewRouter(overview *OverviewHandler, log logger.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.RequestIDMiddleware, middleware.LoggingMiddleware(log))
	overview.RegisterRoutes(router)
	return router
}
