package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/splitfool/splitfool/internal/auth"
	"github.com/splitfool/splitfool/internal/middleware"
)

// Router assembles the API routes. Everything under /api except login
// requires a valid session token; /healthz and /metrics are open.
func (h *Handler) Router(jwtManager *auth.JWTManager) http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("POST /api/users", h.createUser)
	api.HandleFunc("GET /api/users", h.listUsers)
	api.HandleFunc("PATCH /api/users/{id}", h.renameUser)
	api.HandleFunc("DELETE /api/users/{id}", h.deleteUser)
	api.HandleFunc("GET /api/users/{id}/balances", h.userBalances)

	api.HandleFunc("POST /api/bills", h.createBill)
	api.HandleFunc("POST /api/bills/preview", h.previewBill)
	api.HandleFunc("GET /api/bills", h.listBills)
	api.HandleFunc("GET /api/bills/{id}", h.getBill)

	api.HandleFunc("GET /api/balances", h.listBalances)

	api.HandleFunc("POST /api/settlements", h.createSettlement)
	api.HandleFunc("GET /api/settlements", h.listSettlements)

	mux := http.NewServeMux()
	mux.Handle("/api/", middleware.RequireAuth(jwtManager, api))
	mux.HandleFunc("POST /api/login", h.login)
	mux.HandleFunc("GET /healthz", h.health)
	mux.Handle("GET /metrics", promhttp.Handler())

	return middleware.Logging(middleware.Metrics(mux))
}
