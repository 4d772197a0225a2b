// Package api exposes the ledger engine over a JSON HTTP API.
package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/divvyup/divvyup/internal/auth"
	"github.com/divvyup/divvyup/internal/currency"
	"github.com/divvyup/divvyup/internal/middleware"
	"github.com/divvyup/divvyup/internal/service"
	"github.com/divvyup/divvyup/internal/storage"
)

// Server holds the handler dependencies and builds the route table.
type Server struct {
	store       storage.Store
	authn       auth.Authenticator
	jwt         *auth.JWTManager
	fx          *currency.Service
	expenses    *service.ExpenseService
	balances    *service.BalanceService
	analytics   *service.AnalyticsService
	settlements *service.SettlementService
}

// New creates a Server wired to the given collaborators.
func New(
	store storage.Store,
	authn auth.Authenticator,
	jwt *auth.JWTManager,
	fx *currency.Service,
	expenses *service.ExpenseService,
	balances *service.BalanceService,
	analytics *service.AnalyticsService,
	settlements *service.SettlementService,
) *Server {
	return &Server{
		store:       store,
		authn:       authn,
		jwt:         jwt,
		fx:          fx,
		expenses:    expenses,
		balances:    balances,
		analytics:   analytics,
		settlements: settlements,
	}
}

// Router builds the HTTP route table with logging and metrics middleware.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.Metrics, middleware.Logging)

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/categories", s.handleListCategories).Methods(http.MethodGet)

	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.RequireAuth(s.jwt))
	protected.HandleFunc("/auth/user", s.handleCurrentUser).Methods(http.MethodGet)
	protected.HandleFunc("/expenses", s.handleCreateExpense).Methods(http.MethodPost)
	protected.HandleFunc("/expenses", s.handleListExpenses).Methods(http.MethodGet)
	protected.HandleFunc("/balances", s.handleBalances).Methods(http.MethodGet)
	protected.HandleFunc("/settlements", s.handleCreateSettlement).Methods(http.MethodPost)
	protected.HandleFunc("/settlements", s.handleListSettlements).Methods(http.MethodGet)
	protected.HandleFunc("/analytics", s.handleAnalytics).Methods(http.MethodGet)
	protected.HandleFunc("/currencies", s.handleCurrencies).Methods(http.MethodGet)
	protected.HandleFunc("/exchange-rate", s.handleExchangeRate).Methods(http.MethodGet)
	protected.HandleFunc("/dashboard", s.handleDashboard).Methods(http.MethodGet)

	return r
}
