package api

import (
	"net/http"

	"github.com/charmbracelet/log"

	"expensed/internal/api/middleware"
	"expensed/internal/service"
	"expensed/internal/version"
)

type Server struct {
	services *service.Services
	log      *log.Logger
}

func NewServer(services *service.Services, logger *log.Logger) *Server {
	return &Server{
		services: services,
		log:      logger,
	}
}

func (s *Server) Handler(authConfig *middleware.AuthConfig) http.Handler {
	if authConfig == nil {
		s.log.Fatal("auth configuration is required")
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)

	stack := middleware.CreateStack(
		middleware.CORS(),
		middleware.Logging(s.log),
		middleware.Auth(authConfig, s.log),
		middleware.UserContext(),
	)

	return stack(mux)
}

func (s *Server) registerRoutes(mux *http.ServeMux) {
	// method-qualified patterns give unmatched verbs an automatic 405
	mux.HandleFunc("POST /addExpense", s.handleAddExpense)
	mux.HandleFunc("GET /getExpenses", s.handleGetExpenses)
	mux.HandleFunc("PUT /editExpense", s.handleEditExpense)
	mux.HandleFunc("DELETE /deleteExpense", s.handleDeleteExpense)
	mux.HandleFunc("GET /getStatistics", s.handleGetStatistics)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.Version(),
	})
}
