package main

import (
	"context"
	"encoding/json"
	"io/fs"
	"net/http"
	"time"

	"github.com/sebuszqo/FinanceTracker/internal/auth"
	"github.com/sebuszqo/FinanceTracker/internal/backend"
	"github.com/sebuszqo/FinanceTracker/internal/finance/interfaces"
	"github.com/sebuszqo/FinanceTracker/internal/response"
	"github.com/sebuszqo/FinanceTracker/internal/user"
	"github.com/sebuszqo/FinanceTracker/internal/web"
)

type Response struct {
	Message string `json:"message"`
}

type Server struct {
	router             *http.ServeMux
	authHandler        *auth.Handler
	authService        auth.Service
	userHandler        *user.Handler
	transactionHandler *interfaces.PersonalTransactionHandler
	categoryHandler    *interfaces.CategoryHandler
	pageHandler        *web.Handler
	staticFS           fs.FS
	health             backend.HealthFunc
}

func NewServer(
	authHandler *auth.Handler,
	authService auth.Service,
	userHandler *user.Handler,
	transactionHandler *interfaces.PersonalTransactionHandler,
	categoryHandler *interfaces.CategoryHandler,
	pageHandler *web.Handler,
	staticFS fs.FS,
	health backend.HealthFunc,
) *Server {
	return &Server{
		authHandler:        authHandler,
		authService:        authService,
		userHandler:        userHandler,
		transactionHandler: transactionHandler,
		categoryHandler:    categoryHandler,
		pageHandler:        pageHandler,
		staticFS:           staticFS,
		health:             health,
		router:             http.NewServeMux(),
	}
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	_ = json.NewEncoder(w).Encode(Response{Message: "Path not found"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	health := s.health(ctx)
	if health["status"] != "up" {
		response.JSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":   "not_ready",
			"database": health,
		})
		return
	}
	response.JSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ready",
		"database": health,
	})
}

func (s *Server) RegisterRoutes() {
	requireSession := s.authService.RequireSession()
	requirePageSession := s.authService.RequirePageSession("/login")

	// Public routes
	s.router.Handle("POST /api/register", http.HandlerFunc(s.userHandler.HandleRegister))
	s.router.Handle("POST /api/auth/login", http.HandlerFunc(s.authHandler.HandleLogin))
	s.router.Handle("POST /api/auth/logout", http.HandlerFunc(s.authHandler.HandleLogout))
	s.router.Handle("GET /api/ready", http.HandlerFunc(s.handleReady))
	s.router.Handle("GET /login", http.HandlerFunc(s.pageHandler.Login))
	s.router.Handle("GET /register", http.HandlerFunc(s.pageHandler.Register))
	s.router.Handle("GET /static/", http.FileServer(http.FS(s.staticFS)))

	// Session protected routes
	s.router.Handle("GET /api/transactions", requireSession(http.HandlerFunc(s.transactionHandler.GetTransactions)))
	s.router.Handle("POST /api/transactions", requireSession(http.HandlerFunc(s.transactionHandler.CreateTransaction)))
	s.router.Handle("GET /api/dashboard", requireSession(http.HandlerFunc(s.transactionHandler.GetDashboard)))
	s.router.Handle("GET /api/categories", requireSession(http.HandlerFunc(s.categoryHandler.GetCategories)))
	s.router.Handle("GET /{$}", requirePageSession(http.HandlerFunc(s.pageHandler.Dashboard)))

	s.router.Handle("/", http.HandlerFunc(notFoundHandler))
}

func (s *Server) Handler() http.Handler {
	return s.router
}
