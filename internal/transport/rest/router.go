package rest

import (
	"net/http"

	"medeval/docs"
	"medeval/internal/service"
	"medeval/internal/transport/rest/handler"
	"medeval/internal/transport/rest/middleware"
	"medeval/internal/transport/ws"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService       *service.AuthService
	QuestionService   *service.QuestionService
	SubmissionService *service.SubmissionService
	SessionService    *service.SessionService
	ExportService     *service.ExportService
	Store             handler.Pinger
	WSHub             *ws.Hub
	Logger            *zap.Logger

	CORSAllowedOrigins string
	SecureCookie       bool
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService, c.SecureCookie, c.Logger)
	questionHandler := handler.NewQuestionHandler(c.QuestionService, c.Logger)
	submissionHandler := handler.NewSubmissionHandler(c.SubmissionService, c.Logger)
	sessionHandler := handler.NewSessionHandler(c.SessionService, c.Logger)
	adminHandler := handler.NewAdminHandler(c.ExportService, c.Logger)
	systemHandler := handler.NewSystemHandler(c.Store, docs.SwaggerInfo.InstanceName(), c.Logger)
	wsHandler := ws.NewHandler(c.WSHub, c.Logger)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService, c.Logger)

	r.Use(middleware.RequestLogger(c.Logger))
	r.Use(middleware.CORS(c.CORSAllowedOrigins))

	r.HandleFunc("/health", systemHandler.Health).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Public routes
	api.HandleFunc("/questions", questionHandler.Batch).Methods("GET", "OPTIONS")
	api.HandleFunc("/questions", questionHandler.RecordAttempt).Methods("PATCH", "OPTIONS")
	api.HandleFunc("/submissions", submissionHandler.List).Methods("GET", "OPTIONS")
	api.HandleFunc("/submissions", submissionHandler.Create).Methods("POST", "OPTIONS")
	api.HandleFunc("/sessions", sessionHandler.Start).Methods("POST", "OPTIONS")
	api.HandleFunc("/sessions/{id}", sessionHandler.Get).Methods("GET", "OPTIONS")
	api.HandleFunc("/sessions/{id}/answers", sessionHandler.Answer).Methods("POST", "OPTIONS")
	api.HandleFunc("/auth/status", authHandler.Status).Methods("GET", "OPTIONS")
	api.HandleFunc("/test", systemHandler.StoreCheck).Methods("GET")
	api.HandleFunc("/docs/swagger.json", systemHandler.Docs).Methods("GET")

	// Login must be matched before the guarded admin subrouter
	api.HandleFunc("/admin/login", authHandler.Login).Methods("POST", "OPTIONS")

	// Admin routes (require admin cookie)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(authMW.RequireAdmin)
	admin.NotFoundHandler = authMW.RequireAdmin(http.NotFoundHandler())

	admin.HandleFunc("/questions", questionHandler.List).Methods("GET")
	admin.HandleFunc("/stats", adminHandler.Stats).Methods("GET")
	admin.HandleFunc("/export/annotators.csv", adminHandler.ExportAnnotators).Methods("GET")
	admin.HandleFunc("/export/results.csv", adminHandler.ExportResults).Methods("GET")
	admin.Handle("/ws", wsHandler).Methods("GET")

	return r
}
