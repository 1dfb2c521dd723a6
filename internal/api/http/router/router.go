package router

import (
	"net/http"

	"github.com/tronghn/taskhub/internal/api/http/handler"
	"github.com/tronghn/taskhub/internal/api/http/middleware"
	"github.com/tronghn/taskhub/internal/logger"
	"github.com/tronghn/taskhub/internal/model"
	"github.com/tronghn/taskhub/internal/service"
)

// Router wires services, middleware and handlers into an http.Handler.
type Router struct {
	authService     *service.Auth
	sessionService  *service.Session
	taskService     *service.Task
	categoryService *service.Category
	profileService  *service.Profile
	contextManager  model.ContextManager
	logger          *logger.Logger
}

// New creates a Router over the given services.
func New(
	authService *service.Auth,
	sessionService *service.Session,
	taskService *service.Task,
	categoryService *service.Category,
	profileService *service.Profile,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:     authService,
		sessionService:  sessionService,
		taskService:     taskService,
		categoryService: categoryService,
		profileService:  profileService,
		contextManager:  contextManager,
		logger:          logger,
	}
}

// Register builds the route table. Auth endpoints are public except
// logout; everything else sits behind bearer-token authentication.
func (r *Router) Register() http.Handler {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.sessionService, r.contextManager, r.logger)

	authHandler := handler.NewAuth(r.authService, r.contextManager, r.logger)
	taskHandler := handler.NewTask(r.taskService, r.profileService, r.contextManager, r.logger)
	categoryHandler := handler.NewCategory(r.categoryService, r.profileService, r.contextManager, r.logger)
	profileHandler := handler.NewProfile(r.profileService, r.contextManager, r.logger)

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/verify", authHandler.VerifyAccount)
	mux.HandleFunc("POST /api/auth/resend-verification", authHandler.ResendVerification)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/forgot-password", authHandler.ForgotPassword)
	mux.HandleFunc("POST /api/auth/reset-password", authHandler.ResetPassword)
	mux.Handle("POST /api/auth/logout", authenticate.Handle(http.HandlerFunc(authHandler.Logout)))

	mux.Handle("GET /api/tasks", authenticate.Handle(http.HandlerFunc(taskHandler.List)))
	mux.Handle("POST /api/tasks", authenticate.Handle(http.HandlerFunc(taskHandler.Create)))
	mux.Handle("GET /api/tasks/{id}", authenticate.Handle(http.HandlerFunc(taskHandler.Get)))
	mux.Handle("PUT /api/tasks/{id}", authenticate.Handle(http.HandlerFunc(taskHandler.Update)))
	mux.Handle("PATCH /api/tasks/{id}/toggle", authenticate.Handle(http.HandlerFunc(taskHandler.Toggle)))
	mux.Handle("PATCH /api/tasks/{id}/status", authenticate.Handle(http.HandlerFunc(taskHandler.SetStatus)))
	mux.Handle("DELETE /api/tasks/{id}", authenticate.Handle(http.HandlerFunc(taskHandler.Delete)))

	mux.Handle("GET /api/categories", authenticate.Handle(http.HandlerFunc(categoryHandler.List)))
	mux.Handle("POST /api/categories", authenticate.Handle(http.HandlerFunc(categoryHandler.Create)))
	mux.Handle("GET /api/categories/{id}", authenticate.Handle(http.HandlerFunc(categoryHandler.Get)))
	mux.Handle("PUT /api/categories/{id}", authenticate.Handle(http.HandlerFunc(categoryHandler.Update)))
	mux.Handle("DELETE /api/categories/{id}", authenticate.Handle(http.HandlerFunc(categoryHandler.Delete)))

	mux.Handle("GET /api/profile", authenticate.Handle(http.HandlerFunc(profileHandler.Get)))
	mux.Handle("PUT /api/profile", authenticate.Handle(http.HandlerFunc(profileHandler.Update)))
	mux.Handle("PUT /api/profile/change-password", authenticate.Handle(http.HandlerFunc(profileHandler.ChangePassword)))
	mux.Handle("DELETE /api/profile", authenticate.Handle(http.HandlerFunc(profileHandler.Delete)))

	return logging.Handle(mux)
}
