package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/responder/core/docs"
	httpHandlers "github.com/responder/core/internal/adapters/http"
	"github.com/responder/core/internal/adapters/repository"
	"github.com/responder/core/internal/application/services"
	"github.com/responder/core/internal/infrastructure/config"
	"github.com/responder/core/internal/infrastructure/logger"
	"github.com/responder/core/internal/infrastructure/metrics"
	"github.com/responder/core/internal/infrastructure/storage"
)

// Server represents the HTTP server
type Server struct {
	echo    *echo.Echo
	config  *config.Config
	logger  *logger.Logger
	store   *storage.File
	metrics *metrics.Metrics
}

// CustomValidator wraps the validator
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator returns the validator used for request bodies
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate validates structs
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// New creates a new server instance
func New(cfg *config.Config, store *storage.File, appLogger *logger.Logger) (*Server, error) {
	e := echo.New()

	e.Validator = NewValidator()

	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.App.Debug

	e.HTTPErrorHandler = customErrorHandler(appLogger)

	server := &Server{
		echo:   e,
		config: cfg,
		logger: appLogger,
		store:  store,
	}

	repoOpts := []repository.Option{
		repository.WithLogger(appLogger.WithComponent("question_store")),
	}
	if cfg.Metrics.Enabled {
		server.metrics = metrics.New()
		repoOpts = append(repoOpts, repository.WithMetrics(server.metrics))
	}

	questionRepo := repository.NewQuestionRepository(store, repoOpts...)
	questionService := services.NewQuestionService(questionRepo, appLogger)
	questionHandler := httpHandlers.NewQuestionHandler(questionService, appLogger)

	server.setupMiddleware()
	server.setupRoutes(questionHandler)

	return server, nil
}

// Echo exposes the underlying router, mainly for tests
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware() {
	s.echo.Use(middleware.Recover())

	s.echo.Use(middleware.RequestID())

	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, values middleware.RequestLoggerValues) error {
			s.logger.LogHTTPRequest(
				values.Method,
				values.URI,
				values.RequestID,
				values.RemoteIP,
				values.Status,
				float64(values.Latency.Nanoseconds())/1000000,
				values.Error,
			)
			return nil
		},
	}))

	if s.metrics != nil {
		s.echo.Use(s.metrics.Middleware())
	}

	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: strings.Split(s.config.Security.CORSAllowedOrigins, ","),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodPost},
	}))

	window := s.config.Security.RateLimitWindow
	if window <= 0 {
		window = time.Minute
	}
	s.echo.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(float64(s.config.Security.RateLimitRequests) / window.Seconds()),
				Burst:     s.config.Security.RateLimitRequests,
				ExpiresIn: window,
			},
		),
		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			return ctx.RealIP(), nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(http.StatusForbidden, httpHandlers.ErrorResponse{Error: "rate limit exceeded"})
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(http.StatusTooManyRequests, httpHandlers.ErrorResponse{Error: "rate limit exceeded"})
		},
	}))

	secure := middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
	}
	if s.config.App.IsProduction() {
		secure.HSTSMaxAge = 31536000
	}
	s.echo.Use(middleware.SecureWithConfig(secure))

	if s.config.Server.RequestTimeout > 0 {
		s.echo.Use(middleware.ContextTimeout(s.config.Server.RequestTimeout))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(questionHandler *httpHandlers.QuestionHandler) {
	s.echo.GET("/", httpHandlers.Welcome)

	// Health check routes
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/health/detailed", s.detailedHealthCheck)
	s.echo.GET("/ready", s.readinessCheck)

	// API documentation is not published in production
	if !s.config.App.IsProduction() {
		s.echo.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	if s.metrics != nil {
		s.echo.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))
	}

	questions := s.echo.Group("/questions")
	questions.GET("", questionHandler.ListQuestions)
	questions.POST("", questionHandler.CreateQuestion)
	questions.GET("/:questionId", questionHandler.GetQuestion)
	questions.GET("/:questionId/answers", questionHandler.ListAnswers)
	questions.POST("/:questionId/answers", questionHandler.CreateAnswer)
	questions.GET("/:questionId/answers/:answerId", questionHandler.GetAnswer)
}

// Health check handlers
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) detailedHealthCheck(c echo.Context) error {
	status := "ok"
	checks := make(map[string]interface{})

	if err := s.store.HealthCheck(); err != nil {
		status = "error"
		checks["storage"] = map[string]interface{}{
			"status": "error",
			"error":  err.Error(),
		}
	} else {
		checks["storage"] = map[string]interface{}{
			"status": "ok",
			"stats":  s.store.GetFileInfo(),
		}
	}

	response := map[string]interface{}{
		"status": status,
		"time":   time.Now().UTC().Format(time.RFC3339),
		"checks": checks,
		"version": map[string]string{
			"app": s.config.App.Version,
		},
	}

	if status == "ok" {
		return c.JSON(http.StatusOK, response)
	}
	return c.JSON(http.StatusServiceUnavailable, response)
}

func (s *Server) readinessCheck(c echo.Context) error {
	if err := s.store.HealthCheck(); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"reason": "storage_not_ready",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Start starts the HTTP server
func (s *Server) Start(address string) error {
	s.echo.Server.ReadTimeout = s.config.Server.ReadTimeout
	s.echo.Server.WriteTimeout = s.config.Server.WriteTimeout
	s.echo.Server.IdleTimeout = s.config.Server.IdleTimeout

	s.logger.Infow("Starting server", "address", address, "storage", s.store.Path())
	return s.echo.Start(address)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")
	return s.echo.Shutdown(ctx)
}

// customErrorHandler renders every error as {"error": "..."}
func customErrorHandler(logger *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var (
			code = http.StatusInternalServerError
			msg  string
		)

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if m, ok := he.Message.(string); ok {
				msg = m
			}
			if he.Internal != nil {
				err = fmt.Errorf("%v, %v", err, he.Internal)
			}
		}

		if code >= http.StatusInternalServerError {
			// never leak internal messages to clients
			msg = http.StatusText(code)
			logger.Errorw("Internal server error", "error", err, "path", c.Request().URL.Path)
		} else if msg == "" {
			msg = http.StatusText(code)
		}

		if !c.Response().Committed {
			if c.Request().Method == http.MethodHead {
				err = c.NoContent(code)
			} else {
				err = c.JSON(code, httpHandlers.ErrorResponse{Error: msg})
			}
			if err != nil {
				logger.Errorw("Error sending response", "error", err)
			}
		}
	}
}
