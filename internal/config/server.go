package config

import (
	"fmt"
	"os"
	"time"

	"QualityInspector/internal/api/inspection"
	inspectionHandler "QualityInspector/internal/api/inspection/handler"
	inspectionService "QualityInspector/internal/api/inspection/service"
	"QualityInspector/internal/config/inspector"
	"QualityInspector/internal/middleware"
	"QualityInspector/pkg/classifier"
	"QualityInspector/pkg/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine        *fiber.App
	log           *logrus.Logger
	middleware    middleware.Middleware
	validator     *validator.Validate
	utils         utils.IUtils
	inspectorCfg  *inspector.Config
	classifier    classifier.IClassifier
	inspectionSvc inspectionService.IInspectionService
	handlers      []handler
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if server.inspectorCfg == nil {
		return nil, fmt.Errorf("inspector config is required")
	}
	if server.classifier == nil {
		return nil, fmt.Errorf("classifier is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithInspectorConfig(cfg *inspector.Config) ServerOption {
	return func(s *Server) error {
		s.inspectorCfg = cfg
		return nil
	}
}

func WithClassifier(clf classifier.IClassifier) ServerOption {
	return func(s *Server) error {
		s.classifier = clf
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	s.inspectionSvc = inspectionService.NewInspectionService(s.inspectorCfg, s.classifier)
	inspectionHandlers := inspectionHandler.New(s.log, s.validator, s.middleware, s.inspectionSvc, s.utils)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, inspectionHandlers)
}

func (s *Server) Run() error {
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(s.middleware.NewLoggingMiddleware())

	router := s.engine.Group("/api/v1")
	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "5000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

func (s *Server) Shutdown() error {
	if err := s.engine.Shutdown(); err != nil {
		return err
	}
	s.classifier.Close()
	return nil
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/health", func(ctx *fiber.Ctx) error {
		status := "healthy"
		if !s.inspectionSvc.ModelReady() {
			status = "unhealthy"
		}
		return ctx.JSON(inspection.HealthResponse{
			Status:           status,
			ModelLoaded:      s.inspectionSvc.ModelReady(),
			SupportedFormats: s.inspectorCfg.AllowedExtensions,
			MaxFileSizeMB:    s.inspectorCfg.MaxUploadMB(),
			NumClasses:       len(s.inspectorCfg.Classes),
			Timestamp:        time.Now().Format(time.RFC3339),
		})
	})
}
