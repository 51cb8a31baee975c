package inspectionHandler

import (
	inspectionService "QualityInspector/internal/api/inspection/service"
	"QualityInspector/internal/middleware"
	"QualityInspector/pkg/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

type InspectionHandler struct {
	log               *logrus.Logger
	validator         *validator.Validate
	middleware        middleware.Middleware
	inspectionService inspectionService.IInspectionService
	utils             utils.IUtils
}

func New(
	log *logrus.Logger,
	validator *validator.Validate,
	middleware middleware.Middleware,
	is inspectionService.IInspectionService,
	utils utils.IUtils,
) *InspectionHandler {
	return &InspectionHandler{
		inspectionService: is,
		log:               log,
		validator:         validator,
		middleware:        middleware,
		utils:             utils,
	}
}

func (h *InspectionHandler) Start(srv fiber.Router) {
	wsMiddleware := func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}

	insp := srv.Group("/inspect")
	insp.Use("/ws", wsMiddleware)
	insp.Get("/ws", websocket.New(h.handleInspectionWebSocket))

	srv.Post("/inspect", h.middleware.NewRateLimiter, h.InspectImage)
	srv.Get("/vegetables", h.GetVegetables)
	srv.Get("/quality-categories", h.GetQualityCategories)
}
