package inspectionHandler

import (
	"fmt"
	"io"
	"time"

	"QualityInspector/internal/api/inspection"
	"QualityInspector/internal/entity"
	contextPkg "QualityInspector/pkg/context"
	"QualityInspector/pkg/handlerUtil"
	"QualityInspector/pkg/log"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"golang.org/x/net/context"
)

func (h *InspectionHandler) InspectImage(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 30*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing quality inspection request")

	var imageData []byte
	var filename string

	file, err := ctx.FormFile("file")
	if err == nil {
		h.log.WithFields(log.Fields{
			"request_id": requestID,
			"path":       ctx.Path(),
			"file_name":  file.Filename,
			"file_size":  file.Size,
		}).Debug("Processing file upload")

		filename = h.utils.SanitizeFilename(file.Filename)

		fileContent, err := file.Open()
		if err != nil {
			return errHandler.Handle(ctx, requestID, err, ctx.Path(), "open_file")
		}
		defer fileContent.Close()

		imageData, err = io.ReadAll(fileContent)
		if err != nil {
			return errHandler.Handle(ctx, requestID, err, ctx.Path(), "read_file")
		}
	} else {
		h.log.WithFields(log.Fields{
			"request_id": requestID,
			"path":       ctx.Path(),
		}).Debug("Processing camera capture request")

		var req inspection.InspectRequest
		if err := ctx.BodyParser(&req); err != nil {
			// Neither a multipart file nor a parseable JSON body: the
			// request carries no image at all.
			h.log.WithFields(log.Fields{
				"request_id": requestID,
				"path":       ctx.Path(),
				"error":      err.Error(),
			}).Warn("Failed to parse request body")
			return errHandler.Handle(ctx, requestID, inspection.ErrEmptyImage, ctx.Path(), "parse_request_body")
		}

		if err := h.validator.Struct(req); err != nil {
			return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
		}

		imageData, err = h.utils.DecodeBase64Image(req.Image)
		if err != nil {
			h.log.WithFields(log.Fields{
				"request_id": requestID,
				"path":       ctx.Path(),
				"error":      err.Error(),
			}).Warn("Failed to decode base64 image")
			return errHandler.Handle(ctx, requestID, inspection.ErrCorruptImage, ctx.Path(), "decode_base64_image")
		}

		filename = fmt.Sprintf("camera_capture_%s.jpg", time.Now().Format("20060102_150405"))
	}

	result, err := h.inspectionService.InspectImage(c, imageData, filename)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "inspect_image")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		h.log.WithFields(log.Fields{
			"request_id":  requestID,
			"path":        ctx.Path(),
			"filename":    filename,
			"vegetable":   result.VegetableType,
			"quality":     result.Quality,
			"confidence":  result.Confidence,
		}).Info("Quality inspection completed")
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, newInspectionResponse(result, filename))
	}
}

func (h *InspectionHandler) GetVegetables(ctx *fiber.Ctx) error {
	vegetables := h.inspectionService.Vegetables()
	return ctx.Status(fiber.StatusOK).JSON(inspection.VegetablesResponse{
		Vegetables: vegetables,
		Count:      len(vegetables),
	})
}

func (h *InspectionHandler) GetQualityCategories(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusOK).JSON(inspection.QualityCategoriesResponse{
		Categories: entity.QualityCategories,
		Count:      len(entity.QualityCategories),
	})
}

// handleInspectionWebSocket serves the live camera mode: the frontend
// streams JPEG frames as binary messages and gets one inspection result
// back per frame.
func (h *InspectionHandler) handleInspectionWebSocket(c *websocket.Conn) {
	h.log.Info("Live inspection WebSocket client connected")
	defer h.log.Info("Live inspection WebSocket client disconnected")

	c.SetPingHandler(func(data string) error {
		if err := c.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(5*time.Second)); err != nil {
			h.log.Errorf("Error sending pong: %v", err)
		}
		return nil
	})

	maxReadTimeout := 60 * time.Second

	for {
		if err := c.SetReadDeadline(time.Now().Add(maxReadTimeout)); err != nil {
			h.log.Errorf("Error setting read deadline: %v", err)
			break
		}

		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Errorf("Live inspection WebSocket error: %v", err)
			} else {
				h.log.Info("Live inspection WebSocket connection closed")
			}
			break
		}

		if messageType != websocket.BinaryMessage {
			h.log.Warnf("Received unexpected message type: %d", messageType)
			continue
		}

		frameName := fmt.Sprintf("camera_frame_%s.jpg", time.Now().Format("20060102_150405"))
		result, err := h.inspectionService.InspectImage(context.Background(), message, frameName)

		var resp inspection.FrameResponse
		if err != nil {
			resp.Error = err.Error()
		} else {
			full := newInspectionResponse(result, frameName)
			resp.Result = &full
		}

		if err := c.SetWriteDeadline(time.Now().Add(10 * time.Second)); err != nil {
			h.log.Errorf("Error setting write deadline: %v", err)
			break
		}

		if err := c.WriteJSON(resp); err != nil {
			h.log.Errorf("Error writing JSON response: %v", err)
			break
		}

		if err := c.SetWriteDeadline(time.Time{}); err != nil {
			h.log.Errorf("Error resetting write deadline: %v", err)
			break
		}
	}
}

func newInspectionResponse(result *entity.InspectionResult, filename string) inspection.InspectionResponse {
	return inspection.InspectionResponse{
		Success:         true,
		Filename:        filename,
		PredictedClass:  result.VegetableType,
		VegetableType:   result.VegetableType,
		Confidence:      result.Confidence,
		QualityCategory: result.Quality,
		QualityInfo:     entity.QualityCategories[result.Quality],
		QualityScore:    result.QualityScore,
		AllPredictions:  result.Predictions,
		Timestamp:       time.Now().Format(time.RFC3339),
	}
}
