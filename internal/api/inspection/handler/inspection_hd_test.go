package inspectionHandler

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/context"

	"QualityInspector/internal/api/inspection"
	"QualityInspector/internal/config/inspector"
	"QualityInspector/internal/entity"
	"QualityInspector/internal/middleware"
	"QualityInspector/pkg/log"
	"QualityInspector/pkg/utils"
)

func TestMain(m *testing.M) {
	os.Setenv("APP_ENV", "test")
	log.NewLogger()
	os.Exit(m.Run())
}

type stubService struct {
	result   *entity.InspectionResult
	err      error
	lastData []byte
	lastName string
}

func (s *stubService) InspectImage(_ context.Context, data []byte, filename string) (*entity.InspectionResult, error) {
	s.lastData = append([]byte(nil), data...)
	s.lastName = filename
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *stubService) Vegetables() []string {
	return inspector.VegetableClasses
}

func (s *stubService) ModelReady() bool {
	return true
}

func newTestApp(svc *stubService) *fiber.App {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	app := fiber.New()
	h := New(logger, validator.New(), middleware.New(logger), svc, utils.New())
	h.Start(app.Group("/api/v1"))

	return app
}

func sampleResult() *entity.InspectionResult {
	return &entity.InspectionResult{
		VegetableType: "Tomato",
		Confidence:    0.91,
		Quality:       entity.QualityFresh,
		QualityScore:  91,
		Predictions: []entity.Prediction{
			{Class: "Tomato", Confidence: 0.91},
			{Class: "Bell_Pepper", Confidence: 0.05},
		},
	}
}

func multipartBody(t *testing.T, fieldName, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(fieldName, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func smallPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestInspectImage_MultipartUpload(t *testing.T) {
	svc := &stubService{result: sampleResult()}
	app := newTestApp(svc)

	content := smallPNG(t)
	body, contentType := multipartBody(t, "file", "my tomato.png", content)

	req := httptest.NewRequest("POST", "/api/v1/inspect", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got inspection.InspectionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))

	require.True(t, got.Success)
	require.Equal(t, "Tomato", got.PredictedClass)
	require.Equal(t, "Tomato", got.VegetableType)
	require.Equal(t, entity.QualityFresh, got.QualityCategory)
	require.Equal(t, "Fresh", got.QualityInfo.Label)
	require.Equal(t, 91, got.QualityScore)
	require.Equal(t, "my_tomato.png", got.Filename)
	require.NotEmpty(t, got.Timestamp)

	require.Equal(t, content, svc.lastData)
	require.Equal(t, "my_tomato.png", svc.lastName)
}

func TestInspectImage_Base64Capture(t *testing.T) {
	svc := &stubService{result: sampleResult()}
	app := newTestApp(svc)

	content := smallPNG(t)
	payload, err := json.Marshal(inspection.InspectRequest{
		Image: "data:image/png;base64," + base64Encode(content),
	})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/v1/inspect", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.Equal(t, content, svc.lastData)
	require.Contains(t, svc.lastName, "camera_capture_")
}

func TestInspectImage_MissingImageField(t *testing.T) {
	svc := &stubService{result: sampleResult()}
	app := newTestApp(svc)

	req := httptest.NewRequest("POST", "/api/v1/inspect", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestInspectImage_NoImageProvided(t *testing.T) {
	svc := &stubService{result: sampleResult()}
	app := newTestApp(svc)

	// No multipart file and a body that is not JSON at all.
	req := httptest.NewRequest("POST", "/api/v1/inspect", bytes.NewReader([]byte("just some text")))
	req.Header.Set("Content-Type", "text/plain")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var got map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Equal(t, "no image data provided", got["error"])
	require.Nil(t, svc.lastData)
}

func TestInspectImage_PipelineErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"corrupt", inspection.ErrCorruptImage, fiber.StatusBadRequest},
		{"unsupported", inspection.ErrUnsupportedFormat, fiber.StatusBadRequest},
		{"empty", inspection.ErrEmptyImage, fiber.StatusBadRequest},
		{"too large", inspection.ErrImageTooLarge, fiber.StatusRequestEntityTooLarge},
		{"inference", inspection.ErrInferenceFailed, fiber.StatusInternalServerError},
		{"not loaded", inspection.ErrModelNotLoaded, fiber.StatusServiceUnavailable},
		{"unexpected", errors.New("tensor allocation details"), fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubService{err: tc.err}
			app := newTestApp(svc)

			body, contentType := multipartBody(t, "file", "veg.png", smallPNG(t))
			req := httptest.NewRequest("POST", "/api/v1/inspect", body)
			req.Header.Set("Content-Type", contentType)

			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			require.Equal(t, tc.wantStatus, resp.StatusCode)

			var got map[string]interface{}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
			require.Contains(t, got, "error")

			// Internal details never reach the client; unexpected errors
			// carry a trace ID so the log line can be found later.
			if tc.name == "unexpected" {
				require.NotContains(t, got["error"], "tensor")
				require.NotEmpty(t, got["trace_id"])
			}
		})
	}
}

func TestGetVegetables(t *testing.T) {
	app := newTestApp(&stubService{result: sampleResult()})

	req := httptest.NewRequest("GET", "/api/v1/vegetables", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got inspection.VegetablesResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Equal(t, 15, got.Count)
	require.Equal(t, "Tomato", got.Vegetables[0])
	require.Equal(t, "Bean", got.Vegetables[14])
}

func TestGetQualityCategories(t *testing.T) {
	app := newTestApp(&stubService{result: sampleResult()})

	req := httptest.NewRequest("GET", "/api/v1/quality-categories", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got inspection.QualityCategoriesResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Equal(t, 4, got.Count)
	require.Equal(t, "Fresh", got.Categories[entity.QualityFresh].Label)
}

func base64Encode(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}
