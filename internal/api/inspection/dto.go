package inspection

import (
	"QualityInspector/internal/entity"
)

// InspectRequest is the JSON body used by camera captures: the frontend
// sends the canvas content as a base64 data URL.
type InspectRequest struct {
	Image string `json:"image" validate:"required"`
}

type InspectionResponse struct {
	Success         bool                   `json:"success"`
	Filename        string                 `json:"filename"`
	PredictedClass  string                 `json:"predicted_class"`
	VegetableType   string                 `json:"vegetable_type"`
	Confidence      float32                `json:"confidence"`
	QualityCategory string                 `json:"quality_category"`
	QualityInfo     entity.QualityCategory `json:"quality_info"`
	QualityScore    int                    `json:"quality_score"`
	AllPredictions  []entity.Prediction    `json:"all_predictions"`
	Timestamp       string                 `json:"timestamp"`
}

type VegetablesResponse struct {
	Vegetables []string `json:"vegetables"`
	Count      int      `json:"count"`
}

type QualityCategoriesResponse struct {
	Categories map[string]entity.QualityCategory `json:"categories"`
	Count      int                               `json:"count"`
}

type HealthResponse struct {
	Status           string   `json:"status"`
	ModelLoaded      bool     `json:"model_loaded"`
	SupportedFormats []string `json:"supported_formats"`
	MaxFileSizeMB    float64  `json:"max_file_size_mb"`
	NumClasses       int      `json:"num_classes"`
	Timestamp        string   `json:"timestamp"`
}

// FrameResponse is sent back over the live-inspection websocket for every
// camera frame, successful or not.
type FrameResponse struct {
	Result *InspectionResponse `json:"result,omitempty"`
	Error  string              `json:"error,omitempty"`
}
