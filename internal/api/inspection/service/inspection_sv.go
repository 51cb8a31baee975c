package inspectionService

import (
	"path/filepath"
	"sort"
	"strings"

	"QualityInspector/internal/api/inspection"
	"QualityInspector/internal/entity"
	"QualityInspector/pkg/log"
	"golang.org/x/net/context"
)

// InspectImage runs the full pipeline on one image: validate, decode,
// normalize, classify, shape the result. Checks are ordered cheapest first
// so bad input never reaches the decode or inference steps.
func (s *inspectionService) InspectImage(ctx context.Context, data []byte, filename string) (*entity.InspectionResult, error) {
	if !s.classifier.Ready() {
		return nil, inspection.ErrModelNotLoaded
	}

	if len(data) == 0 {
		return nil, inspection.ErrEmptyImage
	}

	if len(data) > s.cfg.MaxUploadBytes {
		return nil, inspection.ErrImageTooLarge
	}

	if !s.allowedFile(filename) {
		return nil, inspection.ErrUnsupportedFormat
	}

	img, err := decodeImage(data)
	if err != nil {
		log.WithRequestID(ctx).WithFields(log.Fields{
			"filename": filename,
			"error":    err.Error(),
		}).Warn("Image failed decoding")
		return nil, inspection.ErrCorruptImage
	}

	input := makeTensor(img, s.cfg.InputSize)

	probs, err := s.classifier.Predict(input)
	if err != nil {
		log.WithRequestID(ctx).WithFields(log.Fields{
			"filename": filename,
			"error":    err.Error(),
		}).Error("Model inference failed")
		return nil, inspection.ErrInferenceFailed
	}

	if len(probs) < len(s.cfg.Classes) {
		log.WithRequestID(ctx).WithFields(log.Fields{
			"expected": len(s.cfg.Classes),
			"got":      len(probs),
		}).Error("Model returned a malformed prediction vector")
		return nil, inspection.ErrInferenceFailed
	}

	return s.shapeResult(probs), nil
}

// allowedFile checks the upload's extension against the configured
// whitelist. Camera captures arrive without a user-supplied name and get a
// generated .jpg one before reaching here.
func (s *inspectionService) allowedFile(filename string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext == "" {
		return false
	}
	for _, allowed := range s.cfg.AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// shapeResult turns the raw probability vector into the ranked result. The
// vector is positionally aligned with the class table; the sort is stable
// so ties keep class-index order.
func (s *inspectionService) shapeResult(probs []float32) *entity.InspectionResult {
	predictions := make([]entity.Prediction, len(s.cfg.Classes))
	topIdx := 0
	for i := range s.cfg.Classes {
		predictions[i] = entity.Prediction{
			Class:      s.cfg.Classes[i],
			Confidence: probs[i],
		}
		if probs[i] > probs[topIdx] {
			topIdx = i
		}
	}

	top := predictions[topIdx]

	sort.SliceStable(predictions, func(i, j int) bool {
		return predictions[i].Confidence > predictions[j].Confidence
	})

	if len(predictions) > 5 {
		predictions = predictions[:5]
	}

	return &entity.InspectionResult{
		VegetableType: top.Class,
		Confidence:    top.Confidence,
		Quality:       entity.GradeQuality(top.Confidence),
		QualityScore:  entity.QualityScore(top.Confidence),
		Predictions:   predictions,
	}
}
