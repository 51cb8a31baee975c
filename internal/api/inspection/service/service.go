package inspectionService

import (
	"QualityInspector/internal/config/inspector"
	"QualityInspector/internal/entity"
	"QualityInspector/pkg/classifier"
	"golang.org/x/net/context"
)

type IInspectionService interface {
	InspectImage(ctx context.Context, data []byte, filename string) (*entity.InspectionResult, error)
	Vegetables() []string
	ModelReady() bool
}

type inspectionService struct {
	cfg        *inspector.Config
	classifier classifier.IClassifier
}

func NewInspectionService(
	cfg *inspector.Config,
	clf classifier.IClassifier,
) IInspectionService {
	return &inspectionService{
		cfg:        cfg,
		classifier: clf,
	}
}

func (s *inspectionService) Vegetables() []string {
	return s.cfg.Classes
}

func (s *inspectionService) ModelReady() bool {
	return s.classifier.Ready()
}
