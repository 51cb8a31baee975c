package entity

// Prediction pairs a vegetable class with the model's confidence for it.
type Prediction struct {
	Class      string  `json:"class"`
	Confidence float32 `json:"confidence"`
}

// InspectionResult is the outcome of running one image through the
// classification pipeline. Confidence values stay in [0,1]; presentation
// layers are responsible for turning them into percentages.
type InspectionResult struct {
	VegetableType string       `json:"vegetable_type"`
	Confidence    float32      `json:"confidence"`
	Quality       string       `json:"quality_category"`
	QualityScore  int          `json:"quality_score"`
	Predictions   []Prediction `json:"predictions"`
}
