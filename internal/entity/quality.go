package entity

const (
	QualityFresh = "fresh"
	QualityGood  = "good"
	QualityFair  = "fair"
	QualityPoor  = "poor"
)

// QualityCategory describes one freshness bucket for display purposes.
type QualityCategory struct {
	Label       string `json:"label"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// QualityCategories is static display data keyed by bucket name. It mirrors
// the table the web frontend renders and must not be edited independently
// of it.
var QualityCategories = map[string]QualityCategory{
	QualityFresh: {Label: "Fresh", Color: "#28a745", Description: "Excellent quality, ready for consumption"},
	QualityGood:  {Label: "Good", Color: "#ffc107", Description: "Good quality, consume soon"},
	QualityFair:  {Label: "Fair", Color: "#fd7e14", Description: "Fair quality, check before consumption"},
	QualityPoor:  {Label: "Poor", Color: "#dc3545", Description: "Poor quality, not recommended for consumption"},
}

// GradeQuality maps the classifier's top confidence to a freshness bucket.
// Boundaries are inclusive on the lower edge of the higher tier: exactly
// 0.8 is fresh, exactly 0.6 is good, exactly 0.4 is fair.
//
// The bucket is derived from the type classifier's confidence, not from a
// dedicated freshness model. Identification confidence is a stand-in here,
// kept for compatibility with the deployed frontend.
func GradeQuality(confidence float32) string {
	switch {
	case confidence >= 0.8:
		return QualityFresh
	case confidence >= 0.6:
		return QualityGood
	case confidence >= 0.4:
		return QualityFair
	default:
		return QualityPoor
	}
}

// QualityScore converts a [0,1] confidence to the 0-100 integer score the
// frontend displays.
func QualityScore(confidence float32) int {
	score := int(confidence * 100)
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}
