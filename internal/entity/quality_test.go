package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGradeQualityBoundaries(t *testing.T) {
	cases := []struct {
		confidence float32
		want       string
	}{
		{1.0, QualityFresh},
		{0.9, QualityFresh},
		{0.8, QualityFresh},
		{0.799999, QualityGood},
		{0.6, QualityGood},
		{0.599999, QualityFair},
		{0.4, QualityFair},
		{0.3999, QualityPoor},
		{0.0, QualityPoor},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, GradeQuality(tc.confidence), "confidence %v", tc.confidence)
	}
}

func TestQualityScore(t *testing.T) {
	require.Equal(t, 90, QualityScore(0.9))
	require.Equal(t, 100, QualityScore(1.0))
	require.Equal(t, 100, QualityScore(1.2))
	require.Equal(t, 0, QualityScore(0))
	require.Equal(t, 0, QualityScore(-0.1))
	require.Equal(t, 59, QualityScore(0.599))
}

func TestQualityCategoriesTable(t *testing.T) {
	require.Len(t, QualityCategories, 4)

	for _, bucket := range []string{QualityFresh, QualityGood, QualityFair, QualityPoor} {
		info, ok := QualityCategories[bucket]
		require.True(t, ok, bucket)
		require.NotEmpty(t, info.Label)
		require.NotEmpty(t, info.Color)
		require.NotEmpty(t, info.Description)
	}

	require.Equal(t, "#28a745", QualityCategories[QualityFresh].Color)
	require.Equal(t, "Poor quality, not recommended for consumption", QualityCategories[QualityPoor].Description)
}
