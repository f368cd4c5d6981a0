package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCategory() CategoryConfig {
	return CategoryConfig{
		Name:              "tech",
		QualityThreshold:  0.7,
		HighQualityTarget: 10,
		ArtifactPath:      "feeds/tech.xml",
	}
}

func TestCategoryConfig_Validate(t *testing.T) {
	c := validCategory()
	require.NoError(t, c.Validate())

	t.Run("empty name", func(t *testing.T) {
		c := validCategory()
		c.Name = ""
		assert.Error(t, c.Validate())
	})

	t.Run("threshold out of range", func(t *testing.T) {
		c := validCategory()
		c.QualityThreshold = 1.5
		assert.Error(t, c.Validate())
	})

	t.Run("non-positive target", func(t *testing.T) {
		c := validCategory()
		c.HighQualityTarget = 0
		assert.Error(t, c.Validate())
	})

	t.Run("missing artifact path", func(t *testing.T) {
		c := validCategory()
		c.ArtifactPath = ""
		assert.Error(t, c.Validate())
	})
}

func TestTrailingWindow(t *testing.T) {
	now := time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)
	w := TrailingWindow(now, 24*time.Hour)

	assert.Equal(t, now, w.End)
	assert.Equal(t, now.Add(-24*time.Hour), w.Start)

	assert.True(t, w.Contains(now))
	assert.True(t, w.Contains(w.Start))
	assert.True(t, w.Contains(now.Add(-12*time.Hour)))
	assert.False(t, w.Contains(now.Add(time.Second)))
	assert.False(t, w.Contains(w.Start.Add(-time.Second)))
}
