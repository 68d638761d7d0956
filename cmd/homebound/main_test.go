package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/napolitain/homebound/internal/models"
)

func TestFormatTime(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0:00"},
		{59.6, "1:00"},
		{300, "5:00"},
		{3725, "1:02:05"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatTime(tt.seconds))
	}
}

func TestFormatCosts(t *testing.T) {
	assert.Equal(t, "-", formatCosts(nil))
	assert.Equal(t, "water 10, iron 5", formatCosts(models.Costs{models.Iron: 5, models.Water: 10, models.Food: 0}))
}

func TestLoadEmbeddedCatalog(t *testing.T) {
	cat, err := loadCatalog("")
	require.NoError(t, err)
	assert.NotNil(t, cat.Building(models.Headquarters))

	_, err = loadCatalog(t.TempDir())
	assert.Error(t, err)
}
