package analysis

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/marketlens/internal/models"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G'}

func TestRenderTrendChart(t *testing.T) {
	data := &models.StructuredData{
		TrendSeries: []models.TrendPoint{
			{Label: "Q1", Value: 100},
			{Label: "Q2", Value: 108},
			{Label: "Q3", Value: 96},
			{Label: "Q4", Value: 115},
		},
	}

	png, err := RenderTrendChart(data)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngHeader), "output is a PNG image")
}

func TestRenderTrendChart_NoSeries(t *testing.T) {
	_, err := RenderTrendChart(nil)
	assert.Error(t, err)

	_, err = RenderTrendChart(&models.StructuredData{})
	assert.Error(t, err)

	// A single point is not a trend.
	_, err = RenderTrendChart(&models.StructuredData{
		TrendSeries: []models.TrendPoint{{Label: "Q1", Value: 100}},
	})
	assert.Error(t, err)
}
