package exporter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestRenderChartPNG(t *testing.T) {
	png, err := RenderChartPNG(sampleReport(), "Minimum and Maximum Percentage Loss per Measurement")
	require.NoError(t, err)

	require.NotEmpty(t, png)
	assert.True(t, bytes.HasPrefix(png, pngMagic))
}

func TestRenderChartPNG_WithAverageSeries(t *testing.T) {
	png, err := RenderChartPNG(fullReport(), "Loss per Measurement")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngMagic))
}
