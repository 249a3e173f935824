package exporter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVWriter_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "input_processed.csv")

	require.NoError(t, NewCSVWriter(nil).Write(path, sampleReport()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	// UTF-8 BOM for Excel compatibility.
	require.True(t, strings.HasPrefix(string(data), "\xef\xbb\xbf"))

	content := strings.TrimPrefix(string(data), "\xef\xbb\xbf")
	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Measurement,Min Loss,Max Loss", lines[0])
	assert.Equal(t, "Front Radar,2.00,6.00", lines[1])
	assert.Equal(t, "Rear Camera,3.25,4.00", lines[2])
}

func TestCSVWriter_WriteWithTrailer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "combined.csv")

	require.NoError(t, NewCSVWriter(nil).Write(path, fullReport()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	content := strings.TrimPrefix(string(data), "\xef\xbb\xbf")
	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "Measurement,Min Loss,Max Loss,Average,Source File", lines[0])
	assert.Equal(t, "Front Radar,2.00,6.00,4.00,a.csv", lines[1])
	assert.Equal(t, "Rear Camera,3.00,4.00,3.50,b.csv", lines[2])
	// The trailer follows a blank line.
	assert.Equal(t, "", lines[3])
	assert.Equal(t, "Overall Average Min Loss,,2.50", lines[4])
	assert.Equal(t, "Overall Average Max Loss,,5.00", lines[5])
}
