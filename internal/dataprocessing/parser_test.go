package dataprocessing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "lossval/internal/errors"
)

var requiredColumns = []string{"Measurement", "Percentage Loss"}

func TestParseCSV_HeaderInsidePreamble(t *testing.T) {
	src := strings.Join([]string{
		"Exported by loss validation tool",
		"Vehicle,VIN-123,,,",
		`malformed,"preamble,,line`,
		"\x00\x01binary noise\x02",
		"Time,Metric,Value,Measurement,Percentage Loss",
		"1,can,1,Front Radar,5.0",
		"2,can,1,Rear Camera,3.2",
	}, "\n")

	table, err := ParseCSV(strings.NewReader(src), DefaultSignature(), requiredColumns)
	require.NoError(t, err)

	assert.Equal(t, []string{"Time", "Metric", "Value", "Measurement", "Percentage Loss"}, table.Header)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Front Radar", table.Rows[0]["Measurement"])
	assert.Equal(t, "5.0", table.Rows[0]["Percentage Loss"])
	assert.Empty(t, table.Sheet)
}

func TestParseCSV_HeaderOnFirstLine(t *testing.T) {
	src := "Time,Metric,Value,Measurement,Percentage Loss\n1,can,1,X,5\n"

	table, err := ParseCSV(strings.NewReader(src), DefaultSignature(), requiredColumns)
	require.NoError(t, err)
	assert.Len(t, table.Rows, 1)
}

func TestParseCSV_SkipsBlankRows(t *testing.T) {
	src := "Time,Metric,Value,Measurement,Percentage Loss\n1,can,1,X,5\n,,,,\n\n2,can,1,Y,6\n"

	table, err := ParseCSV(strings.NewReader(src), DefaultSignature(), requiredColumns)
	require.NoError(t, err)
	assert.Len(t, table.Rows, 2)
}

func TestParseCSV_ShortRowsPadded(t *testing.T) {
	src := "Time,Metric,Value,Measurement,Percentage Loss\n1,can,1,X\n"

	table, err := ParseCSV(strings.NewReader(src), DefaultSignature(), requiredColumns)
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "", table.Rows[0]["Percentage Loss"])
}

func TestParseCSV_HeaderNotFound(t *testing.T) {
	src := "just,some,data\nwithout,a,header\n"

	_, err := ParseCSV(strings.NewReader(src), DefaultSignature(), requiredColumns)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeHeaderNotFound))
}

func TestParseCSV_EmptySource(t *testing.T) {
	_, err := ParseCSV(strings.NewReader(""), DefaultSignature(), requiredColumns)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeMalformedSource))
}

func TestParseCSV_MissingColumns(t *testing.T) {
	// Header signature present but the group key column was renamed away.
	src := "Time,Metric,Value,Measurements,Percentage Loss\n1,can,1,X,5\n"
	sig := Signature{LinePrefix: "Time,Metric,Value", CellPrefix: "Time"}

	_, err := ParseCSV(strings.NewReader(src), sig, requiredColumns)
	require.True(t, apperrors.IsType(err, apperrors.ErrTypeMissingColumns))
	assert.Equal(t, []string{"Measurement"}, apperrors.MissingColumns(err))
}

func TestParseCSV_CustomSignature(t *testing.T) {
	src := "preamble\nTimestamp;x\nTime,Sensor,Reading\n1,a,2\n"
	sig := Signature{LinePrefix: "Time,Sensor", CellPrefix: "Time"}

	table, err := ParseCSV(strings.NewReader(src), sig, []string{"Sensor", "Reading"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Time", "Sensor", "Reading"}, table.Header)
}
