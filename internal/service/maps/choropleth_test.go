package maps

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmabaso/sdg3health/internal/domain"
)

func fptr(v float64) *float64 { return &v }

var squareGeom = json.RawMessage(`{"type":"Polygon","coordinates":[[[24.0,-29.0],[25.0,-29.0],[25.0,-28.0],[24.0,-28.0],[24.0,-29.0]]]}`)
var eastGeom = json.RawMessage(`{"type":"Polygon","coordinates":[[[27.0,-27.0],[28.0,-27.0],[28.0,-26.0],[27.0,-26.0],[27.0,-27.0]]]}`)

func boundaryRow(code, name string, density *float64, geom json.RawMessage) *domain.BoundaryRow {
	row := &domain.BoundaryRow{Code: code, Name: name, Geometry: geom}
	row.HealthWorkerDensity = density
	return row
}

func densityLayer(t *testing.T) domain.LayerInfo {
	t.Helper()
	layer, ok := domain.LayerByID(domain.LayerHealthWorkerDensity)
	require.True(t, ok)
	return layer
}

func TestBuildChoropleth_Basic(t *testing.T) {
	rows := []*domain.BoundaryRow{
		boundaryRow("GT", "Gauteng", fptr(10), squareGeom),
		boundaryRow("WC", "Western Cape", fptr(30), eastGeom),
	}

	artifact, err := BuildChoropleth(domain.LevelNational, densityLayer(t), rows, nil)
	require.NoError(t, err)

	assert.False(t, artifact.NoData)
	assert.Equal(t, domain.LevelNational, artifact.Level)
	assert.Equal(t, domain.LayerHealthWorkerDensity, artifact.Indicator)
	assert.Equal(t, zoomLevels[domain.LevelNational], artifact.Zoom)
	require.Len(t, artifact.Features.Features, 2)
	require.Len(t, artifact.Markers, 2)

	// min value paints the first gradient stop, max the last
	gradient := colorGradients["YlOrRd"]
	assert.Equal(t, gradient[0], artifact.Features.Features[0].Properties.FillColor)
	assert.Equal(t, gradient[len(gradient)-1], artifact.Features.Features[1].Properties.FillColor)

	// center is the midpoint of the combined bounds
	assert.InDelta(t, -27.5, artifact.Center.Lat, 1e-9)
	assert.InDelta(t, 26.0, artifact.Center.Lon, 1e-9)

	require.NotNil(t, artifact.Legend)
	assert.Equal(t, "Health Worker Density", artifact.Legend.Title)
	assert.Equal(t, gradient, artifact.Legend.Gradient)
	assert.Len(t, artifact.Legend.Bins, 6)
}

func TestBuildChoropleth_EmptyRows(t *testing.T) {
	artifact, err := BuildChoropleth(domain.LevelProvince, densityLayer(t), nil, nil)
	require.NoError(t, err)

	assert.True(t, artifact.NoData)
	assert.Equal(t, defaultCenter, artifact.Center)
	assert.Equal(t, defaultZoom, artifact.Zoom)
	assert.Empty(t, artifact.Features.Features)
	assert.Nil(t, artifact.Legend)
}

func TestBuildChoropleth_SkipsRowsWithoutGeometry(t *testing.T) {
	rows := []*domain.BoundaryRow{
		boundaryRow("GT", "Gauteng", fptr(10), squareGeom),
		boundaryRow("NW", "North West", fptr(20), nil),
	}

	artifact, err := BuildChoropleth(domain.LevelNational, densityLayer(t), rows, nil)
	require.NoError(t, err)

	require.Len(t, artifact.Features.Features, 1)
	assert.Equal(t, "GT", artifact.Features.Features[0].ID)
}

func TestBuildChoropleth_AllGeometryMissing(t *testing.T) {
	rows := []*domain.BoundaryRow{
		boundaryRow("GT", "Gauteng", fptr(10), nil),
	}

	artifact, err := BuildChoropleth(domain.LevelNational, densityLayer(t), rows, nil)
	require.NoError(t, err)

	assert.True(t, artifact.NoData)
	assert.Equal(t, defaultCenter, artifact.Center)
}

func TestBuildChoropleth_NilValueRendersGray(t *testing.T) {
	rows := []*domain.BoundaryRow{
		boundaryRow("GT", "Gauteng", fptr(10), squareGeom),
		boundaryRow("WC", "Western Cape", nil, eastGeom),
	}

	artifact, err := BuildChoropleth(domain.LevelNational, densityLayer(t), rows, nil)
	require.NoError(t, err)

	require.Len(t, artifact.Features.Features, 2)
	missing := artifact.Features.Features[1].Properties
	assert.Equal(t, noDataColor, missing.FillColor)
	assert.Equal(t, "N/A", missing.Display)
	assert.Nil(t, missing.Value)
}

func TestBuildChoropleth_ContextFeatures(t *testing.T) {
	rows := []*domain.BoundaryRow{
		boundaryRow("TSH", "City of Tshwane", fptr(18), squareGeom),
	}
	neighbors := []*domain.BoundaryRow{
		boundaryRow("JHB", "City of Johannesburg", fptr(22), eastGeom),
	}

	artifact, err := BuildChoropleth(domain.LevelMunicipality, densityLayer(t), rows, neighbors)
	require.NoError(t, err)

	require.NotNil(t, artifact.Context)
	require.Len(t, artifact.Context.Features, 1)
	ctx := artifact.Context.Features[0].Properties
	assert.Equal(t, colorGradients["Blues"][0], ctx.FillColor)
	assert.Contains(t, ctx.Tooltip, "neighboring area")
}

func TestBuildChoropleth_Deterministic(t *testing.T) {
	rows := []*domain.BoundaryRow{
		boundaryRow("GT", "Gauteng", fptr(12.5), squareGeom),
		boundaryRow("WC", "Western Cape", fptr(27.5), eastGeom),
	}

	first, err := BuildChoropleth(domain.LevelNational, densityLayer(t), rows, nil)
	require.NoError(t, err)
	second, err := BuildChoropleth(domain.LevelNational, densityLayer(t), rows, nil)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerateBins_Rates(t *testing.T) {
	bins := GenerateBins(0, 100, 6, false)
	assert.Equal(t, []float64{0, 20, 40, 60, 80, 100}, bins)
}

func TestGenerateBins_CountsSnapToMagnitude(t *testing.T) {
	bins := GenerateBins(12_345, 98_765, 6, true)

	require.Len(t, bins, 6)
	assert.Equal(t, 12_000.0, bins[0])
	assert.Equal(t, 99_000.0, bins[5])
	// evenly spaced between the snapped endpoints
	assert.InDelta(t, 17_400, bins[1]-bins[0], 0.001)
}

func TestGenerateBins_DegenerateRange(t *testing.T) {
	bins := GenerateBins(5, 5, 4, false)
	require.Len(t, bins, 4)
	assert.Equal(t, 5.0, bins[0])
	assert.Equal(t, 6.0, bins[3])
}

func TestColorFor(t *testing.T) {
	gradient := colorGradients["Reds"]

	assert.Equal(t, gradient[0], colorFor(0, 0, 10, gradient))
	assert.Equal(t, gradient[1], colorFor(5, 0, 10, gradient))
	assert.Equal(t, gradient[2], colorFor(10, 0, 10, gradient))

	// out-of-range values clamp
	assert.Equal(t, gradient[0], colorFor(-5, 0, 10, gradient))
	assert.Equal(t, gradient[2], colorFor(50, 0, 10, gradient))

	// degenerate range paints the top stop
	assert.Equal(t, gradient[2], colorFor(3, 7, 7, gradient))
}

func TestFormatLegendNumber(t *testing.T) {
	cases := []struct {
		value float64
		count bool
		want  string
	}{
		{12.34, false, "12.3"},
		{80, false, "80"},
		{999, true, "999"},
		{1_500, true, "1K"},
		{250_000, true, "250K"},
		{1_234_567, true, "1.2M"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatLegendNumber(tc.value, tc.count), "value %v count %v", tc.value, tc.count)
	}
}

func TestFormatDisplayNumber(t *testing.T) {
	assert.Equal(t, "N/A", FormatDisplayNumber(nil, true))
	assert.Equal(t, "12.3", FormatDisplayNumber(fptr(12.34), false))
	assert.Equal(t, "999", FormatDisplayNumber(fptr(999), true))
	assert.Equal(t, "2.5K", FormatDisplayNumber(fptr(2_500), true))
	assert.Equal(t, "1.5M", FormatDisplayNumber(fptr(1_500_000), true))
}
