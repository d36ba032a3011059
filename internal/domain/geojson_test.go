package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeometryBounds_Polygon(t *testing.T) {
	raw := json.RawMessage(`{"type":"Polygon","coordinates":[[[24.0,-29.0],[25.0,-29.0],[25.0,-28.0],[24.0,-28.0],[24.0,-29.0]]]}`)

	b, err := GeometryBounds(raw)
	require.NoError(t, err)

	assert.Equal(t, -29.0, b.MinLat)
	assert.Equal(t, -28.0, b.MaxLat)
	assert.Equal(t, 24.0, b.MinLon)
	assert.Equal(t, 25.0, b.MaxLon)

	center := b.Center()
	assert.Equal(t, -28.5, center.Lat)
	assert.Equal(t, 24.5, center.Lon)
}

func TestGeometryBounds_MultiPolygon(t *testing.T) {
	raw := json.RawMessage(`{"type":"MultiPolygon","coordinates":[
		[[[18.0,-34.0],[19.0,-34.0],[19.0,-33.0],[18.0,-33.0],[18.0,-34.0]]],
		[[[27.0,-26.0],[28.0,-26.0],[28.0,-25.0],[27.0,-25.0],[27.0,-26.0]]]
	]}`)

	b, err := GeometryBounds(raw)
	require.NoError(t, err)

	assert.Equal(t, -34.0, b.MinLat)
	assert.Equal(t, -25.0, b.MaxLat)
	assert.Equal(t, 18.0, b.MinLon)
	assert.Equal(t, 28.0, b.MaxLon)
}

func TestGeometryBounds_Invalid(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"not json", `{"type":`},
		{"no coordinates", `{"type":"Polygon"}`},
		{"empty coordinates", `{"type":"Polygon","coordinates":[]}`},
		{"short position", `{"type":"Point","coordinates":[24.0]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := GeometryBounds(json.RawMessage(tc.raw))
			assert.Error(t, err)
		})
	}
}

func TestBounds_Extend(t *testing.T) {
	a := Bounds{MinLat: -30, MinLon: 20, MaxLat: -28, MaxLon: 22}
	b := Bounds{MinLat: -29, MinLon: 18, MaxLat: -25, MaxLon: 21}

	merged := a.Extend(b)
	assert.Equal(t, Bounds{MinLat: -30, MinLon: 18, MaxLat: -25, MaxLon: 22}, merged)

	// extending with a contained box changes nothing
	inner := Bounds{MinLat: -29, MinLon: 20.5, MaxLat: -28.5, MaxLon: 21}
	assert.Equal(t, a, a.Extend(inner))
}

func TestNewFeatureCollection_NilFeatures(t *testing.T) {
	fc := NewFeatureCollection(nil)
	assert.Equal(t, "FeatureCollection", fc.Type)
	require.NotNil(t, fc.Features)
	assert.Empty(t, fc.Features)
}
