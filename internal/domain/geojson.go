package domain

import (
	"encoding/json"
	"fmt"
)

// GeoPoint is a WGS 84 coordinate.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Bounds is a geographic bounding box.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

func (b Bounds) Center() GeoPoint {
	return GeoPoint{
		Lat: (b.MinLat + b.MaxLat) / 2,
		Lon: (b.MinLon + b.MaxLon) / 2,
	}
}

// Extend grows the box to include another one.
func (b Bounds) Extend(other Bounds) Bounds {
	if other.MinLat < b.MinLat {
		b.MinLat = other.MinLat
	}
	if other.MinLon < b.MinLon {
		b.MinLon = other.MinLon
	}
	if other.MaxLat > b.MaxLat {
		b.MaxLat = other.MaxLat
	}
	if other.MaxLon > b.MaxLon {
		b.MaxLon = other.MaxLon
	}
	return b
}

// GeometryBounds computes the bounding box of a GeoJSON geometry. Geometries
// pass through this service untouched otherwise, so this walks the raw
// coordinate arrays instead of pulling in a full geometry model.
func GeometryBounds(raw json.RawMessage) (Bounds, error) {
	var geom struct {
		Type        string          `json:"type"`
		Coordinates json.RawMessage `json:"coordinates"`
	}
	if err := json.Unmarshal(raw, &geom); err != nil {
		return Bounds{}, fmt.Errorf("unmarshal geometry: %w", err)
	}
	if len(geom.Coordinates) == 0 {
		return Bounds{}, fmt.Errorf("geometry %q has no coordinates", geom.Type)
	}

	b := Bounds{MinLat: 90, MinLon: 180, MaxLat: -90, MaxLon: -180}
	found, err := walkPositions(geom.Coordinates, &b)
	if err != nil {
		return Bounds{}, err
	}
	if !found {
		return Bounds{}, fmt.Errorf("geometry %q has no positions", geom.Type)
	}
	return b, nil
}

// walkPositions descends nested coordinate arrays until it reaches
// [lon, lat, ...] positions, folding each into the bounds.
func walkPositions(raw json.RawMessage, b *Bounds) (bool, error) {
	var nested []json.RawMessage
	if err := json.Unmarshal(raw, &nested); err != nil {
		return false, fmt.Errorf("unmarshal coordinates: %w", err)
	}
	if len(nested) == 0 {
		return false, nil
	}

	// a position is an array whose first element is a number
	var probe []float64
	if json.Unmarshal(raw, &probe) == nil {
		if len(probe) < 2 {
			return false, fmt.Errorf("position has %d ordinates", len(probe))
		}
		lon, lat := probe[0], probe[1]
		if lat < b.MinLat {
			b.MinLat = lat
		}
		if lat > b.MaxLat {
			b.MaxLat = lat
		}
		if lon < b.MinLon {
			b.MinLon = lon
		}
		if lon > b.MaxLon {
			b.MaxLon = lon
		}
		return true, nil
	}

	found := false
	for _, child := range nested {
		ok, err := walkPositions(child, b)
		if err != nil {
			return false, err
		}
		found = found || ok
	}
	return found, nil
}

// FeatureProperties is the attribute payload of one choropleth feature.
type FeatureProperties struct {
	Code      string   `json:"code"`
	Name      string   `json:"name"`
	Value     *float64 `json:"value"`
	Display   string   `json:"display"`
	FillColor string   `json:"fill_color"`
	Tooltip   string   `json:"tooltip"`
}

type Feature struct {
	Type       string            `json:"type"`
	ID         string            `json:"id"`
	Geometry   json.RawMessage   `json:"geometry"`
	Properties FeatureProperties `json:"properties"`
}

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

func NewFeatureCollection(features []Feature) FeatureCollection {
	if features == nil {
		features = []Feature{}
	}
	return FeatureCollection{Type: "FeatureCollection", Features: features}
}

// Marker is a centroid pin with a popup, one per colored area.
type Marker struct {
	Location GeoPoint `json:"location"`
	Popup    string   `json:"popup"`
}

// Legend describes the color scale of a choropleth.
type Legend struct {
	Title    string    `json:"title"`
	Gradient []string  `json:"gradient"`
	Bins     []float64 `json:"bins"`
	MinLabel string    `json:"min_label"`
	MaxLabel string    `json:"max_label"`
}

// Choropleth is the full map artifact for one scope and indicator. Building
// it is a pure function of the input rows, so equal inputs yield equal
// artifacts byte for byte.
type Choropleth struct {
	Level     Level              `json:"level"`
	Indicator LayerID            `json:"indicator"`
	Unit      string             `json:"unit"`
	Center    GeoPoint           `json:"center"`
	Zoom      int                `json:"zoom"`
	Legend    *Legend            `json:"legend,omitempty"`
	Features  FeatureCollection  `json:"features"`
	Context   *FeatureCollection `json:"context_features,omitempty"`
	Markers   []Marker           `json:"markers"`
	NoData    bool               `json:"no_data,omitempty"`
}
