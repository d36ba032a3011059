package maps

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/tmabaso/sdg3health/internal/domain"
)

// legend gradient stops per color scheme
var colorGradients = map[string][]string{
	"Reds":    {"#fee5d9", "#fb6a4a", "#a50f15"},
	"Greens":  {"#e5f5e0", "#a1d99b", "#006d2c"},
	"Blues":   {"#deebf7", "#9ecae1", "#084594"},
	"Purples": {"#efedf5", "#9e9ac8", "#54278f"},
	"YlOrRd":  {"#ffffb2", "#fecc5c", "#e31a1c"},
}

const noDataColor = "#6c757d"

var zoomLevels = map[domain.Level]int{
	domain.LevelNational:     5,
	domain.LevelProvince:     7,
	domain.LevelDistrict:     9,
	domain.LevelMunicipality: 11,
}

// BuildChoropleth assembles the map artifact from boundary rows. Rows with
// no geometry are skipped; rows with no value render gray with an N/A
// tooltip so the area count still matches the result set.
func BuildChoropleth(level domain.Level, layer domain.LayerInfo, rows, contextRows []*domain.BoundaryRow) (*domain.Choropleth, error) {
	artifact := &domain.Choropleth{
		Level:     level,
		Indicator: layer.ID,
		Unit:      layer.Unit,
		Center:    defaultCenter,
		Zoom:      defaultZoom,
		Features:  domain.NewFeatureCollection(nil),
		Markers:   []domain.Marker{},
	}

	if len(rows) == 0 {
		artifact.NoData = true
		return artifact, nil
	}

	minVal, maxVal, hasValues := valueRange(rows, layer.ID)
	gradient := colorGradients[layer.ColorScheme]
	if gradient == nil {
		gradient = colorGradients["YlOrRd"]
	}

	var totalBounds *domain.Bounds
	features := make([]domain.Feature, 0, len(rows))
	markers := make([]domain.Marker, 0, len(rows))

	for _, row := range rows {
		if len(row.Geometry) == 0 {
			continue
		}
		bounds, err := domain.GeometryBounds(row.Geometry)
		if err != nil {
			return nil, fmt.Errorf("bounds for %s: %w", row.Code, err)
		}
		if totalBounds == nil {
			b := bounds
			totalBounds = &b
		} else {
			b := totalBounds.Extend(bounds)
			totalBounds = &b
		}

		value := row.Value(layer.ID)
		display := FormatDisplayNumber(value, layer.Count)
		fill := noDataColor
		if value != nil && hasValues {
			fill = colorFor(*value, minVal, maxVal, gradient)
		}

		features = append(features, domain.Feature{
			Type:     "Feature",
			ID:       row.Code,
			Geometry: row.Geometry,
			Properties: domain.FeatureProperties{
				Code:      row.Code,
				Name:      row.Name,
				Value:     value,
				Display:   display,
				FillColor: fill,
				Tooltip:   fmt.Sprintf("%s: %s %s", row.Name, display, layer.Unit),
			},
		})
		markers = append(markers, domain.Marker{
			Location: bounds.Center(),
			Popup:    fmt.Sprintf("%s | %s: %s", row.Name, layer.DisplayName, display),
		})
	}

	artifact.Features = domain.NewFeatureCollection(features)
	artifact.Markers = markers
	if totalBounds != nil {
		artifact.Center = totalBounds.Center()
		artifact.Zoom = zoomLevels[level]
	} else {
		artifact.NoData = true
	}

	if hasValues {
		bins := GenerateBins(minVal, maxVal, 6, layer.Count)
		artifact.Legend = &domain.Legend{
			Title:    layer.DisplayName,
			Gradient: gradient,
			Bins:     bins,
			MinLabel: FormatLegendNumber(minVal, layer.Count),
			MaxLabel: FormatLegendNumber(maxVal, layer.Count),
		}
	}

	if len(contextRows) > 0 {
		contextFeatures := make([]domain.Feature, 0, len(contextRows))
		for _, row := range contextRows {
			if len(row.Geometry) == 0 {
				continue
			}
			value := row.Value(layer.ID)
			contextFeatures = append(contextFeatures, domain.Feature{
				Type:     "Feature",
				ID:       row.Code,
				Geometry: row.Geometry,
				Properties: domain.FeatureProperties{
					Code:      row.Code,
					Name:      row.Name,
					Value:     value,
					Display:   FormatDisplayNumber(value, layer.Count),
					FillColor: colorGradients["Blues"][0],
					Tooltip:   fmt.Sprintf("%s (neighboring area)", row.Name),
				},
			})
		}
		fc := domain.NewFeatureCollection(contextFeatures)
		artifact.Context = &fc
	}

	return artifact, nil
}

func valueRange(rows []*domain.BoundaryRow, id domain.LayerID) (minVal, maxVal float64, ok bool) {
	for _, row := range rows {
		v := row.Value(id)
		if v == nil {
			continue
		}
		if !ok {
			minVal, maxVal, ok = *v, *v, true
			continue
		}
		if *v < minVal {
			minVal = *v
		}
		if *v > maxVal {
			maxVal = *v
		}
	}
	return minVal, maxVal, ok
}

// GenerateBins produces evenly spaced legend bins over [min, max]. For count
// indicators the range first snaps outward to clean magnitude steps, so the
// legend reads 10K/20K instead of 9,862/19,435.
func GenerateBins(minVal, maxVal float64, num int, count bool) []float64 {
	if num < 2 {
		num = 2
	}
	start, end := minVal, maxVal
	if count {
		start = float64(magnitudeRoundDown(minVal))
		end = float64(magnitudeRoundUp(maxVal))
	}
	if end <= start {
		end = start + 1
	}

	step := decimal.NewFromFloat(end - start).Div(decimal.NewFromInt(int64(num - 1)))
	bins := make([]float64, num)
	for i := 0; i < num; i++ {
		bins[i] = decimal.NewFromFloat(start).
			Add(step.Mul(decimal.NewFromInt(int64(i)))).
			Round(3).InexactFloat64()
	}
	bins[num-1] = end
	return bins
}

func magnitudeRoundDown(val float64) int {
	switch {
	case val >= 1_000_000:
		return int(val/100_000) * 100_000
	case val >= 100_000:
		return int(val/10_000) * 10_000
	case val >= 10_000:
		return int(val/1_000) * 1_000
	default:
		return int(val)
	}
}

func magnitudeRoundUp(val float64) int {
	switch {
	case val >= 1_000_000:
		return int((val+100_000-1)/100_000) * 100_000
	case val >= 100_000:
		return int((val+10_000-1)/10_000) * 10_000
	case val >= 10_000:
		return int((val+1_000-1)/1_000) * 1_000
	default:
		return int(val)
	}
}

// colorFor interpolates the gradient stops linearly over [min, max].
func colorFor(value, minVal, maxVal float64, gradient []string) string {
	if maxVal <= minVal {
		return gradient[len(gradient)-1]
	}
	t := (value - minVal) / (maxVal - minVal)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}

	// position within the stop sequence
	scaled := t * float64(len(gradient)-1)
	idx := int(scaled)
	if idx >= len(gradient)-1 {
		return gradient[len(gradient)-1]
	}
	frac := scaled - float64(idx)

	r1, g1, b1 := parseHex(gradient[idx])
	r2, g2, b2 := parseHex(gradient[idx+1])
	lerp := func(a, b int) int { return a + int(frac*float64(b-a)) }
	return fmt.Sprintf("#%02x%02x%02x", lerp(r1, r2), lerp(g1, g2), lerp(b1, b2))
}

func parseHex(hex string) (r, g, b int) {
	if len(hex) != 7 {
		return 0, 0, 0
	}
	ri, _ := strconv.ParseInt(hex[1:3], 16, 0)
	gi, _ := strconv.ParseInt(hex[3:5], 16, 0)
	bi, _ := strconv.ParseInt(hex[5:7], 16, 0)
	return int(ri), int(gi), int(bi)
}

// FormatLegendNumber compacts legend tick labels: count indicators round to
// K/M steps, rates keep one decimal.
func FormatLegendNumber(value float64, count bool) string {
	if !count {
		return decimal.NewFromFloat(value).Round(1).String()
	}
	switch {
	case value >= 1_000_000:
		rounded := float64(int(value/100_000)) * 100_000
		return fmt.Sprintf("%.1fM", rounded/1_000_000)
	case value >= 100_000:
		rounded := float64(int(value/10_000)) * 10_000
		return fmt.Sprintf("%.0fK", rounded/1_000)
	case value >= 1_000:
		rounded := float64(int(value/1_000)) * 1_000
		return fmt.Sprintf("%.0fK", rounded/1_000)
	default:
		return fmt.Sprintf("%d", int(value))
	}
}

// FormatDisplayNumber formats tooltip values; nil renders as N/A.
func FormatDisplayNumber(value *float64, count bool) string {
	if value == nil {
		return "N/A"
	}
	if !count {
		return fmt.Sprintf("%.1f", *value)
	}
	v := *value
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("%.1fM", v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("%.1fK", v/1_000)
	default:
		return fmt.Sprintf("%d", int(v))
	}
}
