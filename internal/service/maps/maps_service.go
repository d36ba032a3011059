// Package maps builds choropleth artifacts from boundary rows. Artifact
// construction is a pure function of its input, so a scope renders
// identically every time the same rows come back.
package maps

import (
	"context"
	"errors"
	"fmt"

	"github.com/tmabaso/sdg3health/internal/domain"
	"github.com/tmabaso/sdg3health/internal/pkg/cache"
	"github.com/tmabaso/sdg3health/internal/pkg/constants"
	"github.com/tmabaso/sdg3health/internal/pkg/logger"
	"github.com/tmabaso/sdg3health/internal/pkg/metrics"
	"github.com/tmabaso/sdg3health/internal/pkg/store"
)

const neighborRadiusKM = 50

// fallback view over South Africa when a scope has no mappable rows
var defaultCenter = domain.GeoPoint{Lat: -28.5, Lon: 24.5}

const defaultZoom = 6

type Service struct {
	store store.Store
	cache *cache.Cache
}

func NewMapsService(store store.Store, c *cache.Cache) *Service {
	return &Service{store: store, cache: c}
}

// Layers lists the selectable map layers.
func (s *Service) Layers() []domain.LayerInfo {
	return domain.Layers
}

// Choropleth renders the map artifact for a validated selection. The level
// drives what gets drawn: national shows provinces, a province its
// districts, a district its municipalities, and a municipality itself plus
// neighbors within 50 km as a context layer.
func (s *Service) Choropleth(ctx context.Context, sel domain.Selection, indicator domain.LayerID) (*domain.Choropleth, error) {
	layer, ok := domain.LayerByID(indicator)
	if !ok {
		return nil, constants.ErrUnknownIndicator
	}

	level := sel.Level()
	rows, contextRows, err := s.boundaries(ctx, sel, level)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		metrics.EmptyResultsTotal.Inc()
	}

	artifact, err := BuildChoropleth(level, layer, rows, contextRows)
	if err != nil {
		logger.Errorf(ctx, "BuildChoropleth: %s", err.Error())
		return nil, err
	}

	return artifact, nil
}

func (s *Service) boundaries(ctx context.Context, sel domain.Selection, level domain.Level) (rows, contextRows []*domain.BoundaryRow, err error) {
	key := cache.Key("boundaries", level, sel.ProvinceCode, sel.DistrictCode, sel.MunicipalityCode)
	if v, ok := s.cache.GetSpatial(key); ok {
		metrics.CacheHitsTotal.WithLabelValues("spatial").Inc()
		cached := v.(boundarySet)
		return cached.rows, cached.context, nil
	}
	metrics.CacheMissesTotal.WithLabelValues("spatial").Inc()

	switch level {
	case domain.LevelNational:
		rows, err = s.store.ListProvinceBoundaries(ctx)
	case domain.LevelProvince:
		rows, err = s.store.ListDistrictBoundaries(ctx, sel.ProvinceCode)
	case domain.LevelDistrict:
		rows, err = s.store.ListMunicipalityBoundaries(ctx, sel.DistrictCode)
	case domain.LevelMunicipality:
		var row *domain.BoundaryRow
		row, err = s.store.GetMunicipalityBoundary(ctx, sel.MunicipalityCode)
		if err == nil {
			rows = []*domain.BoundaryRow{row}
			contextRows, err = s.store.ListNeighborBoundaries(ctx, sel.MunicipalityCode, neighborRadiusKM)
		} else if errors.Is(err, constants.ErrDBNotFound) {
			// no boundary row is "no data", not a failure
			rows, err = nil, nil
		}
	default:
		return nil, nil, fmt.Errorf("unknown level %q", level)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load boundaries: %w", err)
	}

	s.cache.SetSpatial(key, boundarySet{rows: rows, context: contextRows})
	return rows, contextRows, nil
}

type boundarySet struct {
	rows    []*domain.BoundaryRow
	context []*domain.BoundaryRow
}
