package regions

import (
	"context"
	"fmt"

	"github.com/tmabaso/sdg3health/internal/domain"
	"github.com/tmabaso/sdg3health/internal/pkg/cache"
	"github.com/tmabaso/sdg3health/internal/pkg/constants"
	"github.com/tmabaso/sdg3health/internal/pkg/metrics"
	"github.com/tmabaso/sdg3health/internal/pkg/store"
)

type Service struct {
	store store.Store
	cache *cache.Cache
}

func NewRegionsService(store store.Store, c *cache.Cache) *Service {
	return &Service{store: store, cache: c}
}

func (s *Service) ListProvinces(ctx context.Context) ([]*domain.Province, error) {
	key := cache.Key("provinces")
	if v, ok := s.cache.GetGeographic(key); ok {
		metrics.CacheHitsTotal.WithLabelValues("geographic").Inc()
		return v.([]*domain.Province), nil
	}
	metrics.CacheMissesTotal.WithLabelValues("geographic").Inc()

	provinces, err := s.store.ListProvinces(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.ListProvinces: %w", err)
	}
	if len(provinces) == 0 {
		metrics.EmptyResultsTotal.Inc()
	}

	s.cache.SetGeographic(key, provinces)
	return provinces, nil
}

func (s *Service) ListDistricts(ctx context.Context, provinceCode string) ([]*domain.District, error) {
	key := cache.Key("districts", provinceCode)
	if v, ok := s.cache.GetGeographic(key); ok {
		metrics.CacheHitsTotal.WithLabelValues("geographic").Inc()
		return v.([]*domain.District), nil
	}
	metrics.CacheMissesTotal.WithLabelValues("geographic").Inc()

	districts, err := s.store.ListDistricts(ctx, provinceCode)
	if err != nil {
		return nil, fmt.Errorf("store.ListDistricts: %w", err)
	}
	if len(districts) == 0 {
		metrics.EmptyResultsTotal.Inc()
	}

	s.cache.SetGeographic(key, districts)
	return districts, nil
}

func (s *Service) ListMunicipalities(ctx context.Context, districtCode string) ([]*domain.Municipality, error) {
	key := cache.Key("municipalities", districtCode)
	if v, ok := s.cache.GetGeographic(key); ok {
		metrics.CacheHitsTotal.WithLabelValues("geographic").Inc()
		return v.([]*domain.Municipality), nil
	}
	metrics.CacheMissesTotal.WithLabelValues("geographic").Inc()

	municipalities, err := s.store.ListMunicipalities(ctx, districtCode)
	if err != nil {
		return nil, fmt.Errorf("store.ListMunicipalities: %w", err)
	}
	if len(municipalities) == 0 {
		metrics.EmptyResultsTotal.Inc()
	}

	s.cache.SetGeographic(key, municipalities)
	return municipalities, nil
}

// ResolveSelection checks a selection against the administrative tree and
// fills in the implied ancestor codes, so a bare municipality selection
// still scopes queries correctly. A district outside the selected province,
// or a municipality outside the selected district, is a scope mismatch.
func (s *Service) ResolveSelection(ctx context.Context, sel domain.Selection) (domain.Selection, error) {
	if sel.MunicipalityCode != "" {
		m, err := s.store.GetMunicipality(ctx, sel.MunicipalityCode)
		if err != nil {
			return sel, fmt.Errorf("resolve municipality: %w", err)
		}
		if sel.DistrictCode != "" && sel.DistrictCode != m.DistrictCode {
			return sel, constants.ErrScopeMismatch
		}
		if sel.ProvinceCode != "" && sel.ProvinceCode != m.ProvinceCode {
			return sel, constants.ErrScopeMismatch
		}
		sel.DistrictCode = m.DistrictCode
		sel.ProvinceCode = m.ProvinceCode
		return sel, nil
	}

	if sel.DistrictCode != "" {
		d, err := s.store.GetDistrict(ctx, sel.DistrictCode)
		if err != nil {
			return sel, fmt.Errorf("resolve district: %w", err)
		}
		if sel.ProvinceCode != "" && sel.ProvinceCode != d.ProvinceCode {
			return sel, constants.ErrScopeMismatch
		}
		sel.ProvinceCode = d.ProvinceCode
		return sel, nil
	}

	if sel.ProvinceCode != "" {
		if _, err := s.store.GetProvince(ctx, sel.ProvinceCode); err != nil {
			return sel, fmt.Errorf("resolve province: %w", err)
		}
	}

	return sel, nil
}
