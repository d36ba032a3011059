package indicators

import (
	"context"
	"fmt"

	"github.com/tmabaso/sdg3health/internal/domain"
	"github.com/tmabaso/sdg3health/internal/pkg/cache"
	"github.com/tmabaso/sdg3health/internal/pkg/metrics"
	"github.com/tmabaso/sdg3health/internal/pkg/store"
	"golang.org/x/sync/errgroup"
)

type Service struct {
	store store.Store
	cache *cache.Cache
}

func NewIndicatorsService(store store.Store, c *cache.Cache) *Service {
	return &Service{store: store, cache: c}
}

// Summary returns the aggregate stats panel for a validated selection.
func (s *Service) Summary(ctx context.Context, sel domain.Selection) (*domain.SummaryStats, error) {
	key := cache.Key("summary", sel.ProvinceCode, sel.DistrictCode, sel.MunicipalityCode)
	if v, ok := s.cache.GetSummary(key); ok {
		metrics.CacheHitsTotal.WithLabelValues("summary").Inc()
		return v.(*domain.SummaryStats), nil
	}
	metrics.CacheMissesTotal.WithLabelValues("summary").Inc()

	stats, err := s.store.GetSummaryStats(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("store.GetSummaryStats: %w", err)
	}
	if stats.TotalAreas == 0 {
		metrics.EmptyResultsTotal.Inc()
	}

	s.cache.SetSummary(key, stats)
	return stats, nil
}

// HIVPanel builds the HIV panel: local aggregates, national averages and the
// per-field comparison. Local and national scopes are fetched concurrently.
func (s *Service) HIVPanel(ctx context.Context, sel domain.Selection) (*domain.IndicatorPanel, error) {
	var local, national *domain.HIVStats

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		local, err = s.store.GetHIVStats(egCtx, sel)
		if err != nil {
			return fmt.Errorf("local HIV stats: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		var err error
		national, err = s.store.GetHIVStats(egCtx, domain.Selection{})
		if err != nil {
			return fmt.Errorf("national HIV stats: %w", err)
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	panel := &domain.IndicatorPanel{
		Level: sel.Level(),
		Local: map[string]*float64{
			"total_hiv_cases":   local.TotalCases,
			"hiv_prevalence":    local.Prevalence,
			"viral_suppression": local.ViralSuppression,
			"art_coverage":      local.ARTCoverage,
			"testing_coverage":  local.TestingCoverage,
		},
		National: map[string]*float64{
			"total_hiv_cases":   national.TotalCases,
			"hiv_prevalence":    national.Prevalence,
			"viral_suppression": national.ViralSuppression,
			"art_coverage":      national.ARTCoverage,
			"testing_coverage":  national.TestingCoverage,
		},
		Performance: map[string]*domain.Performance{},
	}

	for _, field := range []string{"hiv_prevalence", "viral_suppression", "art_coverage", "testing_coverage"} {
		panel.Performance[field] = domain.ComparePerformance(field, panel.Local[field], panel.National[field])
	}

	return panel, nil
}

// TBPanel builds the TB panel the same way.
func (s *Service) TBPanel(ctx context.Context, sel domain.Selection) (*domain.IndicatorPanel, error) {
	var local, national *domain.TBStats

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		local, err = s.store.GetTBStats(egCtx, sel)
		if err != nil {
			return fmt.Errorf("local TB stats: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		var err error
		national, err = s.store.GetTBStats(egCtx, domain.Selection{})
		if err != nil {
			return fmt.Errorf("national TB stats: %w", err)
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	panel := &domain.IndicatorPanel{
		Level: sel.Level(),
		Local: map[string]*float64{
			"total_tb_cases":       local.TotalCases,
			"ds_tb_success":        local.DSSuccess,
			"mdr_tb_success":       local.MDRSuccess,
			"drug_resistance":      local.DrugResistance,
			"treatment_completion": local.TreatmentCompletion,
		},
		National: map[string]*float64{
			"total_tb_cases":       national.TotalCases,
			"ds_tb_success":        national.DSSuccess,
			"mdr_tb_success":       national.MDRSuccess,
			"drug_resistance":      national.DrugResistance,
			"treatment_completion": national.TreatmentCompletion,
		},
		Performance: map[string]*domain.Performance{},
	}

	for _, field := range []string{"ds_tb_success", "mdr_tb_success", "drug_resistance", "treatment_completion"} {
		panel.Performance[field] = domain.ComparePerformance(field, panel.Local[field], panel.National[field])
	}

	return panel, nil
}

// Targets reports SDG 3 target progress for the scope.
func (s *Service) Targets(ctx context.Context, sel domain.Selection) ([]*domain.TargetProgress, error) {
	stats, err := s.store.GetTargetStats(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("store.GetTargetStats: %w", err)
	}

	current := map[string]*float64{
		"maternal_mortality":    stats.MaternalMortality,
		"under5_mortality":      stats.Under5Mortality,
		"health_worker_density": stats.HealthWorkerDensity,
	}

	progress := make([]*domain.TargetProgress, 0, len(domain.SDG3Targets))
	for _, target := range domain.SDG3Targets {
		progress = append(progress, target.Progress(current[target.ID]))
	}

	return progress, nil
}
