package store

import (
	"context"

	"github.com/tmabaso/sdg3health/internal/domain"
	"github.com/tmabaso/sdg3health/internal/pkg/logger"
	"github.com/tmabaso/sdg3health/internal/pkg/store/xpgx"
)

// aggregate panels; single-row results even for empty scopes, with NULLs in
// every column, which the domain types carry as nil pointers

func (s *store) GetSummaryStats(ctx context.Context, sel domain.Selection) (*domain.SummaryStats, error) {
	query := applyScope(builder().Select(
		"sum(total_population) as total_population",
		"avg(health_worker_density) as avg_health_worker_density",
		"sum(total_living_with_hiv) as total_hiv_cases",
		"avg(tb_ds_treatment_success_rate) as avg_tb_success_rate",
		"sum(number_of_health_facilities) as total_facilities",
		"count(*) as total_areas",
	).From(tableMunicipalHealth), sel)

	selected, err := xpgx.Getx[domain.SummaryStats](ctx, s.pool, query)
	if err != nil {
		logger.Errorf(ctx, "GetSummaryStats: %s", err.Error())
		return nil, wrapErr(err)
	}

	return selected, nil
}

func (s *store) GetHIVStats(ctx context.Context, sel domain.Selection) (*domain.HIVStats, error) {
	query := applyScope(builder().Select(
		"sum(total_living_with_hiv) as total_hiv_cases",
		"avg(hiv_prevalence) as hiv_prevalence",
		"avg(viral_suppression) as viral_suppression",
		"avg(art_coverage) as art_coverage",
		"avg(testing_coverage) as testing_coverage",
	).From(tableMunicipalHealth), sel)

	selected, err := xpgx.Getx[domain.HIVStats](ctx, s.pool, query)
	if err != nil {
		logger.Errorf(ctx, "GetHIVStats: %s", err.Error())
		return nil, wrapErr(err)
	}

	return selected, nil
}

func (s *store) GetTBStats(ctx context.Context, sel domain.Selection) (*domain.TBStats, error) {
	query := applyScope(builder().Select(
		"sum(total_tb_cases) as total_tb_cases",
		"avg(tb_ds_treatment_success_rate) as ds_tb_success",
		"avg(mdr_tb_success_rate) as mdr_tb_success",
		"avg(drug_resistance_rate) as drug_resistance",
		"avg(tb_treatment_completion_rate) as treatment_completion",
	).From(tableMunicipalHealth), sel)

	selected, err := xpgx.Getx[domain.TBStats](ctx, s.pool, query)
	if err != nil {
		logger.Errorf(ctx, "GetTBStats: %s", err.Error())
		return nil, wrapErr(err)
	}

	return selected, nil
}

func (s *store) GetTargetStats(ctx context.Context, sel domain.Selection) (*domain.TargetStats, error) {
	query := applyScope(builder().Select(
		"avg(maternal_mortality_ratio) as maternal_mortality_ratio",
		"avg(under5_mortality_rate) as under5_mortality_rate",
		"avg(health_worker_density) as health_worker_density",
	).From(tableMunicipalHealth), sel)

	selected, err := xpgx.Getx[domain.TargetStats](ctx, s.pool, query)
	if err != nil {
		logger.Errorf(ctx, "GetTargetStats: %s", err.Error())
		return nil, wrapErr(err)
	}

	return selected, nil
}
