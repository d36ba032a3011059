package store

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/tmabaso/sdg3health/internal/domain"
	"github.com/tmabaso/sdg3health/internal/pkg/logger"
	"github.com/tmabaso/sdg3health/internal/pkg/store/xpgx"
)

// rollupColumns aggregates the indicator columns for province/district
// level boundaries: counts are summed, rates and densities averaged.
var rollupColumns = []string{
	"avg(health_worker_density) as health_worker_density",
	"sum(total_living_with_hiv) as total_living_with_hiv",
	"avg(tb_ds_treatment_success_rate) as tb_ds_treatment_success_rate",
	"sum(number_of_health_facilities) as number_of_health_facilities",
	"sum(total_population) as total_population",
	"avg(maternal_mortality_ratio) as maternal_mortality_ratio",
	"avg(under5_mortality_rate) as under5_mortality_rate",
}

var indicatorColumns = []string{
	"health_worker_density",
	"total_living_with_hiv",
	"tb_ds_treatment_success_rate",
	"number_of_health_facilities",
	"total_population",
	"maternal_mortality_ratio",
	"under5_mortality_rate",
}

func (s *store) ListProvinceBoundaries(ctx context.Context) ([]*domain.BoundaryRow, error) {
	cols := append([]string{
		"province_code as code",
		"province_name as name",
	}, rollupColumns...)
	cols = append(cols, "ST_AsGeoJSON(ST_Union(geom)) as geometry")

	query := builder().Select(cols...).
		From(tableMunicipalHealth).
		Where(sq.NotEq{"geom": nil}).
		GroupBy("province_code", "province_name").
		OrderBy("province_name")

	selected, err := xpgx.Selectx[domain.BoundaryRow](ctx, s.pool, query)
	if err != nil {
		logger.Errorf(ctx, "ListProvinceBoundaries: %s", err.Error())
		return nil, wrapErr(err)
	}

	return selected, nil
}

func (s *store) ListDistrictBoundaries(ctx context.Context, provinceCode string) ([]*domain.BoundaryRow, error) {
	cols := append([]string{
		"district_code as code",
		"district_name as name",
	}, rollupColumns...)
	cols = append(cols, "ST_AsGeoJSON(ST_Union(geom)) as geometry")

	query := builder().Select(cols...).
		From(tableMunicipalHealth).
		Where(sq.Eq{"province_code": provinceCode}).
		Where(sq.NotEq{"geom": nil}).
		GroupBy("district_code", "district_name").
		OrderBy("district_name")

	selected, err := xpgx.Selectx[domain.BoundaryRow](ctx, s.pool, query)
	if err != nil {
		logger.Errorf(ctx, "ListDistrictBoundaries: %s", err.Error())
		return nil, wrapErr(err)
	}

	return selected, nil
}

func (s *store) ListMunicipalityBoundaries(ctx context.Context, districtCode string) ([]*domain.BoundaryRow, error) {
	cols := append([]string{
		"municipality_code as code",
		"municipality_name as name",
	}, indicatorColumns...)
	cols = append(cols, "ST_AsGeoJSON(geom) as geometry")

	query := builder().Select(cols...).
		From(tableMunicipalHealth).
		Where(sq.Eq{"district_code": districtCode}).
		Where(sq.NotEq{"geom": nil}).
		OrderBy("municipality_name")

	selected, err := xpgx.Selectx[domain.BoundaryRow](ctx, s.pool, query)
	if err != nil {
		logger.Errorf(ctx, "ListMunicipalityBoundaries: %s", err.Error())
		return nil, wrapErr(err)
	}

	return selected, nil
}

func (s *store) GetMunicipalityBoundary(ctx context.Context, municipalityCode string) (*domain.BoundaryRow, error) {
	cols := append([]string{
		"municipality_code as code",
		"municipality_name as name",
	}, indicatorColumns...)
	cols = append(cols, "ST_AsGeoJSON(geom) as geometry")

	query := builder().Select(cols...).
		From(tableMunicipalHealth).
		Where(sq.Eq{"municipality_code": municipalityCode}).
		Where(sq.NotEq{"geom": nil})

	selected, err := xpgx.Getx[domain.BoundaryRow](ctx, s.pool, query)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			logger.Errorf(ctx, "GetMunicipalityBoundary %s: %s", municipalityCode, err.Error())
		}
		return nil, fmt.Errorf("get municipality boundary %s: %w", municipalityCode, wrapErr(err))
	}

	return selected, nil
}

// ListNeighborBoundaries returns municipalities whose boundaries lie within
// radiusKM of the given one, for the context layer around a municipality view.
func (s *store) ListNeighborBoundaries(ctx context.Context, municipalityCode string, radiusKM float64) ([]*domain.BoundaryRow, error) {
	cols := append([]string{
		"municipality_code as code",
		"municipality_name as name",
	}, indicatorColumns...)
	cols = append(cols, "ST_AsGeoJSON(geom) as geometry")

	query := builder().Select(cols...).
		From(tableMunicipalHealth).
		Where(sq.NotEq{"geom": nil}).
		Where(sq.NotEq{"municipality_code": municipalityCode}).
		Where(sq.Expr(
			`ST_DWithin(geom::geography, (select geom from `+tableMunicipalHealth+` where municipality_code = ?)::geography, ?)`,
			municipalityCode, radiusKM*1000,
		)).
		OrderBy("municipality_name")

	selected, err := xpgx.Selectx[domain.BoundaryRow](ctx, s.pool, query)
	if err != nil {
		logger.Errorf(ctx, "ListNeighborBoundaries: %s", err.Error())
		return nil, wrapErr(err)
	}

	return selected, nil
}
