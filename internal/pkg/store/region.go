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

// cascade queries behind the province → district → municipality selectors;
// rows with NULL names or codes are excluded, matching the dropdowns

func (s *store) ListProvinces(ctx context.Context) ([]*domain.Province, error) {
	query := builder().Select("province_code", "province_name").
		Distinct().
		From(tableMunicipalHealth).
		Where(sq.NotEq{"province_code": nil}).
		Where(sq.NotEq{"province_name": nil}).
		OrderBy("province_name")

	selected, err := xpgx.Selectx[domain.Province](ctx, s.pool, query)
	if err != nil {
		logger.Errorf(ctx, "ListProvinces: %s", err.Error())
		return nil, wrapErr(err)
	}

	return selected, nil
}

func (s *store) ListDistricts(ctx context.Context, provinceCode string) ([]*domain.District, error) {
	query := builder().Select("district_code", "district_name", "province_code", "province_name").
		Distinct().
		From(tableMunicipalHealth).
		Where(sq.Eq{"province_code": provinceCode}).
		Where(sq.NotEq{"district_code": nil}).
		Where(sq.NotEq{"district_name": nil}).
		OrderBy("district_name")

	selected, err := xpgx.Selectx[domain.District](ctx, s.pool, query)
	if err != nil {
		logger.Errorf(ctx, "ListDistricts: %s", err.Error())
		return nil, wrapErr(err)
	}

	return selected, nil
}

func (s *store) ListMunicipalities(ctx context.Context, districtCode string) ([]*domain.Municipality, error) {
	query := builder().Select(
		"municipality_code", "municipality_name",
		"district_code", "district_name",
		"province_code", "province_name").
		Distinct().
		From(tableMunicipalHealth).
		Where(sq.Eq{"district_code": districtCode}).
		Where(sq.NotEq{"municipality_code": nil}).
		Where(sq.NotEq{"municipality_name": nil}).
		OrderBy("municipality_name")

	selected, err := xpgx.Selectx[domain.Municipality](ctx, s.pool, query)
	if err != nil {
		logger.Errorf(ctx, "ListMunicipalities: %s", err.Error())
		return nil, wrapErr(err)
	}

	return selected, nil
}

func (s *store) GetProvince(ctx context.Context, code string) (*domain.Province, error) {
	query := builder().Select("province_code", "province_name").
		Distinct().
		From(tableMunicipalHealth).
		Where(sq.Eq{"province_code": code})

	selected, err := xpgx.Getx[domain.Province](ctx, s.pool, query)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			logger.Errorf(ctx, "GetProvince %s: %s", code, err.Error())
		}
		return nil, fmt.Errorf("get province %s: %w", code, wrapErr(err))
	}

	return selected, nil
}

func (s *store) GetDistrict(ctx context.Context, code string) (*domain.District, error) {
	query := builder().Select("district_code", "district_name", "province_code", "province_name").
		Distinct().
		From(tableMunicipalHealth).
		Where(sq.Eq{"district_code": code})

	selected, err := xpgx.Getx[domain.District](ctx, s.pool, query)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			logger.Errorf(ctx, "GetDistrict %s: %s", code, err.Error())
		}
		return nil, fmt.Errorf("get district %s: %w", code, wrapErr(err))
	}

	return selected, nil
}

func (s *store) GetMunicipality(ctx context.Context, code string) (*domain.Municipality, error) {
	query := builder().Select(
		"municipality_code", "municipality_name",
		"district_code", "district_name",
		"province_code", "province_name").
		From(tableMunicipalHealth).
		Where(sq.Eq{"municipality_code": code})

	selected, err := xpgx.Getx[domain.Municipality](ctx, s.pool, query)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			logger.Errorf(ctx, "GetMunicipality %s: %s", code, err.Error())
		}
		return nil, fmt.Errorf("get municipality %s: %w", code, wrapErr(err))
	}

	return selected, nil
}

func (s *store) CountRows(ctx context.Context) (int64, error) {
	query := builder().Select("count(*) as row_count").From(tableMunicipalHealth)

	type countRow struct {
		RowCount int64 `db:"row_count"`
	}
	selected, err := xpgx.Getx[countRow](ctx, s.pool, query)
	if err != nil {
		logger.Errorf(ctx, "CountRows: %s", err.Error())
		return 0, wrapErr(err)
	}

	return selected.RowCount, nil
}
