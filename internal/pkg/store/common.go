package store

import (
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/tmabaso/sdg3health/internal/domain"
	"github.com/tmabaso/sdg3health/internal/pkg/constants"
)

const tableMunicipalHealth = "municipal_health"

// wrapErr maps store failures onto the coded taxonomy: a missing row is a
// 404, anything else means the data source is unavailable. The driver error
// is logged at the call site and never reaches the response body.
func wrapErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return constants.ErrDBNotFound
	}
	return constants.ErrDataUnavailable
}

// builder returns a squirrel builder with dollar placeholders.
func builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

// scopeConds translates a selection into WHERE conditions. An empty
// selection yields none, so the national scope is a superset of every
// narrower one by construction.
func scopeConds(sel domain.Selection) []sq.Sqlizer {
	var conds []sq.Sqlizer
	if sel.ProvinceCode != "" {
		conds = append(conds, sq.Eq{"province_code": sel.ProvinceCode})
	}
	if sel.DistrictCode != "" {
		conds = append(conds, sq.Eq{"district_code": sel.DistrictCode})
	}
	if sel.MunicipalityCode != "" {
		conds = append(conds, sq.Eq{"municipality_code": sel.MunicipalityCode})
	}
	return conds
}

func applyScope(q sq.SelectBuilder, sel domain.Selection) sq.SelectBuilder {
	for _, cond := range scopeConds(sel) {
		q = q.Where(cond)
	}
	return q
}
