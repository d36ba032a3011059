package store

import (
	"context"

	"github.com/tmabaso/sdg3health/internal/domain"
	"github.com/tmabaso/sdg3health/internal/pkg/store/xpgx"
)

type Pool = xpgx.Pool

// Store is the read-only query surface over the municipal_health table. The
// table is loaded and maintained by an external process; nothing here writes.
type Store interface {
	Ping(ctx context.Context) error
	CountRows(ctx context.Context) (int64, error)

	ListProvinces(ctx context.Context) ([]*domain.Province, error)
	ListDistricts(ctx context.Context, provinceCode string) ([]*domain.District, error)
	ListMunicipalities(ctx context.Context, districtCode string) ([]*domain.Municipality, error)
	GetProvince(ctx context.Context, code string) (*domain.Province, error)
	GetDistrict(ctx context.Context, code string) (*domain.District, error)
	GetMunicipality(ctx context.Context, code string) (*domain.Municipality, error)

	ListProvinceBoundaries(ctx context.Context) ([]*domain.BoundaryRow, error)
	ListDistrictBoundaries(ctx context.Context, provinceCode string) ([]*domain.BoundaryRow, error)
	ListMunicipalityBoundaries(ctx context.Context, districtCode string) ([]*domain.BoundaryRow, error)
	GetMunicipalityBoundary(ctx context.Context, municipalityCode string) (*domain.BoundaryRow, error)
	ListNeighborBoundaries(ctx context.Context, municipalityCode string, radiusKM float64) ([]*domain.BoundaryRow, error)

	GetSummaryStats(ctx context.Context, sel domain.Selection) (*domain.SummaryStats, error)
	GetHIVStats(ctx context.Context, sel domain.Selection) (*domain.HIVStats, error)
	GetTBStats(ctx context.Context, sel domain.Selection) (*domain.TBStats, error)
	GetTargetStats(ctx context.Context, sel domain.Selection) (*domain.TargetStats, error)
}

type store struct {
	pool *Pool
}

func NewStore(pool *Pool) Store {
	return &store{pool}
}

func (s *store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
