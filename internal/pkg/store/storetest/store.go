// Package storetest provides an in-memory Store over a fixed row set, with
// the same scoping and aggregation semantics as the SQL implementation.
package storetest

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/tmabaso/sdg3health/internal/domain"
	"github.com/tmabaso/sdg3health/internal/pkg/constants"
)

// Row mirrors one municipal_health record.
type Row struct {
	ProvinceCode     string
	ProvinceName     string
	DistrictCode     string
	DistrictName     string
	MunicipalityCode string
	MunicipalityName string

	domain.AreaIndicators

	HIVPrevalence       *float64
	ViralSuppression    *float64
	ARTCoverage         *float64
	TestingCoverage     *float64
	TotalTBCases        *float64
	MDRSuccess          *float64
	DrugResistance      *float64
	TreatmentCompletion *float64

	Geometry json.RawMessage
}

// Fake implements store.Store over Rows. Err, when set, is returned from
// every query; the SQL store surfaces failures as
// constants.ErrDataUnavailable, so set that to mirror an outage faithfully.
type Fake struct {
	Rows      []Row
	Neighbors map[string][]*domain.BoundaryRow
	Err       error
}

func (f *Fake) Ping(context.Context) error { return f.Err }

func (f *Fake) CountRows(context.Context) (int64, error) {
	if f.Err != nil {
		return 0, f.Err
	}
	return int64(len(f.Rows)), nil
}

func (f *Fake) scoped(sel domain.Selection) []Row {
	var out []Row
	for _, r := range f.Rows {
		if sel.ProvinceCode != "" && r.ProvinceCode != sel.ProvinceCode {
			continue
		}
		if sel.DistrictCode != "" && r.DistrictCode != sel.DistrictCode {
			continue
		}
		if sel.MunicipalityCode != "" && r.MunicipalityCode != sel.MunicipalityCode {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (f *Fake) ListProvinces(context.Context) ([]*domain.Province, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	seen := map[string]bool{}
	var out []*domain.Province
	for _, r := range f.Rows {
		if r.ProvinceCode == "" || seen[r.ProvinceCode] {
			continue
		}
		seen[r.ProvinceCode] = true
		out = append(out, &domain.Province{Code: r.ProvinceCode, Name: r.ProvinceName})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *Fake) ListDistricts(_ context.Context, provinceCode string) ([]*domain.District, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	seen := map[string]bool{}
	var out []*domain.District
	for _, r := range f.scoped(domain.Selection{ProvinceCode: provinceCode}) {
		if r.DistrictCode == "" || seen[r.DistrictCode] {
			continue
		}
		seen[r.DistrictCode] = true
		out = append(out, &domain.District{
			Code: r.DistrictCode, Name: r.DistrictName,
			ProvinceCode: r.ProvinceCode, ProvinceName: r.ProvinceName,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *Fake) ListMunicipalities(_ context.Context, districtCode string) ([]*domain.Municipality, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	var out []*domain.Municipality
	for _, r := range f.scoped(domain.Selection{DistrictCode: districtCode}) {
		if r.MunicipalityCode == "" {
			continue
		}
		out = append(out, &domain.Municipality{
			Code: r.MunicipalityCode, Name: r.MunicipalityName,
			DistrictCode: r.DistrictCode, DistrictName: r.DistrictName,
			ProvinceCode: r.ProvinceCode, ProvinceName: r.ProvinceName,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *Fake) GetProvince(_ context.Context, code string) (*domain.Province, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	for _, r := range f.Rows {
		if r.ProvinceCode == code {
			return &domain.Province{Code: r.ProvinceCode, Name: r.ProvinceName}, nil
		}
	}
	return nil, constants.ErrDBNotFound
}

func (f *Fake) GetDistrict(_ context.Context, code string) (*domain.District, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	for _, r := range f.Rows {
		if r.DistrictCode == code {
			return &domain.District{
				Code: r.DistrictCode, Name: r.DistrictName,
				ProvinceCode: r.ProvinceCode, ProvinceName: r.ProvinceName,
			}, nil
		}
	}
	return nil, constants.ErrDBNotFound
}

func (f *Fake) GetMunicipality(_ context.Context, code string) (*domain.Municipality, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	for _, r := range f.Rows {
		if r.MunicipalityCode == code {
			return &domain.Municipality{
				Code: r.MunicipalityCode, Name: r.MunicipalityName,
				DistrictCode: r.DistrictCode, DistrictName: r.DistrictName,
				ProvinceCode: r.ProvinceCode, ProvinceName: r.ProvinceName,
			}, nil
		}
	}
	return nil, constants.ErrDBNotFound
}

type group struct {
	code, name string
	rows       []Row
}

func groupRows(rows []Row, key func(Row) (string, string)) []group {
	idx := map[string]int{}
	var groups []group
	for _, r := range rows {
		if len(r.Geometry) == 0 {
			continue
		}
		code, name := key(r)
		i, ok := idx[code]
		if !ok {
			idx[code] = len(groups)
			groups = append(groups, group{code: code, name: name})
			i = len(groups) - 1
		}
		groups[i].rows = append(groups[i].rows, r)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].name < groups[j].name })
	return groups
}

func avg(rows []Row, pick func(Row) *float64) *float64 {
	var sum float64
	var n int
	for _, r := range rows {
		if v := pick(r); v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return nil
	}
	v := sum / float64(n)
	return &v
}

func sum(rows []Row, pick func(Row) *float64) *float64 {
	var total float64
	var n int
	for _, r := range rows {
		if v := pick(r); v != nil {
			total += *v
			n++
		}
	}
	if n == 0 {
		return nil
	}
	return &total
}

func rollup(g group) *domain.BoundaryRow {
	row := &domain.BoundaryRow{Code: g.code, Name: g.name, Geometry: g.rows[0].Geometry}
	row.HealthWorkerDensity = avg(g.rows, func(r Row) *float64 { return r.HealthWorkerDensity })
	row.TotalLivingWithHIV = sum(g.rows, func(r Row) *float64 { return r.TotalLivingWithHIV })
	row.TBTreatmentSuccess = avg(g.rows, func(r Row) *float64 { return r.TBTreatmentSuccess })
	row.HealthFacilities = sum(g.rows, func(r Row) *float64 { return r.HealthFacilities })
	row.TotalPopulation = sum(g.rows, func(r Row) *float64 { return r.TotalPopulation })
	row.MaternalMortality = avg(g.rows, func(r Row) *float64 { return r.MaternalMortality })
	row.Under5Mortality = avg(g.rows, func(r Row) *float64 { return r.Under5Mortality })
	return row
}

func (f *Fake) ListProvinceBoundaries(context.Context) ([]*domain.BoundaryRow, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	groups := groupRows(f.Rows, func(r Row) (string, string) { return r.ProvinceCode, r.ProvinceName })
	out := make([]*domain.BoundaryRow, 0, len(groups))
	for _, g := range groups {
		out = append(out, rollup(g))
	}
	return out, nil
}

func (f *Fake) ListDistrictBoundaries(_ context.Context, provinceCode string) ([]*domain.BoundaryRow, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	groups := groupRows(f.scoped(domain.Selection{ProvinceCode: provinceCode}),
		func(r Row) (string, string) { return r.DistrictCode, r.DistrictName })
	out := make([]*domain.BoundaryRow, 0, len(groups))
	for _, g := range groups {
		out = append(out, rollup(g))
	}
	return out, nil
}

func municipalityBoundary(r Row) *domain.BoundaryRow {
	return &domain.BoundaryRow{
		Code:           r.MunicipalityCode,
		Name:           r.MunicipalityName,
		AreaIndicators: r.AreaIndicators,
		Geometry:       r.Geometry,
	}
}

func (f *Fake) ListMunicipalityBoundaries(_ context.Context, districtCode string) ([]*domain.BoundaryRow, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	var out []*domain.BoundaryRow
	for _, r := range f.scoped(domain.Selection{DistrictCode: districtCode}) {
		if len(r.Geometry) == 0 {
			continue
		}
		out = append(out, municipalityBoundary(r))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *Fake) GetMunicipalityBoundary(_ context.Context, municipalityCode string) (*domain.BoundaryRow, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	for _, r := range f.Rows {
		if r.MunicipalityCode == municipalityCode && len(r.Geometry) > 0 {
			return municipalityBoundary(r), nil
		}
	}
	return nil, constants.ErrDBNotFound
}

func (f *Fake) ListNeighborBoundaries(_ context.Context, municipalityCode string, _ float64) ([]*domain.BoundaryRow, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Neighbors[municipalityCode], nil
}

func (f *Fake) GetSummaryStats(_ context.Context, sel domain.Selection) (*domain.SummaryStats, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	rows := f.scoped(sel)
	return &domain.SummaryStats{
		TotalPopulation:        sum(rows, func(r Row) *float64 { return r.TotalPopulation }),
		AvgHealthWorkerDensity: avg(rows, func(r Row) *float64 { return r.HealthWorkerDensity }),
		TotalHIVCases:          sum(rows, func(r Row) *float64 { return r.TotalLivingWithHIV }),
		AvgTBSuccessRate:       avg(rows, func(r Row) *float64 { return r.TBTreatmentSuccess }),
		TotalFacilities:        sum(rows, func(r Row) *float64 { return r.HealthFacilities }),
		TotalAreas:             int64(len(rows)),
	}, nil
}

func (f *Fake) GetHIVStats(_ context.Context, sel domain.Selection) (*domain.HIVStats, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	rows := f.scoped(sel)
	return &domain.HIVStats{
		TotalCases:       sum(rows, func(r Row) *float64 { return r.TotalLivingWithHIV }),
		Prevalence:       avg(rows, func(r Row) *float64 { return r.HIVPrevalence }),
		ViralSuppression: avg(rows, func(r Row) *float64 { return r.ViralSuppression }),
		ARTCoverage:      avg(rows, func(r Row) *float64 { return r.ARTCoverage }),
		TestingCoverage:  avg(rows, func(r Row) *float64 { return r.TestingCoverage }),
	}, nil
}

func (f *Fake) GetTBStats(_ context.Context, sel domain.Selection) (*domain.TBStats, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	rows := f.scoped(sel)
	return &domain.TBStats{
		TotalCases:          sum(rows, func(r Row) *float64 { return r.TotalTBCases }),
		DSSuccess:           avg(rows, func(r Row) *float64 { return r.TBTreatmentSuccess }),
		MDRSuccess:          avg(rows, func(r Row) *float64 { return r.MDRSuccess }),
		DrugResistance:      avg(rows, func(r Row) *float64 { return r.DrugResistance }),
		TreatmentCompletion: avg(rows, func(r Row) *float64 { return r.TreatmentCompletion }),
	}, nil
}

func (f *Fake) GetTargetStats(_ context.Context, sel domain.Selection) (*domain.TargetStats, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	rows := f.scoped(sel)
	return &domain.TargetStats{
		MaternalMortality:   avg(rows, func(r Row) *float64 { return r.MaternalMortality }),
		Under5Mortality:     avg(rows, func(r Row) *float64 { return r.Under5Mortality }),
		HealthWorkerDensity: avg(rows, func(r Row) *float64 { return r.HealthWorkerDensity }),
	}, nil
}
