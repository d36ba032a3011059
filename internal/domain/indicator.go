package domain

import "encoding/json"

// LayerID names a selectable map indicator. Values double as column names
// in the municipal_health table.
type LayerID string

const (
	LayerHealthWorkerDensity LayerID = "health_worker_density"
	LayerHIVCases            LayerID = "total_living_with_hiv"
	LayerTBTreatmentSuccess  LayerID = "tb_ds_treatment_success_rate"
	LayerHealthFacilities    LayerID = "number_of_health_facilities"
	LayerPopulation          LayerID = "total_population"
	LayerMaternalMortality   LayerID = "maternal_mortality_ratio"
	LayerUnder5Mortality     LayerID = "under5_mortality_rate"
)

// LayerInfo is the presentation metadata for one map layer.
type LayerInfo struct {
	ID          LayerID `json:"id"`
	DisplayName string  `json:"display_name"`
	Description string  `json:"description"`
	ColorScheme string  `json:"color_scheme"`
	Unit        string  `json:"unit"`
	// Count layers are summed when rolled up to district/province level and
	// get magnitude-rounded legend bins; rate layers are averaged.
	Count bool `json:"-"`
}

// Layers lists the selectable indicators in display order.
var Layers = []LayerInfo{
	{ID: LayerHealthWorkerDensity, DisplayName: "Health Worker Density", Description: "Health workers per 10,000 population", ColorScheme: "YlOrRd", Unit: "per 10,000"},
	{ID: LayerHIVCases, DisplayName: "HIV Cases", Description: "Total people living with HIV", ColorScheme: "Reds", Unit: "cases", Count: true},
	{ID: LayerTBTreatmentSuccess, DisplayName: "TB Treatment Success", Description: "DS-TB treatment success rate", ColorScheme: "Greens", Unit: "%"},
	{ID: LayerHealthFacilities, DisplayName: "Health Facilities", Description: "Number of health facilities", ColorScheme: "Blues", Unit: "facilities", Count: true},
	{ID: LayerPopulation, DisplayName: "Population Density", Description: "Total population", ColorScheme: "Purples", Unit: "people", Count: true},
	{ID: LayerMaternalMortality, DisplayName: "Maternal Mortality Ratio", Description: "Maternal deaths per 100,000 live births", ColorScheme: "YlOrRd", Unit: "per 100,000 live births"},
	{ID: LayerUnder5Mortality, DisplayName: "Under-5 Mortality Rate", Description: "Under-5 deaths per 1,000 live births", ColorScheme: "YlOrRd", Unit: "per 1,000 live births"},
}

// LayerByID resolves a layer id, reporting whether it is known.
func LayerByID(id LayerID) (LayerInfo, bool) {
	for _, l := range Layers {
		if l.ID == id {
			return l, true
		}
	}
	return LayerInfo{}, false
}

// AreaIndicators holds the per-area values of every map layer. Pointers
// distinguish missing data from zero.
type AreaIndicators struct {
	HealthWorkerDensity *float64 `db:"health_worker_density" json:"health_worker_density"`
	TotalLivingWithHIV  *float64 `db:"total_living_with_hiv" json:"total_living_with_hiv"`
	TBTreatmentSuccess  *float64 `db:"tb_ds_treatment_success_rate" json:"tb_ds_treatment_success_rate"`
	HealthFacilities    *float64 `db:"number_of_health_facilities" json:"number_of_health_facilities"`
	TotalPopulation     *float64 `db:"total_population" json:"total_population"`
	MaternalMortality   *float64 `db:"maternal_mortality_ratio" json:"maternal_mortality_ratio"`
	Under5Mortality     *float64 `db:"under5_mortality_rate" json:"under5_mortality_rate"`
}

// Value returns the indicator value for one layer.
func (a *AreaIndicators) Value(id LayerID) *float64 {
	switch id {
	case LayerHealthWorkerDensity:
		return a.HealthWorkerDensity
	case LayerHIVCases:
		return a.TotalLivingWithHIV
	case LayerTBTreatmentSuccess:
		return a.TBTreatmentSuccess
	case LayerHealthFacilities:
		return a.HealthFacilities
	case LayerPopulation:
		return a.TotalPopulation
	case LayerMaternalMortality:
		return a.MaternalMortality
	case LayerUnder5Mortality:
		return a.Under5Mortality
	default:
		return nil
	}
}

// BoundaryRow is one mappable area: codes, indicator values and the boundary
// geometry as GeoJSON emitted by ST_AsGeoJSON. At province/district level the
// values are rollups and the geometry is the union of member municipalities.
type BoundaryRow struct {
	Code string `db:"code" json:"code"`
	Name string `db:"name" json:"name"`
	AreaIndicators
	Geometry json.RawMessage `db:"geometry" json:"geometry"`
}

// SummaryStats is the aggregate panel for a selected scope.
type SummaryStats struct {
	TotalPopulation        *float64 `db:"total_population" json:"total_population"`
	AvgHealthWorkerDensity *float64 `db:"avg_health_worker_density" json:"avg_health_worker_density"`
	TotalHIVCases          *float64 `db:"total_hiv_cases" json:"total_hiv_cases"`
	AvgTBSuccessRate       *float64 `db:"avg_tb_success_rate" json:"avg_tb_success_rate"`
	TotalFacilities        *float64 `db:"total_facilities" json:"total_facilities"`
	TotalAreas             int64    `db:"total_areas" json:"total_areas"`
}

// HIVStats are the HIV panel aggregates for one scope.
type HIVStats struct {
	TotalCases       *float64 `db:"total_hiv_cases" json:"total_hiv_cases"`
	Prevalence       *float64 `db:"hiv_prevalence" json:"hiv_prevalence"`
	ViralSuppression *float64 `db:"viral_suppression" json:"viral_suppression"`
	ARTCoverage      *float64 `db:"art_coverage" json:"art_coverage"`
	TestingCoverage  *float64 `db:"testing_coverage" json:"testing_coverage"`
}

// TBStats are the TB panel aggregates for one scope.
type TBStats struct {
	TotalCases          *float64 `db:"total_tb_cases" json:"total_tb_cases"`
	DSSuccess           *float64 `db:"ds_tb_success" json:"ds_tb_success"`
	MDRSuccess          *float64 `db:"mdr_tb_success" json:"mdr_tb_success"`
	DrugResistance      *float64 `db:"drug_resistance" json:"drug_resistance"`
	TreatmentCompletion *float64 `db:"treatment_completion" json:"treatment_completion"`
}

// TargetStats are the scope averages behind the SDG 3 target progress view.
type TargetStats struct {
	MaternalMortality   *float64 `db:"maternal_mortality_ratio"`
	Under5Mortality     *float64 `db:"under5_mortality_rate"`
	HealthWorkerDensity *float64 `db:"health_worker_density"`
}
