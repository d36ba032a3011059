package domain

import "fmt"

// Rating grades a local indicator value against fixed health thresholds.
type Rating string

const (
	RatingExcellent Rating = "excellent"
	RatingGood      Rating = "good"
	RatingModerate  Rating = "moderate"
	RatingPoor      Rating = "poor"
	RatingCritical  Rating = "critical"
	RatingUnknown   Rating = "unknown"
)

// Thresholds grade a value into a Rating. Boundaries are inclusive from the
// excellent side. LowerIsBetter inverts the comparison (e.g. prevalence).
type Thresholds struct {
	Excellent     float64
	Good          float64
	Moderate      float64
	Poor          float64
	LowerIsBetter bool
}

func (t Thresholds) Rate(value float64) Rating {
	if t.LowerIsBetter {
		switch {
		case value <= t.Excellent:
			return RatingExcellent
		case value <= t.Good:
			return RatingGood
		case value <= t.Moderate:
			return RatingModerate
		case value <= t.Poor:
			return RatingPoor
		default:
			return RatingCritical
		}
	}
	switch {
	case value >= t.Excellent:
		return RatingExcellent
	case value >= t.Good:
		return RatingGood
	case value >= t.Moderate:
		return RatingModerate
	case value >= t.Poor:
		return RatingPoor
	default:
		return RatingCritical
	}
}

// HealthThresholds holds the fixed grading scales, keyed by panel field.
var HealthThresholds = map[string]Thresholds{
	"health_worker_density": {Excellent: 25, Good: 15, Moderate: 10, Poor: 5},
	"ds_tb_success":         {Excellent: 85, Good: 75, Moderate: 65, Poor: 50},
	"viral_suppression":     {Excellent: 90, Good: 80, Moderate: 70, Poor: 60},
	"immunization_coverage": {Excellent: 95, Good: 85, Moderate: 75, Poor: 65},
}

// lower-is-better panel fields, rated against the national average only
var lowerIsBetter = map[string]bool{
	"hiv_prevalence":  true,
	"drug_resistance": true,
}

// Performance compares a local value to the national average for one panel
// field, optionally grading it against fixed thresholds.
type Performance struct {
	Rating         Rating   `json:"rating"`
	DiffPercent    *float64 `json:"diff_percent,omitempty"`
	Interpretation string   `json:"interpretation"`
}

// almost equal band, in percent of the national value
const inLineBand = 2.0

// ComparePerformance builds the Performance entry for a panel field. A nil
// local value yields RatingUnknown; a nil or zero national average skips the
// comparison but still grades against thresholds when the field has them.
func ComparePerformance(field string, local, national *float64) *Performance {
	if local == nil {
		return &Performance{Rating: RatingUnknown, Interpretation: "no data for this area"}
	}

	p := &Performance{Rating: RatingUnknown}
	if t, ok := HealthThresholds[field]; ok {
		p.Rating = t.Rate(*local)
	}

	if national == nil || *national == 0 {
		p.Interpretation = "no national average to compare against"
		return p
	}

	diff := (*local - *national) / *national * 100
	p.DiffPercent = &diff

	better := diff > 0
	if lowerIsBetter[field] {
		better = diff < 0
	}

	switch {
	case diff > -inLineBand && diff < inLineBand:
		p.Interpretation = "in line with the national average"
	case better:
		p.Interpretation = fmt.Sprintf("%.1f%% better than the national average", abs(diff))
	default:
		p.Interpretation = fmt.Sprintf("%.1f%% worse than the national average", abs(diff))
	}

	return p
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// IndicatorPanel is the HIV or TB panel payload: local values, national
// averages and the per-field comparison.
type IndicatorPanel struct {
	Level       Level                   `json:"level"`
	Local       map[string]*float64     `json:"local_data"`
	National    map[string]*float64     `json:"national_averages"`
	Performance map[string]*Performance `json:"performance_indicators"`
}

// Target is one SDG 3 2030 target.
type Target struct {
	ID          string  `json:"id"`
	Label       string  `json:"label"`
	TargetValue float64 `json:"target_value"`
	Unit        string  `json:"unit"`
	// LowerIsBetter: mortality targets are ceilings, density targets floors.
	LowerIsBetter bool `json:"-"`
}

// SDG3Targets are the 2030 targets tracked by the dashboard.
var SDG3Targets = []Target{
	{ID: "maternal_mortality", Label: "Maternal Mortality Ratio", TargetValue: 70, Unit: "per 100,000 live births", LowerIsBetter: true},
	{ID: "under5_mortality", Label: "Under-5 Mortality Rate", TargetValue: 25, Unit: "per 1,000 live births", LowerIsBetter: true},
	{ID: "health_worker_density", Label: "Health Worker Density", TargetValue: 44.5, Unit: "per 10,000 population"},
}

// TargetProgress reports how close a scope is to one target.
type TargetProgress struct {
	Target
	CurrentValue    *float64 `json:"current_value"`
	ProgressPercent *float64 `json:"progress_percent"`
	Met             bool     `json:"met"`
}

// Progress computes progress toward the target. For ceilings the target is
// met at or below the target value and progress is target/current; for
// floors it is current/target. Progress caps at 100.
func (t Target) Progress(current *float64) *TargetProgress {
	tp := &TargetProgress{Target: t, CurrentValue: current}
	if current == nil || *current <= 0 {
		return tp
	}

	var pct float64
	if t.LowerIsBetter {
		tp.Met = *current <= t.TargetValue
		pct = t.TargetValue / *current * 100
	} else {
		tp.Met = *current >= t.TargetValue
		pct = *current / t.TargetValue * 100
	}
	if pct > 100 {
		pct = 100
	}
	tp.ProgressPercent = &pct
	return tp
}
