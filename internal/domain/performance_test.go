package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fptr(v float64) *float64 { return &v }

func TestThresholds_Rate(t *testing.T) {
	density := HealthThresholds["health_worker_density"]

	cases := []struct {
		value float64
		want  Rating
	}{
		{30, RatingExcellent},
		{25, RatingExcellent},
		{15, RatingGood},
		{10, RatingModerate},
		{5, RatingPoor},
		{4.9, RatingCritical},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, density.Rate(tc.value), "value %v", tc.value)
	}
}

func TestThresholds_Rate_LowerIsBetter(t *testing.T) {
	prevalence := Thresholds{Excellent: 5, Good: 10, Moderate: 15, Poor: 20, LowerIsBetter: true}

	assert.Equal(t, RatingExcellent, prevalence.Rate(3))
	assert.Equal(t, RatingGood, prevalence.Rate(8))
	assert.Equal(t, RatingModerate, prevalence.Rate(15))
	assert.Equal(t, RatingPoor, prevalence.Rate(18))
	assert.Equal(t, RatingCritical, prevalence.Rate(25))
}

func TestComparePerformance_NoLocalData(t *testing.T) {
	p := ComparePerformance("viral_suppression", nil, fptr(90))
	assert.Equal(t, RatingUnknown, p.Rating)
	assert.Nil(t, p.DiffPercent)
	assert.Equal(t, "no data for this area", p.Interpretation)
}

func TestComparePerformance_AboveNational(t *testing.T) {
	p := ComparePerformance("viral_suppression", fptr(95), fptr(90))

	assert.Equal(t, RatingExcellent, p.Rating)
	require.NotNil(t, p.DiffPercent)
	assert.InDelta(t, 5.56, *p.DiffPercent, 0.01)
	assert.Equal(t, "5.6% better than the national average", p.Interpretation)
}

func TestComparePerformance_BelowNational(t *testing.T) {
	p := ComparePerformance("ds_tb_success", fptr(60), fptr(80))

	assert.Equal(t, RatingPoor, p.Rating)
	require.NotNil(t, p.DiffPercent)
	assert.InDelta(t, -25, *p.DiffPercent, 0.01)
	assert.Equal(t, "25.0% worse than the national average", p.Interpretation)
}

func TestComparePerformance_InLineBand(t *testing.T) {
	p := ComparePerformance("viral_suppression", fptr(90.9), fptr(90))
	assert.Equal(t, "in line with the national average", p.Interpretation)
}

func TestComparePerformance_LowerIsBetterField(t *testing.T) {
	// lower prevalence than the national average is an improvement
	p := ComparePerformance("hiv_prevalence", fptr(10), fptr(20))

	assert.Equal(t, RatingUnknown, p.Rating) // no fixed thresholds for prevalence
	require.NotNil(t, p.DiffPercent)
	assert.InDelta(t, -50, *p.DiffPercent, 0.01)
	assert.Equal(t, "50.0% better than the national average", p.Interpretation)
}

func TestComparePerformance_NoNationalAverage(t *testing.T) {
	p := ComparePerformance("viral_suppression", fptr(85), nil)
	assert.Equal(t, RatingGood, p.Rating)
	assert.Nil(t, p.DiffPercent)
	assert.Equal(t, "no national average to compare against", p.Interpretation)

	zero := ComparePerformance("viral_suppression", fptr(85), fptr(0))
	assert.Nil(t, zero.DiffPercent)
}

func TestTarget_Progress_Ceiling(t *testing.T) {
	maternal := SDG3Targets[0]
	require.True(t, maternal.LowerIsBetter)

	tp := maternal.Progress(fptr(140))
	assert.False(t, tp.Met)
	require.NotNil(t, tp.ProgressPercent)
	assert.InDelta(t, 50, *tp.ProgressPercent, 0.01)

	met := maternal.Progress(fptr(60))
	assert.True(t, met.Met)
	require.NotNil(t, met.ProgressPercent)
	assert.Equal(t, 100.0, *met.ProgressPercent) // capped
}

func TestTarget_Progress_Floor(t *testing.T) {
	density := SDG3Targets[2]
	require.False(t, density.LowerIsBetter)

	tp := density.Progress(fptr(22.25))
	assert.False(t, tp.Met)
	require.NotNil(t, tp.ProgressPercent)
	assert.InDelta(t, 50, *tp.ProgressPercent, 0.01)

	met := density.Progress(fptr(50))
	assert.True(t, met.Met)
	assert.Equal(t, 100.0, *met.ProgressPercent)
}

func TestTarget_Progress_NoData(t *testing.T) {
	tp := SDG3Targets[0].Progress(nil)
	assert.False(t, tp.Met)
	assert.Nil(t, tp.ProgressPercent)
	assert.Nil(t, tp.CurrentValue)

	zero := SDG3Targets[0].Progress(fptr(0))
	assert.Nil(t, zero.ProgressPercent)
}
