package growth

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frodoferhat/BreastfeedingTracker/internal/model"
)

func TestPercentileAtMedian(t *testing.T) {
	// The table median at an exact age maps to the 50th percentile.
	cases := []struct {
		name   string
		value  float64
		age    float64
		gender model.Gender
		metric Metric
	}{
		{"newborn boy weight", 3.3464, 0, model.GenderBoy, MetricWeight},
		{"six month girl weight", 7.2970, 6, model.GenderGirl, MetricWeight},
		{"one year boy height", 75.7488, 12, model.GenderBoy, MetricHeight},
		{"two year girl head", 47.1822, 24, model.GenderGirl, MetricHead},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := Percentile(tc.value, tc.age, tc.gender, tc.metric)
			require.NotNil(t, p)
			assert.Equal(t, 50, *p)
		})
	}
}

func TestPercentileOrdering(t *testing.T) {
	// Heavier reads higher.
	low := Percentile(2.9, 0, model.GenderBoy, MetricWeight)
	mid := Percentile(3.3464, 0, model.GenderBoy, MetricWeight)
	high := Percentile(4.2, 0, model.GenderBoy, MetricWeight)
	require.NotNil(t, low)
	require.NotNil(t, mid)
	require.NotNil(t, high)
	assert.Less(t, *low, *mid)
	assert.Less(t, *mid, *high)
}

func TestPercentileFractionalAge(t *testing.T) {
	// Halfway between months 0 and 1 the interpolated boy weight median
	// is (3.3464+4.4709)/2.
	p := Percentile((3.3464+4.4709)/2, 0.5, model.GenderBoy, MetricWeight)
	require.NotNil(t, p)
	assert.Equal(t, 50, *p)
}

func TestPercentileOutOfRange(t *testing.T) {
	assert.Nil(t, Percentile(12, 25, model.GenderBoy, MetricWeight))
	assert.Nil(t, Percentile(3.5, -1, model.GenderBoy, MetricWeight))
	assert.Nil(t, Percentile(3.5, 2, model.Gender("unknown"), MetricWeight))
	assert.Nil(t, Percentile(3.5, 2, model.GenderBoy, Metric("shoe")))
}

func TestPercentileBounds(t *testing.T) {
	// Extreme values saturate without leaving the 0 to 100 range.
	tiny := Percentile(1.0, 6, model.GenderGirl, MetricWeight)
	huge := Percentile(20.0, 6, model.GenderGirl, MetricWeight)
	require.NotNil(t, tiny)
	require.NotNil(t, huge)
	assert.Equal(t, 0, *tiny)
	assert.Equal(t, 100, *huge)
}

func TestNormalCDF(t *testing.T) {
	assert.InDelta(t, 0.5, normalCDF(0), 1e-7)
	assert.InDelta(t, 0.8413, normalCDF(1), 1e-4)
	assert.InDelta(t, 0.0228, normalCDF(-2), 1e-4)
	assert.Equal(t, 0.0, normalCDF(-7))
	assert.Equal(t, 1.0, normalCDF(7))
	// Symmetry.
	for _, z := range []float64{0.3, 1.1, 2.5} {
		assert.InDelta(t, 1, normalCDF(z)+normalCDF(-z), 1e-9)
	}
}

func TestInterpolateExactRow(t *testing.T) {
	ref, ok := interpolate(weightBoys, 24)
	require.True(t, ok)
	assert.InDelta(t, 12.1515, ref.M, 1e-9)
	assert.False(t, math.IsNaN(ref.L))
}
