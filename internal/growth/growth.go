// Package growth computes WHO child-growth percentiles with the LMS
// method. Reference parameters come from the WHO Multicentre Growth
// Reference Study tables for ages 0 to 24 months.
package growth

import (
	"math"

	"github.com/frodoferhat/BreastfeedingTracker/internal/model"
)

// Metric names a measurable growth dimension.
type Metric string

const (
	MetricWeight Metric = "weight" // kg
	MetricHeight Metric = "height" // cm
	MetricHead   Metric = "head"   // cm
)

// lms holds the Box-Cox power, median and coefficient of variation for
// one reference age.
type lms struct {
	AgeMonths float64
	L, M, S   float64
}

// Percentile returns the WHO percentile (0 to 100) for a measurement,
// or nil when the age falls outside the reference tables or the
// metric/gender pair is unknown. Fractional ages interpolate linearly
// between adjacent table rows.
func Percentile(value, ageMonths float64, gender model.Gender, metric Metric) *int {
	table := lookupTable(gender, metric)
	if table == nil {
		return nil
	}
	ref, ok := interpolate(table, ageMonths)
	if !ok {
		return nil
	}

	var z float64
	if math.Abs(ref.L) < 0.001 {
		z = math.Log(value/ref.M) / ref.S
	} else {
		z = (math.Pow(value/ref.M, ref.L) - 1) / (ref.L * ref.S)
	}

	p := int(math.Round(normalCDF(z) * 100))
	return &p
}

func lookupTable(gender model.Gender, metric Metric) []lms {
	switch metric {
	case MetricWeight:
		if gender == model.GenderBoy {
			return weightBoys
		}
		if gender == model.GenderGirl {
			return weightGirls
		}
	case MetricHeight:
		if gender == model.GenderBoy {
			return heightBoys
		}
		if gender == model.GenderGirl {
			return heightGirls
		}
	case MetricHead:
		if gender == model.GenderBoy {
			return headBoys
		}
		if gender == model.GenderGirl {
			return headGirls
		}
	}
	return nil
}

// interpolate produces the LMS parameters for a fractional age by
// linear interpolation between the surrounding table rows. Ages outside
// the table range report !ok.
func interpolate(table []lms, ageMonths float64) (lms, bool) {
	if ageMonths < 0 || ageMonths > table[len(table)-1].AgeMonths {
		return lms{}, false
	}
	for i := 0; i < len(table)-1; i++ {
		lo, hi := table[i], table[i+1]
		if ageMonths < lo.AgeMonths || ageMonths > hi.AgeMonths {
			continue
		}
		frac := (ageMonths - lo.AgeMonths) / (hi.AgeMonths - lo.AgeMonths)
		return lms{
			AgeMonths: ageMonths,
			L:         lo.L + frac*(hi.L-lo.L),
			M:         lo.M + frac*(hi.M-lo.M),
			S:         lo.S + frac*(hi.S-lo.S),
		}, true
	}
	return table[len(table)-1], true
}

// normalCDF approximates the standard normal CDF with the Abramowitz
// and Stegun formula 7.1.26.
func normalCDF(z float64) float64 {
	if z < -6 {
		return 0
	}
	if z > 6 {
		return 1
	}

	const (
		a1 = 0.254829592
		a2 = -0.284496736
		a3 = 1.421413741
		a4 = -1.453152027
		a5 = 1.061405429
		p  = 0.3275911
	)

	sign := 1.0
	if z < 0 {
		sign = -1.0
	}
	x := math.Abs(z) / math.Sqrt2
	t := 1.0 / (1.0 + p*x)
	y := 1.0 - (((((a5*t+a4)*t)+a3)*t+a2)*t+a1)*t*math.Exp(-x*x)

	return 0.5 * (1.0 + sign*y)
}
