package vdiv

import "sort"

// mantissas holds the IEC 60063 preferred-number mantissas (in [1, 10)) for
// each standard resistor series. Decade-normalized resistor values are
// generated by multiplying each mantissa by 10^d across the supported
// range, per spec §4.8.
var mantissas = map[string][]float64{
	"E3": {1.0, 2.2, 4.7},
	"E6": {1.0, 1.5, 2.2, 3.3, 4.7, 6.8},
	"E12": {
		1.0, 1.2, 1.5, 1.8, 2.2, 2.7, 3.3, 3.9, 4.7, 5.6, 6.8, 8.2,
	},
	"E24": {
		1.0, 1.1, 1.2, 1.3, 1.5, 1.6, 1.8, 2.0, 2.2, 2.4, 2.7, 3.0,
		3.3, 3.6, 3.9, 4.3, 4.7, 5.1, 5.6, 6.2, 6.8, 7.5, 8.2, 9.1,
	},
	"E48": {
		1.00, 1.05, 1.10, 1.15, 1.21, 1.27, 1.33, 1.40, 1.47, 1.54,
		1.62, 1.69, 1.78, 1.87, 1.96, 2.05, 2.15, 2.26, 2.37, 2.49,
		2.61, 2.74, 2.87, 3.01, 3.16, 3.32, 3.48, 3.65, 3.83, 4.02,
		4.22, 4.42, 4.64, 4.87, 5.11, 5.36, 5.62, 5.90, 6.19, 6.49,
		6.81, 7.15, 7.50, 7.87, 8.25, 8.66, 9.09, 9.53,
	},
	"E96": {
		1.00, 1.02, 1.05, 1.07, 1.10, 1.13, 1.15, 1.18, 1.21, 1.24,
		1.27, 1.30, 1.33, 1.37, 1.40, 1.43, 1.47, 1.50, 1.54, 1.58,
		1.62, 1.65, 1.69, 1.74, 1.78, 1.82, 1.87, 1.91, 1.96, 2.00,
		2.05, 2.10, 2.15, 2.21, 2.26, 2.32, 2.37, 2.43, 2.49, 2.55,
		2.61, 2.67, 2.74, 2.80, 2.87, 2.94, 3.01, 3.09, 3.16, 3.24,
		3.32, 3.40, 3.48, 3.57, 3.65, 3.74, 3.83, 3.92, 4.02, 4.12,
		4.22, 4.32, 4.42, 4.53, 4.64, 4.75, 4.87, 4.99, 5.11, 5.23,
		5.36, 5.49, 5.62, 5.76, 5.90, 6.04, 6.19, 6.34, 6.49, 6.65,
		6.81, 6.98, 7.15, 7.32, 7.50, 7.68, 7.87, 8.06, 8.25, 8.45,
		8.66, 8.87, 9.09, 9.31, 9.53, 9.76,
	},
}

// minDecade and maxDecade bound the decade exponents combined with each
// mantissa, giving a supported resistor range of roughly 1 ohm to 9.76
// megaohms — the implementation-defined "supported resistor range of the
// underlying series library" spec §4.8 refers to.
const (
	minDecade = 0
	maxDecade = 6
)

// Values returns the sorted, deduplicated set of standard resistor values
// for the named series, or false if the series is unknown.
func Values(series string) ([]float64, bool) {
	m, ok := mantissas[series]
	if !ok {
		return nil, false
	}

	seen := make(map[float64]bool)
	var values []float64
	for d := minDecade; d <= maxDecade; d++ {
		decade := pow10(d)
		for _, m := range m {
			v := m * decade
			if !seen[v] {
				seen[v] = true
				values = append(values, v)
			}
		}
	}

	sort.Float64s(values)
	return values, true
}

func pow10(d int) float64 {
	v := 1.0
	for i := 0; i < d; i++ {
		v *= 10
	}
	return v
}
