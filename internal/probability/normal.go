package probability

import "math"

// Abramowitz & Stegun 7.1.26 coefficients
const (
	asA1 = 0.254829592
	asA2 = -0.284496736
	asA3 = 1.421413741
	asA4 = -1.453152027
	asA5 = 1.061405429
	asP  = 0.3275911
)

// NormalCDF evaluates the standard normal cumulative distribution at z using
// the Abramowitz-Stegun rational polynomial approximation of erf (maximum
// absolute error 1.5e-7).
func NormalCDF(z float64) float64 {
	sign := 1.0
	if z < 0 {
		sign = -1.0
	}
	x := math.Abs(z) / math.Sqrt2

	t := 1.0 / (1.0 + asP*x)
	y := 1.0 - ((((asA5*t+asA4)*t+asA3)*t+asA2)*t+asA1)*t*math.Exp(-x*x)

	return 0.5 * (1.0 + sign*y)
}
