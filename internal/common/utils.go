package common

import "math"

// Round rounds x to the given number of decimal places.
func Round(x float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(x*shift) / shift
}
