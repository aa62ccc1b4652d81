// Package common holds layout constants and small helpers shared by the
// front-end.
package common

const (
	BaseWidth  = 1280
	BaseHeight = 720
)

// Lerp moves from a toward b by t.
func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// Fraction returns n/d clamped to [0, 1]. A zero denominator yields 0.
func Fraction(n, d int) float32 {
	if d <= 0 || n <= 0 {
		return 0
	}
	if n >= d {
		return 1
	}
	return float32(n) / float32(d)
}
