package core

import "math/bits"

// RadicalInverse mirrors the binary digits of i around the radix point (van der Corput, base 2)
func RadicalInverse(i uint32) float64 {
	return float64(bits.Reverse32(i)) * 0x1p-32
}

// Hammersley returns the i-th point of an n-point Hammersley set in [0,1)²
func Hammersley(i, n int) (float64, float64) {
	return RadicalInverse(uint32(i)), float64(i) / float64(n)
}
