// Package math provides float32 matrix math for the viewer and the
// double-to-float split used for fp64 emulation on float32 GPUs.
package math

// Fround returns x rounded to the nearest float32, as a GPU will see it.
func Fround(x float64) float64 {
	return float64(float32(x))
}

// SplitFloat64 splits x into a float32 high part and the residual low part.
// high + low reconstructs x to roughly 48 bits of mantissa.
func SplitFloat64(x float64) (high, low float32) {
	high = float32(x)
	low = float32(x - float64(high))
	return high, low
}

// JoinFloat64 reverses SplitFloat64.
func JoinFloat64(high, low float32) float64 {
	return float64(high) + float64(low)
}
