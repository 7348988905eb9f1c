// Package sampling turns pseudo-random and quasi-random draws into bin
// indices and 2D points, and measures how evenly the indices fill the bins.
package sampling

// FloatToIndex maps x in [0, 1) onto one of indexCount bins by scaling and
// truncating. The result is clamped to [0, indexCount-1], so x == 1.0 or a
// rounding overshoot lands in the last bin and negative x in the first.
func FloatToIndex(x float64, indexCount int) int {
	index := int(x * float64(indexCount))
	return min(max(index, 0), indexCount-1)
}
