package wadmesh

import "golang.org/x/exp/constraints"

func abs[T constraints.Signed | constraints.Float](n T) T {
	if n < 0 {
		return -n
	}
	return n
}

func clamp[T constraints.Ordered](n, lo, hi T) T {
	return min(max(n, lo), hi)
}

// texCoord converts a distance in map units to texture repeats.
func texCoord[T constraints.Integer | constraints.Float](n T) float32 {
	return float32(n) / TextureUnit
}
