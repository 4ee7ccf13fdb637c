package base

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Clip clamps x into the inclusive range [lo, hi].
func Clip[T constraints.Float](x, lo, hi T) T {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Finite reports whether x is neither NaN nor ±Inf.
func Finite[T constraints.Float](x T) bool {
	f := float64(x)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Radians converts degrees to radians.
func Radians[T constraints.Float](deg T) T {
	return deg * (math.Pi / 180)
}
