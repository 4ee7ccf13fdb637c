package viewfactor

import (
	"fmt"
	"math"

	"github.com/echoflaresat/thermalvf/base"
)

// Result is the orbit-averaged view factor to Earth of each face of the
// plate. Total is SideA + SideB by construction; it is not the view factor
// of any single surface.
type Result struct {
	SideA float64 `json:"vf_side_a"`
	SideB float64 `json:"vf_side_b"`
	Total float64 `json:"vf_total"`
}

// SunTracking returns the orbit-averaged view factors of a two-sided plate
// that tracks the Sun about one axis, for a circular orbit at altitudeKm with
// beta angle betaDeg.
//
// At each of m.Samples equally spaced true anomalies ν the angle between face
// A's normal and nadir satisfies cos γA = cos β · cos ν; face B is the
// opposite face, γB = π − γA. The per-face view factors are summed and
// divided by the sample count.
func (m Model) SunTracking(altitudeKm, betaDeg float64) (Result, error) {
	if err := m.Validate(); err != nil {
		return Result{}, err
	}
	if !base.Finite(betaDeg) {
		return Result{}, fmt.Errorf("%w: beta %v°", ErrInvalidGeometry, betaDeg)
	}
	vfNadir, err := m.NadirViewFactor(altitudeKm)
	if err != nil {
		return Result{}, err
	}

	cosBeta := math.Cos(base.Radians(betaDeg))
	n := float64(m.Samples)

	var sumA, sumB float64
	for i := 0; i < m.Samples; i++ {
		nu := 2 * math.Pi * float64(i) / n
		// Clip absorbs rounding past ±1 before the inverse cosine.
		gammaA := math.Acos(base.Clip(cosBeta*math.Cos(nu), -1, 1))
		if math.IsNaN(gammaA) {
			return Result{}, fmt.Errorf("%w: acos domain at ν=%v", ErrInvalidGeometry, nu)
		}
		gammaB := math.Pi - gammaA

		sumA += m.tilted(vfNadir, gammaA)
		sumB += m.tilted(vfNadir, gammaB)
	}

	a := sumA / n
	b := sumB / n
	return Result{SideA: a, SideB: b, Total: a + b}, nil
}

// SunTracking is Default.SunTracking.
func SunTracking(altitudeKm, betaDeg float64) (Result, error) {
	return Default.SunTracking(altitudeKm, betaDeg)
}
