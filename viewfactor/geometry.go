package viewfactor

import (
	"fmt"
	"math"

	"github.com/echoflaresat/thermalvf/base"
	"github.com/echoflaresat/thermalvf/earth"
)

const (
	// DefaultSamples is the number of true-anomaly samples per orbit (5° steps).
	DefaultSamples = 72

	// DefaultEdgeOnFloor is the fraction of the nadir view factor kept by a
	// face that is edge-on to or facing away from Earth. It is an engineering
	// approximation for a plate of non-zero thickness that still intercepts
	// some grazing radiation, not a physical derivation.
	DefaultEdgeOnFloor = 0.05
)

// Model holds the tunable parameters of the view-factor calculation.
// The zero value is not usable; start from Default.
type Model struct {
	EarthRadiusKm float64
	EdgeOnFloor   float64
	Samples       int
}

// Default is the validated configuration: spherical Earth of radius
// earth.Radius, a 5% edge-on floor and 72 samples per orbit.
var Default = Model{
	EarthRadiusKm: earth.Radius,
	EdgeOnFloor:   DefaultEdgeOnFloor,
	Samples:       DefaultSamples,
}

// WithEarthRadius returns a copy of m using radiusKm for the Earth.
func (m Model) WithEarthRadius(radiusKm float64) Model {
	m.EarthRadiusKm = radiusKm
	return m
}

// WithSamples returns a copy of m using n true-anomaly samples.
func (m Model) WithSamples(n int) Model {
	m.Samples = n
	return m
}

// Validate checks the model parameters.
func (m Model) Validate() error {
	if !base.Finite(m.EarthRadiusKm) || m.EarthRadiusKm <= 0 {
		return fmt.Errorf("%w: earth radius %v km", ErrInvalidGeometry, m.EarthRadiusKm)
	}
	if !base.Finite(m.EdgeOnFloor) || m.EdgeOnFloor < 0 || m.EdgeOnFloor > 1 {
		return fmt.Errorf("%w: edge-on floor %v outside [0, 1]", ErrInvalidGeometry, m.EdgeOnFloor)
	}
	if m.Samples <= 0 {
		return fmt.Errorf("%w: %d orbit samples", ErrInvalidGeometry, m.Samples)
	}
	return nil
}

// EarthAngularRadius returns the angular radius of the Earth, in radians, seen
// from altitudeKm: asin(R / (R + h)). The result lies in (0, π/2).
func (m Model) EarthAngularRadius(altitudeKm float64) (float64, error) {
	if !base.Finite(altitudeKm) || altitudeKm <= 0 {
		return 0, fmt.Errorf("%w: altitude %v km must be positive", ErrInvalidGeometry, altitudeKm)
	}
	if !base.Finite(m.EarthRadiusKm) || m.EarthRadiusKm <= 0 {
		return 0, fmt.Errorf("%w: earth radius %v km", ErrInvalidGeometry, m.EarthRadiusKm)
	}
	s := m.EarthRadiusKm / (m.EarthRadiusKm + altitudeKm)
	if s < -1 || s > 1 {
		return 0, fmt.Errorf("%w: asin argument %v at altitude %v km", ErrInvalidGeometry, s, altitudeKm)
	}
	return math.Asin(s), nil
}

// NadirViewFactor returns the view factor to Earth of a plate whose normal
// points at the Earth's centre: sin²(angular radius). It approaches 1 as the
// altitude goes to zero and 0 as it grows without bound.
func (m Model) NadirViewFactor(altitudeKm float64) (float64, error) {
	rho, err := m.EarthAngularRadius(altitudeKm)
	if err != nil {
		return 0, err
	}
	s := math.Sin(rho)
	return s * s, nil
}

// TiltedPlateViewFactor returns the view factor of a plate whose normal makes
// tiltRad with the nadir direction. The nadir factor is scaled by cos(tilt);
// a plate that is edge-on or faces away from Earth keeps EdgeOnFloor of it.
func (m Model) TiltedPlateViewFactor(altitudeKm, tiltRad float64) (float64, error) {
	if !base.Finite(tiltRad) {
		return 0, fmt.Errorf("%w: tilt %v rad", ErrInvalidGeometry, tiltRad)
	}
	vf, err := m.NadirViewFactor(altitudeKm)
	if err != nil {
		return 0, err
	}
	return m.tilted(vf, tiltRad), nil
}

func (m Model) tilted(nadirVF, tiltRad float64) float64 {
	c := math.Cos(tiltRad)
	if c <= 0 {
		return nadirVF * m.EdgeOnFloor
	}
	return nadirVF * c
}

// EarthAngularRadius is Default.EarthAngularRadius.
func EarthAngularRadius(altitudeKm float64) (float64, error) {
	return Default.EarthAngularRadius(altitudeKm)
}

// NadirViewFactor is Default.NadirViewFactor.
func NadirViewFactor(altitudeKm float64) (float64, error) {
	return Default.NadirViewFactor(altitudeKm)
}

// TiltedPlateViewFactor is Default.TiltedPlateViewFactor.
func TiltedPlateViewFactor(altitudeKm, tiltRad float64) (float64, error) {
	return Default.TiltedPlateViewFactor(altitudeKm, tiltRad)
}
