// Package earth holds the spherical-Earth and sun geometry that feeds the
// view-factor engine: Earth's mean radius, the apparent solar direction at an
// instant, and the beta angle of a circular orbit.
package earth

import (
	"math"
	"time"

	"github.com/echoflaresat/thermalvf/base"
	"github.com/echoflaresat/thermalvf/vectors"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/solar"
	"github.com/soniakeys/unit"
)

const Radius = 6371.0 // Earth radius in km (spherical approximation)

// SunDirection returns the apparent direction of the Sun at t as a unit
// vector in an Earth-centred inertial frame (equator and equinox of date).
func SunDirection(t time.Time) vectors.Vec3 {
	jd := julian.TimeToJD(t.UTC())
	ra, dec := solar.ApparentEquatorial(jd)
	return vectors.FromSpherical(ra.Rad(), dec.Rad())
}

// OrbitNormal returns the unit angular-momentum vector of a circular orbit
// with the given inclination and right ascension of the ascending node: the
// pole tilted by the inclination about the line of nodes.
func OrbitNormal(inclination, raan unit.Angle) vectors.Vec3 {
	nodes := vectors.Vec3{X: raan.Cos(), Y: raan.Sin()}
	return vectors.RotateAbout(vectors.Vec3{Z: 1}, nodes, inclination.Rad())
}

// BetaAngle returns the angle between the orbit plane and the Sun direction
// at t. Positive when the Sun is on the side of the orbit normal.
func BetaAngle(t time.Time, inclination, raan unit.Angle) unit.Angle {
	return BetaAngleFor(SunDirection(t), OrbitNormal(inclination, raan))
}

// BetaAngleFor is BetaAngle for an explicit sun direction and orbit normal.
func BetaAngleFor(sun, normal vectors.Vec3) unit.Angle {
	s := base.Clip(normal.Normalize().Dot(sun.Normalize()), -1, 1)
	return unit.Angle(math.Asin(s))
}

// EclipseFraction returns the fraction of a circular orbit at altitudeKm,
// around an Earth of radiusKm, spent in the cylindrical shadow for the given
// beta angle. It is zero when |beta| exceeds the critical angle
// asin(R/(R+h)), and for a non-positive radius or altitude.
func EclipseFraction(radiusKm, altitudeKm float64, beta unit.Angle) float64 {
	if radiusKm <= 0 || altitudeKm <= 0 {
		return 0
	}
	r := radiusKm + altitudeKm
	betaCrit := math.Asin(radiusKm / r)
	b := math.Abs(beta.Rad())
	if b >= betaCrit {
		return 0
	}
	x := math.Sqrt(altitudeKm*altitudeKm+2*radiusKm*altitudeKm) / (r * math.Cos(b))
	return math.Acos(base.Clip(x, -1, 1)) / math.Pi
}
