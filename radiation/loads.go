// Package radiation turns orbit-averaged view factors into incident heat
// loads on a two-sided panel, and closes the panel's heat balance.
package radiation

import (
	"fmt"
	"math"

	"github.com/echoflaresat/thermalvf/base"
	"github.com/echoflaresat/thermalvf/viewfactor"
)

// HeatLoads are the Earth-sourced loads on the panel, in watts.
type HeatLoads struct {
	EarthIRA float64 `json:"q_earth_ir_a_w"`
	EarthIRB float64 `json:"q_earth_ir_b_w"`
	EarthIR  float64 `json:"q_earth_ir_w"`
	Albedo   float64 `json:"q_albedo_w"`
}

// ComputeHeatLoads returns the Earth-IR and albedo loads on a panel of areaM2
// with view factors vf at beta angle betaDeg.
//
// Each face absorbs Earth IR through its own view factor and its own
// emissivity:
//
//	EarthIR = flux · (vfA·εPV + vfB·εRad) · area
//
// Albedo is absorbed by the PV face only; the radiator coating has negligible
// solar absorptivity:
//
//	Albedo = S · a · vfA · cos β · αPV · area
//
// cos β is floored at zero so a beta outside [-90°, 90°] cannot produce a
// negative load.
func ComputeHeatLoads(vf viewfactor.Result, c Constants, areaM2, betaDeg float64) (HeatLoads, error) {
	if err := validArea(areaM2); err != nil {
		return HeatLoads{}, err
	}
	if err := c.Validate(); err != nil {
		return HeatLoads{}, err
	}
	if !base.Finite(betaDeg) {
		return HeatLoads{}, fmt.Errorf("%w: beta %v°", viewfactor.ErrInvalidGeometry, betaDeg)
	}

	irA := vf.SideA * c.EmissivityPV
	irB := vf.SideB * c.EmissivityRadiator

	albedoScaling := math.Max(0, math.Cos(base.Radians(betaDeg)))

	loads := HeatLoads{
		EarthIRA: c.EarthIRFlux * irA * areaM2,
		EarthIRB: c.EarthIRFlux * irB * areaM2,
		EarthIR:  c.EarthIRFlux * (irA + irB) * areaM2,
		Albedo:   c.SolarConstant * c.EarthAlbedo * vf.SideA * albedoScaling * c.AbsorptivityPV * areaM2,
	}
	for _, q := range []float64{loads.EarthIRA, loads.EarthIRB, loads.EarthIR, loads.Albedo} {
		if !base.Finite(q) {
			return HeatLoads{}, fmt.Errorf("%w: %v m² overflows the heat loads", ErrInvalidArea, areaM2)
		}
	}
	return loads, nil
}

// Compute runs the view-factor integration at altitudeKm and betaDeg, using
// the Earth radius from c, and returns the view factors and heat loads for a
// panel of areaM2.
func Compute(altitudeKm, betaDeg, areaM2 float64, c Constants) (viewfactor.Result, HeatLoads, error) {
	return ComputeWith(viewfactor.Default, altitudeKm, betaDeg, areaM2, c)
}

// ComputeWith is Compute on the view-factor model m. The Earth radius always
// comes from c.
func ComputeWith(m viewfactor.Model, altitudeKm, betaDeg, areaM2 float64, c Constants) (viewfactor.Result, HeatLoads, error) {
	if err := c.Validate(); err != nil {
		return viewfactor.Result{}, HeatLoads{}, err
	}
	vf, err := m.WithEarthRadius(c.EarthRadiusKm).SunTracking(altitudeKm, betaDeg)
	if err != nil {
		return viewfactor.Result{}, HeatLoads{}, err
	}
	loads, err := ComputeHeatLoads(vf, c, areaM2, betaDeg)
	if err != nil {
		return viewfactor.Result{}, HeatLoads{}, err
	}
	return vf, loads, nil
}
