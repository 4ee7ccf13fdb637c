package radiation

import (
	"errors"
	"fmt"

	"github.com/echoflaresat/thermalvf/base"
	"github.com/echoflaresat/thermalvf/earth"
)

var (
	// ErrInvalidArea is returned for a panel area that is negative, zero where
	// a division needs it, or not finite.
	ErrInvalidArea = errors.New("invalid panel area")

	// ErrInvalidConstants is returned when a constants snapshot cannot produce
	// a physical result.
	ErrInvalidConstants = errors.New("invalid radiation constants")
)

// StefanBoltzmann is σ in W/m²/K⁴.
const StefanBoltzmann = 5.67e-8

// Constants is a snapshot of the physical and optical values the load and
// balance calculations read. Face A is the photovoltaic side, face B the
// radiator side.
type Constants struct {
	EarthIRFlux        float64 `json:"earth_ir_flux_w_m2"`
	EarthAlbedo        float64 `json:"earth_albedo"`
	SolarConstant      float64 `json:"solar_constant_w_m2"`
	AbsorptivityPV     float64 `json:"absorptivity_pv"`
	EmissivityPV       float64 `json:"emissivity_pv"`
	EmissivityRadiator float64 `json:"emissivity_radiator"`
	EarthRadiusKm      float64 `json:"earth_radius_km"`

	PVEfficiency float64 `json:"pv_efficiency"`
	SpaceTempK   float64 `json:"space_temp_k"`
	MaxDieTempC  float64 `json:"max_die_temp_c"`
	TempDropC    float64 `json:"temp_drop_c"`
}

// DefaultConstants returns the reference values: AM0 solar constant, global
// average Earth IR and albedo, glass-covered PV face and white-paint radiator.
func DefaultConstants() Constants {
	return Constants{
		EarthIRFlux:        237,
		EarthAlbedo:        0.30,
		SolarConstant:      1361,
		AbsorptivityPV:     0.92,
		EmissivityPV:       0.85,
		EmissivityRadiator: 0.90,
		EarthRadiusKm:      earth.Radius,

		PVEfficiency: 0.22,
		SpaceTempK:   3,
		MaxDieTempC:  85,
		TempDropC:    10,
	}
}

// Validate checks the values the heat-load model reads.
func (c Constants) Validate() error {
	nonNegative := []struct {
		name string
		v    float64
	}{
		{"earth IR flux", c.EarthIRFlux},
		{"solar constant", c.SolarConstant},
	}
	for _, f := range nonNegative {
		if !base.Finite(f.v) || f.v < 0 {
			return fmt.Errorf("%w: %s %v", ErrInvalidConstants, f.name, f.v)
		}
	}

	fractions := []struct {
		name string
		v    float64
	}{
		{"earth albedo", c.EarthAlbedo},
		{"PV absorptivity", c.AbsorptivityPV},
		{"PV emissivity", c.EmissivityPV},
		{"radiator emissivity", c.EmissivityRadiator},
	}
	for _, f := range fractions {
		if !base.Finite(f.v) || f.v < 0 || f.v > 1 {
			return fmt.Errorf("%w: %s %v outside [0, 1]", ErrInvalidConstants, f.name, f.v)
		}
	}

	if !base.Finite(c.EarthRadiusKm) || c.EarthRadiusKm <= 0 {
		return fmt.Errorf("%w: earth radius %v km", ErrInvalidConstants, c.EarthRadiusKm)
	}
	return nil
}

func validArea(areaM2 float64) error {
	if !base.Finite(areaM2) || areaM2 < 0 {
		return fmt.Errorf("%w: %v m²", ErrInvalidArea, areaM2)
	}
	return nil
}
