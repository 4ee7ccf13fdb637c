package radiation

import (
	"fmt"
	"math"

	"github.com/echoflaresat/thermalvf/base"
	"github.com/echoflaresat/thermalvf/viewfactor"
)

const kelvinOffset = 273.15

// Balance is the steady-state heat balance of the panel. All electrical
// output is consumed on board and comes back as heat through the loop.
type Balance struct {
	SolarAbsorbedW float64 `json:"q_solar_absorbed_w"`
	ElectricalW    float64 `json:"power_generated_w"`
	SolarWasteW    float64 `json:"q_solar_waste_w"`
	HeatLoopW      float64 `json:"q_heat_loop_w"`
	EarthIRW       float64 `json:"q_earth_ir_w"`
	AlbedoW        float64 `json:"q_albedo_w"`
	TotalHeatInW   float64 `json:"total_heat_in_w"`

	TotalEmissivity float64 `json:"total_emissivity"`
	EqTempK         float64 `json:"eq_temp_k"`
	EqTempC         float64 `json:"eq_temp_c"`

	RadiatedAW         float64 `json:"q_rad_a_w"`
	RadiatedBW         float64 `json:"q_rad_b_w"`
	RadiativeCapacityW float64 `json:"radiative_capacity_w"`

	RadiatorTempC  float64 `json:"radiator_temp_c"`
	MarginC        float64 `json:"temp_margin_c"`
	MarginPct      float64 `json:"margin_pct"`
	AreaRequiredM2 float64 `json:"area_required_m2"`
	AreaSufficient bool    `json:"area_sufficient"`
}

// Thermal closes the heat balance of a panel of areaM2 that receives the
// given Earth loads plus direct sunlight on face A, and radiates from both
// faces to a sink at c.SpaceTempK.
func Thermal(loads HeatLoads, c Constants, areaM2 float64) (Balance, error) {
	if err := validArea(areaM2); err != nil {
		return Balance{}, err
	}
	if areaM2 == 0 {
		return Balance{}, fmt.Errorf("%w: zero area has no equilibrium temperature", ErrInvalidArea)
	}
	if err := c.Validate(); err != nil {
		return Balance{}, err
	}
	if !base.Finite(c.PVEfficiency) || c.PVEfficiency < 0 || c.PVEfficiency > c.AbsorptivityPV {
		return Balance{}, fmt.Errorf("%w: PV efficiency %v must lie in [0, αPV]", ErrInvalidConstants, c.PVEfficiency)
	}
	epsTotal := c.EmissivityPV + c.EmissivityRadiator
	if epsTotal <= 0 {
		return Balance{}, fmt.Errorf("%w: emissivities sum to zero", ErrInvalidConstants)
	}
	if !base.Finite(c.SpaceTempK) || c.SpaceTempK < 0 {
		return Balance{}, fmt.Errorf("%w: sink temperature %v K", ErrInvalidConstants, c.SpaceTempK)
	}
	radiatorTempC := c.MaxDieTempC - c.TempDropC
	targetK := radiatorTempC + kelvinOffset
	sink4 := math.Pow(c.SpaceTempK, 4)
	if !base.Finite(targetK) || targetK <= c.SpaceTempK {
		return Balance{}, fmt.Errorf("%w: radiator target %v K at or below sink %v K", ErrInvalidConstants, targetK, c.SpaceTempK)
	}

	absorbed := c.SolarConstant * c.AbsorptivityPV * areaM2
	electrical := c.SolarConstant * c.PVEfficiency * areaM2
	waste := absorbed - electrical
	loop := electrical
	totalIn := waste + loads.EarthIR + loads.Albedo + loop

	eqK := math.Pow(totalIn/(StefanBoltzmann*areaM2*epsTotal)+sink4, 0.25)
	eqC := eqK - kelvinOffset

	dT4 := math.Pow(eqK, 4) - sink4
	radA := StefanBoltzmann * areaM2 * c.EmissivityPV * dT4
	radB := StefanBoltzmann * areaM2 * c.EmissivityRadiator * dT4

	areaRequired := totalIn / (StefanBoltzmann * epsTotal * (math.Pow(targetK, 4) - sink4))
	for _, q := range []float64{totalIn, eqK, radA, radB, areaRequired} {
		if !base.Finite(q) {
			return Balance{}, fmt.Errorf("%w: %v m² overflows the heat balance", ErrInvalidArea, areaM2)
		}
	}

	marginC := radiatorTempC - eqC
	var marginPct float64
	if radiatorTempC != 0 {
		marginPct = marginC / radiatorTempC * 100
	}

	return Balance{
		SolarAbsorbedW: absorbed,
		ElectricalW:    electrical,
		SolarWasteW:    waste,
		HeatLoopW:      loop,
		EarthIRW:       loads.EarthIR,
		AlbedoW:        loads.Albedo,
		TotalHeatInW:   totalIn,

		TotalEmissivity: epsTotal,
		EqTempK:         eqK,
		EqTempC:         eqC,

		RadiatedAW:         radA,
		RadiatedBW:         radB,
		RadiativeCapacityW: radA + radB,

		RadiatorTempC:  radiatorTempC,
		MarginC:        marginC,
		MarginPct:      marginPct,
		AreaRequiredM2: areaRequired,
		AreaSufficient: eqC <= radiatorTempC,
	}, nil
}

// Report bundles a full analysis of one operating point.
type Report struct {
	AltitudeKm  float64           `json:"altitude_km"`
	BetaDeg     float64           `json:"beta_deg"`
	AreaM2      float64           `json:"area_m2"`
	ViewFactors viewfactor.Result `json:"view_factors"`
	Loads       HeatLoads         `json:"loads"`
	Balance     Balance           `json:"balance"`
}

// Analyze runs Compute and Thermal for one operating point.
func Analyze(altitudeKm, betaDeg, areaM2 float64, c Constants) (Report, error) {
	return AnalyzeWith(viewfactor.Default, altitudeKm, betaDeg, areaM2, c)
}

// AnalyzeWith is Analyze on the view-factor model m.
func AnalyzeWith(m viewfactor.Model, altitudeKm, betaDeg, areaM2 float64, c Constants) (Report, error) {
	vf, loads, err := ComputeWith(m, altitudeKm, betaDeg, areaM2, c)
	if err != nil {
		return Report{}, err
	}
	bal, err := Thermal(loads, c, areaM2)
	if err != nil {
		return Report{}, err
	}
	return Report{
		AltitudeKm:  altitudeKm,
		BetaDeg:     betaDeg,
		AreaM2:      areaM2,
		ViewFactors: vf,
		Loads:       loads,
		Balance:     bal,
	}, nil
}
