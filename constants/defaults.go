package constants

import "github.com/echoflaresat/thermalvf/radiation"

// Categories used to group entries for display.
const (
	CategorySystem      = "system"
	CategoryOrbital     = "orbital"
	CategoryNatGas      = "natgas"
	CategoryEnvironment = "environment"
	CategoryThermal     = "thermal"
)

// Keys read by the radiation model.
const (
	SolarIrradiance    = "SOLAR_IRRADIANCE_W_M2"
	EarthIRFlux        = "EARTH_IR_FLUX_W_M2"
	EarthAlbedo        = "EARTH_ALBEDO_FACTOR"
	SpaceTemp          = "T_SPACE_K"
	EarthRadius        = "EARTH_RADIUS_KM"
	PVAbsorptivity     = "PV_SOLAR_ABSORPTIVITY"
	PVEmissivity       = "PV_EMISSIVITY"
	RadiatorEmissivity = "RADIATOR_EMISSIVITY"
	PVEfficiency       = "PV_EFFICIENCY"
	MaxDieTemp         = "MAX_DIE_TEMP_C"
	TempDrop           = "TEMP_DROP_C"
)

// defaults lists every entry in display order. Entries outside the
// environment and thermal categories belong to the cost model and are carried
// for the settings editor only.
func defaults() []Entry {
	rc := radiation.DefaultConstants()
	return []Entry{
		{Key: "TARGET_POWER_MW", Value: 1000, Label: "Target Power", Unit: "MW", Category: CategorySystem},
		{Key: "HOURS_PER_YEAR", Value: 8760, Label: "Hours per Year", Unit: "hrs", Category: CategorySystem},

		{Key: "STARLINK_MASS_KG", Value: 740, Label: "Satellite Mass (V2 Mini)", Unit: "kg", Category: CategoryOrbital},
		{Key: "STARLINK_POWER_KW", Value: 27, Label: "Satellite Power (V2 Mini)", Unit: "kW", Category: CategoryOrbital},
		{Key: "STARLINK_ARRAY_M2", Value: 116, Label: "Satellite Array Area", Unit: "m²", Category: CategoryOrbital},
		{Key: "STARSHIP_PAYLOAD_KG", Value: 100000, Label: "Starship Payload to LEO", Unit: "kg", Category: CategoryOrbital},
		{Key: "STARSHIP_LOX_GAL_PER_LAUNCH", Value: 787000, Label: "LOX per Starship Launch", Unit: "gal", Category: CategoryOrbital},
		{Key: "STARSHIP_METHANE_GAL_PER_LAUNCH", Value: 755000, Label: "Methane per Starship Launch", Unit: "gal", Category: CategoryOrbital},
		{Key: "ORBITAL_OPS_FRAC", Value: 0.01, Label: "Operations Fraction", Unit: "%", Category: CategoryOrbital, IsPercent: true},

		{Key: "NGCC_ACRES", Value: 30, Label: "Plant Footprint", Unit: "acres", Category: CategoryNatGas},
		{Key: "NGCC_HEAT_RATE_BTU_KWH", Value: 6370, Label: "Heat Rate", Unit: "BTU/kWh", Category: CategoryNatGas},
		{Key: "GE_7HA_POWER_MW", Value: 430, Label: "GE 7HA.03 Turbine Power", Unit: "MW", Category: CategoryNatGas},
		{Key: "BTU_PER_CF", Value: 1000, Label: "BTU per Cubic Foot", Unit: "BTU/cf", Category: CategoryNatGas},
		{Key: "CF_PER_BCF", Value: 1e9, Label: "Cubic Feet per BCF", Unit: "cf", Category: CategoryNatGas},
		{Key: "NATGAS_OVERHEAD_FRAC", Value: 0.04, Label: "Overhead Fraction", Unit: "%", Category: CategoryNatGas, IsPercent: true},
		{Key: "NATGAS_MAINTENANCE_FRAC", Value: 0.03, Label: "Maintenance Fraction", Unit: "%", Category: CategoryNatGas, IsPercent: true},
		{Key: "NATGAS_COMMS_FRAC", Value: 0.01, Label: "Communications Fraction", Unit: "%", Category: CategoryNatGas, IsPercent: true},

		{Key: SolarIrradiance, Value: rc.SolarConstant, Label: "Solar Constant (AM0)", Unit: "W/m²", Category: CategoryEnvironment},
		{Key: EarthIRFlux, Value: rc.EarthIRFlux, Label: "Earth IR Flux", Unit: "W/m²", Category: CategoryEnvironment},
		{Key: EarthAlbedo, Value: rc.EarthAlbedo, Label: "Earth Albedo", Unit: "%", Category: CategoryEnvironment, IsPercent: true},
		{Key: SpaceTemp, Value: rc.SpaceTempK, Label: "Deep Space Sink Temperature", Unit: "K", Category: CategoryEnvironment},
		{Key: EarthRadius, Value: rc.EarthRadiusKm, Label: "Earth Mean Radius", Unit: "km", Category: CategoryEnvironment},

		{Key: PVAbsorptivity, Value: rc.AbsorptivityPV, Label: "PV Solar Absorptivity", Unit: "%", Category: CategoryThermal, IsPercent: true},
		{Key: PVEmissivity, Value: rc.EmissivityPV, Label: "PV Face IR Emissivity", Unit: "%", Category: CategoryThermal, IsPercent: true},
		{Key: RadiatorEmissivity, Value: rc.EmissivityRadiator, Label: "Radiator Face IR Emissivity", Unit: "%", Category: CategoryThermal, IsPercent: true},
		{Key: PVEfficiency, Value: rc.PVEfficiency, Label: "PV Conversion Efficiency", Unit: "%", Category: CategoryThermal, IsPercent: true},
		{Key: MaxDieTemp, Value: rc.MaxDieTempC, Label: "Max Die Temperature", Unit: "°C", Category: CategoryThermal},
		{Key: TempDrop, Value: rc.TempDropC, Label: "Die to Radiator Temperature Drop", Unit: "°C", Category: CategoryThermal},
	}
}
