package constants

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/echoflaresat/thermalvf/radiation"
)

func TestDefaultsMatchRadiation(t *testing.T) {
	r := New()
	if got, want := r.Radiation(), radiation.DefaultConstants(); got != want {
		t.Errorf("Radiation() = %+v, want %+v", got, want)
	}
}

func TestEntriesHaveMetadata(t *testing.T) {
	r := New()
	seen := map[string]bool{}
	for _, e := range r.Entries() {
		if seen[e.Key] {
			t.Errorf("duplicate key %s", e.Key)
		}
		seen[e.Key] = true
		if e.Label == "" || e.Unit == "" || e.Category == "" {
			t.Errorf("%s: missing metadata %+v", e.Key, e.Metadata())
		}
		if e.IsPercent && (e.Value < 0 || e.Value > 1) {
			t.Errorf("%s: percent default %v outside [0, 1]", e.Key, e.Value)
		}
	}
	for _, key := range []string{SolarIrradiance, EarthIRFlux, EarthAlbedo, SpaceTemp, EarthRadius,
		PVAbsorptivity, PVEmissivity, RadiatorEmissivity, PVEfficiency, MaxDieTemp, TempDrop} {
		if !seen[key] {
			t.Errorf("radiation key %s missing from registry", key)
		}
	}
	if len(r.MetadataFor()) != len(seen) {
		t.Errorf("MetadataFor has %d keys, entries %d", len(r.MetadataFor()), len(seen))
	}
}

func TestSetAndSnapshotIsolation(t *testing.T) {
	r := New()
	before := r.Radiation()

	if err := r.Set(PVEmissivity, 0.7); err != nil {
		t.Fatal(err)
	}
	if before.EmissivityPV != 0.85 {
		t.Errorf("earlier snapshot changed to %v", before.EmissivityPV)
	}
	if after := r.Radiation(); after.EmissivityPV != 0.7 {
		t.Errorf("new snapshot EmissivityPV = %v, want 0.7", after.EmissivityPV)
	}

	vals := r.Values()
	vals[PVEmissivity] = 0.1
	if v, _ := r.Get(PVEmissivity); v != 0.7 {
		t.Errorf("mutating Values() leaked into the registry: %v", v)
	}
}

func TestSetErrors(t *testing.T) {
	r := New()
	cases := []struct {
		name  string
		key   string
		value float64
		want  error
	}{
		{"unknown", "NOPE", 1, ErrUnknownConstant},
		{"nan", SolarIrradiance, math.NaN(), ErrInvalidValue},
		{"inf", EarthIRFlux, math.Inf(1), ErrInvalidValue},
		{"fraction above one", EarthAlbedo, 30, ErrInvalidValue},
		{"negative fraction", RadiatorEmissivity, -0.1, ErrInvalidValue},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if err := r.Set(c.key, c.value); !errors.Is(err, c.want) {
				t.Errorf("Set(%s, %v) = %v, want %v", c.key, c.value, err, c.want)
			}
		})
	}
	if got := r.Radiation(); got != radiation.DefaultConstants() {
		t.Errorf("failed sets changed the registry: %+v", got)
	}
}

func TestUpdateIsAtomic(t *testing.T) {
	r := New()
	err := r.Update(map[string]float64{SolarIrradiance: 1400, "BOGUS": 1})
	if !errors.Is(err, ErrUnknownConstant) {
		t.Fatalf("Update err = %v, want ErrUnknownConstant", err)
	}
	if v, _ := r.Get(SolarIrradiance); v != 1361 {
		t.Errorf("partial update applied: %v", v)
	}
}

func TestReset(t *testing.T) {
	r := New()
	if err := r.Set(EarthIRFlux, 250); err != nil {
		t.Fatal(err)
	}
	r.Reset()
	if v, _ := r.Get(EarthIRFlux); v != 237 {
		t.Errorf("after Reset EarthIRFlux = %v, want 237", v)
	}
}

func TestConcurrentAccess(t *testing.T) {
	r := New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				_ = r.Set(EarthIRFlux, float64(200+i))
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				c := r.Radiation()
				if c.EarthIRFlux < 200 || c.EarthIRFlux > 237 {
					t.Errorf("torn read: %v", c.EarthIRFlux)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestLoadOverrides(t *testing.T) {
	r := New()
	doc := `
EARTH_IR_FLUX_W_M2: 240
PV_EMISSIVITY: 0.8
STARSHIP_PAYLOAD_KG: 150000
`
	n, err := r.LoadOverrides(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("applied %d overrides, want 3", n)
	}
	c := r.Radiation()
	if c.EarthIRFlux != 240 || c.EmissivityPV != 0.8 {
		t.Errorf("snapshot after overrides = %+v", c)
	}
	if c.SolarConstant != 1361 {
		t.Errorf("untouched key changed: %v", c.SolarConstant)
	}
}

func TestLoadOverridesErrors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want error
	}{
		{"unknown key", "NOT_A_CONSTANT: 1\n", ErrUnknownConstant},
		{"bad fraction", "EARTH_ALBEDO_FACTOR: 30\n", ErrInvalidValue},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := New()
			if _, err := r.LoadOverrides(strings.NewReader(c.doc)); !errors.Is(err, c.want) {
				t.Errorf("LoadOverrides err = %v, want %v", err, c.want)
			}
		})
	}

	r := New()
	if _, err := r.LoadOverrides(strings.NewReader("EARTH_IR_FLUX_W_M2: [1, 2]\n")); err == nil {
		t.Error("expected a parse error for a non-scalar value")
	}
	if n, err := r.LoadOverrides(strings.NewReader("  \n")); err != nil || n != 0 {
		t.Errorf("empty document: n=%d err=%v", n, err)
	}
}

func TestDumpRoundTrip(t *testing.T) {
	r := New()
	if err := r.Set(TempDrop, 12.5); err != nil {
		t.Fatal(err)
	}
	data, err := r.Dump()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("TEMP_DROP_C: 12.5")) {
		t.Errorf("dump missing override:\n%s", data)
	}

	fresh := New()
	if _, err := fresh.LoadOverrides(bytes.NewReader(data)); err != nil {
		t.Fatalf("reloading dump: %v", err)
	}
	if fresh.Radiation() != r.Radiation() {
		t.Errorf("round trip changed constants: %+v vs %+v", fresh.Radiation(), r.Radiation())
	}
}
