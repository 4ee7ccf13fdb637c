package sweep

import (
	"context"
	"errors"
	"testing"

	"github.com/echoflaresat/thermalvf/radiation"
	"github.com/echoflaresat/thermalvf/viewfactor"
)

func TestRangeValues(t *testing.T) {
	cases := []struct {
		name string
		r    Range
		want []float64
	}{
		{"single", Single(550), []float64{550}},
		{"inclusive end", Range{From: 60, To: 90, Step: 10}, []float64{60, 70, 80, 90}},
		{"end not on step", Range{From: 0, To: 25, Step: 10}, []float64{0, 10, 20}},
		{"fractional step", Range{From: 0, To: 0.3, Step: 0.1}, []float64{0, 0.1, 0.2, 0.30000000000000004}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := c.r.Values()
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != len(c.want) {
				t.Fatalf("Values() = %v, want %v", got, c.want)
			}
			for i := range got {
				if got[i] != c.want[i] {
					t.Errorf("Values()[%d] = %v, want %v", i, got[i], c.want[i])
				}
			}
		})
	}
}

func TestRangeErrors(t *testing.T) {
	bad := []Range{
		{From: 0, To: 10, Step: 0},
		{From: 10, To: 0, Step: 1},
		{From: 0, To: 10, Step: -1},
	}
	for _, r := range bad {
		if _, err := r.Values(); !errors.Is(err, ErrInvalidRange) {
			t.Errorf("%+v: err = %v, want ErrInvalidRange", r, err)
		}
	}
	if _, err := (Range{From: 0, To: 1e9, Step: 1}).Values(); !errors.Is(err, ErrTooManyPoints) {
		t.Errorf("huge range err = %v, want ErrTooManyPoints", err)
	}
	g := Grid{Altitude: Range{From: 1, To: 1000, Step: 1}, Beta: Range{From: 0, To: 200, Step: 1}}
	if _, err := g.Size(); !errors.Is(err, ErrTooManyPoints) {
		t.Errorf("huge grid err = %v, want ErrTooManyPoints", err)
	}
}

func TestRunMatchesDirectComputation(t *testing.T) {
	c := radiation.DefaultConstants()
	g := Grid{
		Altitude: Range{From: 400, To: 800, Step: 200},
		Beta:     Range{From: 0, To: 90, Step: 15},
	}
	points, err := Run(context.Background(), g, c, Options{Workers: 3, AreaM2: 100})
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != 3*7 {
		t.Fatalf("got %d points, want 21", len(points))
	}

	for i, p := range points {
		wantAlt := 400 + float64(i/7)*200
		wantBeta := float64(i%7) * 15
		if p.AltitudeKm != wantAlt || p.BetaDeg != wantBeta {
			t.Fatalf("point %d at (%v, %v), want (%v, %v)", i, p.AltitudeKm, p.BetaDeg, wantAlt, wantBeta)
		}
		vf, err := viewfactor.SunTracking(p.AltitudeKm, p.BetaDeg)
		if err != nil {
			t.Fatal(err)
		}
		if p.ViewFactors != vf {
			t.Errorf("point %d view factors %+v, want %+v", i, p.ViewFactors, vf)
		}
		loads, _ := radiation.ComputeHeatLoads(vf, c, 100, p.BetaDeg)
		if p.Loads != loads {
			t.Errorf("point %d loads %+v, want %+v", i, p.Loads, loads)
		}
	}
}

func TestRunPropagatesGeometryError(t *testing.T) {
	g := Grid{Altitude: Range{From: -100, To: 100, Step: 100}, Beta: Single(0)}
	_, err := Run(context.Background(), g, radiation.DefaultConstants(), Options{AreaM2: 1})
	if !errors.Is(err, viewfactor.ErrInvalidGeometry) {
		t.Errorf("err = %v, want ErrInvalidGeometry", err)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g := Grid{Altitude: Range{From: 400, To: 800, Step: 1}, Beta: Single(60)}
	if _, err := Run(ctx, g, radiation.DefaultConstants(), Options{Workers: 2, AreaM2: 1}); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestRunUsesModel(t *testing.T) {
	c := radiation.DefaultConstants()
	g := Grid{Altitude: Single(550), Beta: Range{From: 0, To: 60, Step: 30}}
	fine := viewfactor.Default.WithSamples(720)

	points, err := Run(context.Background(), g, c, Options{AreaM2: 1, Model: fine})
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range points {
		want, _, err := radiation.ComputeWith(fine, p.AltitudeKm, p.BetaDeg, 1, c)
		if err != nil {
			t.Fatal(err)
		}
		if p.ViewFactors != want {
			t.Errorf("beta %v: view factors %+v, want %+v", p.BetaDeg, p.ViewFactors, want)
		}
	}

	// A zero Model falls back to the 72-sample default.
	coarse, err := Run(context.Background(), g, c, Options{AreaM2: 1})
	if err != nil {
		t.Fatal(err)
	}
	if coarse[0].ViewFactors == points[0].ViewFactors {
		t.Error("sample count had no effect on the sweep")
	}

	if _, err := Run(context.Background(), g, c, Options{AreaM2: 1, Model: viewfactor.Default.WithSamples(-1)}); !errors.Is(err, viewfactor.ErrInvalidGeometry) {
		t.Errorf("negative samples err = %v, want ErrInvalidGeometry", err)
	}
}
