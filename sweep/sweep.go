// Package sweep evaluates the radiation model over a grid of altitudes and
// beta angles.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"

	"github.com/echoflaresat/thermalvf/base"
	"github.com/echoflaresat/thermalvf/radiation"
	"github.com/echoflaresat/thermalvf/viewfactor"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidRange  = errors.New("invalid sweep range")
	ErrTooManyPoints = errors.New("sweep grid too large")
)

// MaxPoints bounds the size of a grid.
const MaxPoints = 100_000

// Range is an inclusive arithmetic progression From, From+Step, ... <= To.
// A Range with From == To and Step == 0 is a single value.
type Range struct {
	From float64 `json:"from"`
	To   float64 `json:"to"`
	Step float64 `json:"step"`
}

// Single returns a Range holding only v.
func Single(v float64) Range {
	return Range{From: v, To: v}
}

// Values expands r.
func (r Range) Values() ([]float64, error) {
	if !base.Finite(r.From) || !base.Finite(r.To) || !base.Finite(r.Step) {
		return nil, fmt.Errorf("%w: %+v", ErrInvalidRange, r)
	}
	if r.From == r.To {
		return []float64{r.From}, nil
	}
	if r.Step <= 0 || r.To < r.From {
		return nil, fmt.Errorf("%w: %v to %v by %v", ErrInvalidRange, r.From, r.To, r.Step)
	}
	count := math.Floor((r.To-r.From)/r.Step+1e-9) + 1
	if count > MaxPoints {
		return nil, fmt.Errorf("%w: %.0f values", ErrTooManyPoints, count)
	}
	n := int(count)
	out := make([]float64, n)
	for i := range out {
		out[i] = r.From + float64(i)*r.Step
	}
	return out, nil
}

// Grid is the cartesian product of altitudes and betas.
type Grid struct {
	Altitude Range `json:"altitude_km"`
	Beta     Range `json:"beta_deg"`
}

// Point is one evaluated grid cell.
type Point struct {
	AltitudeKm  float64             `json:"altitude_km"`
	BetaDeg     float64             `json:"beta_deg"`
	ViewFactors viewfactor.Result   `json:"view_factors"`
	Loads       radiation.HeatLoads `json:"loads"`
}

// Options tune Run. A zero Workers means GOMAXPROCS; a zero Model means
// viewfactor.Default.
type Options struct {
	Workers int
	AreaM2  float64
	Model   viewfactor.Model
}

// Size returns the number of cells in g, or an error if a range is invalid.
func (g Grid) Size() (int, error) {
	alts, err := g.Altitude.Values()
	if err != nil {
		return 0, fmt.Errorf("altitude: %w", err)
	}
	betas, err := g.Beta.Values()
	if err != nil {
		return 0, fmt.Errorf("beta: %w", err)
	}
	n := len(alts) * len(betas)
	if n > MaxPoints {
		return 0, fmt.Errorf("%w: %d cells", ErrTooManyPoints, n)
	}
	return n, nil
}

// Run evaluates every cell of g with the constants snapshot c. Points come
// back in grid order, altitude-major. The first error cancels the remaining
// work.
func Run(ctx context.Context, g Grid, c radiation.Constants, opts Options) ([]Point, error) {
	if _, err := g.Size(); err != nil {
		return nil, err
	}
	alts, _ := g.Altitude.Values()
	betas, _ := g.Beta.Values()

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	model := opts.Model
	if model == (viewfactor.Model{}) {
		model = viewfactor.Default
	}

	points := make([]Point, len(alts)*len(betas))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	for i, alt := range alts {
		for j, beta := range betas {
			idx := i*len(betas) + j
			eg.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				vf, loads, err := radiation.ComputeWith(model, alt, beta, opts.AreaM2, c)
				if err != nil {
					return fmt.Errorf("altitude %v km, beta %v°: %w", alt, beta, err)
				}
				points[idx] = Point{AltitudeKm: alt, BetaDeg: beta, ViewFactors: vf, Loads: loads}
				return nil
			})
		}
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return points, nil
}
