package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/echoflaresat/thermalvf/base"
	"github.com/echoflaresat/thermalvf/constants"
	"github.com/echoflaresat/thermalvf/earth"
	"github.com/echoflaresat/thermalvf/metrics"
	"github.com/echoflaresat/thermalvf/radiation"
	"github.com/echoflaresat/thermalvf/sweep"
	"github.com/echoflaresat/thermalvf/viewfactor"
	"github.com/soniakeys/unit"
)

// maxSweepPoints caps the grid one request may evaluate.
const maxSweepPoints = 5000

// maxSamples caps the orbit resolution one request may ask for.
const maxSamples = 36000

var errBadParam = errors.New("bad parameter")

// statusClientClosedRequest marks requests abandoned by the client.
const statusClientClosedRequest = 499

func floatParam(q url.Values, name string) (float64, error) {
	raw := q.Get(name)
	if raw == "" {
		return 0, fmt.Errorf("%w: %s is required", errBadParam, name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", errBadParam, name, err)
	}
	if !base.Finite(v) {
		return 0, fmt.Errorf("%w: %s must be finite, got %v", errBadParam, name, v)
	}
	return v, nil
}

func floatParamOr(q url.Values, name string, def float64) (float64, error) {
	if q.Get(name) == "" {
		return def, nil
	}
	return floatParam(q, name)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, context.Canceled):
		return statusClientClosedRequest
	case errors.Is(err, errBadParam),
		errors.Is(err, viewfactor.ErrInvalidGeometry),
		errors.Is(err, radiation.ErrInvalidArea),
		errors.Is(err, sweep.ErrInvalidRange),
		errors.Is(err, sweep.ErrTooManyPoints):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	switch {
	case status == statusClientClosedRequest:
		s.logger.Debug("request abandoned", "component", "api", "path", r.URL.Path, "error", err)
	case status >= 500:
		s.logger.Error("request failed", "component", "api", "path", r.URL.Path, "error", err)
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

// operatingPoint reads altitude_km and beta_deg.
func operatingPoint(q url.Values) (alt, beta float64, err error) {
	if alt, err = floatParam(q, "altitude_km"); err != nil {
		return 0, 0, err
	}
	if beta, err = floatParam(q, "beta_deg"); err != nil {
		return 0, 0, err
	}
	return alt, beta, nil
}

type viewFactorsResponse struct {
	AltitudeKm float64           `json:"altitude_km"`
	BetaDeg    float64           `json:"beta_deg"`
	Samples    int               `json:"samples"`
	Result     viewfactor.Result `json:"view_factors"`
}

func (s *Server) viewFactors(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	alt, beta, err := operatingPoint(q)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	samples := viewfactor.DefaultSamples
	if raw := q.Get("samples"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxSamples {
			s.fail(w, r, fmt.Errorf("%w: samples must be an integer in [1, %d]", errBadParam, maxSamples))
			return
		}
		samples = n
	}

	c := s.registry.Radiation()
	model := viewfactor.Default.WithEarthRadius(c.EarthRadiusKm).WithSamples(samples)
	vf, err := model.SunTracking(alt, beta)
	metrics.ObserveComputation("viewfactors", err)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, viewFactorsResponse{AltitudeKm: alt, BetaDeg: beta, Samples: samples, Result: vf})
}

type heatLoadsResponse struct {
	AltitudeKm  float64             `json:"altitude_km"`
	BetaDeg     float64             `json:"beta_deg"`
	AreaM2      float64             `json:"area_m2"`
	ViewFactors viewfactor.Result   `json:"view_factors"`
	Loads       radiation.HeatLoads `json:"loads"`
}

func (s *Server) heatLoads(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	alt, beta, err := operatingPoint(q)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	area, err := floatParam(q, "area_m2")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	vf, loads, err := radiation.Compute(alt, beta, area, s.registry.Radiation())
	metrics.ObserveComputation("heatloads", err)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, heatLoadsResponse{
		AltitudeKm:  alt,
		BetaDeg:     beta,
		AreaM2:      area,
		ViewFactors: vf,
		Loads:       loads,
	})
}

func (s *Server) thermal(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	alt, beta, err := operatingPoint(q)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	area, err := floatParam(q, "area_m2")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	report, err := radiation.Analyze(alt, beta, area, s.registry.Radiation())
	metrics.ObserveComputation("thermal", err)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

type betaResponse struct {
	Time            time.Time `json:"time"`
	InclinationDeg  float64   `json:"inclination_deg"`
	RAANDeg         float64   `json:"raan_deg"`
	BetaDeg         float64   `json:"beta_deg"`
	EclipseFraction *float64  `json:"eclipse_fraction,omitempty"`
}

func (s *Server) beta(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	t := time.Now().UTC()
	if raw := q.Get("time"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			s.fail(w, r, fmt.Errorf("%w: time: %v", errBadParam, err))
			return
		}
		t = parsed.UTC()
	}
	incl, err := floatParam(q, "inclination_deg")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	raan, err := floatParamOr(q, "raan_deg", 0)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	b := earth.BetaAngle(t, unit.AngleFromDeg(incl), unit.AngleFromDeg(raan))
	resp := betaResponse{Time: t, InclinationDeg: incl, RAANDeg: raan, BetaDeg: b.Deg()}

	if q.Get("altitude_km") != "" {
		alt, err := floatParam(q, "altitude_km")
		if err != nil {
			s.fail(w, r, err)
			return
		}
		if alt <= 0 {
			s.fail(w, r, fmt.Errorf("%w: altitude %v km must be positive", viewfactor.ErrInvalidGeometry, alt))
			return
		}
		c := s.registry.Radiation()
		if err := c.Validate(); err != nil {
			s.fail(w, r, err)
			return
		}
		f := earth.EclipseFraction(c.EarthRadiusKm, alt, b)
		resp.EclipseFraction = &f
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func rangeParam(q url.Values, prefix string) (sweep.Range, error) {
	from, err := floatParam(q, prefix+"_from")
	if err != nil {
		return sweep.Range{}, err
	}
	to, err := floatParamOr(q, prefix+"_to", from)
	if err != nil {
		return sweep.Range{}, err
	}
	step, err := floatParamOr(q, prefix+"_step", 0)
	if err != nil {
		return sweep.Range{}, err
	}
	return sweep.Range{From: from, To: to, Step: step}, nil
}

type sweepResponse struct {
	Grid   sweep.Grid    `json:"grid"`
	AreaM2 float64       `json:"area_m2"`
	Points []sweep.Point `json:"points"`
}

func (s *Server) sweep(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var g sweep.Grid
	var err error
	if g.Altitude, err = rangeParam(q, "alt"); err != nil {
		s.fail(w, r, err)
		return
	}
	if g.Beta, err = rangeParam(q, "beta"); err != nil {
		s.fail(w, r, err)
		return
	}
	area, err := floatParamOr(q, "area_m2", 1)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	n, err := g.Size()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if n > maxSweepPoints {
		s.fail(w, r, fmt.Errorf("%w: %d cells, limit %d", sweep.ErrTooManyPoints, n, maxSweepPoints))
		return
	}
	metrics.ObserveSweep(n)

	points, err := sweep.Run(r.Context(), g, s.registry.Radiation(), sweep.Options{AreaM2: area})
	metrics.ObserveComputation("sweep", err)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sweepResponse{Grid: g, AreaM2: area, Points: points})
}

type constantsResponse struct {
	Constants map[string]float64            `json:"constants"`
	Metadata  map[string]constants.Metadata `json:"metadata"`
	Entries   []constants.Entry             `json:"entries"`
}

func (s *Server) constants(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, constantsResponse{
		Constants: s.registry.Values(),
		Metadata:  s.registry.MetadataFor(),
		Entries:   s.registry.Entries(),
	})
}
