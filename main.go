package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/echoflaresat/thermalvf/api"
	"github.com/echoflaresat/thermalvf/constants"
	"github.com/echoflaresat/thermalvf/earth"
	"github.com/echoflaresat/thermalvf/radiation"
	"github.com/echoflaresat/thermalvf/sweep"
	"github.com/echoflaresat/thermalvf/viewfactor"
	"github.com/soniakeys/unit"
)

type config struct {
	alt, beta, area *float64
	samples         *int
	timeStr         *string
	incl, raan      *float64
	sweepRange      *string
	constantsPath   *string
	dumpConstants   *bool
	serve           *string
	jsonOut         *bool
	verbose         *bool
	showHelp        *bool
}

func defineFlags() config {
	return config{
		alt:     flag.Float64("alt", 550.0, "Orbit altitude in kilometers"),
		beta:    flag.Float64("beta", 75.0, "Beta angle in degrees (ignored when -incl is set)"),
		area:    flag.Float64("area", 1.0, "Panel area in square meters"),
		samples: flag.Int("samples", viewfactor.DefaultSamples, "Orbit samples for the view-factor integration"),

		timeStr: flag.String("time", "", "Time in RFC3339 format (e.g., 2025-08-02T15:04:05Z); defaults to now"),
		incl:    flag.Float64("incl", -1, "Orbit inclination in degrees; when set, beta is derived from -time and -raan"),
		raan:    flag.Float64("raan", 0.0, "Right ascension of the ascending node in degrees"),

		sweepRange: flag.String("sweep", "", "Sweep beta as from:to:step degrees and print a table"),

		constantsPath: flag.String("constants", os.Getenv(constants.EnvPath), "YAML file of constant overrides"),
		dumpConstants: flag.Bool("dump-constants", false, "Print the effective constants as YAML and exit"),

		serve:   flag.String("serve", "", "Serve the HTTP API on this address (e.g., :8080)"),
		jsonOut: flag.Bool("json", false, "Print results as JSON"),
		verbose: flag.Bool("v", false, "Verbose logging"),

		showHelp: flag.Bool("h", false, "Show this help message"),
	}
}

func printHelp() {
	fmt.Fprintf(os.Stderr, `Thermal View Factors - Sun-Tracking Panel Heat Loads

Usage:
  %[1]s [options]

`, os.Args[0])

	printGroup("Operating Point", []string{"alt", "beta", "area", "samples"})
	printGroup("Orbit Geometry", []string{"time", "incl", "raan"})
	printGroup("Sweep", []string{"sweep"})
	printGroup("Constants", []string{"constants", "dump-constants"})
	printGroup("Output", []string{"json", "serve"})
	printGroup("Misc", []string{"v", "h"})
}

func printGroup(title string, keys []string) {
	fmt.Fprintf(os.Stderr, "%s:\n", title)
	for _, name := range keys {
		if f := flag.Lookup(name); f != nil {
			fmt.Fprintf(os.Stderr, "  -%-15s %s (default %q)\n", f.Name, f.Usage, f.DefValue)
		}
	}
	fmt.Fprintln(os.Stderr)
}

func main() {

	cfg := defineFlags()
	flag.Usage = printHelp
	flag.Parse()

	if *cfg.showHelp {
		printHelp()
		return
	}

	level := slog.LevelInfo
	if *cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	reg := constants.New()
	if *cfg.constantsPath != "" {
		if err := reg.LoadFile(*cfg.constantsPath); err != nil {
			log.Fatalf("Failed to load constants: %v", err)
		}
	}

	if *cfg.dumpConstants {
		out, err := reg.Dump()
		if err != nil {
			log.Fatal(err)
		}
		os.Stdout.Write(out)
		return
	}

	if *cfg.serve != "" {
		serve(*cfg.serve, logger, reg)
		return
	}

	c := reg.Radiation()
	model := viewfactor.Default.WithSamples(*cfg.samples)

	beta := *cfg.beta
	if *cfg.incl >= 0 {
		t := parseTimeOrExit(*cfg.timeStr)
		b := earth.BetaAngle(t, unit.AngleFromDeg(*cfg.incl), unit.AngleFromDeg(*cfg.raan))
		beta = b.Deg()
		logger.Debug("derived beta angle",
			"time", t.Format(time.RFC3339),
			"inclination_deg", *cfg.incl,
			"raan_deg", *cfg.raan,
			"beta_deg", beta,
			"eclipse_fraction", earth.EclipseFraction(c.EarthRadiusKm, *cfg.alt, b),
		)
	}

	if *cfg.sweepRange != "" {
		r, err := parseRange(*cfg.sweepRange)
		if err != nil {
			log.Fatalf("Invalid -sweep: %v", err)
		}
		opts := sweep.Options{AreaM2: *cfg.area, Model: model}
		runSweep(sweep.Grid{Altitude: sweep.Single(*cfg.alt), Beta: r}, c, opts, *cfg.jsonOut)
		return
	}

	report, err := radiation.AnalyzeWith(model, *cfg.alt, beta, *cfg.area, c)
	if err != nil {
		log.Fatal(err)
	}
	printReport(report, *cfg.jsonOut)
}

func parseTimeOrExit(timeStr string) time.Time {
	if timeStr == "" {
		return time.Now().UTC()
	}
	t, err := time.Parse(time.RFC3339, timeStr)
	if err != nil {
		log.Fatalf("Invalid time format: %v", err)
	}
	return t.UTC()
}

// parseRange reads from:to:step. A single number is a one-value range.
func parseRange(s string) (sweep.Range, error) {
	parts := strings.Split(s, ":")
	vals := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return sweep.Range{}, err
		}
		vals[i] = v
	}
	switch len(vals) {
	case 1:
		return sweep.Single(vals[0]), nil
	case 3:
		return sweep.Range{From: vals[0], To: vals[1], Step: vals[2]}, nil
	default:
		return sweep.Range{}, fmt.Errorf("want from:to:step, got %q", s)
	}
}

func runSweep(g sweep.Grid, c radiation.Constants, opts sweep.Options, jsonOut bool) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	points, err := sweep.Run(ctx, g, c, opts)
	if err != nil {
		log.Fatal(err)
	}
	if jsonOut {
		writeJSON(points)
		return
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "alt_km\tbeta_deg\tvf_a\tvf_b\tvf_total\tearth_ir_w\talbedo_w\t")
	for _, p := range points {
		fmt.Fprintf(tw, "%.0f\t%.1f\t%.5f\t%.5f\t%.5f\t%.2f\t%.2f\t\n",
			p.AltitudeKm, p.BetaDeg,
			p.ViewFactors.SideA, p.ViewFactors.SideB, p.ViewFactors.Total,
			p.Loads.EarthIR, p.Loads.Albedo)
	}
	tw.Flush()
}

func printReport(r radiation.Report, jsonOut bool) {
	if jsonOut {
		writeJSON(r)
		return
	}
	b := r.Balance
	fmt.Printf("Altitude %.0f km, beta %.2f°, area %g m²\n\n", r.AltitudeKm, r.BetaDeg, r.AreaM2)
	fmt.Printf("View factors    A %.5f  B %.5f  total %.5f\n", r.ViewFactors.SideA, r.ViewFactors.SideB, r.ViewFactors.Total)
	fmt.Printf("Earth IR        A %.2f W  B %.2f W  total %.2f W\n", r.Loads.EarthIRA, r.Loads.EarthIRB, r.Loads.EarthIR)
	fmt.Printf("Albedo          %.2f W\n\n", r.Loads.Albedo)
	fmt.Printf("Solar absorbed  %.2f W (electrical %.2f W)\n", b.SolarAbsorbedW, b.ElectricalW)
	fmt.Printf("Heat in         %.2f W\n", b.TotalHeatInW)
	fmt.Printf("Equilibrium     %.1f K (%.1f °C)\n", b.EqTempK, b.EqTempC)
	fmt.Printf("Radiator limit  %.1f °C, margin %.1f °C (%.1f%%)\n", b.RadiatorTempC, b.MarginC, b.MarginPct)
	fmt.Printf("Area required   %.3f m² (sufficient: %t)\n", b.AreaRequiredM2, b.AreaSufficient)
}

func writeJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Fatal(err)
	}
}

func serve(addr string, logger *slog.Logger, reg *constants.Registry) {
	srv := api.NewServer(addr, logger, reg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down", "component", "main")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "component", "main", "error", err)
		}
	}
}
