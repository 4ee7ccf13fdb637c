// Package constants is the registry of named physical and engineering
// constants, with the display metadata an editor needs. The radiation model
// reads a snapshot of it through Registry.Radiation.
package constants

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/echoflaresat/thermalvf/base"
	"github.com/echoflaresat/thermalvf/radiation"
)

var (
	ErrUnknownConstant = errors.New("unknown constant")
	ErrInvalidValue    = errors.New("invalid constant value")
)

// Metadata describes how a constant is displayed.
type Metadata struct {
	Label     string `json:"label" yaml:"label"`
	Unit      string `json:"unit" yaml:"unit"`
	Category  string `json:"category" yaml:"category"`
	IsPercent bool   `json:"is_percent,omitempty" yaml:"is_percent,omitempty"`
}

// Entry is a constant with its current value.
type Entry struct {
	Key       string  `json:"key"`
	Value     float64 `json:"value"`
	Label     string  `json:"label"`
	Unit      string  `json:"unit"`
	Category  string  `json:"category"`
	IsPercent bool    `json:"is_percent,omitempty"`
}

// Metadata returns the display metadata of e.
func (e Entry) Metadata() Metadata {
	return Metadata{Label: e.Label, Unit: e.Unit, Category: e.Category, IsPercent: e.IsPercent}
}

// Registry holds the current value of every constant. It is safe for
// concurrent use. Readers get copies; a Set after a read is only visible to
// later reads.
type Registry struct {
	mu       sync.RWMutex
	values   map[string]float64
	meta     map[string]Metadata
	order    []string
	defaults map[string]float64
}

// New returns a registry holding the default values.
func New() *Registry {
	entries := defaults()
	r := &Registry{
		values:   make(map[string]float64, len(entries)),
		meta:     make(map[string]Metadata, len(entries)),
		order:    make([]string, 0, len(entries)),
		defaults: make(map[string]float64, len(entries)),
	}
	for _, e := range entries {
		r.values[e.Key] = e.Value
		r.defaults[e.Key] = e.Value
		r.meta[e.Key] = e.Metadata()
		r.order = append(r.order, e.Key)
	}
	return r
}

// Get returns the current value of key.
func (r *Registry) Get(key string) (float64, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.values[key]
	return v, ok
}

// Set changes one constant.
func (r *Registry) Set(key string, value float64) error {
	return r.Update(map[string]float64{key: value})
}

// Update applies all changes or none of them.
func (r *Registry) Update(changes map[string]float64) error {
	// Validate in key order so the reported error is deterministic.
	for _, key := range slices.Sorted(maps.Keys(changes)) {
		if err := r.check(key, changes[key]); err != nil {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	maps.Copy(r.values, changes)
	return nil
}

func (r *Registry) check(key string, value float64) error {
	m, ok := r.meta[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownConstant, key)
	}
	if !base.Finite(value) {
		return fmt.Errorf("%w: %s = %v", ErrInvalidValue, key, value)
	}
	if m.IsPercent && (value < 0 || value > 1) {
		return fmt.Errorf("%w: %s = %v is a fraction and must lie in [0, 1]", ErrInvalidValue, key, value)
	}
	return nil
}

// Reset restores every constant to its default.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	maps.Copy(r.values, r.defaults)
}

// Values returns a copy of the current key/value map.
func (r *Registry) Values() map[string]float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maps.Clone(r.values)
}

// Entries returns every constant with its metadata, in display order.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Entry, 0, len(r.order))
	for _, key := range r.order {
		m := r.meta[key]
		out = append(out, Entry{
			Key:       key,
			Value:     r.values[key],
			Label:     m.Label,
			Unit:      m.Unit,
			Category:  m.Category,
			IsPercent: m.IsPercent,
		})
	}
	return out
}

// MetadataFor returns the display metadata for every key.
func (r *Registry) MetadataFor() map[string]Metadata {
	return maps.Clone(r.meta)
}

// Radiation returns a fresh snapshot of the constants the radiation model
// reads. Callers should take a new snapshot per computation.
func (r *Registry) Radiation() radiation.Constants {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return radiation.Constants{
		EarthIRFlux:        r.values[EarthIRFlux],
		EarthAlbedo:        r.values[EarthAlbedo],
		SolarConstant:      r.values[SolarIrradiance],
		AbsorptivityPV:     r.values[PVAbsorptivity],
		EmissivityPV:       r.values[PVEmissivity],
		EmissivityRadiator: r.values[RadiatorEmissivity],
		EarthRadiusKm:      r.values[EarthRadius],
		PVEfficiency:       r.values[PVEfficiency],
		SpaceTempK:         r.values[SpaceTemp],
		MaxDieTempC:        r.values[MaxDieTemp],
		TempDropC:          r.values[TempDrop],
	}
}
