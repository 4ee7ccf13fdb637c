// Package viewfactor computes geometric view factors from a flat plate in
// circular low-Earth orbit to a spherical Earth.
//
// The model covers one configuration: a two-sided plate that tracks the Sun
// about a single axis. Face A always points at the Sun, face B is the
// opposite face of the same rigid plate. SunTracking averages the view factor
// of each face over one revolution by sampling the true anomaly at a fixed
// resolution.
//
// Every function is a pure function of its arguments and the Model it is
// called on, so all of them may be called concurrently.
package viewfactor
