// Package units provides the canonical unit vocabulary used by cluster
// observation files and resolves the free-text unit strings found in them.
//
// The registry performs no conversion arithmetic. It only normalizes known
// spellings onto canonical identifiers and answers whether two identifiers
// share a dimension, so callers can distinguish a convertible mismatch from
// an unrelated one.
package units

import (
	"errors"
	"fmt"
	"strings"
)

// Unit is a canonical unit identifier, e.g. "degree" or "mas/yr".
type Unit string

// Canonical units.
const (
	Degree        Unit = "degree"
	Arcmin        Unit = "arcmin"
	Arcsec        Unit = "arcsec"
	MasPerYear    Unit = "mas/yr"
	Dex           Unit = "dex"
	Gyr           Unit = "Gyr"
	Second        Unit = "s"
	SecondRate    Unit = "s/s"
	Parsec        Unit = "pc"
	Kiloparsec    Unit = "kpc"
	KmPerSecond   Unit = "km/s"
	PerParsec2    Unit = "1/pc2"
	PerArcmin2    Unit = "1/arcmin2"
	SolarMass     Unit = "Msun"
	Dimensionless Unit = "dimensionless"
)

// ErrUnknownUnit is returned when a raw unit string matches neither a
// canonical identifier nor a registered alias.
var ErrUnknownUnit = errors.New("unknown unit")

// Dimension groups canonical units that measure the same physical quantity.
type Dimension string

const (
	dimAngle          Dimension = "angle"
	dimAngularRate    Dimension = "angular rate"
	dimLogAbundance   Dimension = "log abundance"
	dimTime           Dimension = "time"
	dimRate           Dimension = "rate"
	dimLength         Dimension = "length"
	dimVelocity       Dimension = "velocity"
	dimSurfaceDensity Dimension = "surface density"
	dimMass           Dimension = "mass"
	dimDimensionless  Dimension = "dimensionless"
)

var dimensions = map[Unit]Dimension{
	Degree:        dimAngle,
	Arcmin:        dimAngle,
	Arcsec:        dimAngle,
	MasPerYear:    dimAngularRate,
	Dex:           dimLogAbundance,
	Gyr:           dimTime,
	Second:        dimTime,
	SecondRate:    dimRate,
	Parsec:        dimLength,
	Kiloparsec:    dimLength,
	KmPerSecond:   dimVelocity,
	PerParsec2:    dimSurfaceDensity,
	PerArcmin2:    dimSurfaceDensity,
	SolarMass:     dimMass,
	Dimensionless: dimDimensionless,
}

// builtinAliases maps the spellings observed in existing cluster files onto
// canonical identifiers.
var builtinAliases = map[string]Unit{
	"deg":       Degree,
	"degrees":   Degree,
	"arcminute": Arcmin,
	"arcsecond": Arcsec,
	"mas yr-1":  MasPerYear,
	"Gyrs":      Gyr,
	"sec":       Second,
	"parsec":    Parsec,
	"solMass":   SolarMass,
	"Msol":      SolarMass,
	"1":         Dimensionless,
	"":          Dimensionless,
	"none":      Dimensionless,
	"pc-2":      PerParsec2,
	"arcmin-2":  PerArcmin2,
}

// Registry resolves raw unit strings onto canonical identifiers.
//
// A Registry is immutable after construction and safe for concurrent use.
type Registry struct {
	aliases map[string]Unit
}

var defaultRegistry = &Registry{aliases: builtinAliases}

// Default returns the shared registry carrying only the built-in aliases.
func Default() *Registry {
	return defaultRegistry
}

// New builds a registry extended with additional aliases. Alias targets must
// be canonical units.
func New(extra map[string]Unit) (*Registry, error) {
	aliases := make(map[string]Unit, len(builtinAliases)+len(extra))
	for raw, unit := range builtinAliases {
		aliases[raw] = unit
	}
	for raw, unit := range extra {
		if _, ok := dimensions[unit]; !ok {
			return nil, fmt.Errorf("alias %q targets non-canonical unit %q", raw, unit)
		}
		aliases[strings.TrimSpace(raw)] = unit
	}
	return &Registry{aliases: aliases}, nil
}

// Resolve maps a raw unit string onto its canonical identifier.
func (r *Registry) Resolve(raw string) (Unit, error) {
	trimmed := strings.TrimSpace(raw)
	if _, ok := dimensions[Unit(trimmed)]; ok {
		return Unit(trimmed), nil
	}
	if unit, ok := r.aliases[trimmed]; ok {
		return unit, nil
	}
	return "", fmt.Errorf("resolve unit %q: %w", raw, ErrUnknownUnit)
}

// Equivalent reports whether two canonical units measure the same dimension.
// It does not imply the values are interchangeable without conversion.
func (r *Registry) Equivalent(a, b Unit) bool {
	da, ok := dimensions[a]
	if !ok {
		return false
	}
	db, ok := dimensions[b]
	if !ok {
		return false
	}
	return da == db
}

// IsCanonical reports whether u is part of the registry vocabulary.
func (r *Registry) IsCanonical(u Unit) bool {
	_, ok := dimensions[u]
	return ok
}
