package units

import (
	"errors"
	"testing"
)

func TestResolveCanonical(t *testing.T) {
	reg := Default()
	for _, unit := range []Unit{Degree, MasPerYear, Dex, Gyr, Dimensionless} {
		got, err := reg.Resolve(string(unit))
		if err != nil {
			t.Fatalf("resolve %q: %v", unit, err)
		}
		if got != unit {
			t.Fatalf("expected %q, got %q", unit, got)
		}
	}
}

func TestResolveAliases(t *testing.T) {
	reg := Default()
	cases := map[string]Unit{
		"deg":      Degree,
		" deg ":    Degree,
		"mas yr-1": MasPerYear,
		"":         Dimensionless,
		"none":     Dimensionless,
		"solMass":  SolarMass,
	}
	for raw, want := range cases {
		got, err := reg.Resolve(raw)
		if err != nil {
			t.Fatalf("resolve %q: %v", raw, err)
		}
		if got != want {
			t.Fatalf("resolve %q: expected %q, got %q", raw, want, got)
		}
	}
}

func TestResolveUnknown(t *testing.T) {
	_, err := Default().Resolve("furlongs")
	if !errors.Is(err, ErrUnknownUnit) {
		t.Fatalf("expected ErrUnknownUnit, got %v", err)
	}
}

func TestEquivalent(t *testing.T) {
	reg := Default()
	if !reg.Equivalent(Degree, Arcmin) {
		t.Fatal("degree and arcmin should share a dimension")
	}
	if reg.Equivalent(Degree, Gyr) {
		t.Fatal("degree and Gyr must not share a dimension")
	}
	if reg.Equivalent(Degree, Unit("bogus")) {
		t.Fatal("unknown units are never equivalent")
	}
}

func TestNewWithAliases(t *testing.T) {
	reg, err := New(map[string]Unit{"deg_J2000": Degree})
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	got, err := reg.Resolve("deg_J2000")
	if err != nil {
		t.Fatalf("resolve extra alias: %v", err)
	}
	if got != Degree {
		t.Fatalf("expected degree, got %q", got)
	}
	// builtin aliases survive extension
	if _, err := reg.Resolve("deg"); err != nil {
		t.Fatalf("builtin alias lost: %v", err)
	}
}

func TestNewRejectsNonCanonicalTarget(t *testing.T) {
	if _, err := New(map[string]Unit{"x": Unit("cubits")}); err == nil {
		t.Fatal("expected error for non-canonical alias target")
	}
}
