package pattern

import (
	"fmt"
	"strings"

	"github.com/mastercactapus/xyplot/coord"
)

// Kind identifies a pattern generator.
type Kind int

const (
	KindRefinedSpiral Kind = iota + 1
	KindSerpentine
	KindProgressiveRaster
	KindConcentricRings
	KindRadialSpokes
	KindPhyllotaxis
	KindHilbert
)

// A Variant binds a pattern kind to a concrete parameter set. Only the
// parameter field matching Kind is used.
//
// A Variant value is itself a usable pattern handle; Resolve is only
// needed when starting from a name.
type Variant struct {
	Name string
	Kind Kind

	Spiral      SpiralParams
	Serpentine  SerpentineParams
	Raster      RasterParams
	Rings       RingsParams
	Spokes      SpokesParams
	Phyllotaxis PhyllotaxisParams
	Hilbert     HilbertParams
}

// Sequence builds a fresh point sequence over the given work area.
func (v Variant) Sequence(area coord.Area) (Sequence, error) {
	switch v.Kind {
	case KindRefinedSpiral:
		return NewRefinedSpiral(area, v.Spiral)
	case KindSerpentine:
		return NewSerpentine(area, v.Serpentine)
	case KindProgressiveRaster:
		return NewProgressiveRaster(area, v.Raster)
	case KindConcentricRings:
		return NewConcentricRings(area, v.Rings)
	case KindRadialSpokes:
		return NewRadialSpokes(area, v.Spokes)
	case KindPhyllotaxis:
		return NewPhyllotaxis(area, v.Phyllotaxis)
	case KindHilbert:
		return NewHilbertCurve(area, v.Hilbert)
	}
	return nil, fmt.Errorf("pattern: unregistered kind %d", int(v.Kind))
}

// variants is the fixed registry, in registration order. The first entry
// is the default pattern.
var variants = []Variant{
	{Name: "center_out_refined_spiral", Kind: KindRefinedSpiral, Spiral: DefaultSpiral},
	{Name: "serpentine_100", Kind: KindSerpentine, Serpentine: SerpentineParams{Spacing: 100}},
	{Name: "progressive_raster", Kind: KindProgressiveRaster, Raster: RasterParams{InitialSpacing: 300, Passes: 4, Decay: 0.6}},
	{Name: "concentric_squares", Kind: KindConcentricRings, Rings: DefaultRings},
	{Name: "radial_spokes", Kind: KindRadialSpokes, Spokes: DefaultSpokes},
	{Name: "phyllotaxis", Kind: KindPhyllotaxis, Phyllotaxis: DefaultPhyllotaxis},
	{Name: "hilbert", Kind: KindHilbert, Hilbert: DefaultHilbert},
}

// Default returns the stock pattern used when no name is given.
func Default() Variant { return variants[0] }

// Names lists all registered pattern names in registration order.
func Names() []string {
	names := make([]string, len(variants))
	for i, v := range variants {
		names[i] = v.Name
	}
	return names
}

// UnknownPatternError is returned by Resolve for an unregistered name.
type UnknownPatternError struct {
	Name      string
	Available []string
}

func (e *UnknownPatternError) Error() string {
	return fmt.Sprintf("pattern: unknown pattern %q. Available: %s",
		e.Name, strings.Join(e.Available, ", "))
}

// Resolve looks up a registered variant by name. An empty name resolves
// to the default pattern.
func Resolve(name string) (Variant, error) {
	if name == "" {
		return Default(), nil
	}
	for _, v := range variants {
		if v.Name == name {
			return v, nil
		}
	}
	return Variant{}, &UnknownPatternError{Name: name, Available: Names()}
}
