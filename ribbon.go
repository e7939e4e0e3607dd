package tinsel

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// RibbonSearchStep is the parameter step used by Ribbon.Nearest.
const RibbonSearchStep = 0.02

// Ribbon is the spiral path wound around the tree. The camera climbs it in
// StateTree. t = 0 is the bottom, t = 1 the top.
type Ribbon struct {
	Height    float64 `toml:"height" env:"HEIGHT"`
	MaxRadius float64 `toml:"max_radius" env:"MAX_RADIUS"`
	Taper     float64 `toml:"taper" env:"TAPER"`
	Turns     float64 `toml:"turns" env:"TURNS"`
}

// DefaultRibbon returns the tree's ribbon: 7 units tall, radius 3 narrowing
// by 88% toward the top, six full turns.
func DefaultRibbon() Ribbon {
	return Ribbon{Height: 7, MaxRadius: 3, Taper: 0.88, Turns: 6}
}

// angle returns the winding angle at t.
func (r Ribbon) angle(t float64) float64 {
	return t * r.Turns * 2 * math.Pi
}

// Radius returns the spiral radius at t.
func (r Ribbon) Radius(t float64) float64 {
	return r.MaxRadius * (1 - r.Taper*clamp01(t))
}

// Point returns the path point at t. The path is centered vertically on the
// origin so the tree spans [-Height/2, Height/2].
func (r Ribbon) Point(t float64) r3.Vec {
	t = clamp01(t)
	a := r.angle(t)
	radius := r.Radius(t)
	return r3.Vec{
		X: radius * math.Cos(a),
		Y: t*r.Height - r.Height/2,
		Z: radius * math.Sin(a),
	}
}

// Outward returns the horizontal unit vector pointing away from the tree axis
// at t.
func (r Ribbon) Outward(t float64) r3.Vec {
	a := r.angle(clamp01(t))
	return r3.Vec{X: math.Cos(a), Z: math.Sin(a)}
}

// Nearest samples the path every RibbonSearchStep and returns the t whose
// point is closest to p. Ties keep the lower t.
func (r Ribbon) Nearest(p r3.Vec) float64 {
	steps := int(math.Round(1 / RibbonSearchStep))
	best := 0.0
	bestDist := math.Inf(1)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		d := r3.Norm2(r3.Sub(r.Point(t), p))
		if d < bestDist {
			best, bestDist = t, d
		}
	}
	return best
}

func clamp01(t float64) float64 {
	return math.Max(0, math.Min(t, 1))
}
