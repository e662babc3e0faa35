// Package grid converts between cube coordinates and 2D points and hosts the
// searches built on that projection: nearest-hex resolution and flood fills.
package grid

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gravitas-games/hexgeom/pkg/hex"
)

var (
	// ErrInvalidScale is returned by New for a zero, negative or non-finite scale.
	ErrInvalidScale = errors.New("grid: scale must be positive and finite")
	// ErrInvalidOrientation is returned for an orientation other than FlatTop or PointyTop.
	ErrInvalidOrientation = errors.New("grid: unknown orientation")
	// ErrInvalidBox is returned when a box has a non-finite bound.
	ErrInvalidBox = errors.New("grid: box bounds must be finite")
	// ErrInvalidArgument is returned for a missing input such as a nil predicate.
	ErrInvalidArgument = errors.New("grid: invalid argument")
)

// Orientation selects which way the hexagons point.
type Orientation int

const (
	// FlatTop places the x axis at 0 degrees, so hexes have a flat top edge.
	FlatTop Orientation = iota
	// PointyTop rotates the axes by 30 degrees, so hexes have a top vertex.
	PointyTop
)

func (o Orientation) String() string {
	if o == PointyTop {
		return "pointy-top"
	}
	return "flat-top"
}

// Flip returns the other orientation.
func (o Orientation) Flip() Orientation {
	if o == PointyTop {
		return FlatTop
	}
	return PointyTop
}

// ParseOrientation accepts "flat-top", "flat", "pointy-top" or "pointy".
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "flat-top", "flat":
		return FlatTop, nil
	case "pointy-top", "pointy":
		return PointyTop, nil
	}
	return FlatTop, fmt.Errorf("%w: %q", ErrInvalidOrientation, s)
}

// basis holds the 2D unit vectors for the x, y and z cube axes.
type basis [3]mgl64.Vec2

func unit(deg float64) mgl64.Vec2 {
	r := mgl64.DegToRad(deg)
	return mgl64.Vec2{math.Cos(r), math.Sin(r)}
}

var (
	pointyBasis = basis{unit(30), unit(150), unit(270)}
	flatBasis   = basis{unit(0), unit(120), unit(240)}
)

func basisFor(o Orientation) basis {
	if o == PointyTop {
		return pointyBasis
	}
	return flatBasis
}

// cos30 relates center spacing to corner radius.
var cos30 = math.Cos(mgl64.DegToRad(30))

// Layout is the conversion contract between cube space and the plane.
// It is an immutable value and safe for concurrent use.
type Layout struct {
	scale       float64
	orientation Orientation
}

// Option configures a Layout.
type Option func(*Layout)

// WithScale sets the linear size multiplier.
func WithScale(scale float64) Option {
	return func(l *Layout) { l.scale = scale }
}

// WithOrientation sets flat-top or pointy-top.
func WithOrientation(o Orientation) Option {
	return func(l *Layout) { l.orientation = o }
}

// New builds a layout. Defaults are scale 1 and flat-top.
func New(opts ...Option) (Layout, error) {
	l := Layout{scale: 1, orientation: FlatTop}
	for _, opt := range opts {
		opt(&l)
	}
	if l.scale <= 0 || math.IsNaN(l.scale) || math.IsInf(l.scale, 0) {
		return Layout{}, fmt.Errorf("%w: %v", ErrInvalidScale, l.scale)
	}
	if l.orientation != FlatTop && l.orientation != PointyTop {
		return Layout{}, fmt.Errorf("%w: %d", ErrInvalidOrientation, int(l.orientation))
	}
	return l, nil
}

// MustNew is like New but panics on invalid options.
func MustNew(opts ...Option) Layout {
	l, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return l
}

// Scale returns the linear size multiplier; adjacent centers sit scale*cos30 apart.
func (l Layout) Scale() float64 { return l.scale }

// Orientation returns which way the layout's hexes point.
func (l Layout) Orientation() Orientation { return l.orientation }

// Inverse returns a layout with the same scale and the opposite orientation.
func (l Layout) Inverse() Layout {
	return Layout{scale: l.scale, orientation: l.orientation.Flip()}
}

func (l Layout) String() string {
	return fmt.Sprintf("layout{scale: %g, %s}", l.scale, l.orientation)
}

// Project converts c to its hexagon center in the plane.
func (l Layout) Project(c hex.Cube) mgl64.Vec2 {
	b := basisFor(l.orientation)
	v := b[0].Mul(float64(c.X)).
		Add(b[1].Mul(float64(c.Y))).
		Add(b[2].Mul(float64(c.Z)))
	return v.Mul(l.scale / 2)
}

// Corners returns the six vertices of c's hexagon in direction order.
// Each vertex is the center plus a unit offset projected under the inverse
// orientation at scale/(2*cos30).
func (l Layout) Corners(c hex.Cube) [6]mgl64.Vec2 {
	center := l.Project(c)
	vertex := Layout{scale: l.scale / (2 * cos30), orientation: l.orientation.Flip()}
	var out [6]mgl64.Vec2
	for i, d := range hex.Directions() {
		out[i] = center.Add(vertex.Project(d))
	}
	return out
}

// Closest returns whichever of a and b projects nearer to p.
// Exact ties keep a.
func (l Layout) Closest(p mgl64.Vec2, a, b hex.Cube) hex.Cube {
	if distSq(p, l.Project(b)) < distSq(p, l.Project(a)) {
		return b
	}
	return a
}

// ClosestOf reduces cs left to right with Closest, so the first-seen
// candidate wins ties. It reports false for an empty slice.
func (l Layout) ClosestOf(p mgl64.Vec2, cs []hex.Cube) (hex.Cube, bool) {
	if len(cs) == 0 {
		return hex.Cube{}, false
	}
	best, bestD := cs[0], distSq(p, l.Project(cs[0]))
	for _, c := range cs[1:] {
		if d := distSq(p, l.Project(c)); d < bestD {
			best, bestD = c, d
		}
	}
	return best, true
}

func distSq(a, b mgl64.Vec2) float64 {
	d := a.Sub(b)
	return d.Dot(d)
}

func finite(v mgl64.Vec2) bool {
	for _, f := range v {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
