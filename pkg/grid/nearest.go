package grid

import (
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gravitas-games/hexgeom/pkg/hex"
)

// maxMagnitude keeps the seed estimate well inside int range.
const maxMagnitude = 1 << 30

// NearestHex returns the cube whose projected center is closest to pt.
//
// It hill-climbs from the best of six seeds: the origin, the four axis
// cubes at a magnitude estimated from |pt|, and the cube found by inverting
// the projection and rounding. Each step moves to the closest of the
// current cube and its neighbors until nothing improves. The distance field
// has no false local minima on a hex lattice, so the first fixed point is
// the answer. Non-finite points resolve to the origin.
func (l Layout) NearestHex(pt mgl64.Vec2) hex.Cube {
	c, _ := l.nearest(pt)
	return c
}

// nearest also reports how many climb steps were taken.
func (l Layout) nearest(pt mgl64.Vec2) (hex.Cube, int) {
	if !finite(pt) {
		return hex.Origin, 0
	}

	mag := math.Round(math.Max(1, pt.Len()) / l.scale)
	mag = math.Min(math.Max(1, mag), maxMagnitude)
	m := int(mag)

	start := l.closest(pt, []hex.Cube{
		hex.Origin,
		hex.New(m, 0),
		hex.New(-m, 0),
		hex.New(0, m),
		hex.New(0, -m),
		l.estimate(pt),
	})

	c, steps, _ := l.climb(pt, start, 4*m+64)
	return c, steps
}

// estimate inverts Project and rounds to the containing cube.
func (l Layout) estimate(pt mgl64.Vec2) hex.Cube {
	b := basisFor(l.orientation)
	u, v := b[0].Sub(b[2]), b[1].Sub(b[2])
	q := pt.Mul(2 / l.scale)
	det := u.X()*v.Y() - u.Y()*v.X()
	x := (q.X()*v.Y() - q.Y()*v.X()) / det
	y := (u.X()*q.Y() - u.Y()*q.X()) / det
	x = math.Max(-maxMagnitude, math.Min(maxMagnitude, x))
	y = math.Max(-maxMagnitude, math.Min(maxMagnitude, y))
	return hex.FromFractional(x, y)
}

// climb walks from start toward pt for at most limit steps. It reports
// false, and logs a warning, when the limit ran out before a fixed point.
func (l Layout) climb(pt mgl64.Vec2, start hex.Cube, limit int) (hex.Cube, int, bool) {
	cur := start
	var candidates [7]hex.Cube
	for step := 0; step < limit; step++ {
		candidates[0] = cur
		nbs := cur.Neighbors()
		copy(candidates[1:], nbs[:])
		next := l.closest(pt, candidates[:])
		if next == cur {
			return cur, step, true
		}
		cur = next
	}
	slog.Warn("nearest hex search hit step limit",
		"point", pt, "layout", l.String(), "steps", limit, "best", cur.String())
	return cur, limit, false
}

// closest is ClosestOf for a non-empty slice.
func (l Layout) closest(pt mgl64.Vec2, cs []hex.Cube) hex.Cube {
	c, _ := l.ClosestOf(pt, cs)
	return c
}
