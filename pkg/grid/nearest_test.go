package grid

import (
	"bytes"
	"log/slog"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitas-games/hexgeom/pkg/hex"
)

func TestNearestHexKnownPoints(t *testing.T) {
	target := mgl64.Vec2{5, 5}
	assert.Equal(t, hex.New(9, -2), pointy1.NearestHex(target))
	assert.Equal(t, hex.New(7, 2), flat1.NearestHex(target))
	assert.Equal(t, hex.Origin, flat1.NearestHex(mgl64.Vec2{}))
}

func TestNearestHexRoundTrip(t *testing.T) {
	coords := append(hex.Disk(hex.Origin, 12), hex.New(500, -200), hex.New(-321, -77))
	for _, scale := range []float64{0.25, 1, 3} {
		for _, o := range []Orientation{FlatTop, PointyTop} {
			l := MustNew(WithScale(scale), WithOrientation(o))
			for _, c := range coords {
				assert.Equal(t, c, l.NearestHex(l.Project(c)), "%v %v", l, c)
			}
		}
	}
}

func TestNearestHexMatchesExhaustiveSearch(t *testing.T) {
	for _, l := range []Layout{pointy1, flat1, MustNew(WithScale(0.25), WithOrientation(PointyTop))} {
		all := hex.Disk(hex.Origin, 40)
		for x := -5.0; x < 5; x += 0.37 {
			for y := -5.0; y < 5; y += 0.37 {
				pt := mgl64.Vec2{x, y}
				want, _ := l.ClosestOf(pt, all)
				got := l.NearestHex(pt)
				assert.InDelta(t, distSq(pt, l.Project(want)), distSq(pt, l.Project(got)), 1e-12,
					"%v point %v: got %v want %v", l, pt, got, want)
			}
		}
	}
}

func TestNearestHexNonFinite(t *testing.T) {
	assert.Equal(t, hex.Origin, pointy1.NearestHex(mgl64.Vec2{math.NaN(), 1}))
	assert.Equal(t, hex.Origin, pointy1.NearestHex(mgl64.Vec2{0, math.Inf(-1)}))
}

// assertNearest checks that no neighbor of got is closer to pt and that pt
// lies within one corner radius of got's center.
func assertNearest(t *testing.T, l Layout, pt mgl64.Vec2, got hex.Cube) {
	t.Helper()
	d := distSq(pt, l.Project(got))
	for _, n := range got.Neighbors() {
		assert.LessOrEqual(t, d, distSq(pt, l.Project(n)), "%v point %v: neighbor %v is closer than %v", l, pt, n, got)
	}
	radius := l.Scale() / 2
	assert.LessOrEqual(t, math.Sqrt(d), radius*(1+1e-9), "%v point %v outside %v", l, pt, got)
}

func TestNearestHexFarPoint(t *testing.T) {
	for _, l := range []Layout{pointy1, flat1} {
		for _, pt := range []mgl64.Vec2{{1e6, 1e6}, {-1e6, 3.25e5}, {7e5, -9.9e5}} {
			got, steps := l.nearest(pt)
			assertNearest(t, l, pt, got)
			assert.LessOrEqual(t, steps, 2, "%v point %v", l, pt)
		}
	}

	pt := mgl64.Vec2{1e6, 1e6}
	allocs := testing.AllocsPerRun(10, func() { pointy1.NearestHex(pt) })
	assert.LessOrEqual(t, allocs, 2.0)
}

func TestNearestHexTinyScale(t *testing.T) {
	l := MustNew(WithScale(1e-6), WithOrientation(PointyTop))
	pt := mgl64.Vec2{3, 4}
	got, steps := l.nearest(pt)
	assertNearest(t, l, pt, got)
	assert.LessOrEqual(t, steps, 2)
}

func TestNearestHexLargeScale(t *testing.T) {
	l := MustNew(WithScale(1e4), WithOrientation(FlatTop))
	for _, pt := range []mgl64.Vec2{{1, 1}, {-2600, 4400}, {9000, -1}} {
		got, _ := l.nearest(pt)
		assertNearest(t, l, pt, got)
	}
}

func TestClimbStepLimit(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	pt := mgl64.Vec2{1000, 0}
	got, steps, ok := pointy1.climb(pt, hex.Origin, 2)
	require.False(t, ok)
	assert.Equal(t, 2, steps)
	assert.Less(t, distSq(pt, pointy1.Project(got)), distSq(pt, pointy1.Project(hex.Origin)))
	assert.Contains(t, buf.String(), "nearest hex search hit step limit")

	buf.Reset()
	want := pointy1.NearestHex(pt)
	got, _, ok = pointy1.climb(pt, want, 2)
	assert.True(t, ok)
	assert.Equal(t, want, got)
	assert.Empty(t, buf.String())
}
