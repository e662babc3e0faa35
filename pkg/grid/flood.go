package grid

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gravitas-games/hexgeom/pkg/hex"
)

// DefaultDeadline bounds how long FloodQuery keeps growing a region.
const DefaultDeadline = 3 * time.Second

// DefaultSeedBox is polled for seed hexes when no WithSeedBox is given.
var DefaultSeedBox = NewBox(-10, -10, 10, 10)

// Predicate decides whether a hex belongs to a queried region. It receives
// the projected center, the cube and the layout doing the projection.
// Predicates must be pure: each hex is tested at most once per query.
type Predicate func(pt mgl64.Vec2, c hex.Cube, l Layout) bool

// WithinRadius accepts hexes whose center lies strictly within r of center.
func WithinRadius(center mgl64.Vec2, r float64) Predicate {
	r2 := r * r
	return func(pt mgl64.Vec2, _ hex.Cube, _ Layout) bool {
		return distSq(center, pt) < r2
	}
}

// InsideBox accepts hexes whose center lies in b.
func InsideBox(b Box) Predicate {
	return func(pt mgl64.Vec2, _ hex.Cube, _ Layout) bool {
		return b.Contains(pt)
	}
}

// StopReason records why a flood query stopped growing.
type StopReason int

const (
	StopEmpty      StopReason = iota // no seed passed the predicate
	StopSeedOnly                     // growth disabled
	StopFixedPoint                   // a pass added nothing
	StopMaxSize                      // region exceeded the size cap
	StopDeadline                     // wall-clock budget spent
	StopMaxPasses                    // pass budget spent
	StopCanceled                     // context done
)

var stopNames = [...]string{
	StopEmpty:      "empty",
	StopSeedOnly:   "seed-only",
	StopFixedPoint: "fixed-point",
	StopMaxSize:    "max-size",
	StopDeadline:   "deadline",
	StopMaxPasses:  "max-passes",
	StopCanceled:   "canceled",
}

func (r StopReason) String() string {
	if r >= 0 && int(r) < len(stopNames) {
		return stopNames[r]
	}
	return fmt.Sprintf("StopReason(%d)", int(r))
}

// Region is the result of a flood query.
type Region struct {
	Cells []hex.Cube
	Stop  StopReason
}

// Truncated reports whether growth was cut short by a limit rather than
// running out of passing neighbors. A truncated region may be incomplete,
// and after a deadline it may also be very large.
func (r Region) Truncated() bool {
	switch r.Stop {
	case StopMaxSize, StopDeadline, StopMaxPasses, StopCanceled:
		return true
	}
	return false
}

type queryConfig struct {
	seedBox   Box
	grow      bool
	maxSize   int
	maxPasses int
	deadline  time.Duration
	now       func() time.Time
}

// QueryOption configures FloodQuery.
type QueryOption func(*queryConfig)

// WithSeedBox sets the box polled for seed hexes.
func WithSeedBox(b Box) QueryOption {
	return func(c *queryConfig) { c.seedBox = b }
}

// WithoutGrowth returns only the seed hexes that pass the predicate.
func WithoutGrowth() QueryOption {
	return func(c *queryConfig) { c.grow = false }
}

// WithMaxSize stops growth once the region holds more than n hexes.
// Values below 2 disable the cap.
func WithMaxSize(n int) QueryOption {
	return func(c *queryConfig) { c.maxSize = n }
}

// WithMaxPasses stops growth after n passes. Zero means unlimited.
func WithMaxPasses(n int) QueryOption {
	return func(c *queryConfig) { c.maxPasses = n }
}

// WithDeadline bounds growth by wall-clock time. Zero disables the bound.
func WithDeadline(d time.Duration) QueryOption {
	return func(c *queryConfig) { c.deadline = d }
}

// WithClock replaces time.Now for the deadline check.
func WithClock(now func() time.Time) QueryOption {
	return func(c *queryConfig) { c.now = now }
}

// FloodRect collects the connected hexes whose centers lie in box, starting
// from the hex nearest the box center. Each pass adds the in-box neighbors of
// every hex collected so far until a pass adds nothing. With extend set, one
// more pass adds every neighbor regardless of the box to cover the border.
// Hexes are returned in the order they were found.
func (l Layout) FloodRect(box Box, extend bool) ([]hex.Cube, error) {
	if !box.Valid() {
		return nil, fmt.Errorf("flood rect %v: %w", box, ErrInvalidBox)
	}
	return l.floodRect(newProjector(l), box, extend), nil
}

func (l Layout) floodRect(p *projector, box Box, extend bool) []hex.Cube {
	s := newCubeSet()
	s.add(l.NearestHex(box.Center()))

	grow := func(all bool) int {
		added := 0
		for _, c := range s.snapshot() {
			for _, n := range c.Neighbors() {
				if s.has(n) {
					continue
				}
				if all || box.Contains(p.project(n)) {
					s.add(n)
					added++
				}
			}
		}
		return added
	}

	for grow(false) > 0 {
	}
	if extend {
		grow(true)
	}
	return s.order
}

// FloodQuery finds hexes passing pred. Seeds are the hexes of the seed box
// (border included) that pass; unless growth is disabled, the region then
// grows through passing neighbors until a pass adds nothing or a limit trips.
// The limits are a circuit breaker, not a correctness guarantee; check
// Region.Truncated.
func (l Layout) FloodQuery(pred Predicate, opts ...QueryOption) (Region, error) {
	return l.FloodQueryContext(context.Background(), pred, opts...)
}

// FloodQueryContext is FloodQuery with cancellation checked between passes.
func (l Layout) FloodQueryContext(ctx context.Context, pred Predicate, opts ...QueryOption) (Region, error) {
	if pred == nil {
		return Region{}, fmt.Errorf("flood query: nil predicate: %w", ErrInvalidArgument)
	}
	cfg := queryConfig{
		seedBox:  DefaultSeedBox,
		grow:     true,
		deadline: DefaultDeadline,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if !cfg.seedBox.Valid() {
		return Region{}, fmt.Errorf("flood query seed %v: %w", cfg.seedBox, ErrInvalidBox)
	}
	start := cfg.now()

	p := newProjector(l)
	accepted := newCubeSet()
	tested := make(map[hex.Cube]struct{})
	test := func(c hex.Cube) bool {
		tested[c] = struct{}{}
		return pred(p.project(c), c, l)
	}

	for _, c := range l.floodRect(p, cfg.seedBox, true) {
		if test(c) {
			accepted.add(c)
		}
	}
	if len(accepted.order) == 0 {
		return Region{Stop: StopEmpty}, nil
	}
	if !cfg.grow {
		return Region{Cells: accepted.order, Stop: StopSeedOnly}, nil
	}

	stop := StopFixedPoint
	for pass := 0; ; pass++ {
		if cfg.deadline > 0 && cfg.now().Sub(start) > cfg.deadline {
			stop = StopDeadline
			break
		}
		if cfg.maxPasses > 0 && pass >= cfg.maxPasses {
			stop = StopMaxPasses
			break
		}
		if err := ctx.Err(); err != nil {
			stop = StopCanceled
			break
		}

		added := 0
		for _, c := range accepted.snapshot() {
			for _, n := range c.Neighbors() {
				if _, done := tested[n]; done {
					continue
				}
				if test(n) {
					accepted.add(n)
					added++
				}
			}
		}
		if added == 0 {
			break
		}
		if cfg.maxSize > 1 && len(accepted.order) > cfg.maxSize {
			stop = StopMaxSize
			break
		}
	}

	region := Region{Cells: accepted.order, Stop: stop}
	if region.Truncated() {
		slog.Debug("flood query stopped early",
			"reason", stop.String(), "cells", len(region.Cells), "layout", l.String())
	}
	return region, nil
}

// projector memoizes projections for the lifetime of one flood. Flood passes
// revisit the same border hexes, so the table pays for itself; it is bounded
// by the size of the region plus its border.
type projector struct {
	l   Layout
	pts map[hex.Cube]mgl64.Vec2
}

func newProjector(l Layout) *projector {
	return &projector{l: l, pts: make(map[hex.Cube]mgl64.Vec2)}
}

func (p *projector) project(c hex.Cube) mgl64.Vec2 {
	if v, ok := p.pts[c]; ok {
		return v
	}
	v := p.l.Project(c)
	p.pts[c] = v
	return v
}

// cubeSet keeps insertion order for deterministic results.
type cubeSet struct {
	idx   map[hex.Cube]struct{}
	order []hex.Cube
}

func newCubeSet() *cubeSet {
	return &cubeSet{idx: make(map[hex.Cube]struct{})}
}

func (s *cubeSet) has(c hex.Cube) bool {
	_, ok := s.idx[c]
	return ok
}

func (s *cubeSet) add(c hex.Cube) {
	if s.has(c) {
		return
	}
	s.idx[c] = struct{}{}
	s.order = append(s.order, c)
}

// snapshot returns the members present before a pass starts.
func (s *cubeSet) snapshot() []hex.Cube {
	return s.order[:len(s.order):len(s.order)]
}
