package hex

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"
)

// ErrMalformed is returned when a canonical key cannot be parsed back into a Cube.
var ErrMalformed = errors.New("hex: malformed cube coordinate")

// Scalar is the set of numeric types Round accepts.
type Scalar interface {
	constraints.Integer | constraints.Float
}

// Cube represents cube coordinates (x, y, z) with x+y+z=0.
// Values built by this package always satisfy the invariant; use Valid to
// check hand-built literals.
type Cube struct {
	X int
	Y int
	Z int
}

// Origin is the cube at (0, 0, 0).
var Origin = Cube{}

// directions are the six unit offsets in neighbor order.
// Callers index neighbors positionally, so the order must not change.
var directions = [6]Cube{
	{1, -1, 0}, {1, 0, -1}, {0, 1, -1}, {-1, 1, 0}, {-1, 0, 1}, {0, -1, 1},
}

// New returns the cube (x, y, -(x+y)).
func New(x, y int) Cube {
	return Cube{X: x, Y: y, Z: -(x + y)}
}

// Round rounds x and y to the nearest integers (halves away from zero) and
// derives z from them.
func Round[T Scalar](x, y T) Cube {
	return New(int(math.Round(float64(x))), int(math.Round(float64(y))))
}

// FromFractional rounds a fractional cube position (x, y, -(x+y)) to the
// cube containing it. The axis that moved most under rounding is
// re-derived from the other two so the result keeps x+y+z=0.
func FromFractional(x, y float64) Cube {
	z := -(x + y)
	rx, ry, rz := math.Round(x), math.Round(y), math.Round(z)
	dx, dy, dz := math.Abs(rx-x), math.Abs(ry-y), math.Abs(rz-z)
	switch {
	case dx > dy && dx > dz:
		rx = -ry - rz
	case dy > dz:
		ry = -rx - rz
	}
	return New(int(rx), int(ry))
}

// Direction returns the unit offset for neighbor index i (taken modulo 6).
func Direction(i int) Cube {
	return directions[((i%6)+6)%6]
}

// Directions returns a copy of the six unit offsets in neighbor order.
func Directions() [6]Cube { return directions }

// Valid reports whether the cube satisfies x+y+z=0.
func (c Cube) Valid() bool { return -(c.X + c.Y) == c.Z }

// Add returns c+o. The z axis is re-derived from the summed x and y.
func (c Cube) Add(o Cube) Cube { return New(c.X+o.X, c.Y+o.Y) }

// Offset returns c moved by (dx, dy); z follows from the invariant.
func (c Cube) Offset(dx, dy int) Cube { return c.Add(New(dx, dy)) }

// Scale multiplies every axis by k.
func (c Cube) Scale(k int) Cube { return New(c.X*k, c.Y*k) }

// Equal reports whether o is a valid cube with the same three axes.
func (c Cube) Equal(o Cube) bool {
	return o.Valid() && c.X == o.X && c.Y == o.Y && c.Z == o.Z
}

// Neighbors returns the six adjacent cubes in direction order.
func (c Cube) Neighbors() [6]Cube {
	var out [6]Cube
	for i, d := range directions {
		out[i] = c.Add(d)
	}
	return out
}

// Neighbor returns the adjacent cube in direction i.
func (c Cube) Neighbor(i int) Cube { return c.Add(Direction(i)) }

// Diff returns the valid entries of cs that are not equal to c.
func (c Cube) Diff(cs []Cube) []Cube {
	out := make([]Cube, 0, len(cs))
	for _, o := range cs {
		if o.Valid() && !c.Equal(o) {
			out = append(out, o)
		}
	}
	return out
}

// String returns the canonical key "x,y,z".
func (c Cube) String() string {
	return strconv.Itoa(c.X) + "," + strconv.Itoa(c.Y) + "," + strconv.Itoa(c.Z)
}

// Parse reads a canonical key produced by String.
func Parse(s string) (Cube, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return Cube{}, fmt.Errorf("%w: %q", ErrMalformed, s)
	}
	var v [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Cube{}, fmt.Errorf("%w: %q", ErrMalformed, s)
		}
		v[i] = n
	}
	c := Cube{X: v[0], Y: v[1], Z: v[2]}
	if !c.Valid() {
		return Cube{}, fmt.Errorf("%w: %q does not sum to zero", ErrMalformed, s)
	}
	return c, nil
}

// Distance returns hex distance between two cube coords.
func Distance(a, b Cube) int {
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)
	dz := abs(a.Z - b.Z)
	if dx > dy && dx > dz {
		return dx
	}
	if dy > dz {
		return dy
	}
	return dz
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
