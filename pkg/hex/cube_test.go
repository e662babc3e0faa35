package hex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDerivesZ(t *testing.T) {
	c := New(10, 8)
	assert.Equal(t, 10, c.X)
	assert.Equal(t, 8, c.Y)
	assert.Equal(t, -18, c.Z)

	for x := -7; x <= 7; x++ {
		for y := -7; y <= 7; y++ {
			c := New(x, y)
			require.Zero(t, c.X+c.Y+c.Z, "cube %v", c)
			for _, n := range c.Neighbors() {
				require.Zero(t, n.X+n.Y+n.Z, "neighbor %v of %v", n, c)
			}
		}
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
		want Cube
	}{
		{"integral", 2, -3, New(2, -3)},
		{"down", 1.2, -0.4, New(1, 0)},
		{"up", 1.7, 2.6, New(2, 3)},
		{"half away from zero", 0.5, -0.5, New(1, -1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Round(tt.x, tt.y)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.Valid())
		})
	}
	assert.Equal(t, New(3, 4), Round(int32(3), int32(4)))
}

func TestFromFractional(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
		want Cube
	}{
		{"integral", 2, -3, New(2, -3)},
		{"near center", 2.1, -1.2, New(2, -1)},
		{"x moved most", 0.6, 0.3, New(1, 0)},
		{"y moved most", 0.4, 0.45, New(0, 1)},
		{"negative", -0.4, -0.45, New(0, -1)},
		{"z moved most", 0.3, 0.3, Origin},
		{"far", 1e6 + 0.2, -3e5 - 0.1, New(1000000, -300000)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromFractional(tt.x, tt.y)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.Valid())
		})
	}
}

func TestAddDoesNotMutate(t *testing.T) {
	a := New(1, 2)
	b := New(-4, 1)
	sum := a.Add(b)
	assert.Equal(t, New(-3, 3), sum)
	assert.Equal(t, New(1, 2), a)
	assert.Equal(t, New(-4, 1), b)
}

func TestOffset(t *testing.T) {
	c := New(3, -5)
	assert.Equal(t, c.Add(New(2, 1)), c.Offset(2, 1))
	assert.Equal(t, New(5, -4), c.Offset(2, 1))
}

func TestEqual(t *testing.T) {
	assert.True(t, New(1, 0).Equal(Cube{X: 1, Y: 0, Z: -1}))
	assert.False(t, New(1, 0).Equal(New(0, 1)))
	assert.False(t, New(1, 0).Equal(Cube{X: 1, Y: 0, Z: 5}), "invalid cube never equal")
}

func TestNeighborsOrder(t *testing.T) {
	center := New(0, 0)
	want := []Cube{New(1, -1), New(1, 0), New(0, 1), New(-1, 1), New(-1, 0), New(0, -1)}
	got := center.Neighbors()
	assert.Equal(t, want, got[:])

	d := New(3, -5)
	wantD := []Cube{New(4, -6), New(4, -5), New(3, -4), New(2, -4), New(2, -5), New(3, -6)}
	gotD := d.Neighbors()
	assert.Equal(t, wantD, gotD[:])

	dirs := Directions()
	for i := range dirs {
		assert.Equal(t, d.Add(dirs[i]), gotD[i])
		assert.Equal(t, gotD[i], d.Neighbor(i))
		assert.Equal(t, 1, Distance(d, gotD[i]))
	}
	assert.Equal(t, d.Neighbor(0), d.Neighbor(6))
	assert.Equal(t, d.Neighbor(5), d.Neighbor(-1))
}

func TestDirectionsIsACopy(t *testing.T) {
	dirs := Directions()
	dirs[0] = New(9, 9)
	assert.Equal(t, New(1, -1), Direction(0))
}

func TestDiff(t *testing.T) {
	c := New(1, 1)
	in := []Cube{New(1, 1), New(0, 0), {X: 1, Y: 1, Z: 1}, New(2, 0)}
	assert.Equal(t, []Cube{New(0, 0), New(2, 0)}, c.Diff(in))
	assert.Empty(t, c.Diff(nil))
}

func TestStringParseRoundTrip(t *testing.T) {
	for _, c := range Disk(New(-3, 7), 3) {
		s := c.String()
		got, err := Parse(s)
		require.NoError(t, err, s)
		assert.Equal(t, c, got)
	}
	assert.Equal(t, "1,0,-1", New(1, 0).String())
}

func TestParseErrors(t *testing.T) {
	for _, s := range []string{"", "1,2", "a,b,c", "1,1,1", "1,0,-1,0"} {
		_, err := Parse(s)
		assert.ErrorIs(t, err, ErrMalformed, s)
	}
	c, err := Parse(" 2, -1 , -1")
	require.NoError(t, err)
	assert.Equal(t, New(2, -1), c)
}

func TestDistance(t *testing.T) {
	assert.Equal(t, 0, Distance(Origin, Origin))
	assert.Equal(t, 3, Distance(Origin, New(3, -1)))
	assert.Equal(t, 5, Distance(New(-2, 2), New(3, -1)))
}

func TestRingAndDisk(t *testing.T) {
	c := New(2, -1)
	assert.Equal(t, []Cube{c}, Ring(c, 0))
	for k := 1; k <= 4; k++ {
		ring := Ring(c, k)
		require.Len(t, ring, 6*k)
		assert.Len(t, Unique(ring), 6*k)
		for _, r := range ring {
			assert.Equal(t, k, Distance(c, r))
		}
	}
	disk := Disk(c, 3)
	assert.Len(t, disk, 1+3*3*4)
	assert.Len(t, Unique(disk), len(disk))
	for _, d := range disk {
		assert.LessOrEqual(t, Distance(c, d), 3)
	}
	assert.Nil(t, Disk(c, -1))
}
