package hex

// Ring returns the cubes at exact distance k from center c,
// starting from direction 4 and walking the six sides in direction order.
// If k<=0, returns [c].
func Ring(c Cube, k int) []Cube {
	if k <= 0 {
		return []Cube{c}
	}
	res := make([]Cube, 0, 6*k)
	cur := c.Add(Direction(4).Scale(k))
	for side := 0; side < 6; side++ {
		for step := 0; step < k; step++ {
			res = append(res, cur)
			cur = cur.Add(Direction(side))
		}
	}
	return res
}

// Disk returns all cubes at distance <= r from center c.
func Disk(c Cube, r int) []Cube {
	if r < 0 {
		return nil
	}
	res := make([]Cube, 0, 1+3*r*(r+1))
	for dx := -r; dx <= r; dx++ {
		for dy := max(-r, -dx-r); dy <= min(r, -dx+r); dy++ {
			res = append(res, c.Offset(dx, dy))
		}
	}
	return res
}
