package hex

// The set helpers never fail: entries that are not valid cubes are dropped.
// Cube values are comparable, and two cubes share a canonical key exactly
// when they are equal, so the value itself serves as the dedup key.

// FilterValid returns the entries of cs that satisfy x+y+z=0.
func FilterValid(cs []Cube) []Cube {
	out := make([]Cube, 0, len(cs))
	for _, c := range cs {
		if c.Valid() {
			out = append(out, c)
		}
	}
	return out
}

// Unique returns the valid entries of cs with duplicates removed,
// keeping first-seen order.
func Unique(cs []Cube) []Cube {
	seen := make(map[Cube]struct{}, len(cs))
	out := make([]Cube, 0, len(cs))
	for _, c := range cs {
		if !c.Valid() {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// ToMap indexes the valid entries of cs by canonical key.
func ToMap(cs []Cube) map[string]Cube {
	m := make(map[string]Cube, len(cs))
	for _, c := range cs {
		if c.Valid() {
			m[c.String()] = c
		}
	}
	return m
}

// Union returns the unique valid entries of a followed by those of b.
func Union(a, b []Cube) []Cube {
	all := make([]Cube, 0, len(a)+len(b))
	all = append(all, a...)
	all = append(all, b...)
	return Unique(all)
}

// Difference returns the valid entries of a that do not appear in b.
func Difference(a, b []Cube) []Cube {
	drop := make(map[Cube]struct{}, len(b))
	for _, c := range b {
		if c.Valid() {
			drop[c] = struct{}{}
		}
	}
	out := make([]Cube, 0, len(a))
	for _, c := range a {
		if !c.Valid() {
			continue
		}
		if _, ok := drop[c]; !ok {
			out = append(out, c)
		}
	}
	return out
}
