package geom

// Contains reports whether the point lies inside the quadrilateral using the
// even-odd ray casting rule over the four edges.
//
// A point sitting exactly on a horizontal edge, with its x inside the edge's
// x span inclusive, is classified inside.  A point on a non-horizontal edge
// follows the half-open interpolation rule below: each edge only owns the y
// range [min(y), max(y)) and the left-of-edge comparison is strict, so the
// classification is consistent between adjacent edges rather than dependent
// on incidental float behaviour.
func (q Quadrilateral) Contains(p Point) bool {
	edges := q.Edges()

	inside := false

	for _, edge := range edges {
		a := edge.Start
		b := edge.End

		// point resting on a horizontal edge counts as inside
		if a.Y == b.Y && a.Y == p.Y &&
			p.X >= minInt(a.X, b.X) && p.X <= maxInt(a.X, b.X) {
			return true
		}

		// only edges whose y span straddles the point's y toggle parity,
		// half-open so a shared vertex is counted once
		if (a.Y <= p.Y && p.Y < b.Y) || (b.Y <= p.Y && p.Y < a.Y) {

			// x coordinate of the edge at the point's y
			crossX := float64(a.X) +
				float64(b.X-a.X)*float64(p.Y-a.Y)/float64(b.Y-a.Y)

			if float64(p.X) < crossX {
				inside = !inside
			}
		}
	}

	return inside
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
