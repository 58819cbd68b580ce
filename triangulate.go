package wadmesh

// collinearEpsilon is the cross product magnitude below which three points count as collinear.
const collinearEpsilon = 1e-9

// Triangle holds three indices into a polygon's points.
type Triangle [3]int

// SignedArea returns the shoelace area of a closed polygon: positive for counter-clockwise
// order, negative for clockwise.
func SignedArea(poly []Point) float64 {
	var sum float64
	for i, p := range poly {
		q := poly[(i+1)%len(poly)]
		sum += float64(p.X)*float64(q.Y) - float64(q.X)*float64(p.Y)
	}
	return sum / 2
}

// cross returns the z component of (a-o) x (b-o).
func cross(o, a, b Point) float64 {
	return float64(a.X-o.X)*float64(b.Y-o.Y) - float64(a.Y-o.Y)*float64(b.X-o.X)
}

// IsConvex reports whether every turn of the polygon has the same direction. Near-collinear
// triples are ignored.
func IsConvex(poly []Point) bool {
	n := len(poly)
	sign := 0
	for i := range poly {
		c := cross(poly[i], poly[(i+1)%n], poly[(i+2)%n])
		if abs(c) < collinearEpsilon {
			continue
		}
		s := 1
		if c < 0 {
			s = -1
		}
		if sign == 0 {
			sign = s
		} else if s != sign {
			return false
		}
	}
	return true
}

// Triangulate splits a simple polygon into len(poly)-2 triangles that keep the polygon's
// winding. Convex polygons are fanned from the first point; others are ear-clipped, and if
// clipping gets stuck on malformed input the result falls back to a fan.
func Triangulate(poly []Point) []Triangle {
	if len(poly) < 3 {
		return nil
	}
	if IsConvex(poly) {
		return fanTriangles(len(poly))
	}
	if tris, ok := earClip(poly, SignedArea(poly) > 0); ok {
		return tris
	}
	logger.Printf("Ear clipping stuck on %v points, using fan", len(poly))
	return fanTriangles(len(poly))
}

// fanTriangles anchors every triangle at point 0. For N points, generates N-2 triangles.
func fanTriangles(n int) []Triangle {
	tris := make([]Triangle, 0, n-2)
	for i := 1; i < n-1; i++ {
		tris = append(tris, Triangle{0, i, i + 1})
	}
	return tris
}

// earClip repeatedly removes an ear: a vertex whose corner turns the same way as the polygon
// and whose triangle holds no other remaining vertex. ok is false if 2*n consecutive
// candidates since the last clip were not ears.
func earClip(poly []Point, ccw bool) (tris []Triangle, ok bool) {
	idx := make([]int, len(poly))
	for i := range idx {
		idx[i] = i
	}
	tris = make([]Triangle, 0, len(poly)-2)

	i, misses := 0, 0
	for len(idx) > 3 {
		m := len(idx)
		if misses >= 2*m {
			return nil, false
		}
		prev, cur, next := idx[(i+m-1)%m], idx[i], idx[(i+1)%m]
		if !isEar(poly, idx, prev, cur, next, ccw) {
			misses++
			i = (i + 1) % m
			continue
		}
		tris = append(tris, Triangle{prev, cur, next})
		idx = append(idx[:i], idx[i+1:]...)
		misses = 0
		if i >= len(idx) {
			i = 0
		}
	}
	return append(tris, Triangle{idx[0], idx[1], idx[2]}), true
}

func isEar(poly []Point, idx []int, prev, cur, next int, ccw bool) bool {
	a, b, c := poly[prev], poly[cur], poly[next]
	turn := cross(a, b, c)
	if ccw && turn <= collinearEpsilon || !ccw && turn >= -collinearEpsilon {
		return false
	}
	for _, j := range idx {
		if j == prev || j == cur || j == next {
			continue
		}
		p := poly[j]
		if p == a || p == b || p == c {
			continue
		}
		if pointInTriangle(p, a, b, c) {
			return false
		}
	}
	return true
}

// pointInTriangle tests p against triangle abc with barycentric coordinates. Points on an
// edge count as inside.
func pointInTriangle(p, a, b, c Point) bool {
	v0, v1, v2 := c.sub(a), b.sub(a), p.sub(a)
	dot00 := float64(v0.X*v0.X + v0.Y*v0.Y)
	dot01 := float64(v0.X*v1.X + v0.Y*v1.Y)
	dot02 := float64(v0.X*v2.X + v0.Y*v2.Y)
	dot11 := float64(v1.X*v1.X + v1.Y*v1.Y)
	dot12 := float64(v1.X*v2.X + v1.Y*v2.Y)
	denom := dot00*dot11 - dot01*dot01
	if abs(denom) < collinearEpsilon {
		return false
	}
	u := (dot11*dot02 - dot01*dot12) / denom
	v := (dot00*dot12 - dot01*dot02) / denom
	return u >= -collinearEpsilon && v >= -collinearEpsilon && u+v <= 1+collinearEpsilon
}

// FlipWinding swaps the second and third index of every triangle, reversing its facing.
func FlipWinding(tris []Triangle) []Triangle {
	flipped := make([]Triangle, len(tris))
	for i, t := range tris {
		flipped[i] = Triangle{t[0], t[2], t[1]}
	}
	return flipped
}
