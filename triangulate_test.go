package wadmesh

import (
	"math"
	"slices"
	"testing"
)

var (
	unitSquare = []Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	lShape     = []Point{{0, 0}, {2, 0}, {2, 1}, {1, 1}, {1, 2}, {0, 2}}
)

func reversed(poly []Point) []Point {
	r := slices.Clone(poly)
	slices.Reverse(r)
	return r
}

// triangleArea returns the signed area of a triangle of poly.
func triangleArea(poly []Point, t Triangle) float64 {
	return cross(poly[t[0]], poly[t[1]], poly[t[2]]) / 2
}

func TestSignedArea(t *testing.T) {
	tests := []struct {
		name string
		poly []Point
		want float64
	}{
		{"ccw square", unitSquare, 1},
		{"cw square", reversed(unitSquare), -1},
		{"ccw L", lShape, 3},
		{"cw L", reversed(lShape), -3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SignedArea(tt.poly); got != tt.want {
				t.Errorf("SignedArea = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsConvex(t *testing.T) {
	tests := []struct {
		name string
		poly []Point
		want bool
	}{
		{"square", unitSquare, true},
		{"cw square", reversed(unitSquare), true},
		{"square with collinear point", []Point{{0, 0}, {1, 0}, {2, 0}, {2, 2}, {0, 2}}, true},
		{"L", lShape, false},
		{"cw L", reversed(lShape), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsConvex(tt.poly); got != tt.want {
				t.Errorf("IsConvex = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTriangulate(t *testing.T) {
	tests := []struct {
		name string
		poly []Point
	}{
		{"ccw square", unitSquare},
		{"cw square", reversed(unitSquare)},
		{"ccw L", lShape},
		{"cw L", reversed(lShape)},
		{"comb", []Point{{0, 0}, {5, 0}, {5, 3}, {4, 3}, {4, 1}, {3, 1}, {3, 3}, {2, 3}, {2, 1}, {1, 1}, {1, 3}, {0, 3}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tris := Triangulate(tt.poly)
			if len(tris) != len(tt.poly)-2 {
				t.Fatalf("got %d triangles, want %d", len(tris), len(tt.poly)-2)
			}

			area := SignedArea(tt.poly)
			var sum float64
			for _, tri := range tris {
				a := triangleArea(tt.poly, tri)
				if math.Signbit(a) != math.Signbit(area) || a == 0 {
					t.Errorf("triangle %v has area %v, polygon %v", tri, a, area)
				}
				sum += a
				for j, p := range tt.poly {
					if j == tri[0] || j == tri[1] || j == tri[2] {
						continue
					}
					if strictlyInside(p, tt.poly[tri[0]], tt.poly[tri[1]], tt.poly[tri[2]]) {
						t.Errorf("triangle %v contains point %v", tri, p)
					}
				}
			}
			if math.Abs(sum-area) > 1e-9 {
				t.Errorf("triangle areas sum to %v, want %v", sum, area)
			}
		})
	}
}

// strictlyInside reports whether p lies in the interior of triangle abc of either winding.
func strictlyInside(p, a, b, c Point) bool {
	d1, d2, d3 := cross(a, b, p), cross(b, c, p), cross(c, a, p)
	return (d1 > 0 && d2 > 0 && d3 > 0) || (d1 < 0 && d2 < 0 && d3 < 0)
}

func TestTriangulate_LShape(t *testing.T) {
	want := []Triangle{{0, 1, 2}, {0, 2, 3}, {0, 3, 4}, {0, 4, 5}}
	if got := Triangulate(lShape); !slices.Equal(got, want) {
		t.Errorf("Triangulate = %v, want %v", got, want)
	}
}

func TestTriangulate_TooFewPoints(t *testing.T) {
	for _, poly := range [][]Point{nil, {{0, 0}}, {{0, 0}, {1, 1}}} {
		if got := Triangulate(poly); got != nil {
			t.Errorf("Triangulate(%v) = %v, want nil", poly, got)
		}
	}
}

func TestEarClip_GivesUpOnWrongWinding(t *testing.T) {
	// Treating a counter-clockwise L as clockwise leaves no ears once the reflex corner is gone
	tris, ok := earClip(lShape, false)
	if ok || tris != nil {
		t.Errorf("earClip = %v, %v; want failure", tris, ok)
	}
	if fan := fanTriangles(len(lShape)); len(fan) != 4 {
		t.Errorf("fan has %d triangles, want 4", len(fan))
	}
}

func TestPointInTriangle(t *testing.T) {
	a, b, c := Point{0, 0}, Point{4, 0}, Point{0, 4}
	tests := []struct {
		p    Point
		want bool
	}{
		{Point{1, 1}, true},
		{Point{2, 2}, true}, // on the hypotenuse
		{Point{0, 2}, true}, // on a leg
		{Point{3, 3}, false},
		{Point{-1, 0}, false},
	}
	for _, tt := range tests {
		if got := pointInTriangle(tt.p, a, b, c); got != tt.want {
			t.Errorf("pointInTriangle(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestFlipWinding(t *testing.T) {
	tris := []Triangle{{0, 1, 2}, {0, 2, 3}}
	got := FlipWinding(tris)
	want := []Triangle{{0, 2, 1}, {0, 3, 2}}
	if !slices.Equal(got, want) {
		t.Errorf("FlipWinding = %v, want %v", got, want)
	}
	if tris[0] != (Triangle{0, 1, 2}) {
		t.Error("FlipWinding modified its input")
	}
}
