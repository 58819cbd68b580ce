package wadmesh

import "math"

// Point is an exact map coordinate. Vertex records are small integers, so points compare
// exactly and can key maps.
type Point struct {
	X, Y int
}

func (v Vertex) Point() Point {
	return Point{int(v.X), int(v.Y)}
}

func (p Point) sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Segment is an undirected boundary edge.
type Segment [2]Point

// adjacency maps each coordinate to its distinct neighbors, in insertion order.
type adjacency map[Point][]Point

func (a adjacency) link(p, q Point) {
	for _, n := range a[p] {
		if n == q {
			return
		}
	}
	a[p] = append(a[p], q)
}

func buildAdjacency(segments []Segment) adjacency {
	adj := make(adjacency)
	for _, s := range segments {
		if s[0] == s[1] {
			continue
		}
		adj.link(s[0], s[1])
		adj.link(s[1], s[0])
	}
	return adj
}

// startPoint is the coordinate with the smallest x, ties broken by the smallest y.
func (a adjacency) startPoint() Point {
	first := true
	var start Point
	for p := range a {
		if first || p.X < start.X || (p.X == start.X && p.Y < start.Y) {
			start, first = p, false
		}
	}
	return start
}

// clockwiseTurn is the signed angle from direction in to direction out, positive clockwise.
func clockwiseTurn(in, out Point) float64 {
	cross := float64(in.X)*float64(out.Y) - float64(in.Y)*float64(out.X)
	dot := float64(in.X)*float64(out.X) + float64(in.Y)*float64(out.Y)
	return math.Atan2(-cross, dot)
}

// OrderBoundary orders unordered boundary segments into one closed loop. The walk starts at
// the lowest-leftmost coordinate and at every point takes the sharpest clockwise turn among
// neighbors not yet visited. It stops on returning to the start, at a dead end, or once it
// has emitted as many points as the graph has nodes. Fewer than three points yields nil.
//
// This is face tracing for simple boundaries only; coordinates with more than two neighbors
// give a best-effort loop.
func OrderBoundary(segments []Segment) []Point {
	adj := buildAdjacency(segments)
	if len(adj) < 3 {
		return nil
	}

	start := adj.startPoint()
	points := []Point{start}
	visited := map[Point]bool{start: true}
	cur, prev, hasPrev := start, start, false
	in := Point{0, 1} // as if arriving heading +y

	for len(points) < len(adj) {
		var next Point
		found := false
		bestTurn := math.Inf(-1)
		for _, n := range adj[cur] {
			if hasPrev && n == prev {
				continue
			}
			if visited[n] && (n != start || len(points) < 3) {
				continue
			}
			if turn := clockwiseTurn(in, n.sub(cur)); !found || turn > bestTurn {
				next, bestTurn, found = n, turn, true
			}
		}
		if !found || next == start {
			break
		}
		points = append(points, next)
		visited[next] = true
		in = next.sub(cur)
		prev, cur, hasPrev = cur, next, true
	}

	if len(points) < 3 {
		return nil
	}
	return points
}

// SectorSegments returns the boundary segments of the given lines, skipping lines with
// out-of-range vertexes. Coordinates, not vertex indices, identify endpoints.
func (l *Level) SectorSegments(lines []int) []Segment {
	segments := make([]Segment, 0, len(lines))
	for _, i := range lines {
		v1, v2, ok := l.LineVertexes(&l.Lines[i])
		if !ok {
			logger.Printf("Line %v: vertex out of range", i)
			continue
		}
		segments = append(segments, Segment{v1.Point(), v2.Point()})
	}
	return segments
}
