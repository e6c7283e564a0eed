package spec

import "strings"

// Point is one vertex of a polygon or polyline, relative to the owning object.
// A pair that lacks a coordinate is kept with that coordinate at zero and Partial set.
type Point struct {
	X       float64
	Y       float64
	Partial bool
}

// ParsePoints parses "x1,y1 x2,y2 ..." into points, one per whitespace-separated token.
// It returns nil for a string without tokens.
func ParsePoints(s string) []Point {
	tokens := strings.Fields(s)
	if len(tokens) == 0 {
		return nil
	}

	points := make([]Point, 0, len(tokens))
	for _, token := range tokens {
		xStr, yStr, found := strings.Cut(token, ",")
		// anything after a second comma is ignored
		yStr, _, _ = strings.Cut(yStr, ",")

		point := Point{X: ParseFloat(xStr, 0)}
		if found && yStr != "" {
			point.Y = ParseFloat(yStr, 0)
		} else {
			point.Partial = true
		}
		points = append(points, point)
	}
	return points
}
