package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Point is a vertex of a polygon ring, X is the longitude and Y the latitude.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Polygon is a closed ring of points parsed from one coordinate row of the output file.
type Polygon struct {
	ID        int64   `json:"id"`
	SourceRow int     `json:"source_row"`
	Ring      string  `json:"ring"`
	Points    []Point `json:"points"`
}

// ParsePoint parses an "x y" field.
func ParsePoint(field string) (Point, error) {
	parts := strings.Fields(field)
	if len(parts) != 2 {
		return Point{}, fmt.Errorf("models: invalid point %q: expected two values", field)
	}

	x, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return Point{}, fmt.Errorf("models: invalid x in point %q: %w", field, err)
	}
	y, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return Point{}, fmt.Errorf("models: invalid y in point %q: %w", field, err)
	}

	return Point{X: x, Y: y}, nil
}

// ParseRing parses a ring in the "x y, x y, ..." form stored in Polygon.Ring.
func ParseRing(ring string) ([]Point, error) {
	var points []Point
	for _, field := range strings.Split(ring, ", ") {
		p, err := ParsePoint(field)
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, nil
}

// NewPolygon builds a polygon from a coordinate row. The ring is closed when the last
// point differs from the first, and it needs at least three points besides the closing one.
func NewPolygon(sourceRow int, row CoordinateRow) (Polygon, error) {
	points := make([]Point, 0, len(row)+1)
	for _, field := range row {
		if field == "" {
			continue
		}
		p, err := ParsePoint(field)
		if err != nil {
			return Polygon{}, err
		}
		points = append(points, p)
	}

	if len(points) > 0 && points[0] != points[len(points)-1] {
		points = append(points, points[0])
	}
	if len(points) < 4 {
		return Polygon{}, fmt.Errorf("models: polygon in row %d has %d points, need at least 3", sourceRow, max(len(points)-1, 0))
	}

	fields := make([]string, len(points))
	for i, p := range points {
		fields[i] = formatPoint(p)
	}

	return Polygon{
		SourceRow: sourceRow,
		Ring:      strings.Join(fields, ", "),
		Points:    points,
	}, nil
}

// WKT returns the polygon as well-known text.
func (p Polygon) WKT() string {
	return "POLYGON((" + p.Ring + "))"
}

func formatPoint(p Point) string {
	return strconv.FormatFloat(p.X, 'f', -1, 64) + " " + strconv.FormatFloat(p.Y, 'f', -1, 64)
}
