// Package extractor finds polygon coordinates embedded in email text and turns them into CSV fields.
package extractor

import (
	"regexp"
	"strings"

	"coordinate-extractor/internal/models"
)

// polygonPattern matches the first POLYGON((...)) marker. The content may span lines.
var polygonPattern = regexp.MustCompile(`(?s)POLYGON\s*\(\((.*?)\)\)`)

var newlines = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// ExtractPolygon returns the text between the parentheses of the first POLYGON((...))
// marker in value. The second result is false when value is not a string or has no marker.
func ExtractPolygon(value any) (string, bool) {
	text, ok := value.(string)
	if !ok {
		return "", false
	}

	match := polygonPattern.FindStringSubmatch(text)
	if match == nil {
		return "", false
	}

	return match[1], true
}

// Normalize strips quote characters and replaces every newline with a single space.
func Normalize(coordinates string) string {
	return newlines.Replace(strings.ReplaceAll(coordinates, `"`, ""))
}

// Split cuts normalized coordinates on ", " and trims each field.
func Split(coordinates string) models.CoordinateRow {
	fields := strings.Split(coordinates, ", ")
	row := make(models.CoordinateRow, len(fields))
	for i, f := range fields {
		row[i] = strings.TrimSpace(f)
	}
	return row
}

// Row runs extraction, normalization and splitting on one cell value.
func Row(value any) (models.CoordinateRow, bool) {
	coordinates, ok := ExtractPolygon(value)
	if !ok {
		return nil, false
	}
	return Split(Normalize(coordinates)), true
}
