package models

// Record is one data row of a worksheet. Values are keyed by the header of their column
// and hold a string for text cells, a float64 for numbers, a bool for booleans and nil for empty cells.
type Record struct {
	Row    int
	Values map[string]any
}

// Sheet is the header row and the data rows of a worksheet.
type Sheet struct {
	Name    string
	Columns []string
	Records []Record
}

// HasColumn reports whether the header row contains name.
func (s *Sheet) HasColumn(name string) bool {
	for _, c := range s.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// CoordinateRow is the ordered list of "x y" fields extracted from one record.
type CoordinateRow []string
