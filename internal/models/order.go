package models

// Order is one product line of the orders workbook.
type Order struct {
	ID      int
	Product string
	Total   float64
}
