package models

import "math"

// MenuItem is one pizza on the menu. Price is in dollars.
type MenuItem struct {
	Code  int     `json:"code"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Cents converts Price to the smallest currency unit.
func (m MenuItem) Cents() int64 {
	return int64(math.Round(m.Price * 100))
}
