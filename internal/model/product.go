package model

type Product struct {
	ID                string  `json:"id"`
	Name              string  `json:"name" validate:"required"`
	HSN               string  `json:"hsn"`
	Stock             int     `json:"stock"`
	Rate              float64 `json:"rate" validate:"gte=0"`
	LowStockThreshold int     `json:"lowStockThreshold"`
	Category          string  `json:"category"`
}

// IsLowStock reports whether the product sits at or below its configured
// reorder threshold.
func (p Product) IsLowStock() bool {
	return p.Stock <= p.LowStockThreshold
}
