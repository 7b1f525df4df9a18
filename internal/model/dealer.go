package model

// Dealer is part of the persisted data model but no workflow writes to it
// yet; the dealers section of the dashboard is still under development.
type Dealer struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Phone         string  `json:"phone"`
	TotalBilled   float64 `json:"totalBilled"`
	AmountPaid    float64 `json:"amountPaid"`
	PendingAmount float64 `json:"pendingAmount"`
}
