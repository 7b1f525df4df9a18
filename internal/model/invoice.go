package model

import "time"

type ReminderMethod string

const (
	ReminderInApp    ReminderMethod = "IN_APP"
	ReminderWhatsApp ReminderMethod = "WHATSAPP"
)

// InvoiceItem is a single line within an invoice. Total is derived by the
// billing calculator and stored with full float precision; display rounding
// happens at the presentation edge only.
type InvoiceItem struct {
	// ProductID is "new" for ad-hoc items that have no catalog entry.
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	HSN       string  `json:"hsn"`
	Quantity  int     `json:"quantity"`
	Rate      float64 `json:"rate"`
	Discount  float64 `json:"discount"`
	SGST      float64 `json:"sgst"`
	CGST      float64 `json:"cgst"`
	Total     float64 `json:"total"`
}

// ReminderHistory is an append-only record of a payment reminder sent for
// an invoice.
type ReminderHistory struct {
	ID      string         `json:"id"`
	Date    time.Time      `json:"date"`
	Message string         `json:"message"`
	Method  ReminderMethod `json:"method"`
}

// Invoice is created once by the billing workflow. After creation only
// IsPaid, DueDate and Reminders may change; items and totals are frozen.
type Invoice struct {
	ID            string            `json:"id"`
	CustomerName  string            `json:"customerName"`
	CustomerPhone string            `json:"customerPhone"`
	Date          time.Time         `json:"date"`
	Items         []InvoiceItem     `json:"items"`
	SubTotal      float64           `json:"subTotal"`
	TaxTotal      float64           `json:"taxTotal"`
	GrandTotal    float64           `json:"grandTotal"`
	IsPaid        bool              `json:"isPaid"`
	DueDate       *time.Time        `json:"dueDate,omitempty"`
	Reminders     []ReminderHistory `json:"reminders,omitempty"`
}

// IsOverdue reports whether an unpaid invoice has passed its due date.
func (inv Invoice) IsOverdue(now time.Time) bool {
	return !inv.IsPaid && inv.DueDate != nil && inv.DueDate.Before(now)
}
