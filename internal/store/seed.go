package store

import (
	"time"

	"github.com/choudharyanish1236-cloud/retail-task-manager/internal/model"
)

// Fixture data for a fresh store, matching the demo catalog the dashboard
// ships with.

func seedProducts() []model.Product {
	return []model.Product{
		{ID: "1", Name: "Britannia Biscuits", HSN: "1905", Stock: 15, Rate: 20, LowStockThreshold: 20, Category: "FMCG"},
		{ID: "2", Name: "Amul Milk 500ml", HSN: "0401", Stock: 120, Rate: 27, LowStockThreshold: 30, Category: "Dairy"},
		{ID: "3", Name: "Tata Salt 1kg", HSN: "2501", Stock: 8, Rate: 25, LowStockThreshold: 15, Category: "Groceries"},
	}
}

// seedInvoices returns a single pending invoice that is already overdue, so
// the reminders view has something to show on first run.
func seedInvoices(now time.Time) []model.Invoice {
	due := now.Add(-24 * time.Hour)
	return []model.Invoice{
		{
			ID:            "INV-1001",
			CustomerName:  "Rahul Sharma",
			CustomerPhone: "9876543210",
			Date:          now,
			DueDate:       &due,
			Items:         []model.InvoiceItem{},
			SubTotal:      500,
			TaxTotal:      90,
			GrandTotal:    590,
			IsPaid:        false,
			Reminders:     []model.ReminderHistory{},
		},
	}
}
