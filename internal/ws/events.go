package ws

import "github.com/choudharyanish1236-cloud/retail-task-manager/internal/model"

// Typed event payloads so services do not hand-assemble maps at every call
// site. The "type" field is what clients switch on.

type StockUpdateEvent struct {
	Type     string `json:"type"`
	Action   string `json:"action"`
	Product  string `json:"product"`
	OldStock int    `json:"oldStock"`
	NewStock int    `json:"newStock"`
	Message  string `json:"message"`
}

func NewStockUpdate(action string, p model.Product, oldStock int, message string) StockUpdateEvent {
	return StockUpdateEvent{
		Type:     "stock_update",
		Action:   action,
		Product:  p.Name,
		OldStock: oldStock,
		NewStock: p.Stock,
		Message:  message,
	}
}

type LowStockAlertEvent struct {
	Type     string          `json:"type"`
	Products []model.Product `json:"products"`
}

func NewLowStockAlert(products []model.Product) LowStockAlertEvent {
	return LowStockAlertEvent{Type: "low_stock_alert", Products: products}
}

type InvoiceCreatedEvent struct {
	Type         string  `json:"type"`
	InvoiceID    string  `json:"invoiceId"`
	CustomerName string  `json:"customerName"`
	GrandTotal   float64 `json:"grandTotal"`
	IsPaid       bool    `json:"isPaid"`
}

func NewInvoiceCreated(inv model.Invoice) InvoiceCreatedEvent {
	return InvoiceCreatedEvent{
		Type:         "invoice_created",
		InvoiceID:    inv.ID,
		CustomerName: inv.CustomerName,
		GrandTotal:   inv.GrandTotal,
		IsPaid:       inv.IsPaid,
	}
}

type ReminderEvent struct {
	Type      string `json:"type"`
	InvoiceID string `json:"invoiceId"`
	Message   string `json:"message"`
}

func NewInAppReminder(invoiceID, message string) ReminderEvent {
	return ReminderEvent{Type: "in_app_reminder", InvoiceID: invoiceID, Message: message}
}
