package service

import (
	"context"
	"fmt"
	"time"

	"github.com/choudharyanish1236-cloud/retail-task-manager/internal/ai"
	"github.com/choudharyanish1236-cloud/retail-task-manager/internal/model"
	"github.com/choudharyanish1236-cloud/retail-task-manager/internal/store"
	"github.com/choudharyanish1236-cloud/retail-task-manager/internal/ws"
	"github.com/choudharyanish1236-cloud/retail-task-manager/pkg/logger"

	"github.com/rs/zerolog"
)

// Unpaid invoices with no explicit due date fall due a week after creation.
const defaultDueAfter = 7 * 24 * time.Hour

// ItemTotal computes a line total from quantity, rate, discount percentage
// and the two GST components. The discount applies to the base amount and
// tax applies to the discounted amount, in exactly this order; callers that
// compare stored totals depend on the float result of this exact sequence.
func ItemTotal(quantity int, rate, discount, sgst, cgst float64) float64 {
	base := float64(quantity) * rate
	discounted := base - (base * (discount / 100))
	tax := discounted * ((sgst + cgst) / 100)
	return discounted + tax
}

// AggregateTotals sums item totals into the invoice-level figures. TaxTotal
// is not summed from tax components: it is the residual grandTotal minus
// subTotal, which nets out per-item discounts.
func AggregateTotals(items []model.InvoiceItem) (subTotal, taxTotal, grandTotal float64) {
	for _, item := range items {
		subTotal += float64(item.Quantity) * item.Rate
		grandTotal += item.Total
	}
	taxTotal = grandTotal - subTotal
	return subTotal, taxTotal, grandTotal
}

// ItemDraft is one requested line before totals are computed.
type ItemDraft struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name" validate:"required"`
	HSN       string  `json:"hsn"`
	Quantity  int     `json:"quantity" validate:"gt=0"`
	Rate      float64 `json:"rate" validate:"gte=0"`
	Discount  float64 `json:"discount" validate:"gte=0,lte=100"`
	SGST      float64 `json:"sgst" validate:"gte=0"`
	CGST      float64 `json:"cgst" validate:"gte=0"`
}

// InvoiceDraft is the billing submission. Quotation drafts have their tax
// components zeroed and are never paid.
type InvoiceDraft struct {
	CustomerName  string      `json:"customerName" validate:"required"`
	CustomerPhone string      `json:"customerPhone"`
	Items         []ItemDraft `json:"items" validate:"min=1,dive"`
	IsPaid        bool        `json:"isPaid"`
	DueDate       *time.Time  `json:"dueDate"`
	Quotation     bool        `json:"quotation"`
}

type BillingService interface {
	// CreateInvoice commits a draft: totals are computed, the due date is
	// defaulted, stock is decremented for catalog items, and a CASH income
	// transaction is recorded iff the invoice is paid at creation. A draft
	// with no customer name or no items is a silent no-op returning nil.
	CreateInvoice(draft *InvoiceDraft) (*model.Invoice, error)
	ListInvoices() []model.Invoice
	Suggest(ctx context.Context, query string) []ai.Suggestion
}

type billingService struct {
	store     *store.Store
	assistant ai.Assistant
	hub       *ws.Hub
	log       zerolog.Logger
	now       func() time.Time
}

func NewBillingService(st *store.Store, assistant ai.Assistant, hub *ws.Hub) BillingService {
	return &billingService{
		store:     st,
		assistant: assistant,
		hub:       hub,
		log:       logger.WithComponent("billing"),
		now:       time.Now,
	}
}

func (s *billingService) CreateInvoice(draft *InvoiceDraft) (*model.Invoice, error) {
	// Preconditions are enforced by the caller before submission; the
	// workflow itself stays a silent no-op on an unusable draft.
	if draft == nil || draft.CustomerName == "" || len(draft.Items) == 0 {
		return nil, nil
	}

	now := s.now()

	items := make([]model.InvoiceItem, 0, len(draft.Items))
	for _, d := range draft.Items {
		item := model.InvoiceItem{
			ProductID: d.ProductID,
			Name:      d.Name,
			HSN:       d.HSN,
			Quantity:  d.Quantity,
			Rate:      d.Rate,
			Discount:  d.Discount,
			SGST:      d.SGST,
			CGST:      d.CGST,
		}
		if item.ProductID == "" {
			item.ProductID = "new"
		}
		if draft.Quotation {
			item.SGST = 0
			item.CGST = 0
		}
		item.Total = ItemTotal(item.Quantity, item.Rate, item.Discount, item.SGST, item.CGST)
		items = append(items, item)
	}

	subTotal, taxTotal, grandTotal := AggregateTotals(items)

	inv := model.Invoice{
		ID:            model.NewInvoiceID(),
		CustomerName:  draft.CustomerName,
		CustomerPhone: draft.CustomerPhone,
		Date:          now,
		Items:         items,
		SubTotal:      subTotal,
		TaxTotal:      taxTotal,
		GrandTotal:    grandTotal,
		IsPaid:        draft.IsPaid && !draft.Quotation,
		DueDate:       draft.DueDate,
		Reminders:     []model.ReminderHistory{},
	}

	if !inv.IsPaid && inv.DueDate == nil {
		due := now.Add(defaultDueAfter)
		inv.DueDate = &due
	}

	var tx *model.Transaction
	if inv.IsPaid {
		tx = &model.Transaction{
			ID:          model.NewTransactionID(),
			Date:        now,
			Type:        model.TxCash,
			Direction:   model.TxIncome,
			Amount:      inv.GrandTotal,
			Description: fmt.Sprintf("Invoice %s", inv.ID),
			ReferenceID: inv.ID,
		}
	}

	if err := s.store.CommitInvoice(inv, tx); err != nil {
		return nil, fmt.Errorf("commit invoice: %w", err)
	}

	s.log.Info().
		Str("invoice_id", inv.ID).
		Str("customer", inv.CustomerName).
		Float64("grand_total", inv.GrandTotal).
		Bool("paid", inv.IsPaid).
		Bool("quotation", draft.Quotation).
		Msg("Invoice committed")

	s.hub.BroadcastJSON(ws.NewInvoiceCreated(inv))
	return &inv, nil
}

func (s *billingService) ListInvoices() []model.Invoice {
	return s.store.Invoices()
}

// Suggest forwards a catalog search to the AI collaborator. Failures have
// already been absorbed at that boundary, so the result is at worst empty.
func (s *billingService) Suggest(ctx context.Context, query string) []ai.Suggestion {
	return s.assistant.Suggest(ctx, query)
}
