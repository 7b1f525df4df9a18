package service

import (
	"context"
	"fmt"
	"time"

	"github.com/choudharyanish1236-cloud/retail-task-manager/internal/model"
	"github.com/choudharyanish1236-cloud/retail-task-manager/internal/notify"
	"github.com/choudharyanish1236-cloud/retail-task-manager/internal/store"
	"github.com/choudharyanish1236-cloud/retail-task-manager/internal/ws"
	"github.com/choudharyanish1236-cloud/retail-task-manager/pkg/logger"

	"github.com/rs/zerolog"
)

type ReminderService interface {
	// SendReminder appends a reminder to the invoice's history and hands
	// the message to the delivery channel. An empty custom message falls
	// back to the generated template. An unknown invoice is a silent
	// no-op returning nil, nil.
	SendReminder(invoiceID, customMessage string, method model.ReminderMethod) (*model.ReminderHistory, error)
	// MarkPaid settles an invoice. It is the only path to isPaid=true and
	// never creates a ledger transaction retroactively.
	MarkPaid(invoiceID string) (*model.Invoice, error)
	PendingInvoices() []model.Invoice
}

type reminderService struct {
	store     *store.Store
	messenger notify.Messenger
	hub       *ws.Hub
	log       zerolog.Logger
	now       func() time.Time
}

func NewReminderService(st *store.Store, messenger notify.Messenger, hub *ws.Hub) ReminderService {
	return &reminderService{
		store:     st,
		messenger: messenger,
		hub:       hub,
		log:       logger.WithComponent("reminders"),
		now:       time.Now,
	}
}

func (s *reminderService) SendReminder(invoiceID, customMessage string, method model.ReminderMethod) (*model.ReminderHistory, error) {
	var reminder model.ReminderHistory
	var phone string

	updated, err := s.store.MutateInvoice(invoiceID, func(inv *model.Invoice) {
		message := customMessage
		if message == "" {
			message = fmt.Sprintf(
				"Hi %s, a friendly reminder that your payment of ₹%.2f is due.",
				inv.CustomerName, inv.GrandTotal,
			)
		}
		reminder = model.ReminderHistory{
			ID:      model.NewReminderID(),
			Date:    s.now(),
			Message: message,
			Method:  method,
		}
		inv.Reminders = append(inv.Reminders, reminder)
		phone = inv.CustomerPhone
	})
	if err != nil {
		return nil, fmt.Errorf("send reminder: %w", err)
	}
	if updated == nil {
		return nil, nil
	}

	switch method {
	case model.ReminderWhatsApp:
		// Fire-and-forget: delivery failures are logged, never surfaced.
		go func(phone, message string) {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := s.messenger.Send(ctx, phone, message); err != nil {
				s.log.Warn().Err(err).Str("invoice_id", invoiceID).Msg("WhatsApp delivery failed")
			}
		}(phone, reminder.Message)
	case model.ReminderInApp:
		s.hub.BroadcastJSON(ws.NewInAppReminder(invoiceID, reminder.Message))
	}

	s.log.Info().
		Str("invoice_id", invoiceID).
		Str("method", string(method)).
		Msg("Reminder recorded")
	return &reminder, nil
}

func (s *reminderService) MarkPaid(invoiceID string) (*model.Invoice, error) {
	updated, err := s.store.MutateInvoice(invoiceID, func(inv *model.Invoice) {
		inv.IsPaid = true
	})
	if err != nil {
		return nil, fmt.Errorf("mark paid: %w", err)
	}
	if updated != nil {
		s.log.Info().Str("invoice_id", invoiceID).Msg("Invoice marked paid")
	}
	return updated, nil
}

func (s *reminderService) PendingInvoices() []model.Invoice {
	var pending []model.Invoice
	for _, inv := range s.store.Invoices() {
		if !inv.IsPaid {
			pending = append(pending, inv)
		}
	}
	return pending
}
