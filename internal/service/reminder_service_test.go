package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/choudharyanish1236-cloud/retail-task-manager/internal/model"
	"github.com/choudharyanish1236-cloud/retail-task-manager/internal/notify"
	"github.com/choudharyanish1236-cloud/retail-task-manager/internal/store"

	"github.com/rs/zerolog"
)

type sentMessage struct {
	Phone   string
	Message string
}

// recordingMessenger captures sends on a channel so tests can wait for the
// fire-and-forget goroutine.
type recordingMessenger struct {
	sent chan sentMessage
}

func newRecordingMessenger() *recordingMessenger {
	return &recordingMessenger{sent: make(chan sentMessage, 4)}
}

func (m *recordingMessenger) Send(_ context.Context, phone, message string) error {
	m.sent <- sentMessage{Phone: phone, Message: message}
	return nil
}

func newReminderTestStore(t *testing.T, invoices []model.Invoice) *store.Store {
	t.Helper()
	kv := store.NewMemoryKV()
	data, err := json.Marshal(invoices)
	if err != nil {
		t.Fatalf("marshal invoices: %v", err)
	}
	if err := kv.Save(store.KeyInvoices, data); err != nil {
		t.Fatalf("save invoices: %v", err)
	}
	if err := kv.Save(store.KeyProducts, []byte("[]")); err != nil {
		t.Fatalf("save products: %v", err)
	}
	st := store.New(kv)
	if err := st.Open(); err != nil {
		t.Fatalf("open store: %v", err)
	}
	return st
}

func pendingInvoice() model.Invoice {
	due := time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)
	return model.Invoice{
		ID:            "INV-2001",
		CustomerName:  "Rahul Sharma",
		CustomerPhone: "9876543210",
		Date:          due.Add(-7 * 24 * time.Hour),
		DueDate:       &due,
		GrandTotal:    590,
		SubTotal:      500,
		TaxTotal:      90,
		IsPaid:        false,
	}
}

func newTestReminder(st *store.Store, messenger notify.Messenger, now time.Time) *reminderService {
	if messenger == nil {
		messenger = notify.Disabled{}
	}
	return &reminderService{
		store:     st,
		messenger: messenger,
		log:       zerolog.Nop(),
		now:       func() time.Time { return now },
	}
}

func TestSendReminder_GeneratedTemplate(t *testing.T) {
	st := newReminderTestStore(t, []model.Invoice{pendingInvoice()})
	svc := newTestReminder(st, nil, time.Now())

	reminder, err := svc.SendReminder("INV-2001", "", model.ReminderInApp)
	if err != nil {
		t.Fatalf("SendReminder: %v", err)
	}
	if reminder == nil {
		t.Fatal("SendReminder returned nil for existing invoice")
	}

	if !strings.Contains(reminder.Message, "Rahul Sharma") {
		t.Errorf("template message missing customer name: %q", reminder.Message)
	}
	if !strings.Contains(reminder.Message, "₹590.00") {
		t.Errorf("template message missing formatted amount: %q", reminder.Message)
	}
	if reminder.Method != model.ReminderInApp {
		t.Errorf("method = %s, want IN_APP", reminder.Method)
	}
}

func TestSendReminder_CustomMessageWins(t *testing.T) {
	st := newReminderTestStore(t, []model.Invoice{pendingInvoice()})
	svc := newTestReminder(st, nil, time.Now())

	reminder, err := svc.SendReminder("INV-2001", "Please clear dues by Friday.", model.ReminderInApp)
	if err != nil {
		t.Fatalf("SendReminder: %v", err)
	}
	if reminder.Message != "Please clear dues by Friday." {
		t.Errorf("message = %q, want the custom text", reminder.Message)
	}
}

func TestSendReminder_AppendsToHistoryInOrder(t *testing.T) {
	st := newReminderTestStore(t, []model.Invoice{pendingInvoice()})
	svc := newTestReminder(st, nil, time.Now())

	first, _ := svc.SendReminder("INV-2001", "first", model.ReminderInApp)
	second, _ := svc.SendReminder("INV-2001", "second", model.ReminderInApp)

	invoices := st.Invoices()
	reminders := invoices[0].Reminders
	if len(reminders) != 2 {
		t.Fatalf("reminders = %d, want 2", len(reminders))
	}
	if reminders[0].ID != first.ID || reminders[1].ID != second.ID {
		t.Errorf("reminder order wrong: %+v", reminders)
	}
}

func TestSendReminder_WhatsAppHandsOffMessage(t *testing.T) {
	st := newReminderTestStore(t, []model.Invoice{pendingInvoice()})
	messenger := newRecordingMessenger()
	svc := newTestReminder(st, messenger, time.Now())

	if _, err := svc.SendReminder("INV-2001", "", model.ReminderWhatsApp); err != nil {
		t.Fatalf("SendReminder: %v", err)
	}

	select {
	case sent := <-messenger.sent:
		if sent.Phone != "9876543210" {
			t.Errorf("phone = %q, want customer's number", sent.Phone)
		}
		if !strings.Contains(sent.Message, "Rahul Sharma") {
			t.Errorf("delivered message = %q, want template", sent.Message)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("message never handed to messenger")
	}
}

func TestSendReminder_UnknownInvoiceIsSilentNoOp(t *testing.T) {
	st := newReminderTestStore(t, []model.Invoice{pendingInvoice()})
	svc := newTestReminder(st, nil, time.Now())

	reminder, err := svc.SendReminder("INV-9999", "", model.ReminderInApp)
	if err != nil {
		t.Fatalf("SendReminder: %v", err)
	}
	if reminder != nil {
		t.Errorf("reminder = %+v, want nil for unknown invoice", reminder)
	}
}

func TestSendReminder_NeverMarksPaid(t *testing.T) {
	st := newReminderTestStore(t, []model.Invoice{pendingInvoice()})
	svc := newTestReminder(st, nil, time.Now())

	if _, err := svc.SendReminder("INV-2001", "", model.ReminderInApp); err != nil {
		t.Fatalf("SendReminder: %v", err)
	}
	if st.Invoices()[0].IsPaid {
		t.Error("reminder flipped isPaid")
	}
}

func TestMarkPaid(t *testing.T) {
	st := newReminderTestStore(t, []model.Invoice{pendingInvoice()})
	svc := newTestReminder(st, nil, time.Now())

	inv, err := svc.MarkPaid("INV-2001")
	if err != nil {
		t.Fatalf("MarkPaid: %v", err)
	}
	if inv == nil || !inv.IsPaid {
		t.Fatalf("invoice not settled: %+v", inv)
	}

	// Settling later never writes a ledger entry retroactively.
	if n := len(st.Transactions()); n != 0 {
		t.Errorf("transactions = %d, want 0 after MarkPaid", n)
	}

	if pending := svc.PendingInvoices(); len(pending) != 0 {
		t.Errorf("pending = %d, want 0", len(pending))
	}
}

func TestPendingInvoices(t *testing.T) {
	paid := pendingInvoice()
	paid.ID = "INV-2002"
	paid.IsPaid = true

	st := newReminderTestStore(t, []model.Invoice{pendingInvoice(), paid})
	svc := newTestReminder(st, nil, time.Now())

	pending := svc.PendingInvoices()
	if len(pending) != 1 || pending[0].ID != "INV-2001" {
		t.Errorf("pending = %+v, want only INV-2001", pending)
	}
}
