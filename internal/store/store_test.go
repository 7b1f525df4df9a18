package store

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/choudharyanish1236-cloud/retail-task-manager/internal/model"
)

func openStore(t *testing.T, kv KV) *Store {
	t.Helper()
	st := New(kv)
	if err := st.Open(); err != nil {
		t.Fatalf("open store: %v", err)
	}
	return st
}

func TestOpen_SeedsDefaultsOnFirstRun(t *testing.T) {
	kv := NewMemoryKV()
	st := openStore(t, kv)

	products := st.Products()
	if len(products) != 3 {
		t.Fatalf("seeded products = %d, want 3", len(products))
	}
	if products[1].Name != "Amul Milk 500ml" || products[1].Stock != 120 {
		t.Errorf("unexpected seed catalog: %+v", products)
	}

	invoices := st.Invoices()
	if len(invoices) != 1 || invoices[0].ID != "INV-1001" {
		t.Fatalf("seeded invoices = %+v, want INV-1001", invoices)
	}
	if invoices[0].IsPaid {
		t.Error("seed invoice must be pending")
	}
	if !invoices[0].IsOverdue(time.Now()) {
		t.Error("seed invoice must already be overdue")
	}

	// Transactions are never seeded.
	if n := len(st.Transactions()); n != 0 {
		t.Errorf("transactions = %d, want 0", n)
	}

	// Seeds are mirrored to the KV immediately.
	for _, key := range []string{KeyProducts, KeyInvoices} {
		if _, ok, _ := kv.Load(key); !ok {
			t.Errorf("key %q not persisted after seeding", key)
		}
	}
}

func TestOpen_LoadsExistingCollections(t *testing.T) {
	kv := NewMemoryKV()
	existing := []model.Product{{ID: "x1", Name: "Custom Item", Stock: 7}}
	data, _ := json.Marshal(existing)
	if err := kv.Save(KeyProducts, data); err != nil {
		t.Fatalf("save: %v", err)
	}

	st := openStore(t, kv)
	products := st.Products()
	if len(products) != 1 || products[0].ID != "x1" {
		t.Errorf("products = %+v, want the stored collection, not the seed", products)
	}
}

func TestCommitInvoice_RoundTripsThroughKV(t *testing.T) {
	kv := NewMemoryKV()
	st := openStore(t, kv)

	inv := model.Invoice{
		ID:           "INV-42",
		CustomerName: "Asha Patel",
		Date:         time.Now(),
		Items: []model.InvoiceItem{
			{ProductID: "2", Name: "Amul Milk 500ml", Quantity: 5, Rate: 27, Total: 135},
		},
		SubTotal:   135,
		GrandTotal: 135,
		IsPaid:     true,
	}
	tx := &model.Transaction{
		ID: "TX-42", Type: model.TxCash, Direction: model.TxIncome,
		Amount: 135, ReferenceID: "INV-42",
	}
	if err := st.CommitInvoice(inv, tx); err != nil {
		t.Fatalf("CommitInvoice: %v", err)
	}

	// Most-recent-first: the new invoice sits in front of the seed.
	invoices := st.Invoices()
	if invoices[0].ID != "INV-42" {
		t.Errorf("front invoice = %s, want INV-42", invoices[0].ID)
	}

	p, _ := st.Product("2")
	if p.Stock != 115 {
		t.Errorf("stock = %d, want 115", p.Stock)
	}

	// A second store over the same KV sees the committed state.
	reopened := openStore(t, kv)
	if got := reopened.Invoices(); len(got) != 2 || got[0].ID != "INV-42" {
		t.Errorf("reopened invoices = %+v", got)
	}
	if p, _ := reopened.Product("2"); p.Stock != 115 {
		t.Errorf("reopened stock = %d, want 115", p.Stock)
	}
	txs := reopened.Transactions()
	if len(txs) != 1 || txs[0].ID != "TX-42" {
		t.Errorf("reopened transactions = %+v", txs)
	}
}

func TestCommitInvoice_NoTransactionWhenNil(t *testing.T) {
	kv := NewMemoryKV()
	st := openStore(t, kv)

	inv := model.Invoice{ID: "INV-43", CustomerName: "Asha Patel", Date: time.Now()}
	if err := st.CommitInvoice(inv, nil); err != nil {
		t.Fatalf("CommitInvoice: %v", err)
	}
	if n := len(st.Transactions()); n != 0 {
		t.Errorf("transactions = %d, want 0", n)
	}
}

func TestMutateInvoice(t *testing.T) {
	st := openStore(t, NewMemoryKV())

	updated, err := st.MutateInvoice("INV-1001", func(inv *model.Invoice) {
		inv.IsPaid = true
	})
	if err != nil {
		t.Fatalf("MutateInvoice: %v", err)
	}
	if updated == nil || !updated.IsPaid {
		t.Fatalf("updated = %+v, want settled invoice", updated)
	}

	missing, err := st.MutateInvoice("INV-0000", func(inv *model.Invoice) {
		t.Error("mutator called for unknown invoice")
	})
	if err != nil {
		t.Fatalf("MutateInvoice: %v", err)
	}
	if missing != nil {
		t.Errorf("missing = %+v, want nil", missing)
	}
}

func TestMutateProducts(t *testing.T) {
	kv := NewMemoryKV()
	st := openStore(t, kv)
	before, _, _ := kv.Load(KeyProducts)

	changed, err := st.MutateProducts(func(p *model.Product) bool { return false })
	if err != nil {
		t.Fatalf("MutateProducts: %v", err)
	}
	if changed != 0 {
		t.Errorf("changed = %d, want 0", changed)
	}
	after, _, _ := kv.Load(KeyProducts)
	if string(before) != string(after) {
		t.Error("no-op mutation rewrote the collection")
	}

	changed, err = st.MutateProducts(func(p *model.Product) bool {
		p.Stock++
		return true
	})
	if err != nil {
		t.Fatalf("MutateProducts: %v", err)
	}
	if changed != 3 {
		t.Errorf("changed = %d, want 3", changed)
	}
	if p, _ := st.Product("2"); p.Stock != 121 {
		t.Errorf("stock = %d, want 121", p.Stock)
	}
}

// Accessors hand out copies; mutating them must not leak into the store.
func TestAccessorsReturnCopies(t *testing.T) {
	st := openStore(t, NewMemoryKV())

	products := st.Products()
	products[0].Stock = -999

	if p, _ := st.Product(products[0].ID); p.Stock == -999 {
		t.Error("mutating the returned slice changed store state")
	}
}
