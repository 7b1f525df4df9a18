package store

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/choudharyanish1236-cloud/retail-task-manager/internal/model"
	"github.com/choudharyanish1236-cloud/retail-task-manager/pkg/logger"

	"github.com/rs/zerolog"
)

// Collection keys in the KV adapter. The serialized shapes under these keys
// are a compatibility surface; there is no schema version.
const (
	KeyProducts     = "products"
	KeyInvoices     = "invoices"
	KeyTransactions = "transactions"
)

// Store owns the three collections for the lifetime of the session. Every
// mutation runs under one lock and mirrors the touched collections to the
// KV adapter before returning, so a reader never observes a half-applied
// commit. Invoices and transactions are kept most-recent-first.
type Store struct {
	mu  sync.Mutex
	kv  KV
	log zerolog.Logger
	now func() time.Time

	products     []model.Product
	invoices     []model.Invoice
	transactions []model.Transaction
}

func New(kv KV) *Store {
	return &Store{
		kv:  kv,
		log: logger.WithComponent("store"),
		now: time.Now,
	}
}

// Open loads all collections, seeding products and invoices with fixture
// records on first run. Transactions start empty and are not seeded.
func (s *Store) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	loadedProducts, err := loadCollection(s.kv, KeyProducts, &s.products)
	if err != nil {
		return err
	}
	if !loadedProducts {
		s.products = seedProducts()
		if err := s.persist(KeyProducts, s.products); err != nil {
			return err
		}
		s.log.Info().Int("count", len(s.products)).Msg("Seeded default products")
	}

	loadedInvoices, err := loadCollection(s.kv, KeyInvoices, &s.invoices)
	if err != nil {
		return err
	}
	if !loadedInvoices {
		s.invoices = seedInvoices(s.now())
		if err := s.persist(KeyInvoices, s.invoices); err != nil {
			return err
		}
		s.log.Info().Int("count", len(s.invoices)).Msg("Seeded sample invoice")
	}

	if _, err := loadCollection(s.kv, KeyTransactions, &s.transactions); err != nil {
		return err
	}
	if s.transactions == nil {
		s.transactions = []model.Transaction{}
	}
	return nil
}

func (s *Store) Products() []model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *Store) Invoices() []model.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Invoice, len(s.invoices))
	copy(out, s.invoices)
	return out
}

func (s *Store) Transactions() []model.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// Product returns a product by exact ID.
func (s *Store) Product(id string) (model.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return model.Product{}, false
}

// AddProduct appends a product to the catalog and persists it.
func (s *Store) AddProduct(p model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append(s.products, p)
	return s.persist(KeyProducts, s.products)
}

// CommitInvoice applies the billing commit as one logical transaction:
// the invoice is prepended, stock is decremented for every item whose
// productId matches a catalog product exactly, and the optional ledger
// entry is prepended. Stock is not floored at zero on this path. All
// touched collections are persisted before the lock is released.
func (s *Store) CommitInvoice(inv model.Invoice, tx *model.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.invoices = append([]model.Invoice{inv}, s.invoices...)

	for _, item := range inv.Items {
		for i := range s.products {
			if s.products[i].ID == item.ProductID {
				s.products[i].Stock -= item.Quantity
			}
		}
	}

	if err := s.persist(KeyInvoices, s.invoices); err != nil {
		return err
	}
	if err := s.persist(KeyProducts, s.products); err != nil {
		return err
	}

	if tx != nil {
		s.transactions = append([]model.Transaction{*tx}, s.transactions...)
		if err := s.persist(KeyTransactions, s.transactions); err != nil {
			return err
		}
	}
	return nil
}

// MutateInvoice applies fn to the invoice with the given ID and persists
// the collection. A missing invoice is a silent no-op: both return values
// are nil.
func (s *Store) MutateInvoice(id string, fn func(*model.Invoice)) (*model.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.invoices {
		if s.invoices[i].ID != id {
			continue
		}
		fn(&s.invoices[i])
		if err := s.persist(KeyInvoices, s.invoices); err != nil {
			return nil, err
		}
		updated := s.invoices[i]
		return &updated, nil
	}
	return nil, nil
}

// MutateProducts applies fn to every product; fn reports whether it changed
// the record. The collection is persisted when at least one product changed
// and the number of changed products is returned. Zero matches is a silent
// no-op, not an error.
func (s *Store) MutateProducts(fn func(*model.Product) bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := 0
	for i := range s.products {
		if fn(&s.products[i]) {
			changed++
		}
	}
	if changed == 0 {
		return 0, nil
	}
	return changed, s.persist(KeyProducts, s.products)
}

func (s *Store) persist(key string, collection interface{}) error {
	data, err := json.Marshal(collection)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := s.kv.Save(key, data); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("Failed to persist collection")
		return err
	}
	return nil
}

func loadCollection(kv KV, key string, dst interface{}) (bool, error) {
	data, ok, err := kv.Load(key)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return true, nil
}
