package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/choudharyanish1236-cloud/retail-task-manager/internal/ai"
	"github.com/choudharyanish1236-cloud/retail-task-manager/internal/model"
	"github.com/choudharyanish1236-cloud/retail-task-manager/internal/store"
	"github.com/choudharyanish1236-cloud/retail-task-manager/internal/ws"
	"github.com/choudharyanish1236-cloud/retail-task-manager/pkg/logger"
	"github.com/choudharyanish1236-cloud/retail-task-manager/pkg/validator"

	"github.com/rs/zerolog"
)

// StockAdjustment reports what an adjustment did. Matched counts every
// product the fuzzy name hit; zero matches is a successful no-op.
type StockAdjustment struct {
	ProductName string            `json:"productName"`
	Quantity    int               `json:"quantity"`
	Action      model.StockAction `json:"action"`
	Matched     int               `json:"matched"`
}

// NewProductRequest is the add-product submission.
type NewProductRequest struct {
	Name              string  `json:"name" validate:"required"`
	HSN               string  `json:"hsn"`
	Stock             int     `json:"stock" validate:"gte=0"`
	Rate              float64 `json:"rate" validate:"gte=0"`
	LowStockThreshold int     `json:"lowStockThreshold" validate:"gte=0"`
	Category          string  `json:"category"`
}

type StockService interface {
	// AdjustStock updates every product whose name matches the free-text
	// input by bidirectional case-insensitive containment. ADD_STOCK adds
	// unconditionally; REDUCE_STOCK floors the result at zero.
	AdjustStock(productName string, quantity int, action model.StockAction) (*StockAdjustment, error)
	// ParseCommand runs a transcript through the assistant and returns the
	// pending action for caller confirmation, or nil when nothing usable
	// was extracted.
	ParseCommand(ctx context.Context, transcript string) *ai.StockCommand
	AddProduct(req *NewProductRequest) (*model.Product, error)
	SetLowStockThreshold(productID string, threshold int) (*model.Product, error)
	ListProducts() []model.Product
	LowStockProducts() []model.Product
}

type stockService struct {
	store     *store.Store
	assistant ai.Assistant
	hub       *ws.Hub
	log       zerolog.Logger
}

func NewStockService(st *store.Store, assistant ai.Assistant, hub *ws.Hub) StockService {
	return &stockService{
		store:     st,
		assistant: assistant,
		hub:       hub,
		log:       logger.WithComponent("stock"),
	}
}

// nameMatches applies the catalog matching rule: either string contained in
// the other, case-insensitively.
func nameMatches(productName, query string) bool {
	p := strings.ToLower(productName)
	q := strings.ToLower(query)
	return strings.Contains(p, q) || strings.Contains(q, p)
}

func (s *stockService) AdjustStock(productName string, quantity int, action model.StockAction) (*StockAdjustment, error) {
	if !action.Valid() {
		return nil, fmt.Errorf("unknown stock action %q", action)
	}

	matched, err := s.store.MutateProducts(func(p *model.Product) bool {
		if !nameMatches(p.Name, productName) {
			return false
		}
		oldStock := p.Stock
		if action == model.ActionAddStock {
			p.Stock += quantity
		} else {
			p.Stock -= quantity
			if p.Stock < 0 {
				p.Stock = 0
			}
		}
		s.hub.BroadcastJSON(ws.NewStockUpdate(
			string(action), *p, oldStock,
			fmt.Sprintf("%s: %d -> %d", p.Name, oldStock, p.Stock),
		))
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("adjust stock: %w", err)
	}

	s.log.Info().
		Str("query", productName).
		Int("quantity", quantity).
		Str("action", string(action)).
		Int("matched", matched).
		Msg("Stock adjusted")

	if low := s.LowStockProducts(); len(low) > 0 {
		s.hub.BroadcastJSON(ws.NewLowStockAlert(low))
	}

	return &StockAdjustment{
		ProductName: productName,
		Quantity:    quantity,
		Action:      action,
		Matched:     matched,
	}, nil
}

func (s *stockService) ParseCommand(ctx context.Context, transcript string) *ai.StockCommand {
	return s.assistant.ParseCommand(ctx, transcript)
}

func (s *stockService) AddProduct(req *NewProductRequest) (*model.Product, error) {
	if err := validator.Error(req); err != nil {
		return nil, err
	}

	p := model.Product{
		ID:                model.NewProductID(),
		Name:              req.Name,
		HSN:               req.HSN,
		Stock:             req.Stock,
		Rate:              req.Rate,
		LowStockThreshold: req.LowStockThreshold,
		Category:          req.Category,
	}
	if err := s.store.AddProduct(p); err != nil {
		return nil, fmt.Errorf("add product: %w", err)
	}

	s.log.Info().Str("product_id", p.ID).Str("name", p.Name).Msg("Product added")
	return &p, nil
}

func (s *stockService) SetLowStockThreshold(productID string, threshold int) (*model.Product, error) {
	var updated *model.Product
	_, err := s.store.MutateProducts(func(p *model.Product) bool {
		if p.ID != productID {
			return false
		}
		p.LowStockThreshold = threshold
		clone := *p
		updated = &clone
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("set threshold: %w", err)
	}
	return updated, nil
}

func (s *stockService) ListProducts() []model.Product {
	return s.store.Products()
}

func (s *stockService) LowStockProducts() []model.Product {
	var low []model.Product
	for _, p := range s.store.Products() {
		if p.IsLowStock() {
			low = append(low, p)
		}
	}
	return low
}
