package service

import (
	"github.com/choudharyanish1236-cloud/retail-task-manager/internal/model"
	"github.com/choudharyanish1236-cloud/retail-task-manager/internal/store"
)

// DashboardStats is the overview block of the dashboard.
type DashboardStats struct {
	TotalSales        float64          `json:"totalSales"`
	PendingCollection float64          `json:"pendingCollection"`
	LowStockCount     int              `json:"lowStockCount"`
	LowStockItems     []model.Product  `json:"lowStockItems"`
	TotalTransactions int              `json:"totalTransactions"`
	SalesTrend        []SalesPoint     `json:"salesTrend"`
	StockLevels       []StockLevelItem `json:"stockLevels"`
}

// SalesPoint is one entry of the recent sales trend chart.
type SalesPoint struct {
	Label string  `json:"label"`
	Sales float64 `json:"sales"`
}

// StockLevelItem is one bar of the stock-level chart.
type StockLevelItem struct {
	Name  string `json:"name"`
	Stock int    `json:"stock"`
	Min   int    `json:"min"`
}

type DashboardService interface {
	GetStats() *DashboardStats
	// Transactions returns the ledger, most recent first.
	Transactions() []model.Transaction
}

type dashboardService struct {
	store *store.Store
}

func NewDashboardService(st *store.Store) DashboardService {
	return &dashboardService{store: st}
}

func (s *dashboardService) Transactions() []model.Transaction {
	return s.store.Transactions()
}

func (s *dashboardService) GetStats() *DashboardStats {
	products := s.store.Products()
	invoices := s.store.Invoices()
	transactions := s.store.Transactions()

	stats := &DashboardStats{
		LowStockItems:     []model.Product{},
		TotalTransactions: len(transactions),
		SalesTrend:        []SalesPoint{},
		StockLevels:       []StockLevelItem{},
	}

	for _, inv := range invoices {
		stats.TotalSales += inv.GrandTotal
		if !inv.IsPaid {
			stats.PendingCollection += inv.GrandTotal
		}
	}

	for _, p := range products {
		if p.IsLowStock() {
			stats.LowStockItems = append(stats.LowStockItems, p)
		}
	}
	stats.LowStockCount = len(stats.LowStockItems)

	// Last 7 invoices, labelled by weekday.
	trend := invoices
	if len(trend) > 7 {
		trend = trend[len(trend)-7:]
	}
	for _, inv := range trend {
		stats.SalesTrend = append(stats.SalesTrend, SalesPoint{
			Label: inv.Date.Format("Mon"),
			Sales: inv.GrandTotal,
		})
	}

	// First 10 products for the stock snapshot.
	levels := products
	if len(levels) > 10 {
		levels = levels[:10]
	}
	for _, p := range levels {
		stats.StockLevels = append(stats.StockLevels, StockLevelItem{
			Name:  p.Name,
			Stock: p.Stock,
			Min:   p.LowStockThreshold,
		})
	}

	return stats
}
