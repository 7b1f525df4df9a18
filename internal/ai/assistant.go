package ai

import (
	"context"

	"github.com/choudharyanish1236-cloud/retail-task-manager/internal/model"
)

// Suggestion is a candidate catalog entry returned for a free-text query.
type Suggestion struct {
	Name          string  `json:"name"`
	HSN           string  `json:"hsn"`
	Category      string  `json:"category,omitempty"`
	EstimatedRate float64 `json:"estimatedRate,omitempty"`
}

// StockCommand is a stock instruction extracted from a spoken or typed
// sentence.
type StockCommand struct {
	Action      model.StockAction `json:"action"`
	ProductName string            `json:"productName"`
	Quantity    int               `json:"quantity"`
	Rate        float64           `json:"rate,omitempty"`
}

// Assistant is the external AI collaborator. Implementations absorb every
// failure at this boundary: Suggest returns an empty slice and ParseCommand
// returns nil, never an error, so the workflows behind them are unaffected
// by outages.
type Assistant interface {
	Suggest(ctx context.Context, query string) []Suggestion
	ParseCommand(ctx context.Context, transcript string) *StockCommand
}

// Disabled is used when no API key is configured.
type Disabled struct{}

func (Disabled) Suggest(context.Context, string) []Suggestion { return []Suggestion{} }

func (Disabled) ParseCommand(context.Context, string) *StockCommand { return nil }
