package model

// StockAction is the verb of a stock-adjustment command, typically produced
// by the voice/text assistant.
type StockAction string

const (
	ActionAddStock    StockAction = "ADD_STOCK"
	ActionReduceStock StockAction = "REDUCE_STOCK"
)

func (a StockAction) Valid() bool {
	return a == ActionAddStock || a == ActionReduceStock
}
