package model

import "time"

type TransactionType string

const (
	TxCash   TransactionType = "CASH"
	TxOnline TransactionType = "ONLINE"
)

type TransactionDirection string

const (
	TxIncome  TransactionDirection = "INCOME"
	TxExpense TransactionDirection = "EXPENSE"
)

// Transaction is a ledger entry. The only writer in this design is the
// invoice-commit workflow, which records income when an invoice is paid at
// creation time. Marking an invoice paid later never creates one.
type Transaction struct {
	ID          string               `json:"id"`
	Date        time.Time            `json:"date"`
	Type        TransactionType      `json:"type"`
	Direction   TransactionDirection `json:"direction"`
	Amount      float64              `json:"amount"`
	Description string               `json:"description"`
	ReferenceID string               `json:"referenceId,omitempty"`
}
