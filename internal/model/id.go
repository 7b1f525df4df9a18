package model

import (
	"strings"

	"github.com/google/uuid"
)

// Record IDs keep the legacy human-readable prefixes but draw their random
// part from a UUID instead of a wall-clock timestamp.

func NewProductID() string     { return shortID("PRD") }
func NewInvoiceID() string     { return shortID("INV") }
func NewTransactionID() string { return shortID("TX") }
func NewReminderID() string    { return shortID("REM") }

func shortID(prefix string) string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + "-" + strings.ToUpper(raw[:12])
}
