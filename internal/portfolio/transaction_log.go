package portfolio

import (
	"coinwatch/internal/models"

	"github.com/shopspring/decimal"
)

// TransactionLog is the append-only history of executed trades. It keeps a
// running total of the cash spent on buys. Callers synchronize access.
type TransactionLog struct {
	entries  []models.Transaction
	invested decimal.Decimal
}

// NewTransactionLog builds a log from previously persisted entries and
// recomputes the invested total from scratch.
func NewTransactionLog(entries []models.Transaction) *TransactionLog {
	l := &TransactionLog{
		entries:  make([]models.Transaction, 0, len(entries)),
		invested: decimal.Zero,
	}
	for _, tx := range entries {
		l.Append(tx)
	}
	return l
}

// Append records tx at the end of the log.
func (l *TransactionLog) Append(tx models.Transaction) {
	l.entries = append(l.entries, tx)
	if tx.Type == models.TransactionTypeBuy {
		l.invested = l.invested.Add(tx.Amount())
	}
}

// All returns a copy of the log in insertion order.
func (l *TransactionLog) All() []models.Transaction {
	out := make([]models.Transaction, len(l.entries))
	copy(out, l.entries)
	return out
}

// TotalInvested returns Σ quantity×price over buys. Sells do not reduce it.
func (l *TransactionLog) TotalInvested() decimal.Decimal {
	return l.invested
}

// Len returns the number of recorded trades.
func (l *TransactionLog) Len() int {
	return len(l.entries)
}
