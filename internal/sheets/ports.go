package sheets

import "context"

// LedgerRow is one committed transaction flattened for the household ledger.
type LedgerRow struct {
	TransactionID string
	Date          string
	Merchant      string
	Memo          string
	Amount        float64
	Category      string
	Type          string
}

// LedgerAppender is the outbound port for the ledger export.
type LedgerAppender interface {
	AppendLedgerRow(ctx context.Context, row LedgerRow) (rowRef string, err error)
}
