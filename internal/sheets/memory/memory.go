// Package memory is an in-memory LedgerAppender for tests and local runs
// without a configured spreadsheet.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/sohamkakraa/TabScape/internal/sheets"
)

type Store struct {
	mu   sync.Mutex
	rows []sheets.LedgerRow

	// FailNext makes the next append fail, for exercising error paths.
	FailNext bool
}

var _ sheets.LedgerAppender = (*Store)(nil)

func New() *Store {
	return &Store{}
}

// AppendLedgerRow stores the row and returns a synthetic row reference.
func (s *Store) AppendLedgerRow(_ context.Context, row sheets.LedgerRow) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailNext {
		s.FailNext = false
		return "", fmt.Errorf("append failed")
	}
	s.rows = append(s.rows, row)
	return fmt.Sprintf("mem:%d", len(s.rows)), nil
}

// Rows returns a copy of everything appended so far.
func (s *Store) Rows() []sheets.LedgerRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]sheets.LedgerRow(nil), s.rows...)
}
