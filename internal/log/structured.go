package log

import (
	"context"
)

// StructuredLogger provides domain-event logging helpers on top of Logger.
type StructuredLogger struct {
	logger *Logger
}

// NewStructuredLogger creates a new structured logger
func NewStructuredLogger(logger *Logger) *StructuredLogger {
	return &StructuredLogger{
		logger: logger,
	}
}

// LogTransactionRecorded logs successful transaction creation
func (sl *StructuredLogger) LogTransactionRecorded(ctx context.Context, txID, tabID, merchant string, amount float64, category string) {
	fields := NewFields().
		WithTransaction(txID, tabID, merchant, amount, category).
		WithOperation(OpCreate).
		WithComponent(ComponentTab)

	sl.logger.InfoContext(ctx, "Transaction recorded", fields.ToSlice()...)
}

// LogError logs an error with structured context
func (sl *StructuredLogger) LogError(ctx context.Context, msg string, err error, component string, operation string, fields LogFields) {
	allFields := fields.
		WithError(err).
		WithOperation(operation).
		WithComponent(component)

	sl.logger.ErrorContext(ctx, msg, allFields.ToSlice()...)
}
