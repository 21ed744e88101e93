package log

// Common field names for structured logging
const (
	FieldComponent     = "component"
	FieldError         = "error"
	FieldOperation     = "operation"
	FieldUserID        = "user_id"
	FieldTabID         = "tab_id"
	FieldTransactionID = "transaction_id"
	FieldMerchant      = "merchant"
	FieldAmount        = "amount"
	FieldCategory      = "category"
)

// Components defines standard component names
const (
	ComponentAuth = "auth"
	ComponentTab  = "tab"
)

// Operations defines standard operation names
const (
	OpCreate = "create"
	OpDelete = "delete"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithComponent adds component field
func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithUser adds user ID field
func (f LogFields) WithUser(userID string) LogFields {
	f[FieldUserID] = userID
	return f
}

// WithTransaction adds transaction-related fields
func (f LogFields) WithTransaction(txID, tabID, merchant string, amount float64, category string) LogFields {
	f[FieldTransactionID] = txID
	f[FieldTabID] = tabID
	f[FieldMerchant] = merchant
	f[FieldAmount] = amount
	f[FieldCategory] = category
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
