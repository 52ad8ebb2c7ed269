package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"

	FieldUserID       = "user_id"
	FieldMonthKey     = "month_key"
	FieldYear         = "year"
	FieldExpenseID    = "expense_id"
	FieldCategoryID   = "category_id"
	FieldAmount       = "amount"
	FieldSubID        = "subscription_id"
	FieldBillingCycle = "billing_cycle"
	FieldScope        = "scope"
	FieldFormat       = "format"
	FieldBlobKey      = "blob_key"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentLedger  = "ledger"
	ComponentBlob    = "blob"
	ComponentReport  = "report"
	ComponentProfile = "profile"
	ComponentSession = "session"
	ComponentCache   = "cache"
)

// Operations defines standard operation names
const (
	OpRead     = "read"
	OpWrite    = "write"
	OpDelete   = "delete"
	OpList     = "list"
	OpValidate = "validate"
	OpRender   = "render"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
