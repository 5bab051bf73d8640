package log

// Common field names for structured logging.
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldSlot       = "slot"
	FieldExpenseID  = "expense_id"
	FieldCategory   = "category"
	FieldAmount     = "amount_cents"
	FieldPeriod     = "period"
	FieldCurrency   = "currency"
)

// Components defines standard component names.
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentStorage   = "storage"
	ComponentState     = "state"
	ComponentExpense   = "expense"
	ComponentDashboard = "dashboard"
	ComponentCache     = "cache"
)

// Operations defines standard operation names.
const (
	OpRead     = "read"
	OpWrite    = "write"
	OpCreate   = "create"
	OpDelete   = "delete"
	OpList     = "list"
	OpDecode   = "decode"
	OpEncode   = "encode"
	OpValidate = "validate"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
