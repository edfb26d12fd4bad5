package log

// Common field names for structured logging.
const (
	FieldComponent    = "component"
	FieldError        = "error"
	FieldOperation    = "operation"
	FieldMethod       = "method"
	FieldPath         = "path"
	FieldStatusCode   = "status_code"
	FieldDuration     = "duration_ms"
	FieldClientIP     = "client_ip"
	FieldTransactions = "transactions"
	FieldBalanceCents = "balance_cents"
	FieldFilter       = "filter"
	FieldSort         = "sort"
	FieldLoadState    = "load_state"
	FieldCount        = "count"
	FieldQueue        = "queue"
	FieldExchange     = "exchange"
	FieldSheetsRef    = "sheets_ref"
)

// Components defines standard component names.
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentLedger  = "ledger"
	ComponentSource  = "source"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentSheets  = "sheets"
	ComponentCache   = "cache"
)
