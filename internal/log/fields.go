package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldClientIP    = "client_ip"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldQuery       = "query"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldUserAgent   = "user_agent"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldMonth       = "month"
	FieldCategory    = "category"
	FieldTransaction = "transaction_id"
	FieldEventType   = "event_type"
)

// Component names
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentStorage   = "storage"
	ComponentAMQP      = "amqp"
	ComponentWorker    = "worker"
	ComponentSecurity  = "security"
	ComponentRateLimit = "rate_limit"
	ComponentBackend   = "backend"
	ComponentReport    = "report"
)

// Operation names used in error logs of the HTTP surface.
const (
	OpListTransactions  = "list_transactions"
	OpCreateTransaction = "create_transaction"
	OpUpdateTransaction = "update_transaction"
	OpDeleteTransaction = "delete_transaction"
	OpListBudgets       = "list_budgets"
	OpUpsertBudget      = "upsert_budget"
	OpLoadDashboard     = "load_dashboard"
	OpListCategories    = "list_categories"
	OpReadiness         = "readiness"
	OpBudgetAlert       = "budget_alert"
	OpShutdown          = "shutdown"
	OpStartup           = "startup"
)
