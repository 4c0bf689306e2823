package log

// Common field names for structured logging.
const (
	FieldComponent     = "component"
	FieldRequestID     = "request_id"
	FieldClientIP      = "client_ip"
	FieldMethod        = "method"
	FieldPath          = "path"
	FieldStatusCode    = "status_code"
	FieldDuration      = "duration_ms"
	FieldError         = "error"
	FieldOperation     = "operation"
	FieldCategoryID    = "category_id"
	FieldSubcategoryID = "subcategory_id"
	FieldItemID        = "item_id"
	FieldMode          = "mode"
	FieldMonth         = "month"
)

// Standard component names.
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentStorage  = "storage"
	ComponentTaxonomy = "taxonomy"
	ComponentItems    = "items"
	ComponentCache    = "cache"
	ComponentWorker   = "worker"
	ComponentSeed     = "seed"
)

// Standard operation names.
const (
	OpCreate   = "create"
	OpRead     = "read"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpList     = "list"
	OpToggle   = "toggle"
	OpView     = "view"
	OpDigest   = "digest"
	OpSeed     = "seed"
	OpShutdown = "shutdown"
	OpStartup  = "startup"
)
