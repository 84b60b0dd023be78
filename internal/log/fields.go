package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldQuery      = "query"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldUserAgent  = "user_agent"
	FieldSuccess    = "success"
	FieldError      = "error"
	FieldOperation  = "operation"

	FieldFiscalYear   = "fiscal_year"
	FieldCategory     = "category"
	FieldLineItem     = "line_item"
	FieldAmount       = "amount"
	FieldQuestion     = "question"
	FieldAction       = "action"
	FieldQuestionType = "question_type"
	FieldFactCount    = "fact_count"
	FieldView         = "view"
)

// Components defines standard component names
const (
	ComponentApp        = "app"
	ComponentHTTP       = "http"
	ComponentStorage    = "storage"
	ComponentClassifier = "classifier"
	ComponentResolver   = "resolver"
	ComponentAMQP       = "amqp"
	ComponentWorker     = "worker"
	ComponentIngest     = "ingest"
)

// Operations defines standard operation names
const (
	OpQuery    = "query"
	OpClassify = "classify"
	OpResolve  = "resolve"
	OpIngest   = "ingest"
	OpPublish  = "publish"
	OpConsume  = "consume"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
