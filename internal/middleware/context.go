package middleware

// Context keys used to store operator metadata on the echo context.
const (
	ContextKeyOperatorID    = "operator_id"
	ContextKeyOperatorEmail = "operator_email"
	ContextKeyOperatorRole  = "operator_role"
	ContextKeyRequestID     = "request_id"
)
