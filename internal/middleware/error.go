package middleware

// ErrorResponse is the envelope middleware writes when it aborts a request
// itself, before a handler runs.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	TraceID string `json:"trace_id,omitempty"`
}
