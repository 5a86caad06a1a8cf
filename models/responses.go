package models

// Response statuses.
const (
	StatusSuccess = "success"
	StatusFail    = "fail"
	StatusError   = "error"
)

// Response is the JSON envelope of every successful API answer.
type Response struct {
	Status string `json:"status"`

	// Results is the number of documents in list responses.
	Results *int `json:"results,omitempty"`

	// Token is set by endpoints that log the user in.
	Token string `json:"token,omitempty"`

	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`

	// Error carries the raw error text in development mode only.
	Error string `json:"error,omitempty"`
}

// Doc wraps a single document as {"doc": ...}.
func Doc(v any) map[string]any {
	return map[string]any{"doc": v}
}

// Docs wraps a document list as {"docs": [...]}.
func Docs(v any) map[string]any {
	return map[string]any{"docs": v}
}
