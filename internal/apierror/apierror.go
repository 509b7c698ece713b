// Package apierror shapes every 4xx/5xx response body. All errors returned to
// clients go through it so internals (stack traces, DB errors) never leak and
// clients can branch on a stable machine-readable code instead of parsing the
// detail string.
package apierror

// APIError is the canonical error envelope. Code carries the failure kind
// ("validation", "not_found", "conflict", "invalid_state", "insufficient",
// "rate_limited", "unexpected"); Detail is the human-readable message.
type APIError struct {
	Code   string `json:"code,omitempty"`
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// WithCode tags the envelope with a failure kind.
func WithCode(code, msg string) *APIError {
	return &APIError{Code: code, Detail: msg}
}

// ValidationError carries per-field failures alongside the envelope.
type ValidationError struct {
	Code   string            `json:"code"`
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Code: "validation", Detail: "validation error", Fields: fields}
}
