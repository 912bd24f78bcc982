package types

// SuccessEnvelope wraps every 2xx JSON body; the storefront and admin panel
// both read payloads from the data key.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the client-facing error shape. Code matches the errors
// package's stable codes, not HTTP status names.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps every non-2xx JSON body.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
