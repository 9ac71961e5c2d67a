package responses

import "context"

// SuccessEnvelope wraps every 2xx payload.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the public shape of a failure. RequestID echoes X-Request-Id
// so clients can quote it when reporting a problem.
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// ErrorEnvelope carries the structured error plus the flat erro/detalhes
// pair older clients read.
type ErrorEnvelope struct {
	Error    APIError `json:"error"`
	Erro     string   `json:"erro"`
	Detalhes any      `json:"detalhes,omitempty"`
}

func newErrorEnvelope(apiErr APIError) ErrorEnvelope {
	return ErrorEnvelope{Error: apiErr, Erro: apiErr.Message, Detalhes: apiErr.Details}
}

type requestIDKey struct{}

// WithRequestID stores the request id for error envelopes.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom returns the id stored by WithRequestID, if any.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
