package models

// Error codes shared by every adapter and the router. Callers branch on
// these programmatically; messages are for humans.
const (
	ErrBadRequest    = "BAD_REQUEST"
	ErrMissingArg    = "MISSING_ARG"
	ErrNotFound      = "NOT_FOUND"
	ErrAmbiguous     = "AMBIGUOUS"
	ErrUnknownIntent = "UNKNOWN_INTENT"
	ErrUpstreamEmpty = "UPSTREAM_EMPTY"
	ErrUpstream      = "UPSTREAM_ERROR"
	ErrInternal      = "INTERNAL"
)

// ErrorInfo describes a failure inside the common envelope.
type ErrorInfo struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Source records which providers produced a response. Fallback is nil
// when the primary answered on its own.
type Source struct {
	Primary  string  `json:"primary"`
	Fallback *string `json:"fallback"`
}

// TraceStep is one diagnostic entry in the call trace. The "step" key is
// always present; the rest varies per step. Trace is append-only and
// never consumed semantically.
type TraceStep map[string]interface{}

// Meta carries diagnostics alongside the payload.
type Meta struct {
	RequestID string      `json:"request_id,omitempty"`
	Source    *Source     `json:"source,omitempty"`
	Trace     []TraceStep `json:"trace,omitempty"`
}

// Response is the common envelope returned by every provider adapter and
// by the router. Exactly one of Data (when OK) or Error (when not OK) is
// meaningful.
type Response struct {
	OK           bool                   `json:"ok"`
	Intent       Intent                 `json:"intent"`
	ArgsResolved map[string]interface{} `json:"args_resolved,omitempty"`
	Data         interface{}            `json:"data,omitempty"`
	Error        *ErrorInfo             `json:"error,omitempty"`
	Meta         Meta                   `json:"meta"`
}

// Success builds an ok envelope around a payload.
func Success(intent Intent, data interface{}) *Response {
	return &Response{
		OK:     true,
		Intent: intent,
		Data:   data,
	}
}

// Failure builds a failed envelope with the given error code.
func Failure(intent Intent, code, message string, details map[string]interface{}) *Response {
	return &Response{
		OK:     false,
		Intent: intent,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}

// FailureFrom wraps an already-built ErrorInfo in an envelope.
func FailureFrom(intent Intent, errInfo *ErrorInfo) *Response {
	return &Response{
		OK:     false,
		Intent: intent,
		Error:  errInfo,
	}
}

// AppendTrace records a diagnostic step. Order reflects call sequence.
func (r *Response) AppendTrace(step string, fields map[string]interface{}) {
	entry := TraceStep{"step": step}
	for k, v := range fields {
		entry[k] = v
	}
	r.Meta.Trace = append(r.Meta.Trace, entry)
}

// SetResolved records a resolved argument (e.g. a name resolved to a
// provider-native ID). Input args are never mutated; resolution is
// surfaced here as output metadata.
func (r *Response) SetResolved(key string, value interface{}) {
	if r.ArgsResolved == nil {
		r.ArgsResolved = make(map[string]interface{})
	}
	r.ArgsResolved[key] = value
}
