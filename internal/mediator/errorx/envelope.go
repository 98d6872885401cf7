package errorx

import (
	"time"

	"github.com/chistokhinsv/gns3-mcp-go/pkg/version"
)

// Record is the canonical error envelope. It is always a structured
// value; handlers never let a bare error string reach the agent.
type Record struct {
	Error           string                 `json:"error"`
	ErrorCode       Code                   `json:"error_code"`
	Details         string                 `json:"details,omitempty"`
	SuggestedAction string                 `json:"suggested_action,omitempty"`
	Context         map[string]interface{} `json:"context,omitempty"`
	ServerVersion   string                 `json:"server_version"`
	Timestamp       time.Time              `json:"timestamp"`
}

// New builds a Record with the registered default message for code.
func New(code Code) *Record {
	return &Record{
		Error:         code.DefaultMessage(),
		ErrorCode:     code,
		ServerVersion: version.String(),
		Timestamp:     time.Now().UTC(),
	}
}

// Newf builds a Record with a custom human message.
func Newf(code Code, message string) *Record {
	r := New(code)
	r.Error = message
	return r
}

// WithDetails sets the long-form Details field and returns the receiver
// for chaining.
func (r *Record) WithDetails(details string) *Record {
	r.Details = details
	return r
}

// WithSuggestion sets SuggestedAction and returns the receiver for
// chaining.
func (r *Record) WithSuggestion(action string) *Record {
	r.SuggestedAction = action
	return r
}

// WithContext merges key/value pairs into Context and returns the
// receiver for chaining.
func (r *Record) WithContext(kv map[string]interface{}) *Record {
	if r.Context == nil {
		r.Context = make(map[string]interface{}, len(kv))
	}
	for k, v := range kv {
		r.Context[k] = v
	}
	return r
}
