package service

import "time"

// Envelope is the uniform shape returned to every caller of the gateway.
// Timestamp is generated at response-construction time, not request-start
// time.
type Envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Prefix    string `json:"prefix,omitempty"`
	Timestamp string `json:"timestamp"`
}

func success(data any, prefix string) *Envelope {
	return &Envelope{
		Success:   true,
		Data:      data,
		Prefix:    prefix,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// rejection wraps the upstream's own validation verdict. The call did not
// succeed, but the failure belongs to the caller's payload, so the upstream
// body is passed through for display instead of a generic error.
func rejection(upstreamBody any, prefix string) *Envelope {
	return &Envelope{
		Success:   false,
		Data:      upstreamBody,
		Prefix:    prefix,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}
