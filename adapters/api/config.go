package api

import (
	"time"

	"distfit/domain/fit"
)

// HandlerConfig holds limits and defaults for the fitting API
type HandlerConfig struct {
	RequestTimeout time.Duration `json:"request_timeout"`
	MaxBodyBytes   int64         `json:"max_body_bytes"`

	// Defaults fill fields a request leaves out
	Defaults fit.RawOptions `json:"defaults"`
}

// DefaultHandlerConfig returns the limits used when nothing is configured
func DefaultHandlerConfig() *HandlerConfig {
	return &HandlerConfig{
		RequestTimeout: 60 * time.Second,
		MaxBodyBytes:   32 << 20, // 32 MiB
	}
}
