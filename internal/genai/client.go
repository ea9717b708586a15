// Package genai wraps the generative-model backend. The backend is treated as
// an unreliable, schema-free black box: callers get raw text back and must
// decode and validate it before use.
package genai

import (
	"context"
	"errors"
)

// Client abstracts the model backend so generation logic can be tested
// against a stub.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Settings configures a concrete client implementation.
type Settings struct {
	Model   string
	APIKey  string
	BaseURL string
}

func (s *Settings) validate() error {
	if s.APIKey == "" {
		return errors.New("genai: api key missing")
	}
	if s.Model == "" {
		return errors.New("genai: model is required")
	}
	return nil
}
