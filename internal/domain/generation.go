package domain

import "context"

// GenerationBackend is the text-generation capability, built once at startup.
// A backend that is not configured reports Available() == false and fails
// every Generate call with CodeBackendUnavailable.
type GenerationBackend interface {
	Name() string
	Available() bool
	Generate(ctx context.Context, prompt string) (string, error)
}
