// Package provider abstracts the call to a reasoning backend behind the
// Generator interface. Concrete adapters for the Anthropic and OpenAI APIs
// live in subpackages; Mock offers a deterministic in-memory implementation
// for tests and examples. All failures surface as *core.ProviderError so
// callers can apply their deterministic fallback paths uniformly.
package provider
