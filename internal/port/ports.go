// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the panel/service
// layer from concrete implementations.
package port

import "context"

// Transport invokes one remote calculator. in is encoded as the request
// body and the response body is decoded into out. A non-success answer is
// returned as an error carrying a user-readable message.
type Transport interface {
	Call(ctx context.Context, endpoint string, in, out any) error
}

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
}

// Pinger is a dependency the readiness probe checks.
type Pinger interface {
	Ping(ctx context.Context) error
}
