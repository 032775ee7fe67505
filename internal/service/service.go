package service

import "context"

// Service submits tasks to the /add_task endpoint.
// Commands never talk HTTP directly; they go through this interface.
type Service interface {
	// AddTask issues exactly one request for req and returns the created task.
	// Failures are returned as *Error.
	AddTask(ctx context.Context, req TaskRequest) (TaskResult, error)

	// Status checks that the server is up and can reach Habitica.
	Status(ctx context.Context) (StatusResult, error)
}

type requestIDKey struct{}

// WithRequestID attaches a submission's request ID to ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request ID stored in ctx, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
