// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sync"

	"habitask/internal/credentials"
	"habitask/internal/service"
)

// FakeService is an in-memory implementation of service.Service for testing.
// It records every request and answers with Result, or with Err when set.
type FakeService struct {
	mu       sync.Mutex
	requests []service.TaskRequest
	ids      []string

	// Result is returned on success. Text defaults to the submitted task.
	Result service.TaskResult

	// Err, when set, is returned instead of a result.
	Err error

	// StatusErr, when set, is returned by Status.
	StatusErr error

	statusCalls int
}

// NewFakeService creates a FakeService that accepts every task.
func NewFakeService() *FakeService {
	return &FakeService{}
}

// AddTask implements service.Service.
func (f *FakeService) AddTask(ctx context.Context, req service.TaskRequest) (service.TaskResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	f.ids = append(f.ids, service.RequestID(ctx))

	if f.Err != nil {
		return service.TaskResult{}, f.Err
	}
	res := f.Result
	if res.Text == "" {
		res.Text = req.Task
	}
	if res.Status == 0 {
		res.Status = 200
	}
	return res, nil
}

// Status implements service.Service. The fake is up unless StatusErr is set.
func (f *FakeService) Status(ctx context.Context) (service.StatusResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusCalls++
	if f.StatusErr != nil {
		return service.StatusResult{}, f.StatusErr
	}
	return service.StatusResult{Up: true, Status: 200}, nil
}

// StatusCalls returns how many health checks were made.
func (f *FakeService) StatusCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.statusCalls
}

// Requests returns a copy of the requests seen so far.
func (f *FakeService) Requests() []service.TaskRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]service.TaskRequest, len(f.requests))
	copy(out, f.requests)
	return out
}

// RequestIDs returns the request IDs attached to each call's context.
func (f *FakeService) RequestIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.ids))
	copy(out, f.ids)
	return out
}

// FakeSource is a credentials.Source returning fixed values.
type FakeSource struct {
	mu    sync.Mutex
	calls int

	Creds credentials.Credentials
	Err   error
}

// NewFakeSource returns a source yielding userID and token.
func NewFakeSource(userID, token string) *FakeSource {
	return &FakeSource{Creds: credentials.Credentials{UserID: userID, APIToken: token}}
}

// Credentials implements credentials.Source.
func (f *FakeSource) Credentials(ctx context.Context) (credentials.Credentials, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.Err != nil {
		return credentials.Credentials{}, f.Err
	}
	return f.Creds, nil
}

// Calls returns how many times Credentials was called.
func (f *FakeSource) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}
