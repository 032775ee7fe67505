// Package submitter implements task submission: validate the task, fetch
// credentials, issue exactly one /add_task request, and hand a typed result
// back to the caller.
package submitter

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"habitask/internal/credentials"
	"habitask/internal/logging"
	"habitask/internal/service"
)

// ErrEmptyTask is returned when the task is empty after trimming.
// No credentials are read and no request is made.
var ErrEmptyTask = errors.New("task required")

// CredentialsError wraps a failure of the credential source. The message is
// the underlying error's.
type CredentialsError struct {
	Err error
}

func (e *CredentialsError) Error() string { return e.Err.Error() }
func (e *CredentialsError) Unwrap() error { return e.Err }

// Transition is one state change of a submission.
type Transition struct {
	ID   string // request ID, also sent as X-Request-ID
	From State
	To   State
	Err  error // set when To is Failed
}

// Submitter sends tasks through a service using one credential source.
// Concurrent submissions are independent; nothing is queued or deduplicated.
type Submitter struct {
	svc     service.Service
	creds   credentials.Source
	log     *slog.Logger
	observe func(Transition)
	newID   func() string
}

// Option configures a Submitter.
type Option func(*Submitter)

// WithLogger logs every transition at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(s *Submitter) { s.log = l }
}

// WithObserver calls fn on every transition, in order.
func WithObserver(fn func(Transition)) Option {
	return func(s *Submitter) { s.observe = fn }
}

// New creates a Submitter.
func New(svc service.Service, creds credentials.Source, opts ...Option) *Submitter {
	s := &Submitter{
		svc:   svc,
		creds: creds,
		log:   slog.New(slog.DiscardHandler),
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit sends task. On success the created task is returned; otherwise the
// error is ErrEmptyTask, a *CredentialsError, or a *service.Error.
func (s *Submitter) Submit(ctx context.Context, task string) (service.TaskResult, error) {
	task = strings.TrimSpace(task)
	if task == "" {
		return service.TaskResult{}, ErrEmptyTask
	}

	creds, err := s.creds.Credentials(ctx)
	if err != nil {
		return service.TaskResult{}, &CredentialsError{Err: err}
	}

	id := s.newID()
	ctx = service.WithRequestID(ctx, id)
	s.log.Debug("submitting task",
		"request_id", id,
		"user_id", creds.UserID,
		"api_token", logging.Redact(creds.APIToken),
	)

	s.transition(Transition{ID: id, From: Idle, To: InFlight})
	res, err := s.svc.AddTask(ctx, service.TaskRequest{
		UserID:   creds.UserID,
		APIToken: creds.APIToken,
		Task:     task,
	})
	if err != nil {
		s.transition(Transition{ID: id, From: InFlight, To: Failed, Err: err})
		return service.TaskResult{}, err
	}
	s.transition(Transition{ID: id, From: InFlight, To: Succeeded})
	return res, nil
}

func (s *Submitter) transition(t Transition) {
	attrs := []any{"request_id", t.ID, "from", t.From.String(), "to", t.To.String()}
	if t.Err != nil {
		attrs = append(attrs, "error", t.Err.Error())
		if k := service.KindOf(t.Err); k != 0 {
			attrs = append(attrs, "kind", k.String())
		}
	}
	s.log.Debug("submission state", attrs...)
	if s.observe != nil {
		s.observe(t)
	}
}
