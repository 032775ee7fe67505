// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, empty task, unknown command).
	UserError = 1

	// AuthError indicates a credential or configuration error.
	AuthError = 2

	// BackendError indicates a network, HTTP or response error from /add_task.
	BackendError = 3
)
