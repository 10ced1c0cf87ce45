// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, unknown command, empty title).
	UserError = 1

	// AuthError indicates an auth/config error.
	AuthError = 2

	// BackendError indicates a remote API/network error.
	BackendError = 3

	// StorageError indicates the task file could not be read, written or decoded.
	StorageError = 4
)
