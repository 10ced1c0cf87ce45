package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/mirror"
	"todo/internal/service"
)

// resolveRemote resolves the remote list named by the --list flag, falling
// back to the configured remote list and then the default list.
func resolveRemote(ctx context.Context, cfg *config.Config, m *mirror.Mirror, listName string, errOut io.Writer) (service.TaskList, int) {
	if listName == "" {
		listName = cfg.RemoteList
	}

	list, err := m.ResolveList(ctx, listName)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			fmt.Fprintf(errOut, "error: list not found: %s\n", listName)
			return service.TaskList{}, exitcode.UserError
		}
		if strings.Contains(err.Error(), "ambiguous") {
			fmt.Fprintf(errOut, "error: ambiguous list name: %s\n", listName)
			return service.TaskList{}, exitcode.UserError
		}
		return service.TaskList{}, backendFailure(err, errOut)
	}
	return list, exitcode.Success
}

// backendFailure reports a remote error. Revoked or expired credentials are
// an auth error; anything else is a backend error.
func backendFailure(err error, errOut io.Writer) int {
	if strings.Contains(err.Error(), "todo login") {
		fmt.Fprintf(errOut, "error: auth error: %v\n", err)
		return exitcode.AuthError
	}
	fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	return exitcode.BackendError
}
