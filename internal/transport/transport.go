// Package transport defines the seam between commands and whatever sends a
// request body to the Todoist API.
package transport

import (
	"context"
	"errors"

	"tdtask/internal/credential"
	"tdtask/internal/tasks"
)

// ErrNoCredential is returned when a request is attempted without a user.
var ErrNoCredential = errors.New("no credential")

// Transport hands request payloads to the remote API.
// Commands never encode or send payloads themselves.
type Transport interface {
	// CreateTask submits a "create task" request on behalf of user.
	CreateTask(ctx context.Context, user *credential.User, task *tasks.NewTask) error
}
