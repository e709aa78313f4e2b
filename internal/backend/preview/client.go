// Package preview implements transport.Transport by writing each request body
// to a writer instead of sending it.
package preview

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"

	"tdtask/internal/credential"
	"tdtask/internal/tasks"
	"tdtask/internal/transport"
)

const (
	// Method and Path describe the request the body belongs to.
	Method = "POST"
	Path   = "/rest/v2/tasks"
)

// Client writes "create task" bodies to w.
type Client struct {
	w      io.Writer
	pretty bool
	logger *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithPretty indents the written body.
func WithPretty(pretty bool) Option {
	return func(c *Client) { c.pretty = pretty }
}

// WithLogger sets the logger. The default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New creates a preview client writing to w.
func New(w io.Writer, opts ...Option) *Client {
	c := &Client{w: w, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateTask writes the encoded body of task to the client's writer,
// followed by a newline.
func (c *Client) CreateTask(ctx context.Context, user *credential.User, task *tasks.NewTask) error {
	if user == nil {
		return transport.ErrNoCredential
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	tok, err := user.TokenSource().Token()
	if err != nil {
		return fmt.Errorf("failed to get token: %w", err)
	}

	body := task.Body()
	c.logger.Debug("create task request",
		zap.String("method", Method),
		zap.String("path", Path),
		zap.String("auth_scheme", tok.Type()),
		zap.Int("bytes", len(body)),
		credential.Field(user),
	)

	if c.pretty {
		var buf bytes.Buffer
		if err := json.Indent(&buf, body, "", "  "); err != nil {
			return fmt.Errorf("failed to indent body: %w", err)
		}
		body = buf.Bytes()
	}

	if _, err := c.w.Write(append(body, '\n')); err != nil {
		return fmt.Errorf("failed to write body: %w", err)
	}
	return nil
}
