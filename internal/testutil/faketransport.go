// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sync"

	"tdtask/internal/credential"
	"tdtask/internal/tasks"
	"tdtask/internal/transport"
)

// Request is a request recorded by FakeTransport.
type Request struct {
	Token string
	Body  string
}

// FakeTransport is an in-memory implementation of transport.Transport for
// testing. It records the encoded body of every payload it receives.
type FakeTransport struct {
	mu       sync.Mutex
	requests []Request

	// Error injection for testing
	CreateTaskErr error
}

// NewFakeTransport creates an empty FakeTransport.
func NewFakeTransport() *FakeTransport {
	return &FakeTransport{}
}

// CreateTask implements transport.Transport.
func (f *FakeTransport) CreateTask(ctx context.Context, user *credential.User, task *tasks.NewTask) error {
	if f.CreateTaskErr != nil {
		return f.CreateTaskErr
	}
	if user == nil {
		return transport.ErrNoCredential
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, Request{Token: user.Token(), Body: string(task.Body())})
	return nil
}

// Requests returns a copy of the recorded requests.
func (f *FakeTransport) Requests() []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Request, len(f.requests))
	copy(out, f.requests)
	return out
}
