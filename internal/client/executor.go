package client

import (
	"context"
	"net/http"
)

//go:generate mockgen -source=executor.go -destination=../mocks/executor_mocks.go -package=mocks

// BasicAuth is the HTTP Basic credential attached to every request
type BasicAuth struct {
	Username string
	Password string
}

// Request is a fully composed call to the Text United API
type Request struct {
	Method string
	URL    string
	Header http.Header
	Auth   BasicAuth
	Body   interface{} // JSON-encoded by the executor; nil sends no body
}

// Response is a completed HTTP exchange
type Response struct {
	StatusCode int
	Body       []byte
}

// Executor sends a request and returns the completed exchange. It must not
// interpret the status code; retries and timeouts are its own concern.
type Executor interface {
	Send(ctx context.Context, req *Request) (*Response, error)
}
