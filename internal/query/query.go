// Package query models the state of a single backend read as seen by a page:
// still loading, failed, or loaded with data.
package query

import (
	"context"
	"encoding/json"

	"sandboxdash/internal/errors"
)

// Status is the observable state of a query
type Status int

const (
	Loading Status = iota
	Error
	Success
)

// String returns the lowercase state name used in templates and JSON
func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Error:
		return "error"
	case Success:
		return "success"
	default:
		return "unknown"
	}
}

// Fetcher loads a value from a backend
type Fetcher[T any] func(ctx context.Context) (T, error)

// Result represents a query that is loading, failed, or holds data.
// A failed result never carries data.
type Result[T any] struct {
	status Status
	data   T
	err    error
}

// Pending creates a result that has not resolved yet
func Pending[T any]() Result[T] {
	return Result[T]{status: Loading}
}

// Succeeded creates a Result with data
func Succeeded[T any](data T) Result[T] {
	return Result[T]{status: Success, data: data}
}

// Failed creates a Result with an error
func Failed[T any](err error) Result[T] {
	return Result[T]{status: Error, err: err}
}

// Run executes fetch and captures its outcome
func Run[T any](ctx context.Context, fetch Fetcher[T]) Result[T] {
	data, err := fetch(ctx)
	if err != nil {
		return Failed[T](err)
	}
	return Succeeded(data)
}

// Status returns the query state
func (r Result[T]) Status() Status {
	return r.status
}

// IsLoading returns true while the query has not resolved
func (r Result[T]) IsLoading() bool {
	return r.status == Loading
}

// IsError returns true if the query failed
func (r Result[T]) IsError() bool {
	return r.status == Error
}

// IsSuccess returns true if the query resolved with data
func (r Result[T]) IsSuccess() bool {
	return r.status == Success
}

// Data returns the loaded data, or the zero value unless the query succeeded
func (r Result[T]) Data() T {
	return r.data
}

// Err returns the failure, if any
func (r Result[T]) Err() error {
	return r.err
}

// OrElse returns the data if successful, otherwise returns the alternative
func (r Result[T]) OrElse(alternative T) T {
	if r.status != Success {
		return alternative
	}
	return r.data
}

// MarshalJSON implements json.Marshaler
func (r Result[T]) MarshalJSON() ([]byte, error) {
	switch r.status {
	case Error:
		if de, ok := errors.As(r.err); ok {
			return json.Marshal(map[string]interface{}{
				"status": r.status.String(),
				"error":  de,
			})
		}
		return json.Marshal(map[string]interface{}{
			"status": r.status.String(),
			"error": map[string]string{
				"message": r.err.Error(),
			},
		})
	case Success:
		return json.Marshal(map[string]interface{}{
			"status": r.status.String(),
			"data":   r.data,
		})
	default:
		return json.Marshal(map[string]interface{}{
			"status": r.status.String(),
		})
	}
}
