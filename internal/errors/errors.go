// Copyright (c) 2025 dbxkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package errors defines typed errors with categories for user-friendly reporting.
// Commands branch on the Kind to decide how a failure is presented: an HTTP error
// carries the status and raw response body, a transport error carries the
// underlying cause.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// HTTPFailed indicates the remote API answered with a non-2xx status.
	HTTPFailed Kind = "http_error"
	// TransportFailed indicates the request never produced a usable response
	// (request construction, DNS, connect, timeout, undecodable body).
	TransportFailed Kind = "transport_error"
	// ConfigMissing indicates a required setting (host, token, warehouse) is absent.
	ConfigMissing Kind = "config_missing"
	// InvalidDocument indicates a space document could not be read or encoded.
	InvalidDocument Kind = "invalid_document"
)

// E wraps an error with kind and human-friendly message.
// StatusCode and Body are only set for HTTPFailed.
type E struct {
	Kind       Kind
	Message    string
	Err        error
	StatusCode int
	Body       string
}

func (e *E) Error() string {
	switch {
	case e.Kind == HTTPFailed:
		return fmt.Sprintf("%s: %s: status %d: %s", e.Kind, e.Message, e.StatusCode, e.Body)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
}

func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// HTTP builds an HTTPFailed error for the given status and raw body.
func HTTP(msg string, status int, body string) *E {
	return &E{Kind: HTTPFailed, Message: msg, StatusCode: status, Body: body}
}

// As returns the first *E in err's chain.
func As(err error) (*E, bool) {
	var e *E
	if stderrors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf reports the Kind of err, or "" when err carries none.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return ""
}
