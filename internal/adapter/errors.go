package adapter

import "errors"

// Transport-agnostic sentinel errors. mapHTTPError maps response status codes
// onto these so callers can classify failures with [errors.Is] without ever
// seeing a status code.
var (
	// ErrNetwork marks a transport-level failure (connection refused, DNS,
	// timeout): the request may never have reached the server. The sync
	// core treats it as "offline" — the mutation stays queued.
	ErrNetwork = errors.New("network error")

	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
)
