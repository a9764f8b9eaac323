package errors

import "errors"

var (
	// ErrUpstreamService indicates the external completion endpoint failed
	ErrUpstreamService = errors.New("upstream service failure")

	// ErrInvalidResponseShape indicates the completion response was not the expected JSON shape
	ErrInvalidResponseShape = errors.New("invalid response shape from completion endpoint")

	// ErrAuthFailed indicates the hosted auth provider rejected the request
	ErrAuthFailed = errors.New("authentication failed")
)
