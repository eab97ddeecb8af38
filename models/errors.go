package models

import "fmt"

type ErrorKind string

const (
	KindValidation    ErrorKind = "ValidationError"
	KindUpstream      ErrorKind = "UpstreamError"
	KindAssetNotFound ErrorKind = "AssetNotFound"
	KindAssetRead     ErrorKind = "AssetReadError"
	KindInternal      ErrorKind = "InternalError"
)

// ValidationError reports a missing or malformed submission field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Kind() ErrorKind { return KindValidation }

// UpstreamError reports a failed call to the payment provider.
type UpstreamError struct {
	Operation  string
	StatusCode int
	ErrorCode  string
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Operation, e.Err)
	case e.ErrorCode != "":
		return fmt.Sprintf("%s: provider returned %d (%s): %s", e.Operation, e.StatusCode, e.ErrorCode, e.Message)
	default:
		return fmt.Sprintf("%s: provider returned %d: %s", e.Operation, e.StatusCode, e.Message)
	}
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func (e *UpstreamError) Kind() ErrorKind { return KindUpstream }

// AssetError reports a static asset that could not be served.
type AssetError struct {
	NotFound bool
	Path     string
	Err      error
}

func (e *AssetError) Error() string {
	if e.NotFound {
		return fmt.Sprintf("asset %s not found", e.Path)
	}
	return fmt.Sprintf("reading asset %s: %v", e.Path, e.Err)
}

func (e *AssetError) Unwrap() error { return e.Err }

func (e *AssetError) Kind() ErrorKind {
	if e.NotFound {
		return KindAssetNotFound
	}
	return KindAssetRead
}

// ErrorBody is the structured error returned by every JSON endpoint.
type ErrorBody struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}
