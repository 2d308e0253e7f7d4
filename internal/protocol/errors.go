package protocol

import "errors"

// ErrMalformed marks a wire frame that failed decoding: bad JSON, unknown
// tag, or a required field missing from the payload. The receiver drops the
// frame and keeps its loop running.
var ErrMalformed = errors.New("malformed message")
