package fetchq

import (
	"github.com/adamwoolhether/fetchq/engine"
)

// ————————————————————————————————————————————————————————————————————
// Type aliases – re-export user-facing types from [engine].
// ————————————————————————————————————————————————————————————————————

type (
	// Response is the outcome of one submitted URL.
	Response = engine.Response
)

// StatusTransportError is the sentinel status code marking a
// transport-level failure, distinct from any valid HTTP status.
const StatusTransportError = engine.StatusTransportError

// ————————————————————————————————————————————————————————————————————
// Sentinel errors
// ————————————————————————————————————————————————————————————————————

var (
	// ErrEngineClosed indicates the engine has been shut down.
	ErrEngineClosed = engine.ErrEngineClosed

	// ErrAlreadyStarted indicates a second start of the same engine.
	ErrAlreadyStarted = engine.ErrAlreadyStarted
)
