package engine

import "errors"

// StatusTransportError is the sentinel status code reported when a
// transfer fails below the HTTP layer (DNS resolution, connect, TLS,
// transport timeout). Any non-negative status code is the server's
// verbatim response; 4xx and 5xx are successful completions, not
// failures.
const StatusTransportError = -1

// Response is the outcome of one submitted URL. Exactly one Response
// is produced per submission, successful or not, and ownership passes
// to whichever caller receives it from [Engine.Poll].
type Response struct {
	// URL is the originating request URL, copied verbatim.
	URL string

	// StatusCode is the server-reported HTTP status, or
	// StatusTransportError when the transfer never completed at the
	// transport level.
	StatusCode int

	// Body holds the raw response bytes, nil for failed transfers.
	// Decoding is left to the caller.
	Body []byte
}

var (
	// ErrEngineClosed is returned by [Engine.Submit] and [Engine.Close]
	// once the engine has been shut down.
	ErrEngineClosed = errors.New("engine is closed")

	// ErrAlreadyStarted is returned by [Engine.Start] on a second call.
	ErrAlreadyStarted = errors.New("engine already started")
)
