// Package throttle provides an [http.RoundTripper] that paces
// outbound transfers using a token-bucket algorithm from
// [golang.org/x/time/rate].
//
// # Usage
//
// Wrap an existing transport with [New]:
//
//	rt, err := throttle.New(
//		10,  // requests per second
//		5,   // burst capacity
//		func() *slog.Logger { return slog.Default() },
//		http.DefaultTransport,
//	)
//	httpClient := &http.Client{Transport: rt}
//
// When the bucket is exhausted, outbound requests block until a token
// becomes available or the request context ends. The throttle bounds
// request rate only; it places no limit on how many transfers are in
// flight at once.
package throttle
