// Package client talks to the SnowballR backend over gRPC.
//
// GRPCClient selects the JSON codec for every call, keeps the token pair
// handed out by Register and Login, and attaches the access token to the
// outgoing metadata. When the server rejects the access token the client
// renews the session once with its refresh token and retries.
//
// Status codes are mapped to the sentinel errors ErrUnauthorized,
// ErrUnavailable, ErrNotFound and ErrRejected, which callers match with
// errors.Is.
package client
