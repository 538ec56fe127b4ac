// Package transport implements an http.RoundTripper that attaches the stored
// bearer token to outgoing requests and transparently recovers from
// `401 Unauthorized` by refreshing the credential.
//
// Refresh is single-flight: however many requests fail at once, one refresh
// call is made and every waiting request is released with its outcome, in
// arrival order. A request is replayed at most once. When no credential can be
// obtained the store is cleared and registered SessionObserver values are told
// the session expired.
package transport
