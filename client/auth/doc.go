// Package auth implements the sign-in flows of the attendance API: OTP
// request and verification, verified resumption of a saved session and logout.
//
// Credentials obtained here are saved through the client so the refresh
// transport picks them up; everything after sign-in, refresh included, is
// handled by the `transport` sub-package.
package auth
