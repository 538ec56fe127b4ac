// Package mock provides an in-memory attendance backend that facilitates
// testing of the authenticated client: OTP login, refresh-token rotation,
// logout and the protected attendance endpoints.
//
// Tokens are HS256 JWTs, so the client's local expiry check sees real exp
// claims. Tests can revoke access tokens to force 401 responses and inspect
// call counters.
package mock
