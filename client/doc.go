// Package client implements the authenticated HTTP client of the attendance API.
//
// It is a thin façade over the auth transport and adds:
//   - JSON and multipart request helpers (`Get`, `Post`, `Put`, `Delete`, `Upload`).
//   - Fully read responses with `Decode`, `DecodeData` and `Err` helpers.
//   - A small error taxonomy: *TransportError for network failures,
//     ErrSessionExpired when the session could not be recovered and *APIError
//     for any other non-2xx status.
//
// A 401 never reaches the caller directly: the request waits for the single
// shared token refresh and is replayed once.
//
// Example:
//
//	cli, _ := client.New("https://api.example.com/api/v1",
//		client.WithStore(secureStore),
//		client.WithSessionObserver(transport.ObserverFunc(onLogout)))
//	resp, err := cli.Get(ctx, "/attendance/today")
//	if errors.Is(err, client.ErrSessionExpired) {
//		// route to login
//	}
package client
