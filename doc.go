// Package sprenza provides the client side of the Sprenza attendance API.
//
// The package wires the building blocks into one composition root:
//  1. client – authenticated HTTP client with single-flight token refresh,
//  2. client/auth – OTP sign-in, verified session restore and logout,
//  3. attendance – punch-in/out uploads, history and today's state.
//
// Options can be populated from a yaml file, making it straightforward to
// run the CLI or embed the services in another program.
//
// Example:
//
//	srv, _ := sprenza.New(ctx, &sprenza.Options{BaseURL: "https://api.example.com/api/v1"})
//	_, _ = srv.Auth.SendOTP(ctx, "asha@example.com")
//	session, _ := srv.Auth.VerifyOTP(ctx, "asha@example.com", otp)
//	today, _ := srv.Attendance.Today(ctx)
package sprenza
