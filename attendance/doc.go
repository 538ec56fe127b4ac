// Package attendance wraps the attendance endpoints: punch-in and punch-out
// as multipart uploads, history and today's state.
package attendance
