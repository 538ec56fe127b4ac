package client

import (
	"context"
)

// Interface defines the authenticated API operations used by endpoint packages
type Interface interface {
	// Get issues a GET request
	Get(ctx context.Context, path string, options ...RequestOption) (*Response, error)

	// Post issues a POST request with a JSON body
	Post(ctx context.Context, path string, body interface{}, options ...RequestOption) (*Response, error)

	// Put issues a PUT request with a JSON body
	Put(ctx context.Context, path string, body interface{}, options ...RequestOption) (*Response, error)

	// Delete issues a DELETE request
	Delete(ctx context.Context, path string, options ...RequestOption) (*Response, error)

	// Upload posts a multipart form
	Upload(ctx context.Context, path string, form *Form, options ...RequestOption) (*Response, error)
}

var _ Interface = (*Client)(nil)
