package client

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Response is a fully read API response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode <= 299
}

// Decode unmarshals the whole body into v.
func (r *Response) Decode(v interface{}) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// DecodeData unmarshals the `data` member of the standard envelope into v.
func (r *Response) DecodeData(v interface{}) error {
	envelope := struct {
		Data json.RawMessage `json:"data"`
	}{}
	if err := r.Decode(&envelope); err != nil {
		return err
	}
	if len(envelope.Data) == 0 {
		return fmt.Errorf("response had no data")
	}
	if err := json.Unmarshal(envelope.Data, v); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}
	return nil
}

// Message returns the server message, if any.
func (r *Response) Message() string {
	envelope := struct {
		Message string `json:"message"`
	}{}
	_ = json.Unmarshal(r.Body, &envelope)
	return envelope.Message
}

// Err returns nil for 2xx, otherwise an *APIError with the server message.
func (r *Response) Err() error {
	if r.OK() {
		return nil
	}
	message := r.Message()
	if message == "" {
		message = http.StatusText(r.StatusCode)
	}
	return &APIError{StatusCode: r.StatusCode, Message: message, Body: r.Body}
}
