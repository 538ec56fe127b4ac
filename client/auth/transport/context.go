package transport

import "context"

type (
	contextKey string
)

const (
	// ContextAnonymousKey marks a request that must go out without credentials
	// and must not take part in the refresh protocol (OTP login, refresh itself).
	ContextAnonymousKey contextKey = "anonymous"
)

// Anonymous returns a context whose requests bypass bearer handling.
func Anonymous(ctx context.Context) context.Context {
	return context.WithValue(ctx, ContextAnonymousKey, true)
}

func isAnonymous(ctx context.Context) bool {
	if value := ctx.Value(ContextAnonymousKey); value != nil {
		anonymous, _ := value.(bool)
		return anonymous
	}
	return false
}
