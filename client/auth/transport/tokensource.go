package transport

import (
	"context"

	"golang.org/x/oauth2"
)

type tokenSource struct {
	ctx context.Context
	rt  *RoundTripper
}

// TokenSource exposes the managed credential to oauth2-aware code. A locally
// expired token goes through the same single-flight refresh as requests do.
func (r *RoundTripper) TokenSource(ctx context.Context) oauth2.TokenSource {
	return &tokenSource{ctx: ctx, rt: r}
}

func (s *tokenSource) Token() (*oauth2.Token, error) {
	credential, err := s.rt.store.LoadCredential(s.ctx)
	if err != nil {
		return nil, err
	}
	if credential == nil {
		return nil, ErrSessionExpired
	}
	if !s.rt.expired(credential.AccessToken) {
		return credential.Token(), nil
	}
	if _, err = s.rt.awaitToken(s.ctx, credential.AccessToken); err != nil {
		return nil, err
	}
	if credential, err = s.rt.store.LoadCredential(s.ctx); err != nil {
		return nil, err
	}
	if credential == nil {
		return nil, ErrSessionExpired
	}
	return credential.Token(), nil
}
