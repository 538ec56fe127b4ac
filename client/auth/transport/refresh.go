package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/DevendraPaulmerchants/Sprenza/client/auth/store"
)

// AuthPayload is the envelope the backend returns from OTP verification and
// token refresh.
type AuthPayload struct {
	Message string `json:"message,omitempty"`
	Data    struct {
		Tokens struct {
			Access struct {
				Token string `json:"token"`
			} `json:"access"`
			Refresh struct {
				Token string `json:"token"`
			} `json:"refresh"`
		} `json:"tokens"`
		User *store.User `json:"user,omitempty"`
	} `json:"data"`
}

// Credential returns the token pair; both tokens are taken from the payload,
// rotation is never assumed either way.
func (p *AuthPayload) Credential() (*store.Credential, error) {
	ret := &store.Credential{
		AccessToken:  p.Data.Tokens.Access.Token,
		RefreshToken: p.Data.Tokens.Refresh.Token,
		User:         p.Data.User,
	}
	if !ret.Valid() {
		return nil, fmt.Errorf("auth payload missing tokens")
	}
	return ret, nil
}

// DecodeAuthPayload parses an auth envelope into a credential.
func DecodeAuthPayload(data []byte) (*store.Credential, error) {
	payload := &AuthPayload{}
	if err := json.Unmarshal(data, payload); err != nil {
		return nil, fmt.Errorf("failed to decode auth payload: %w", err)
	}
	return payload.Credential()
}

// refresh exchanges the stored refresh token; on any failure the session is
// expired before returning so waiters never see a half-cleared store.
func (r *RoundTripper) refresh(ctx context.Context) (string, error) {
	started := time.Now()
	refreshToken, _, err := r.store.Get(ctx, store.KeyRefreshToken)
	if err != nil || refreshToken == "" {
		if err != nil {
			r.logger.Error("failed to read refresh token", slog.String("error", err.Error()))
		}
		r.recorder.RefreshCompleted(RefreshSkipped, time.Since(started))
		r.expire(ctx, ReasonNoRefreshToken)
		return "", ErrSessionExpired
	}

	// The exchange must not be cancelled by whichever caller happened to
	// trigger it, others may be queued behind it.
	refreshCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.refreshTimeout)
	defer cancel()
	credential, err := r.exchange(refreshCtx, refreshToken)
	if err == nil {
		err = r.store.SaveCredential(refreshCtx, credential)
	}
	if err != nil {
		r.logger.Error("token refresh failed", slog.String("error", err.Error()))
		r.recorder.RefreshCompleted(RefreshFailed, time.Since(started))
		r.expire(ctx, ReasonRefreshFailed)
		return "", fmt.Errorf("%w: %v", ErrSessionExpired, err)
	}

	r.mux.Lock()
	r.notified = false
	r.mux.Unlock()
	r.recorder.RefreshCompleted(RefreshSucceeded, time.Since(started))
	r.logger.Info("successfully refreshed token", slog.String("token_prefix", preview(credential.AccessToken)))
	return credential.AccessToken, nil
}

func (r *RoundTripper) exchange(ctx context.Context, refreshToken string) (*store.Credential, error) {
	body, err := json.Marshal(map[string]string{"refreshToken": refreshToken})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.refreshURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := r.transport.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var failure struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(data, &failure)
		if failure.Message == "" {
			failure.Message = http.StatusText(resp.StatusCode)
		}
		return nil, fmt.Errorf("refresh endpoint returned %d: %s", resp.StatusCode, failure.Message)
	}
	return DecodeAuthPayload(data)
}

// expire clears the store and notifies observers once per session.
func (r *RoundTripper) expire(ctx context.Context, reason Reason) {
	ctx = context.WithoutCancel(ctx)
	if err := r.store.Clear(ctx); err != nil {
		r.logger.Error("failed to clear credential store", slog.String("error", err.Error()))
	}
	r.mux.Lock()
	notify := !r.notified
	r.notified = true
	observers := append([]SessionObserver(nil), r.observers...)
	r.mux.Unlock()
	if !notify {
		return
	}
	r.logger.Warn("session expired", slog.String("reason", string(reason)))
	r.recorder.SessionExpired(reason)
	for _, observer := range observers {
		observer.OnSessionExpired(ctx, reason)
	}
}

// SaveCredential stores a credential obtained outside the refresh protocol
// (login, OTP verification) and re-arms session-expiry notification.
func (r *RoundTripper) SaveCredential(ctx context.Context, credential *store.Credential) error {
	if err := r.store.SaveCredential(ctx, credential); err != nil {
		return err
	}
	r.mux.Lock()
	r.notified = false
	r.mux.Unlock()
	return nil
}

// Logout clears the credential without notifying observers; the user asked for it.
func (r *RoundTripper) Logout(ctx context.Context) error {
	r.mux.Lock()
	r.notified = true
	r.mux.Unlock()
	return r.store.Clear(ctx)
}

func preview(token string) string {
	if len(token) > 12 {
		return token[:12] + "..."
	}
	return token
}
