package store

import (
	"encoding/json"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

// Stable keys; persisted stores must keep these across releases so a restarted
// process can resume the session.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyUser         = "user"
	KeyDeviceID     = "device_id"
)

// User is the employee profile returned by the backend with every credential.
// Fields the client does not model are preserved verbatim.
type User struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`

	raw json.RawMessage
}

type userFields User

func (u *User) UnmarshalJSON(data []byte) error {
	var fields userFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*u = User(fields)
	u.raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON writes the typed fields over the preserved document, so edits to
// them are kept along with fields the client does not model.
func (u User) MarshalJSON() ([]byte, error) {
	typed, err := json.Marshal(userFields(u))
	if err != nil || len(u.raw) == 0 {
		return typed, err
	}
	merged := map[string]json.RawMessage{}
	if err = json.Unmarshal(u.raw, &merged); err != nil {
		return typed, nil
	}
	for _, key := range []string{"id", "name", "email", "role"} {
		delete(merged, key)
	}
	var fields map[string]json.RawMessage
	if err = json.Unmarshal(typed, &fields); err != nil {
		return nil, err
	}
	for key, value := range fields {
		merged[key] = value
	}
	return json.Marshal(merged)
}

// Credential is the access/refresh token pair plus the profile it was issued for.
type Credential struct {
	AccessToken  string
	RefreshToken string
	User         *User
}

// Valid reports whether both tokens are present.
func (c *Credential) Valid() bool {
	return c != nil && c.AccessToken != "" && c.RefreshToken != ""
}

// ExpiresAt returns the exp claim of the access token when it is a JWT.
// The signature is not verified, the client holds no key.
func (c *Credential) ExpiresAt() (time.Time, bool) {
	if c == nil {
		return time.Time{}, false
	}
	return TokenExpiry(c.AccessToken)
}

// Token adapts the credential to oauth2.
func (c *Credential) Token() *oauth2.Token {
	token := &oauth2.Token{
		AccessToken:  c.AccessToken,
		RefreshToken: c.RefreshToken,
		TokenType:    "Bearer",
	}
	if expiry, ok := c.ExpiresAt(); ok {
		token.Expiry = expiry
	}
	return token
}

// TokenExpiry extracts exp from an unverified JWT; opaque tokens report false.
func TokenExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

func (c *Credential) entries() (map[string]string, error) {
	entries := map[string]string{
		KeyAccessToken:  c.AccessToken,
		KeyRefreshToken: c.RefreshToken,
	}
	if c.User != nil {
		data, err := json.Marshal(c.User)
		if err != nil {
			return nil, err
		}
		entries[KeyUser] = string(data)
	}
	return entries, nil
}

func credentialFrom(values map[string]string) (*Credential, error) {
	ret := &Credential{
		AccessToken:  values[KeyAccessToken],
		RefreshToken: values[KeyRefreshToken],
	}
	if !ret.Valid() {
		return nil, nil
	}
	if data := values[KeyUser]; data != "" {
		ret.User = &User{}
		if err := json.Unmarshal([]byte(data), ret.User); err != nil {
			return nil, err
		}
	}
	return ret, nil
}
