package cli

import "time"

type Options struct {
	Config      string        `short:"c" long:"config" description:"yaml config file URL"`
	URL         string        `short:"u" long:"url" description:"api base url"`
	Store       string        `short:"s" long:"store" description:"credential store" choice:"memory" choice:"file" choice:"secure"`
	StoreURL    string        `long:"store-url" description:"credential store location"`
	Key         string        `short:"k" long:"key" description:"secure store encryption key, e.g. blowfish://default"`
	Timeout     time.Duration `short:"t" long:"timeout" description:"request timeout"`
	RefreshPath string        `long:"refresh-path" description:"token refresh endpoint path"`
	LogLevel    string        `long:"log-level" description:"debug|info|warn|error"`
	LogFormat   string        `long:"log-format" description:"text|json"`
	LogFile     string        `long:"log-file" description:"log file, stderr when empty"`

	Login    LoginOptions  `command:"login" description:"request a one-time password"`
	Verify   VerifyOptions `command:"verify" description:"verify the one-time password and sign in"`
	Restore  struct{}      `command:"restore" description:"resume the saved session after verification"`
	Session  struct{}      `command:"session" description:"print the saved session"`
	PunchIn  PunchOptions  `command:"punch-in" description:"punch in with location and selfie"`
	PunchOut PunchOptions  `command:"punch-out" description:"punch out with location and selfie"`
	History  struct{}      `command:"history" description:"print attendance history"`
	Today    struct{}      `command:"today" description:"print today's attendance"`
	Token    TokenOptions  `command:"token" description:"print the access token, refreshing when expired"`
	Logout   struct{}      `command:"logout" description:"sign out and clear the saved credential"`
}

type LoginOptions struct {
	Email string `short:"e" long:"email" description:"account email" required:"true"`
}

type VerifyOptions struct {
	Email string `short:"e" long:"email" description:"account email" required:"true"`
	OTP   string `short:"o" long:"otp" description:"one-time password" required:"true"`
}

type PunchOptions struct {
	Latitude  float64 `long:"lat" description:"latitude" required:"true"`
	Longitude float64 `long:"lng" description:"longitude" required:"true"`
	Address   string  `short:"a" long:"address" description:"address" required:"true"`
	Image     string  `short:"i" long:"image" description:"selfie image URL or path" required:"true"`
}

type TokenOptions struct {
	JSON bool `long:"json" description:"print the oauth2 token as json"`
}
