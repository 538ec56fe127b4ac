package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sprenza "github.com/DevendraPaulmerchants/Sprenza"
	"github.com/DevendraPaulmerchants/Sprenza/cli"
	"github.com/DevendraPaulmerchants/Sprenza/client/auth"
	"github.com/DevendraPaulmerchants/Sprenza/client/auth/mock"
)

func newRunner(t *testing.T, kind string) (func(stdin string, args ...string) (string, error), *mock.HTTPTestAttendanceServer) {
	t.Helper()
	server, err := mock.NewHTTPTestAttendanceServer()
	require.NoError(t, err)
	t.Cleanup(server.Close)
	storeURL := filepath.Join(t.TempDir(), "credentials")
	base := []string{"-u", server.URL, "-s", kind, "--store-url", storeURL, "--log-level", "error"}
	return func(stdin string, args ...string) (string, error) {
		out := &bytes.Buffer{}
		err := cli.RunWithIO(context.Background(), append(append([]string{}, base...), args...), strings.NewReader(stdin), out)
		return out.String(), err
	}, server
}

func TestRun_AttendanceDay(t *testing.T) {
	run, server := newRunner(t, sprenza.StoreFile)

	out, err := run("", "login", "-e", "Asha@Example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "OTP sent to asha@example.com")

	out, err = run("", "verify", "-e", "asha@example.com", "-o", "123456")
	require.NoError(t, err)
	assert.Contains(t, out, `"emp-1"`)

	out, err = run("y\n", "restore")
	require.NoError(t, err)
	assert.Contains(t, out, "Authenticate to continue [y/N]: ")
	assert.Contains(t, out, `"Asha Verma"`)

	_, err = run("n\n", "restore")
	assert.Error(t, err)

	image := filepath.Join(t.TempDir(), "selfie.jpg")
	require.NoError(t, os.WriteFile(image, []byte{0xff, 0xd8, 0xff}, 0o600))
	server.ExpireAccessTokens()
	out, err = run("", "punch-in", "--lat", "12.9716", "--lng", "77.5946", "-a", "MG Road", "-i", image)
	require.NoError(t, err)
	var record struct {
		Status string `json:"status"`
		Image  string `json:"image"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &record))
	assert.Equal(t, "PRESENT", record.Status)
	assert.Equal(t, "selfie.jpg", record.Image)
	assert.EqualValues(t, 1, server.RefreshCalls.Load())

	out, err = run("", "today")
	require.NoError(t, err)
	assert.Contains(t, out, `"isCheckedIn": true`)

	out, err = run("", "history")
	require.NoError(t, err)
	assert.Contains(t, out, `"MG Road"`)

	out, err = run("", "token")
	require.NoError(t, err)
	assert.Equal(t, 3, len(strings.Split(strings.TrimSpace(out), ".")))

	_, err = run("", "logout")
	require.NoError(t, err)
	assert.EqualValues(t, 1, server.LogoutCalls.Load())
	_, err = run("", "session")
	assert.ErrorIs(t, err, auth.ErrNoSavedCredentials)
}

func TestRun_SecureStore(t *testing.T) {
	run, _ := newRunner(t, sprenza.StoreSecure)
	_, err := run("", "login", "-e", "asha@example.com")
	require.NoError(t, err)
	_, err = run("", "verify", "-e", "asha@example.com", "-o", "123456")
	require.NoError(t, err)
	out, err := run("", "session")
	require.NoError(t, err)
	assert.Contains(t, out, `"emp-1"`)
}

func TestRun_RequiresCommand(t *testing.T) {
	err := cli.RunWithIO(context.Background(), []string{"-u", "http://localhost"}, strings.NewReader(""), &bytes.Buffer{})
	assert.Error(t, err)
}

func TestNewConfig(t *testing.T) {
	location := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(location, []byte(`
baseURL: http://localhost:8080/api/v1
timeout: 10s
store:
  kind: file
  url: /tmp/sprenza/credentials.json
log:
  level: debug
`), 0o600))

	testCases := []struct {
		description string
		options     *cli.Options
		expect      func(t *testing.T, config *cli.Config)
	}{
		{
			description: "file only",
			options:     &cli.Options{Config: location},
			expect: func(t *testing.T, config *cli.Config) {
				assert.Equal(t, "http://localhost:8080/api/v1", config.BaseURL)
				assert.Equal(t, 10*time.Second, config.Timeout)
				assert.Equal(t, sprenza.StoreFile, config.Store.Kind)
				assert.Equal(t, "/auth/refresh-token", config.RefreshPath)
				assert.Equal(t, "blowfish://default", config.Store.Key)
				assert.Equal(t, "debug", config.Log.Level)
			},
		},
		{
			description: "flags override",
			options:     &cli.Options{Config: location, URL: "https://api.example.com", Store: sprenza.StoreMemory, RefreshPath: "/auth/refresh-tokens", Timeout: time.Minute},
			expect: func(t *testing.T, config *cli.Config) {
				assert.Equal(t, "https://api.example.com", config.BaseURL)
				assert.Equal(t, sprenza.StoreMemory, config.Store.Kind)
				assert.Equal(t, "/auth/refresh-tokens", config.RefreshPath)
				assert.Equal(t, time.Minute, config.Timeout)
			},
		},
		{
			description: "defaults",
			options:     &cli.Options{URL: "https://api.example.com"},
			expect: func(t *testing.T, config *cli.Config) {
				assert.Equal(t, sprenza.StoreSecure, config.Store.Kind)
				assert.Equal(t, 30*time.Second, config.Timeout)
				assert.Equal(t, "warn", config.Log.Level)
				assert.True(t, strings.HasSuffix(config.Store.URL, filepath.Join("sprenza", "credentials.enc")))
			},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			config, err := cli.NewConfig(context.Background(), testCase.options)
			require.NoError(t, err)
			testCase.expect(t, config)
		})
	}

	_, err := cli.NewConfig(context.Background(), &cli.Options{})
	assert.Error(t, err)
}
