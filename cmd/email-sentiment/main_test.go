package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mikey/email-sentiment/internal/core"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCommand executes the root command against a file cache in dir
func runCommand(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()

	configPath := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(configPath); err != nil {
		content := "cache:\n" +
			"  type: file\n" +
			"  timestamp_path: " + filepath.Join(dir, "last_fetch_time.txt") + "\n" +
			"  snapshot_path: " + filepath.Join(dir, "email_cache.json") + "\n"
		require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))
	}

	// Flags are package state; reset them between runs
	configFile, verbose, jsonLog, jsonOutput = "", false, false, false
	fetchProvider, fetchUser, fetchPassword, fetchPasswordStdin = "gmail", "", "", false
	app = nil

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", configPath}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestStatusFirstRun(t *testing.T) {
	dir := t.TempDir()

	out, err := runCommand(t, dir, "status")
	require.NoError(t, err)

	assert.Contains(t, out, "never")
	assert.NotContains(t, out, "expired")

	// The expiry step stamps the window start and persists an empty snapshot
	data, err := os.ReadFile(filepath.Join(dir, "email_cache.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))
	_, err = os.Stat(filepath.Join(dir, "last_fetch_time.txt"))
	assert.NoError(t, err)
}

func TestDomainsAndAnalyzeFromCache(t *testing.T) {
	dir := t.TempDir()
	_, err := runCommand(t, dir, "status")
	require.NoError(t, err)

	snapshot := `{"example.com":["hello","again"],"Unknown":["anon"]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "email_cache.json"), []byte(snapshot), 0o600))

	out, err := runCommand(t, dir, "--json", "domains")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"domain":"Unknown","messages":1},{"domain":"example.com","messages":2}]`, out)

	out, err = runCommand(t, dir, "analyze", "nobody.example")
	require.NoError(t, err)
	assert.Contains(t, out, "No emails found")

	var decoded map[string]interface{}
	out, err = runCommand(t, dir, "--json", "analyze", "quiet.example")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, true, decoded["no_data"])
	assert.Equal(t, 3.0, decoded["score"])
}

func TestAnalyzeAcceptsAddress(t *testing.T) {
	model := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[[{"label":"4 stars","score":0.9}]]`))
	}))
	defer model.Close()

	dir := t.TempDir()
	content := "cache:\n" +
		"  type: file\n" +
		"  timestamp_path: " + filepath.Join(dir, "last_fetch_time.txt") + "\n" +
		"  snapshot_path: " + filepath.Join(dir, "email_cache.json") + "\n" +
		"huggingface:\n" +
		"  base_url: " + model.URL + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600))

	_, err := runCommand(t, dir, "status")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "email_cache.json"), []byte(`{"example.com":["hello"]}`), 0o600))

	out, err := runCommand(t, dir, "--json", "analyze", "alice@example.com")
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "example.com", decoded["domain"])
	assert.Equal(t, false, decoded["no_data"])
	assert.Equal(t, 4.0, decoded["score"])

	out, err = runCommand(t, dir, "--json", "analyze", "bob@missing.example")
	require.NoError(t, err)
	decoded = nil
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "missing.example", decoded["domain"])
	assert.Equal(t, true, decoded["no_data"])
}

func TestFetchRequiresUser(t *testing.T) {
	_, err := runCommand(t, t.TempDir(), "fetch", "--provider", "gmail")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--user")
}

func TestFetchUnknownProvider(t *testing.T) {
	_, err := runCommand(t, t.TempDir(), "fetch", "--provider", "yahoo", "--user", "me@example.com", "--password", "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrUnknownProvider)
	assert.Contains(t, describeError(err), "gmail, outlook")
}

func TestReadSecret(t *testing.T) {
	cmd := &cobra.Command{}

	fetchPassword, fetchPasswordStdin = "from-flag", false
	secret, err := readSecret(cmd)
	require.NoError(t, err)
	assert.Equal(t, "from-flag", secret)

	fetchPassword, fetchPasswordStdin = "", true
	cmd.SetIn(strings.NewReader("from-stdin\r\nignored\n"))
	secret, err = readSecret(cmd)
	require.NoError(t, err)
	assert.Equal(t, "from-stdin", secret)

	fetchPassword, fetchPasswordStdin = "", false
	t.Setenv("EMAIL_SENTIMENT_PASSWORD", "from-env")
	secret, err = readSecret(cmd)
	require.NoError(t, err)
	assert.Equal(t, "from-env", secret)

	t.Setenv("EMAIL_SENTIMENT_PASSWORD", "")
	_, err = readSecret(cmd)
	assert.Error(t, err)
}

func TestDescribeError(t *testing.T) {
	auth := core.NewFetchError(core.AuthError, "login", errors.New("AUTHENTICATIONFAILED"))
	assert.Contains(t, describeError(auth), "login rejected")

	conn := core.NewFetchError(core.ConnectionError, "connect", errors.New("no route"))
	assert.Contains(t, describeError(conn), "could not reach")

	proto := core.NewFetchError(core.ProtocolError, "fetch", errors.New("BAD"))
	assert.Contains(t, describeError(proto), "during fetch")

	assert.Equal(t, "plain", describeError(errors.New("plain")))
}
