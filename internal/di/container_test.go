package di

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mikey/email-sentiment/internal/core"
	"github.com/mikey/email-sentiment/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestBuildContainerResolvesService(t *testing.T) {
	path := writeConfig(t, "cache:\n  type: memory\nclassifier:\n  provider: openai\n")

	var out bytes.Buffer
	container, err := BuildContainer(Options{ConfigFile: path, Out: &out, JSONOutput: true})
	require.NoError(t, err)

	err = container.Invoke(func(service *core.SentimentService, presenter ports.Presenter) error {
		// The model is not built until something is classified, so a missing API key is fine here
		state, err := service.LoadSession(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 0.0, state.Fetch.LastFetchUnix)
		assert.Empty(t, state.Snapshot)
		return presenter.Domains(state.Snapshot.Domains(), nil)
	})
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, out.String())
}

func TestBuildContainerFileStore(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, "cache:\n  type: file\n  timestamp_path: "+filepath.Join(dir, "ts.txt")+
		"\n  snapshot_path: "+filepath.Join(dir, "snap.json")+"\n")

	container, err := BuildContainer(Options{ConfigFile: path, Out: &bytes.Buffer{}})
	require.NoError(t, err)

	err = container.Invoke(func(store core.CacheStore) error {
		return store.SaveTimestamp(context.Background(), 12.5)
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "ts.txt"))
	require.NoError(t, err)
	assert.Equal(t, "12.5", string(data))
}

func TestBuildContainerUnknownCacheType(t *testing.T) {
	path := writeConfig(t, "cache:\n  type: redis\n")

	container, err := BuildContainer(Options{ConfigFile: path})
	require.NoError(t, err)

	err = container.Invoke(func(store core.CacheStore) {})
	assert.Error(t, err)
}

func TestBuildContainerMissingConfigFile(t *testing.T) {
	container, err := BuildContainer(Options{ConfigFile: filepath.Join(t.TempDir(), "nope.yaml")})
	require.NoError(t, err)

	err = container.Invoke(func(service *core.SentimentService) {})
	assert.Error(t, err)
}
