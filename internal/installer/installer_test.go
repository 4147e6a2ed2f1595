package installer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/ImSingee/go-ex/ee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultget/vaultget/internal/config"
	"github.com/vaultget/vaultget/internal/vault"
)

// releaseServer serves release assets under
// /<owner>/<repo>/releases/download/<tag>/<file>.
func releaseServer(t *testing.T, assets map[string]string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		content, ok := assets[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(content))
	}))
	t.Cleanup(server.Close)

	return server
}

func TestInstall(t *testing.T) {
	server := releaseServer(t, map[string]string{
		"/alice/foo-repo/releases/download/1.2.0/main.js":       "main",
		"/alice/foo-repo/releases/download/1.2.0/manifest.json": `{"id":"foo","version":"1.2.0"}`,
		// no styles.css published
	})

	vaultDir := t.TempDir()
	ins := &Installer{Vault: vaultDir, BaseURL: server.URL}

	cfg := &config.PluginConfig{ID: "foo", Repo: "alice/foo-repo", ReleaseTag: "1.2.0"}
	result := ins.Install(context.Background(), cfg, nil)

	require.True(t, result.OK(), "install should succeed: %v", result.Err)
	assert.Equal(t, "1.2.0", result.Tag)

	require.Len(t, result.Files, 3)
	assert.Equal(t, FileInstalled, result.Files[0].Status)
	assert.Equal(t, FileInstalled, result.Files[1].Status)
	assert.Equal(t, FileMissing, result.Files[2].Status)

	pluginDir := filepath.Join(vault.PluginsDir(vaultDir), "foo")
	data, err := os.ReadFile(filepath.Join(pluginDir, "main.js"))
	require.NoError(t, err)
	assert.Equal(t, "main", string(data))

	_, err = os.Stat(filepath.Join(pluginDir, "styles.css"))
	assert.True(t, os.IsNotExist(err), "styles.css must not be written")
}

func TestInstallTagFallsBackToInstalledVersion(t *testing.T) {
	server := releaseServer(t, map[string]string{
		"/alice/foo-repo/releases/download/0.9.1/main.js": "main",
	})

	ins := &Installer{Vault: t.TempDir(), BaseURL: server.URL}

	cfg := &config.PluginConfig{ID: "foo", Repo: "alice/foo-repo"}
	installed := &vault.PluginInfo{Manifest: &vault.Manifest{ID: "foo", Version: "0.9.1"}}

	result := ins.Install(context.Background(), cfg, installed)
	require.True(t, result.OK(), "install should succeed: %v", result.Err)
	assert.Equal(t, "0.9.1", result.Tag)
}

func TestInstallRequiredFileMissing(t *testing.T) {
	server := releaseServer(t, map[string]string{
		"/alice/foo-repo/releases/download/1.0.0/manifest.json": "{}",
	})

	vaultDir := t.TempDir()
	ins := &Installer{Vault: vaultDir, BaseURL: server.URL}

	cfg := &config.PluginConfig{ID: "foo", Repo: "alice/foo-repo", ReleaseTag: "1.0.0"}
	result := ins.Install(context.Background(), cfg, nil)

	require.False(t, result.OK())

	var downloadErr *DownloadError
	require.True(t, errors.As(result.Err, &downloadErr))
	assert.Equal(t, MainFile, downloadErr.File)
	assert.Equal(t, http.StatusNotFound, downloadErr.Status)

	// the optional files must not even be attempted
	require.Len(t, result.Files, 1)
}

func TestInstallOptionalFileFailureIsSuppressed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if filepath.Base(r.URL.Path) == MainFile {
			_, _ = w.Write([]byte("main"))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	ins := &Installer{Vault: t.TempDir(), BaseURL: server.URL}

	cfg := &config.PluginConfig{ID: "foo", Repo: "alice/foo-repo", ReleaseTag: "1.0.0"}
	result := ins.Install(context.Background(), cfg, nil)

	require.True(t, result.OK(), "optional failures must not fail the install: %v", result.Err)
	assert.Equal(t, FileInstalled, result.Files[0].Status)
	assert.Equal(t, FileFailed, result.Files[1].Status)
	assert.Error(t, result.Files[1].Err)
}

func TestInstallWithoutRepo(t *testing.T) {
	ins := New(t.TempDir())

	result := ins.Install(context.Background(), &config.PluginConfig{ID: "foo"}, nil)
	require.False(t, result.OK())
	assert.True(t, ee.Is(result.Err, ErrNoRepo))
	assert.Empty(t, result.Files)
}

func TestInstallWithoutTag(t *testing.T) {
	ins := New(t.TempDir())

	cfg := &config.PluginConfig{ID: "foo", Repo: "alice/foo-repo"}
	result := ins.Install(context.Background(), cfg, nil)

	require.False(t, result.OK())
	assert.True(t, ee.Is(result.Err, ErrNoTag))
}

func TestInstallRunsPostInstallHook(t *testing.T) {
	server := releaseServer(t, map[string]string{
		"/alice/foo-repo/releases/download/1.0.0/main.js": "main",
	})

	vaultDir := t.TempDir()
	ins := &Installer{Vault: vaultDir, BaseURL: server.URL}

	cfg := &config.PluginConfig{
		ID:          "foo",
		Repo:        "alice/foo-repo",
		ReleaseTag:  "1.0.0",
		PostInstall: "touch hook-ran",
	}

	result := ins.Install(context.Background(), cfg, nil)
	require.True(t, result.OK())
	require.NoError(t, result.HookErr)

	_, err := os.Stat(filepath.Join(vault.PluginsDir(vaultDir), "foo", "hook-ran"))
	assert.NoError(t, err)
}

func TestInstallHookFailureDoesNotFailInstall(t *testing.T) {
	server := releaseServer(t, map[string]string{
		"/alice/foo-repo/releases/download/1.0.0/main.js": "main",
	})

	ins := &Installer{Vault: t.TempDir(), BaseURL: server.URL}

	cfg := &config.PluginConfig{
		ID:          "foo",
		Repo:        "alice/foo-repo",
		ReleaseTag:  "1.0.0",
		PostInstall: "false",
	}

	result := ins.Install(context.Background(), cfg, nil)
	require.True(t, result.OK())
	assert.Error(t, result.HookErr)
}
