package installer

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ImSingee/go-ex/ee"

	"github.com/vaultget/vaultget/internal/config"
	"github.com/vaultget/vaultget/internal/lib/shells"
	"github.com/vaultget/vaultget/internal/vault"
)

// The release asset triplet every obsidian plugin publishes.
const (
	MainFile     = "main.js"
	ManifestFile = "manifest.json"
	StylesFile   = "styles.css"
)

const DefaultBaseURL = "https://github.com"

// ErrNoRepo means a plugin has no github repo configured.
var ErrNoRepo = ee.New("github repo is required")

// ErrNoTag means there is neither a configured release tag nor an
// installed version to fall back to.
var ErrNoTag = ee.New("no release tag configured and no installed version to use instead")

type Installer struct {
	Vault string // vault root directory

	// BaseURL is the release host ("https://github.com" unless overridden
	// for tests).
	BaseURL string
}

func New(vaultDir string) *Installer {
	return &Installer{Vault: vaultDir, BaseURL: DefaultBaseURL}
}

// Install downloads one plugin's release files into the vault.
//
// installed is the currently installed plugin with the same id, if any;
// its version is the fallback release tag. The three files are fetched
// sequentially: main.js is required, manifest.json and styles.css are
// optional. Install reports every outcome through the returned result
// and never panics.
func (ins *Installer) Install(ctx context.Context, cfg *config.PluginConfig, installed *vault.PluginInfo) *InstallResult {
	result := &InstallResult{PluginID: cfg.ID, Repo: cfg.Repo}

	if cfg.Repo == "" {
		result.Err = ErrNoRepo
		return result
	}

	tag := cfg.ReleaseTag
	if tag == "" && installed != nil && installed.Manifest != nil {
		tag = installed.Manifest.Version
	}
	if tag == "" {
		result.Err = ErrNoTag
		return result
	}
	result.Tag = tag

	dir := filepath.Join(vault.PluginsDir(ins.Vault), cfg.ID)

	files := []struct {
		name     string
		optional bool
	}{
		{MainFile, false},
		{ManifestFile, true},
		{StylesFile, true},
	}

	for _, file := range files {
		fr := ins.fetchOne(ctx, cfg, tag, dir, file.name, file.optional)
		result.Files = append(result.Files, fr)

		if !file.optional && fr.Err != nil {
			result.Err = fr.Err
			return result
		}
	}

	if cfg.PostInstall != "" {
		result.HookErr = ins.runPostInstall(ctx, cfg, dir)
	}

	return result
}

func (ins *Installer) fetchOne(ctx context.Context, cfg *config.PluginConfig, tag, dir, name string, optional bool) FileResult {
	fr := FileResult{Name: name, Optional: optional}

	fileURL, err := ins.releaseURL(cfg.Repo, tag, name)
	if err != nil {
		fr.Status = FileFailed
		fr.Err = err
		return fr
	}

	notFound, err := fetchFile(ctx, fileURL, dir, name)
	switch {
	case err != nil:
		fr.Status = FileFailed
		fr.Err = err
		if optional {
			slog.Warn("cannot download optional plugin file", "plugin", cfg.ID, "file", name, "error", err)
		}
	case notFound && optional:
		fr.Status = FileMissing
		slog.Debug("optional plugin file is not published", "plugin", cfg.ID, "file", name, "url", fileURL)
	case notFound:
		fr.Status = FileFailed
		fr.Err = &DownloadError{File: name, URL: fileURL, Status: http.StatusNotFound}
	default:
		fr.Status = FileInstalled
	}

	return fr
}

func (ins *Installer) releaseURL(repo, tag, name string) (string, error) {
	base := ins.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}

	u, err := url.JoinPath(base, repo, "releases/download", tag, name)
	if err != nil {
		return "", ee.Wrapf(err, "cannot build release url for %s@%s", repo, tag)
	}

	return u, nil
}

func (ins *Installer) runPostInstall(ctx context.Context, cfg *config.PluginConfig, dir string) error {
	args, err := shells.Split(cfg.PostInstall)
	if err != nil {
		return ee.Wrapf(err, "cannot parse post-install command `%s`", cfg.PostInstall)
	}
	if len(args) == 0 {
		return nil
	}

	slog.Debug("run post-install hook", "plugin", cfg.ID, "command", shells.Join(args))

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return ee.Wrapf(err, "post-install hook %s failed: %s", shells.Join(args), strings.TrimSpace(string(out)))
	}

	return nil
}
