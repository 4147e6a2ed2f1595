package vault

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ImSingee/go-ex/exjson"
	"github.com/ysmood/gson"
)

const ManifestFileName = "manifest.json"

// Manifest is the metadata file every installed plugin carries.
type Manifest struct {
	ID          string
	Name        string
	Version     string
	Author      string
	Description string
}

// PluginInfo describes one installed plugin. It is rebuilt on every scan
// and never persisted.
type PluginInfo struct {
	Dir string // the plugin's folder

	// Manifest is nil when manifest.json is missing or malformed.
	// Callers decide how to render an unknown plugin.
	Manifest *Manifest
}

// ID returns the plugin id, or "" when the manifest is unreadable.
func (p *PluginInfo) ID() string {
	if p.Manifest == nil {
		return ""
	}

	return p.Manifest.ID
}

// Scan lists every installed plugin of a vault.
//
// A plugin with an unreadable manifest is still listed (with a nil
// Manifest); an inaccessible plugins directory yields an empty result.
// Scan never fails.
func Scan(vaultDir string) []*PluginInfo {
	dir := PluginsDir(vaultDir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Debug("no plugins directory", "dir", dir)
		} else {
			slog.Error("cannot list plugins directory", "dir", dir, "error", err)
		}

		return nil
	}

	plugins := make([]*PluginInfo, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		pluginDir := filepath.Join(dir, entry.Name())
		plugins = append(plugins, &PluginInfo{
			Dir:      pluginDir,
			Manifest: readManifest(filepath.Join(pluginDir, ManifestFileName)),
		})
	}

	return plugins
}

func readManifest(filename string) *Manifest {
	var obj map[string]any
	if err := exjson.Read(filename, &obj); err != nil {
		slog.Debug("cannot read plugin manifest", "file", filename, "error", err)
		return nil
	}

	m := gson.New(obj).Map()
	manifest := &Manifest{
		ID:          stringField(m, "id"),
		Name:        stringField(m, "name"),
		Version:     stringField(m, "version"),
		Author:      stringField(m, "author"),
		Description: stringField(m, "description"),
	}

	if manifest.ID == "" {
		slog.Debug("plugin manifest has no id", "file", filename)
		return nil
	}

	return manifest
}

func stringField(m map[string]gson.JSON, key string) string {
	s, _ := m[key].Val().(string)
	return s
}
