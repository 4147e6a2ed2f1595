package vault

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ImSingee/tt"
)

func TestScan(t *testing.T) {
	vaultDir := t.TempDir()

	writePlugin(t, vaultDir, "dataview", `{
		"id": "dataview",
		"name": "Dataview",
		"version": "0.5.64",
		"author": "Michael Brenan",
		"description": "Advanced queries"
	}`)
	writePlugin(t, vaultDir, "broken", `{not json`)
	writePlugin(t, vaultDir, "empty", "")

	// plugin folder without any manifest at all
	err := os.MkdirAll(filepath.Join(PluginsDir(vaultDir), "bare"), 0755)
	tt.AssertEqual(t, nil, err)

	// stray file next to the plugin folders is ignored
	err = os.WriteFile(filepath.Join(PluginsDir(vaultDir), "junk.txt"), []byte("x"), 0644)
	tt.AssertEqual(t, nil, err)

	plugins := Scan(vaultDir)
	tt.AssertEqual(t, 4, len(plugins))

	byDir := map[string]*PluginInfo{}
	for _, p := range plugins {
		byDir[filepath.Base(p.Dir)] = p
	}

	good := byDir["dataview"]
	if good.Manifest == nil {
		t.Fatal("manifest of dataview should parse")
	}
	tt.AssertEqual(t, "dataview", good.ID())
	tt.AssertEqual(t, "Dataview", good.Manifest.Name)
	tt.AssertEqual(t, "0.5.64", good.Manifest.Version)
	tt.AssertEqual(t, "Michael Brenan", good.Manifest.Author)

	for _, name := range []string{"broken", "empty", "bare"} {
		p := byDir[name]
		if p.Manifest != nil {
			t.Fatalf("manifest of %s should be nil", name)
		}
		tt.AssertEqual(t, "", p.ID())
	}
}

func TestScanManifestWithoutId(t *testing.T) {
	vaultDir := t.TempDir()
	writePlugin(t, vaultDir, "anonymous", `{"name": "No Id Here"}`)

	plugins := Scan(vaultDir)
	tt.AssertEqual(t, 1, len(plugins))
	if plugins[0].Manifest != nil {
		t.Fatal("manifest without id should be treated as unreadable")
	}
}

func TestScanMissingPluginsDir(t *testing.T) {
	plugins := Scan(t.TempDir())
	tt.AssertEqual(t, 0, len(plugins))
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	vaultDir := filepath.Join(root, "notes")
	nested := filepath.Join(vaultDir, "daily", "2024")

	err := os.MkdirAll(filepath.Join(vaultDir, ObsidianDir), 0755)
	tt.AssertEqual(t, nil, err)
	err = os.MkdirAll(nested, 0755)
	tt.AssertEqual(t, nil, err)

	found, err := Find(nested)
	tt.AssertEqual(t, nil, err)
	tt.AssertEqual(t, vaultDir, found)

	_, err = Find(root)
	if err == nil {
		t.Fatal("Find outside a vault should fail")
	}
}

func writePlugin(t *testing.T, vaultDir, id, manifest string) {
	t.Helper()

	dir := filepath.Join(PluginsDir(vaultDir), id)
	err := os.MkdirAll(dir, 0755)
	tt.AssertEqual(t, nil, err)
	err = os.WriteFile(filepath.Join(dir, ManifestFileName), []byte(manifest), 0644)
	tt.AssertEqual(t, nil, err)
}
