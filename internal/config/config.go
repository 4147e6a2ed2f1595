package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/ImSingee/go-ex/ee"
	"github.com/ImSingee/go-ex/exjson"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Debug is set by the global --debug flag.
var Debug = false

const SettingsFileName = "vaultget.json"

// PluginConfig is one user-owned download configuration.
// A config may outlive the plugin it was created for: entries are never
// removed when a plugin is uninstalled.
type PluginConfig struct {
	ID string `json:"id"`

	// Repo is the source repository in "owner/repository" form.
	// Empty until the user (or the community registry guess) sets it.
	Repo string `json:"repo"`

	// ReleaseTag pins a release. Empty means "use the installed
	// plugin's version string as the tag".
	ReleaseTag string `json:"releaseTag,omitempty"`

	// PostInstall is an optional command to run in the plugin folder
	// after a successful install.
	PostInstall string `json:"postInstall,omitempty"`
}

// Settings holds every PluginConfig of a vault, kept sorted by id.
type Settings struct {
	Plugins []*PluginConfig `json:"plugins"`

	filename string
}

func SettingsPath(vaultDir string) string {
	return filepath.Join(vaultDir, ".obsidian", SettingsFileName)
}

// Load reads the vault's settings file. A missing file (or a file without
// a `plugins` field) loads as empty settings.
func Load(vaultDir string) (*Settings, error) {
	s := &Settings{filename: SettingsPath(vaultDir)}

	err := exjson.Read(s.filename, s)
	if err != nil {
		if !ee.Is(err, os.ErrNotExist) {
			return nil, ee.Wrapf(err, "cannot read settings file %s", s.filename)
		}
	}

	if s.Plugins == nil {
		s.Plugins = []*PluginConfig{}
	}
	s.sort()

	return s, nil
}

// Save writes the settings back, replacing the previous contents wholesale.
func (s *Settings) Save() error {
	s.sort()

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return ee.Wrap(err, "cannot marshal settings")
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(s.filename), 0755); err != nil {
		return ee.Wrapf(err, "cannot create directory for settings file %s", s.filename)
	}

	err = os.WriteFile(s.filename, data, 0644)
	if err != nil {
		return ee.Wrapf(err, "cannot write settings file %s", s.filename)
	}

	return nil
}

// Find returns the config for id, or nil.
func (s *Settings) Find(id string) *PluginConfig {
	for _, p := range s.Plugins {
		if p.ID == id {
			return p
		}
	}

	return nil
}

// FindOrCreate returns the config for id, creating an empty one if needed.
// There is at most one config per id.
func (s *Settings) FindOrCreate(id string) *PluginConfig {
	if p := s.Find(id); p != nil {
		return p
	}

	p := &PluginConfig{ID: id}
	s.Plugins = append(s.Plugins, p)
	s.sort()

	return p
}

var collator = collate.New(language.Und)

// CompareIDs orders plugin ids the way the settings file is sorted.
// Not safe for concurrent use.
func CompareIDs(a, b string) int {
	return collator.CompareString(a, b)
}

func (s *Settings) sort() {
	sort.SliceStable(s.Plugins, func(i, j int) bool {
		return CompareIDs(s.Plugins[i].ID, s.Plugins[j].ID) < 0
	})
}
