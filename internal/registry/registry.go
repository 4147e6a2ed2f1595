package registry

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/ImSingee/go-ex/ee"
)

const RegistryEnv = "VAULTGET_REGISTRY"
const DefaultRegistry = "https://raw.githubusercontent.com/obsidianmd/obsidian-releases/master/community-plugins.json"

// Client fetches the community plugin registry: the central list mapping
// plugin ids to their "owner/repository" references.
//
// The registry is fetched at most once per Client; an unreachable registry
// degrades to an empty mapping.
type Client struct {
	URL string

	once  sync.Once
	repos map[string]string
}

func NewClient() *Client {
	u := os.Getenv(RegistryEnv)
	if u == "" {
		u = DefaultRegistry
	}

	return &Client{URL: u}
}

// Repos returns the plugin-id to repo mapping. Never nil.
func (c *Client) Repos(ctx context.Context) map[string]string {
	c.once.Do(func() {
		repos, err := c.fetch(ctx)
		if err != nil {
			slog.Error("cannot fetch community plugin registry", "url", c.URL, "error", err)
			repos = map[string]string{}
		}

		c.repos = repos
	})

	return c.repos
}

func (c *Client) fetch(ctx context.Context) (map[string]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, ee.Wrapf(err, "cannot build registry request for %s", c.URL)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, ee.Wrapf(err, "cannot get community plugin registry from %s", c.URL)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, ee.Errorf("cannot get community plugin registry from %s: status code = %d", c.URL, resp.StatusCode)
	}

	var entries []struct {
		ID   string `json:"id"`
		Repo string `json:"repo"`
	}
	err = json.NewDecoder(resp.Body).Decode(&entries)
	if err != nil {
		return nil, ee.Wrapf(err, "cannot decode community plugin registry from %s", c.URL)
	}

	repos := make(map[string]string, len(entries))
	for _, entry := range entries {
		if entry.ID != "" && entry.Repo != "" {
			repos[entry.ID] = entry.Repo
		}
	}

	return repos, nil
}
