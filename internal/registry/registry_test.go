package registry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ImSingee/tt"
)

func TestRepos(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		_, _ = w.Write([]byte(`[
			{"id": "dataview", "repo": "blacksmithgu/obsidian-dataview", "name": "Dataview"},
			{"id": "calendar", "repo": "liamcain/obsidian-calendar-plugin"},
			{"id": "incomplete"}
		]`))
	}))
	defer server.Close()

	c := &Client{URL: server.URL}

	repos := c.Repos(context.Background())
	tt.AssertEqual(t, 2, len(repos))
	tt.AssertEqual(t, "blacksmithgu/obsidian-dataview", repos["dataview"])
	tt.AssertEqual(t, "liamcain/obsidian-calendar-plugin", repos["calendar"])

	// memoized: the second call must not hit the server again
	c.Repos(context.Background())
	tt.AssertEqual(t, 1, requests)
}

func TestReposFetchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := &Client{URL: server.URL}

	repos := c.Repos(context.Background())
	if repos == nil {
		t.Fatal("Repos should never return nil")
	}
	tt.AssertEqual(t, 0, len(repos))
}

func TestNewClientHonorsEnv(t *testing.T) {
	t.Setenv(RegistryEnv, "http://registry.test/plugins.json")
	tt.AssertEqual(t, "http://registry.test/plugins.json", NewClient().URL)

	t.Setenv(RegistryEnv, "")
	tt.AssertEqual(t, DefaultRegistry, NewClient().URL)
}
