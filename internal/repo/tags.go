package repo

import (
	"sort"
	"strings"

	"github.com/ImSingee/go-ex/ee"
	"github.com/ImSingee/semver"
	git "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/storage/memory"
)

// Tags lists the release tags of a github repository ("owner/repository")
// without cloning it, newest first.
func Tags(repoRef string) ([]string, error) {
	if repoRef == "" {
		return nil, ee.New("no github repo given")
	}

	remote := git.NewRemote(memory.NewStorage(), &gitconfig.RemoteConfig{
		Name: "origin",
		URLs: []string{"https://github.com/" + repoRef + ".git"},
	})

	refs, err := remote.List(&git.ListOptions{})
	if err != nil {
		return nil, ee.Wrapf(err, "cannot list tags of %s", repoRef)
	}

	var tags []string
	for _, ref := range refs {
		if ref.Name().IsTag() {
			tags = append(tags, ref.Name().Short())
		}
	}

	sortTags(tags)

	return tags, nil
}

// sortTags orders semver tags descending; non-semver tags go last,
// alphabetically.
func sortTags(tags []string) {
	version := func(tag string) *semver.Version {
		v, err := semver.NewVersion(strings.TrimPrefix(tag, "v"))
		if err != nil {
			return nil
		}
		return v
	}

	sort.SliceStable(tags, func(i, j int) bool {
		vi, vj := version(tags[i]), version(tags[j])

		switch {
		case vi != nil && vj != nil:
			return vi.GreaterThan(vj)
		case vi != nil:
			return true
		case vj != nil:
			return false
		default:
			return tags[i] < tags[j]
		}
	})
}
