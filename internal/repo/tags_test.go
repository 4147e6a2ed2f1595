package repo

import (
	"testing"

	"github.com/ImSingee/tt"
)

func TestSortTags(t *testing.T) {
	tags := []string{"0.9.0", "1.10.0", "v1.2.3", "nightly", "1.2.4", "beta"}
	sortTags(tags)

	tt.AssertEqual(t, []string{"1.10.0", "1.2.4", "v1.2.3", "0.9.0", "beta", "nightly"}, tags)
}

func TestSortTagsEmpty(t *testing.T) {
	sortTags(nil)

	tags := []string{"only"}
	sortTags(tags)
	tt.AssertEqual(t, []string{"only"}, tags)
}
