package installer

import "fmt"

type FileStatus uint8

const (
	FileInstalled FileStatus = iota
	FileMissing              // optional file is not published for this release
	FileFailed
)

// FileResult is the outcome of fetching one release file.
type FileResult struct {
	Name     string
	Optional bool
	Status   FileStatus
	Err      error // set when Status == FileFailed
}

// InstallResult is the structured outcome of one plugin install.
// How much of it to surface is up to the presentation layer.
type InstallResult struct {
	PluginID string
	Repo     string
	Tag      string

	Files []FileResult

	// HookErr reports a failed post-install hook. The install itself
	// still counts as successful.
	HookErr error

	// Err is set when the install failed: missing configuration or a
	// required file that could not be downloaded.
	Err error
}

func (r *InstallResult) OK() bool {
	return r.Err == nil
}

// Succeeded counts the successful installs in a bulk result.
func Succeeded(results []*InstallResult) int {
	n := 0
	for _, r := range results {
		if r != nil && r.OK() {
			n++
		}
	}

	return n
}

// DownloadError reports a required release file that is not published at
// the expected URL.
type DownloadError struct {
	File   string
	URL    string
	Status int
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("cannot download %s: %s returned status code %d", e.File, e.URL, e.Status)
}
