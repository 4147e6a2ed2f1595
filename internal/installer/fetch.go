package installer

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/ImSingee/go-ex/ee"
	"github.com/google/uuid"
)

// fetchFile downloads url into dir/filename, overwriting any existing file.
//
// A 404 response means the file is not published for this release: nothing
// is written and notFound is true. Any other non-200 status, and any
// transport or filesystem failure, is an error.
func fetchFile(ctx context.Context, url string, dir string, filename string) (notFound bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, ee.Wrapf(err, "cannot build request for %s", url)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return false, ee.Wrapf(err, "cannot download file from %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return true, nil
	}
	if resp.StatusCode != 200 {
		return false, ee.Errorf("cannot download file from %s: status code = %d", url, resp.StatusCode)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return false, ee.Wrapf(err, "cannot create plugin directory %s", dir)
	}

	// download next to the target, then rename over it
	dst := filepath.Join(dir, filename)
	tmp := dst + ".tmp-" + uuid.NewString()

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return false, ee.Wrapf(err, "cannot create file %s", tmp)
	}

	_, err = io.Copy(f, resp.Body)
	if err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return false, ee.Wrapf(err, "cannot write data to %s", tmp)
	}

	err = f.Close()
	if err != nil {
		_ = os.Remove(tmp)
		return false, ee.Wrapf(err, "cannot save and close file %s", tmp)
	}

	err = os.Rename(tmp, dst)
	if err != nil {
		_ = os.Remove(tmp)
		return false, ee.Wrapf(err, "cannot move %s to %s", tmp, dst)
	}

	return false, nil
}
