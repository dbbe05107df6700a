package pmpsdb

import (
	"context"
	"path/filepath"
)

// Compare loads a local database export and the matching file on the
// PLC and reports whether they hold the same configuration. An empty
// plcFilename defaults to the local path's base name. Failing to load
// either side is an error, never "not equal".
func (c *Client) Compare(ctx context.Context, host, localPath, plcFilename, dir string) (bool, error) {
	if plcFilename == "" {
		plcFilename = filepath.Base(localPath)
	}
	debugf("compare(%s, %s, %s)", host, localPath, plcFilename)

	local, err := LocalConfig(localPath)
	if err != nil {
		return false, err
	}
	remote, err := c.DownloadConfig(ctx, host, plcFilename, dir)
	if err != nil {
		return false, err
	}
	return local.Equal(remote), nil
}
