package pmpsdb

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// SyncResult reports what SyncFile did for one PLC.
type SyncResult struct {
	// Hostname is the PLC the file was synced to.
	Hostname string

	// Filename is the name of the file on the PLC.
	Filename string

	// Size is the size of the local file in bytes.
	Size int64

	// Uploaded is true if the file was sent, false if the PLC already
	// held matching configuration.
	Uploaded bool

	// Verified is true if the PLC's copy matched the local file when
	// the sync finished.
	Verified bool
}

// SyncFile brings one PLC up to date with a local database export:
// compare first, skip the upload when the PLC already matches, and
// verify by re-comparing after an upload. A missing remote file counts
// as out of date; every other comparison failure propagates.
func (c *Client) SyncFile(ctx context.Context, host, localPath, dir string) (SyncResult, error) {
	filename := filepath.Base(localPath)
	result := SyncResult{Hostname: host, Filename: filename}

	info, err := os.Stat(localPath)
	if err != nil {
		return result, fmt.Errorf("stat local file: %w", err)
	}
	result.Size = info.Size()

	same, err := c.Compare(ctx, host, localPath, filename, dir)
	if err != nil && !isFileMissing(err) {
		return result, err
	}
	if err == nil && same {
		result.Verified = true
		return result, nil
	}

	if err := c.UploadFile(ctx, host, localPath, filename, dir); err != nil {
		return result, err
	}
	result.Uploaded = true

	same, err = c.Compare(ctx, host, localPath, filename, dir)
	if err != nil {
		return result, fmt.Errorf("verify upload: %w", err)
	}
	result.Verified = same
	if !same {
		return result, fmt.Errorf("%s on %s does not match %s after upload", filename, host, localPath)
	}
	return result, nil
}

// isFileMissing reports whether err is the PLC rejecting a RETR for a
// file it does not have (550).
func isFileMissing(err error) bool {
	var pe *ProtocolError
	return errors.As(err, &pe) && pe.Code == 550
}
