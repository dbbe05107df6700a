package pmpsdb

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Upload stores r on the PLC under target, replacing any existing file
// with the same name. There is no pre-check and no confirmation: last
// write wins. Protocol failures propagate unmodified and nothing is
// retried, so a failed upload may leave a partial remote file.
func (c *Client) Upload(ctx context.Context, host, target string, r io.Reader, dir string) error {
	debugf("upload(%s, %s)", host, target)
	return c.withSession(ctx, host, dir, func(conn serverConn) error {
		return conn.Store(target, r)
	})
}

// UploadFile opens a local file and uploads it to the PLC. An empty
// target keeps the local base name.
func (c *Client) UploadFile(ctx context.Context, host, localPath, target, dir string) error {
	if target == "" {
		target = filepath.Base(localPath)
	}
	fd, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("open local file: %w", err)
	}
	defer fd.Close()
	return c.Upload(ctx, host, target, fd, dir)
}

// Download retrieves the named file from the PLC as one contiguous byte
// slice. Transfers are all-or-nothing from the caller's perspective: on
// any error no bytes are returned.
func (c *Client) Download(ctx context.Context, host, filename, dir string) ([]byte, error) {
	debugf("download(%s, %s)", host, filename)
	var buf bytes.Buffer
	err := c.withSession(ctx, host, dir, func(conn serverConn) error {
		return conn.Retrieve(filename, &buf)
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
