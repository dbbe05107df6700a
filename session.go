package pmpsdb

import (
	"context"
	"fmt"
	"log"
	"slices"

	"github.com/hashicorp/go-multierror"
)

// Client runs file operations against PLC FTP servers. One client can
// talk to any number of PLCs; every operation opens its own session and
// tears it down before returning, so clients are safe for concurrent
// use and hold no connections between calls.
type Client struct {
	cfg  Config
	dial dialFunc
}

// New creates a Client with the given configuration.
func New(cfg Config) *Client {
	return &Client{cfg: cfg.WithDefaults(), dial: dialServer}
}

// withSession opens an authenticated session to host, scoped into the
// configured directory (or dir if non-empty), runs fn, and guarantees
// teardown on every exit path. Teardown is best effort: a failed QUIT
// falls back to closing the socket, and neither failure is allowed to
// mask fn's error.
func (c *Client) withSession(ctx context.Context, host, dir string, fn func(serverConn) error) error {
	if dir == "" {
		dir = c.cfg.Directory
	}
	debugf("session(%s, %s)", host, dir)
	conn, err := c.dial(ctx, host, c.cfg)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUnreachable, host, err)
	}
	defer func() {
		if err := conn.Quit(); err != nil {
			log.Printf("[WARN] quit failed for %s, closing socket: %v", host, err)
			conn.Close()
		}
	}()

	if err := login(conn, c.cfg.Credentials); err != nil {
		return fmt.Errorf("login to %s: %w", host, err)
	}
	if err := enterDirectory(conn, dir); err != nil {
		return fmt.Errorf("enter %s on %s: %w", dir, host, err)
	}
	return fn(conn)
}

// login walks the credential chain in order and stops at the first
// accepted credential. Only permanent rejections (5xx) move the chain
// along; any other failure is fatal immediately. Anonymous login is the
// final fallback once the chain is spent.
func login(conn serverConn, creds []Credential) error {
	var rejected *multierror.Error
	for _, cred := range creds {
		debugf("try user=%s", cred.User)
		err := conn.Login(cred.User, cred.Password)
		if err == nil {
			return nil
		}
		if !isPermissionDenied(err) {
			return err
		}
		rejected = multierror.Append(rejected, fmt.Errorf("user %s: %w", cred.User, err))
	}
	debugf("try anonymous login")
	if err := conn.Login("anonymous", "anonymous@"); err != nil {
		rejected = multierror.Append(rejected, fmt.Errorf("anonymous: %w", err))
		return fmt.Errorf("%w: %v", ErrAuthExhausted, rejected.ErrorOrNil())
	}
	return nil
}

// enterDirectory makes sure the working directory exists at the PLC
// root and changes into it.
func enterDirectory(conn serverConn, dir string) error {
	names, err := conn.NameList()
	if err != nil {
		return err
	}
	if !slices.Contains(names, dir) {
		if err := conn.MakeDir(dir); err != nil {
			return err
		}
	}
	return conn.ChangeDir(dir)
}
