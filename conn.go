package pmpsdb

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/textproto"
	"strconv"
	"time"
)

// serverConn is the protocol surface the session layer drives. It
// exists so tests can substitute an in-memory PLC; the real
// implementation is ftpConn.
type serverConn interface {
	// Login authenticates one credential. A rejected credential
	// surfaces as a *ProtocolError.
	Login(user, password string) error
	// NameList returns the bare filenames in the current directory.
	NameList() ([]string, error)
	// List returns the raw LIST output lines in the current directory.
	List() ([]string, error)
	// Store writes r to the named remote file in binary mode,
	// replacing any existing file.
	Store(name string, r io.Reader) error
	// Retrieve streams the named remote file to w in binary mode.
	Retrieve(name string, w io.Writer) error
	// MakeDir creates a subdirectory of the current directory.
	MakeDir(name string) error
	// ChangeDir enters a subdirectory of the current directory.
	ChangeDir(name string) error
	// Quit ends the session politely.
	Quit() error
	// Close tears down the control connection without ceremony.
	Close() error
}

// dialFunc opens a serverConn to one PLC. Swapped out in tests.
type dialFunc func(ctx context.Context, host string, cfg Config) (serverConn, error)

// FTP reply codes this client cares about.
const (
	statusReady        = 220
	statusLoggedIn     = 230
	statusNeedPassword = 331
)

// ftpConn speaks the FTP control protocol over a single TCP connection.
// All data connections are active mode (PORT): the PLC dials back to a
// port we advertise. Beckhoff documents passive mode as unreliable on
// this device class, so passive is not implemented at all.
type ftpConn struct {
	ctrl net.Conn
	text *textproto.Conn
}

var _ serverConn = (*ftpConn)(nil)

// dialServer connects to the PLC's FTP port and consumes the greeting.
// The config timeout covers dialing, the greeting, and every control
// exchange up to the end of login; ftpConn.Login lifts it.
func dialServer(ctx context.Context, host string, cfg Config) (serverConn, error) {
	addr := net.JoinHostPort(host, strconv.Itoa(cfg.Port))
	d := net.Dialer{Timeout: cfg.Timeout}
	ctrl, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	if err := ctrl.SetDeadline(time.Now().Add(cfg.Timeout)); err != nil {
		ctrl.Close()
		return nil, err
	}
	c := &ftpConn{ctrl: ctrl, text: textproto.NewConn(ctrl)}
	if _, _, err := c.text.ReadResponse(statusReady); err != nil {
		c.Close()
		return nil, fmt.Errorf("greeting from %s: %w", addr, err)
	}
	debugf("connected to %s", addr)
	return c, nil
}

// cmd sends one control command and reads its reply. expect follows
// textproto.ReadResponse semantics: 2 accepts any 2xx, 0 accepts all.
func (c *ftpConn) cmd(expect int, format string, args ...any) (int, string, error) {
	if err := c.text.PrintfLine(format, args...); err != nil {
		return 0, "", err
	}
	return c.text.ReadResponse(expect)
}

func (c *ftpConn) Login(user, password string) error {
	code, msg, err := c.cmd(0, "USER %s", user)
	if err != nil {
		return err
	}
	switch code {
	case statusLoggedIn:
		// No password wanted.
	case statusNeedPassword:
		if _, _, err := c.cmd(2, "PASS %s", password); err != nil {
			return err
		}
	default:
		return &textproto.Error{Code: code, Msg: msg}
	}
	// Authenticated: the short setup deadline no longer applies.
	// Transfers are bounded only by the sockets themselves.
	return c.ctrl.SetDeadline(time.Time{})
}

func (c *ftpConn) NameList() ([]string, error) { return c.listLines("NLST") }

func (c *ftpConn) List() ([]string, error) { return c.listLines("LIST") }

func (c *ftpConn) Store(name string, r io.Reader) error {
	return c.transfer("I", "STOR "+name, func(data io.ReadWriter) error {
		_, err := io.Copy(data, r)
		return err
	})
}

func (c *ftpConn) Retrieve(name string, w io.Writer) error {
	return c.transfer("I", "RETR "+name, func(data io.ReadWriter) error {
		_, err := io.Copy(w, data)
		return err
	})
}

func (c *ftpConn) MakeDir(name string) error {
	_, _, err := c.cmd(2, "MKD %s", name)
	return err
}

func (c *ftpConn) ChangeDir(name string) error {
	_, _, err := c.cmd(2, "CWD %s", name)
	return err
}

func (c *ftpConn) Quit() error {
	_, _, err := c.cmd(2, "QUIT")
	if cerr := c.text.Close(); err == nil {
		err = cerr
	}
	return err
}

func (c *ftpConn) Close() error { return c.text.Close() }

// listLines runs an ASCII-mode listing command and collects the lines
// the PLC sends over the data connection.
func (c *ftpConn) listLines(command string) ([]string, error) {
	var lines []string
	err := c.transfer("A", command, func(data io.ReadWriter) error {
		sc := bufio.NewScanner(data)
		for sc.Scan() {
			lines = append(lines, sc.Text())
		}
		return sc.Err()
	})
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// transfer runs one data-connection command in active mode: set the
// transfer type, listen on an ephemeral port next to the control
// connection, advertise it with PORT, issue the command, and hand the
// accepted data connection to fn. The deferred final reply (226) is
// read after the data connection closes.
func (c *ftpConn) transfer(mode, command string, fn func(io.ReadWriter) error) error {
	if _, _, err := c.cmd(2, "TYPE %s", mode); err != nil {
		return err
	}

	laddr, ok := c.ctrl.LocalAddr().(*net.TCPAddr)
	if !ok {
		return fmt.Errorf("unexpected control address %v", c.ctrl.LocalAddr())
	}
	ip := laddr.IP.To4()
	if ip == nil {
		return errors.New("active transfers require an IPv4 control connection")
	}
	ln, err := net.ListenTCP("tcp4", &net.TCPAddr{IP: laddr.IP})
	if err != nil {
		return fmt.Errorf("listen for data connection: %w", err)
	}
	defer ln.Close()

	port := ln.Addr().(*net.TCPAddr).Port
	_, _, err = c.cmd(2, "PORT %d,%d,%d,%d,%d,%d",
		ip[0], ip[1], ip[2], ip[3], port>>8, port&0xff)
	if err != nil {
		return err
	}

	// The PLC answers with a preliminary 1xx reply and then dials our
	// advertised port.
	if _, _, err := c.cmd(1, "%s", command); err != nil {
		return err
	}
	data, err := ln.Accept()
	if err != nil {
		return fmt.Errorf("accept data connection: %w", err)
	}

	ferr := fn(data)
	cerr := data.Close()

	// Final transfer status arrives once the data connection is done.
	if _, _, err := c.text.ReadResponse(2); err != nil && ferr == nil {
		ferr = err
	}
	if ferr != nil {
		return ferr
	}
	return cerr
}
