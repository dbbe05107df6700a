package pmpsdb

import (
	"bytes"
	"context"
	"io"
	"net/textproto"
)

// mockPLC simulates a PLC's FTP server behind the serverConn
// interface. It tracks everything the session layer does so tests can
// assert on the exact sequence of protocol operations.
type mockPLC struct {
	// Accepted credentials.
	users     map[string]string
	allowAnon bool

	// Entries visible at the server root before any CWD.
	rootNames []string

	// Files in the working directory, with insertion order preserved.
	files map[string][]byte
	order []string

	// Raw LIST output. Tests set this explicitly.
	listLines []string

	// Injected errors by operation name.
	errs map[string]error

	// Observed behavior.
	cwd           string
	loginAttempts []string
	madeDirs      []string
	storeCalls    int
	quitErr       error
	quitCalled    bool
	closeCalled   bool
}

var _ serverConn = (*mockPLC)(nil)

func newMockPLC() *mockPLC {
	return &mockPLC{
		users:     map[string]string{"Administrator": "1"},
		rootNames: []string{DefaultDirectory},
		files:     map[string][]byte{},
		errs:      map[string]error{},
	}
}

// newTestClient wires a Client directly to plc, bypassing the network.
func newTestClient(plc *mockPLC) *Client {
	c := New(Config{})
	c.dial = func(ctx context.Context, host string, cfg Config) (serverConn, error) {
		return plc, nil
	}
	return c
}

func (m *mockPLC) setFile(name string, content []byte) {
	if _, ok := m.files[name]; !ok {
		m.order = append(m.order, name)
	}
	m.files[name] = content
}

func (m *mockPLC) Login(user, password string) error {
	m.loginAttempts = append(m.loginAttempts, user)
	if err, ok := m.errs["Login:"+user]; ok {
		return err
	}
	if user == "anonymous" && m.allowAnon {
		return nil
	}
	if pw, ok := m.users[user]; ok && pw == password {
		return nil
	}
	return &textproto.Error{Code: 530, Msg: "Login incorrect."}
}

func (m *mockPLC) NameList() ([]string, error) {
	if err, ok := m.errs["NameList"]; ok {
		return nil, err
	}
	if m.cwd == "" {
		return append([]string(nil), m.rootNames...), nil
	}
	return append([]string(nil), m.order...), nil
}

func (m *mockPLC) List() ([]string, error) {
	if err, ok := m.errs["List"]; ok {
		return nil, err
	}
	return append([]string(nil), m.listLines...), nil
}

func (m *mockPLC) Store(name string, r io.Reader) error {
	m.storeCalls++
	if err, ok := m.errs["Store"]; ok {
		return err
	}
	content, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.setFile(name, content)
	return nil
}

func (m *mockPLC) Retrieve(name string, w io.Writer) error {
	if err, ok := m.errs["Retrieve"]; ok {
		return err
	}
	content, ok := m.files[name]
	if !ok {
		return &textproto.Error{Code: 550, Msg: "File not found."}
	}
	_, err := io.Copy(w, bytes.NewReader(content))
	return err
}

func (m *mockPLC) MakeDir(name string) error {
	if err, ok := m.errs["MakeDir"]; ok {
		return err
	}
	m.madeDirs = append(m.madeDirs, name)
	m.rootNames = append(m.rootNames, name)
	return nil
}

func (m *mockPLC) ChangeDir(name string) error {
	if err, ok := m.errs["ChangeDir"]; ok {
		return err
	}
	for _, existing := range m.rootNames {
		if existing == name {
			m.cwd = name
			return nil
		}
	}
	return &textproto.Error{Code: 550, Msg: "Directory not found."}
}

func (m *mockPLC) Quit() error {
	m.quitCalled = true
	return m.quitErr
}

func (m *mockPLC) Close() error {
	m.closeCalled = true
	return nil
}
