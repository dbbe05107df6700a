package pmpsdb

import "time"

// DefaultDirectory is the FTP subdirectory that holds the database
// export files on every PLC.
const DefaultDirectory = "pmps"

// Credential is one username/password pair from the default login chain.
type Credential struct {
	User     string
	Password string
}

// DefaultCredentials are the factory logins present on the PLCs, tried
// in order. These are deliberately low-security defaults: the PLCs live
// on trusted internal device networks and ship configured this way.
// Anonymous login is attempted after the chain is exhausted.
var DefaultCredentials = []Credential{
	{User: "Administrator", Password: "1"},
	{User: "webguest", Password: "1"},
}

// Config holds PLC connection configuration.
type Config struct {
	// Port is the FTP control port (default 21).
	Port int

	// Timeout bounds the connect, greeting, and login exchange
	// (default 2s) so that unreachable PLCs do not hang callers.
	// Data transfers are not bounded by it.
	Timeout time.Duration

	// Directory is the FTP subdirectory to read and write from
	// (default "pmps"). It is created on the PLC if missing.
	Directory string

	// Credentials is the ordered login chain (default
	// DefaultCredentials). Anonymous login is always the final
	// fallback and does not need to be listed.
	Credentials []Credential
}

// WithDefaults returns a copy of the config with default values applied.
func (c Config) WithDefaults() Config {
	if c.Port == 0 {
		c.Port = 21
	}
	if c.Timeout == 0 {
		c.Timeout = 2 * time.Second
	}
	if c.Directory == "" {
		c.Directory = DefaultDirectory
	}
	if c.Credentials == nil {
		c.Credentials = DefaultCredentials
	}
	return c
}
