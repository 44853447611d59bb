package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// errNoSession is returned by commands that need a session when none is set
var errNoSession = errors.New("no current session: run 'gomemo session create <record-id>' or pass --session")

// Config holds CLI configuration
type Config struct {
	ServerURL   string
	SessionID   string
	SessionFile string
	Output      string
	Verbose     bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:   getEnvOrDefault("GOMEMO_SERVER", "http://localhost:8080"),
		SessionID:   os.Getenv("GOMEMO_SESSION"),
		SessionFile: getEnvOrDefault("GOMEMO_SESSION_FILE", defaultSessionFile()),
		Output:      "text",
		Verbose:     false,
	}
}

// LoadSession loads the session ID from file if not already set
func (c *Config) LoadSession() error {
	if c.SessionID != "" {
		return nil
	}

	data, err := os.ReadFile(c.SessionFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // No session yet is fine
		}
		return err
	}

	c.SessionID = strings.TrimSpace(string(data))
	return nil
}

// SaveSession remembers id as the current session
func (c *Config) SaveSession(id string) error {
	c.SessionID = id

	dir := filepath.Dir(c.SessionFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	return os.WriteFile(c.SessionFile, []byte(id), 0600)
}

// ClearSession forgets the current session
func (c *Config) ClearSession() error {
	c.SessionID = ""
	if err := os.Remove(c.SessionFile); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// RequireSession returns the current session ID or errNoSession
func (c *Config) RequireSession() (string, error) {
	if c.SessionID == "" {
		return "", errNoSession
	}
	return c.SessionID, nil
}

// defaultSessionFile lives under $XDG_STATE_HOME: it is state, not config
func defaultSessionFile() string {
	return filepath.Join(xdg.StateHome, "gomemo", "session")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
