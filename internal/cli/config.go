package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config holds CLI configuration
type Config struct {
	ServerURL   string
	SessionFile string
	Output      string
	Verbose     bool
}

// Session is the identity saved by join and reused by later commands
type Session struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	RoomName   string `json:"roomName"`
	RoomSecret string `json:"roomSecret,omitempty"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:   getEnvOrDefault("SCRUMPOKER_SERVER", "http://localhost:8080"),
		SessionFile: getEnvOrDefault("SCRUMPOKER_SESSION_FILE", defaultSessionFile()),
		Output:      "text",
		Verbose:     false,
	}
}

// LoadSession reads the saved session; a missing file yields an empty session
func (c *Config) LoadSession() (Session, error) {
	var s Session

	data, err := os.ReadFile(c.SessionFile)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, err
	}

	if err := json.Unmarshal(data, &s); err != nil {
		return s, err
	}
	return s, nil
}

// SaveSession writes the session file
func (c *Config) SaveSession(s Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}

	dir := filepath.Dir(c.SessionFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	return os.WriteFile(c.SessionFile, data, 0600)
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".scrumpoker/session.json"
	}
	return filepath.Join(home, ".scrumpoker", "session.json")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
