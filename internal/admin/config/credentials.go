// Package config stores the local configuration of the salesctl client.
//
// The configuration holds the access token obtained at login and lives in
// the user's home directory:
//
//	~/.salesctl/credentials.json
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Credentials is the persisted client state.
type Credentials struct {
	AccessToken string `json:"access_token"`
}

// DefaultPath returns <home>/.salesctl/credentials.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".salesctl", "credentials.json"), nil
}

// Load reads the credentials file. A missing file yields empty
// credentials without an error; malformed JSON is an error.
func Load(path string) (*Credentials, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Credentials{}, nil
		}
		return nil, err
	}
	var c Credentials
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Save writes the credentials file, creating the directory with 0700
// and the file with 0600.
func Save(path string, c *Credentials) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}
