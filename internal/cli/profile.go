package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

const profileFilename = ".scholar.json"

// Profile is the persisted CLI session: who is asking and where the backend
// lives. This is tool configuration, not view state; views keep nothing
// beyond their own lifetime.
type Profile struct {
	UserID string `json:"user_id"`
	APIURL string `json:"api_url"`

	path string
}

// LoadProfile reads the profile from the user's home directory, minting a
// fresh user ID on first run.
func LoadProfile() (*Profile, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	return loadProfileFrom(filepath.Join(home, profileFilename))
}

func loadProfileFrom(path string) (*Profile, error) {
	p := &Profile{path: path}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		p.UserID = "cli-" + uuid.NewString()
		return p, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if p.UserID == "" {
		p.UserID = "cli-" + uuid.NewString()
	}
	return p, nil
}

func (p *Profile) Save() error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p.path, data, 0o600)
}

// Path returns where the profile is stored.
func (p *Profile) Path() string { return p.path }
