package update

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Status persists the outcome of update checks and applies across runs.
type Status struct {
	LastCheckAt       time.Time `json:"last_check_at"`
	LastCheckVersion  string    `json:"last_check_version"`
	LastApplyVersion  string    `json:"last_apply_version"`
	LastApplyAt       time.Time `json:"last_apply_at"`
	LastErrorMessage  string    `json:"last_error_message"`
	LastErrorAt       time.Time `json:"last_error_at"`
	NotifiedOfVersion string    `json:"notified_of_version"`
}

// StateDir resolves where status is stored. SITELENS_STATE_DIR overrides
// the per-user cache directory.
func StateDir() (string, error) {
	if v := os.Getenv("SITELENS_STATE_DIR"); v != "" {
		return v, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "sitelens-mcp"), nil
}

// LoadStatus loads persisted status, returning a zero value when missing.
func LoadStatus() (Status, error) {
	dir, err := StateDir()
	if err != nil {
		return Status{}, err
	}

	raw, err := os.ReadFile(filepath.Join(dir, "update_status.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return Status{}, nil
		}
		return Status{}, err
	}

	var st Status
	if err := json.Unmarshal(raw, &st); err != nil {
		return Status{}, err
	}
	return st, nil
}

// SaveStatus persists the provided status atomically.
func SaveStatus(st Status) error {
	dir, err := StateDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	path := filepath.Join(dir, "update_status.json")
	raw, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// MarkCheck records a completed manifest check.
func (s *Status) MarkCheck(latest string) {
	s.LastCheckAt = time.Now()
	s.LastCheckVersion = latest
}

// MarkApply records a successful binary swap.
func (s *Status) MarkApply(version string) {
	s.LastApplyVersion = version
	s.LastApplyAt = time.Now()
}

// MarkError records a failed check or apply.
func (s *Status) MarkError(msg string) {
	s.LastErrorMessage = msg
	s.LastErrorAt = time.Now()
}
