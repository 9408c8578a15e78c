package resume

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"jobscout-engine/internal/domain"
)

const snapshotFile = "resume_profile.json"

// LoadSnapshot reads the persisted profile from the data dir. A missing file
// means no resume is loaded and returns (nil, nil).
func LoadSnapshot(dataDir string) (*domain.ResumeProfile, error) {
	b, err := os.ReadFile(filepath.Join(dataDir, snapshotFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var p domain.ResumeProfile
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// SaveSnapshot persists the profile, replacing any previous snapshot. A nil
// profile clears it.
func SaveSnapshot(dataDir string, p *domain.ResumeProfile) error {
	path := filepath.Join(dataDir, snapshotFile)
	if p == nil {
		err := os.Remove(path)
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	b, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
