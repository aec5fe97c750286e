package update

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"
)

// ErrUpdateInProgress reports a concurrent update attempt.
var ErrUpdateInProgress = errors.New("update already in progress")

// CheckLatest fetches the channel manifest and reports whether it carries
// a newer version than the one passed in. A "dev" build never considers
// itself outdated.
func CheckLatest(ctx context.Context, channel, currentVersion string) (Manifest, bool, error) {
	manifest, err := FetchManifest(ctx, BaseURL(), channel)
	if err != nil {
		return Manifest{}, false, err
	}
	if _, _, _, ok := ParseVersion(currentVersion); !ok {
		return manifest, false, nil
	}
	cmp, err := CompareVersions(currentVersion, manifest.Version)
	if err != nil {
		return manifest, false, err
	}
	return manifest, cmp < 0, nil
}

// Apply downloads, verifies and swaps in the binary described by the
// manifest, replacing the running executable. The old binary stays next
// to the new one with an .old suffix until the next update.
func Apply(ctx context.Context, manifest Manifest) error {
	artifact, err := manifest.ArtifactFor()
	if err != nil {
		return err
	}

	exe, err := os.Executable()
	if err != nil {
		return err
	}

	unlock, err := acquireLock(exe + ".lock")
	if err != nil {
		return err
	}
	defer func() { _ = unlock() }()

	staged := exe + ".new"
	if err := DownloadToFile(ctx, artifact.URL, staged); err != nil {
		return err
	}
	if err := VerifySHA256(staged, artifact.SHA256); err != nil {
		_ = os.Remove(staged)
		return err
	}
	if err := os.Chmod(staged, 0o755); err != nil {
		_ = os.Remove(staged)
		return err
	}

	// Rename the running binary aside first; on failure the original is
	// restored and the staged file removed.
	backup := exe + ".old"
	_ = os.Remove(backup)
	if err := os.Rename(exe, backup); err != nil {
		_ = os.Remove(staged)
		return err
	}
	if err := os.Rename(staged, exe); err != nil {
		_ = os.Rename(backup, exe)
		_ = os.Remove(staged)
		return err
	}

	return nil
}

func acquireLock(path string) (func() error, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return nil, ErrUpdateInProgress
		}
		return nil, err
	}
	_, _ = fmt.Fprintf(f, "pid=%d\nstarted=%s\n", os.Getpid(), time.Now().Format(time.RFC3339))
	_ = f.Close()
	return func() error { return os.Remove(path) }, nil
}
