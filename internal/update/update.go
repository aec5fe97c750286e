// Package update implements signed self-update for the server binary.
// Releases publish a manifest.json plus a detached ed25519 signature per
// channel; binaries are verified by SHA-256 before they replace the
// running executable.
package update

import (
	"context"
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is where release manifests are published.
const DefaultBaseURL = "https://releases.sitelens.io/mcp"

// releasePublicKey verifies manifest signatures. Rotating it requires a
// new binary by construction.
var releasePublicKey = "5y1sn1k0T8qykXMtN3i+6huyZWBUqyLcv1caVn4B7hM="

// Manifest describes the latest release on a channel.
type Manifest struct {
	Name       string              `json:"name"`
	Channel    string              `json:"channel"`
	Version    string              `json:"version"`
	ReleasedAt time.Time           `json:"released_at"`
	Notes      string              `json:"notes"`
	Artifacts  map[string]Artifact `json:"artifacts"`
	Revoked    bool                `json:"revoked"`
}

// Artifact describes a downloadable binary for one platform.
type Artifact struct {
	URL    string `json:"url"`
	SHA256 string `json:"sha256"`
}

// PlatformKey is the artifact map key for the running platform.
func PlatformKey() string {
	return runtime.GOOS + "-" + runtime.GOARCH
}

// ArtifactFor returns the artifact for the running platform.
func (m Manifest) ArtifactFor() (Artifact, error) {
	a, ok := m.Artifacts[PlatformKey()]
	if !ok {
		return Artifact{}, fmt.Errorf("no artifact for platform %s", PlatformKey())
	}
	return a, nil
}

// BaseURL resolves the release base URL from SITELENS_UPDATE_BASE_URL or
// the default.
func BaseURL() string {
	if v := os.Getenv("SITELENS_UPDATE_BASE_URL"); v != "" {
		return v
	}
	return DefaultBaseURL
}

// ParseVersion parses "1.2.3", with an optional leading "v", into numeric
// parts.
func ParseVersion(s string) (int, int, int, bool) {
	s = strings.TrimPrefix(s, "v")
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return 0, 0, 0, false
	}
	maj, err1 := strconv.Atoi(parts[0])
	min, err2 := strconv.Atoi(parts[1])
	pat, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, 0, 0, false
	}
	return maj, min, pat, true
}

// CompareVersions compares a and b returning -1,0,1.
func CompareVersions(a, b string) (int, error) {
	amaj, amin, apat, ok := ParseVersion(a)
	if !ok {
		return 0, fmt.Errorf("invalid version %q", a)
	}
	bmaj, bmin, bpat, ok := ParseVersion(b)
	if !ok {
		return 0, fmt.Errorf("invalid version %q", b)
	}

	switch {
	case amaj != bmaj:
		if amaj < bmaj {
			return -1, nil
		}
		return 1, nil
	case amin != bmin:
		if amin < bmin {
			return -1, nil
		}
		return 1, nil
	case apat != bpat:
		if apat < bpat {
			return -1, nil
		}
		return 1, nil
	default:
		return 0, nil
	}
}

// FetchManifest downloads and verifies the manifest for a channel. The raw
// bytes are signature-checked before they are parsed.
func FetchManifest(ctx context.Context, baseURL, channel string) (Manifest, error) {
	var manifest Manifest
	base := strings.TrimRight(baseURL, "/")
	if channel == "" {
		channel = "stable"
	}
	manifestURL := fmt.Sprintf("%s/%s/manifest.json", base, channel)
	sigURL := manifestURL + ".sig"

	raw, err := fetchBytes(ctx, manifestURL)
	if err != nil {
		return manifest, err
	}

	sig, err := fetchBytes(ctx, sigURL)
	if err != nil {
		return manifest, err
	}

	if err := VerifyManifest(raw, sig, releasePublicKey); err != nil {
		return manifest, err
	}

	if err := json.Unmarshal(raw, &manifest); err != nil {
		return manifest, err
	}
	if manifest.Revoked {
		return manifest, errors.New("release is revoked")
	}

	return manifest, nil
}

// VerifyManifest checks a manifest signature using a base64 public key.
func VerifyManifest(raw, sig []byte, pubKeyB64 string) error {
	pub, err := base64.StdEncoding.DecodeString(pubKeyB64)
	if err != nil {
		return fmt.Errorf("invalid public key: %w", err)
	}
	if len(pub) != ed25519.PublicKeySize {
		return errors.New("invalid public key length")
	}
	if !ed25519.Verify(ed25519.PublicKey(pub), raw, sig) {
		return errors.New("signature verification failed")
	}
	return nil
}

// DownloadToFile streams a URL to a destination file.
func DownloadToFile(ctx context.Context, url, dstPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return err
	}

	tmp := dstPath + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	_, copyErr := io.Copy(f, resp.Body)
	closeErr := f.Close()
	if copyErr != nil {
		_ = os.Remove(tmp)
		return copyErr
	}
	if closeErr != nil {
		_ = os.Remove(tmp)
		return closeErr
	}

	if err := os.Rename(tmp, dstPath); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	return nil
}

// VerifySHA256 checks a file hash against expected hex.
func VerifySHA256(filePath, expectedHex string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return err
	}

	sum := hex.EncodeToString(h.Sum(nil))
	if !strings.EqualFold(sum, expectedHex) {
		return fmt.Errorf("sha256 mismatch: got %s expected %s", sum, expectedHex)
	}
	return nil
}

func fetchBytes(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
