package update

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// signedRelease serves a manifest plus signature from a test key and
// points the verifier at that key for the duration of the test.
func signedRelease(t *testing.T, manifest Manifest) *httptest.Server {
	t.Helper()

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	raw, err := json.Marshal(manifest)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	sig := ed25519.Sign(priv, raw)

	mux := http.NewServeMux()
	mux.HandleFunc("/stable/manifest.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(raw)
	})
	mux.HandleFunc("/stable/manifest.json.sig", func(w http.ResponseWriter, _ *http.Request) {
		w.Write(sig)
	})

	origKey := releasePublicKey
	releasePublicKey = base64.StdEncoding.EncodeToString(pub)
	t.Cleanup(func() { releasePublicKey = origKey })

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestVerifyManifest(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	raw := []byte(`{"version":"1.0.0"}`)
	sig := ed25519.Sign(priv, raw)

	if err := VerifyManifest(raw, sig, base64.StdEncoding.EncodeToString(pub)); err != nil {
		t.Fatalf("expected verification to succeed, got %v", err)
	}

	if err := VerifyManifest(raw, sig, "invalid"); err == nil {
		t.Fatalf("expected failure for invalid pubkey")
	}

	wrongPub, _, _ := ed25519.GenerateKey(rand.Reader)
	if err := VerifyManifest(raw, sig, base64.StdEncoding.EncodeToString(wrongPub)); err == nil {
		t.Fatalf("expected verification failure with wrong pubkey")
	}
}

func TestFetchManifest(t *testing.T) {
	manifest := Manifest{
		Name:       "sitelens-mcp-server",
		Channel:    "stable",
		Version:    "1.2.3",
		ReleasedAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}
	srv := signedRelease(t, manifest)

	got, err := FetchManifest(context.Background(), srv.URL, "stable")
	if err != nil {
		t.Fatalf("FetchManifest error: %v", err)
	}
	if got.Version != manifest.Version || got.Name != manifest.Name {
		t.Fatalf("unexpected manifest: %+v", got)
	}
}

func TestFetchManifest_RejectsBadSignature(t *testing.T) {
	manifest := Manifest{Version: "1.2.3"}
	srv := signedRelease(t, manifest)

	// A key the manifest was not signed with.
	wrongPub, _, _ := ed25519.GenerateKey(rand.Reader)
	releasePublicKey = base64.StdEncoding.EncodeToString(wrongPub)

	if _, err := FetchManifest(context.Background(), srv.URL, "stable"); err == nil {
		t.Fatalf("expected signature failure")
	}
}

func TestFetchManifest_RejectsRevoked(t *testing.T) {
	srv := signedRelease(t, Manifest{Version: "1.2.3", Revoked: true})
	if _, err := FetchManifest(context.Background(), srv.URL, "stable"); err == nil {
		t.Fatalf("expected revoked release to be rejected")
	}
}

func TestCheckLatest(t *testing.T) {
	srv := signedRelease(t, Manifest{Version: "1.3.0"})
	t.Setenv("SITELENS_UPDATE_BASE_URL", srv.URL)

	_, newer, err := CheckLatest(context.Background(), "stable", "1.2.9")
	if err != nil {
		t.Fatalf("CheckLatest error: %v", err)
	}
	if !newer {
		t.Fatalf("expected 1.3.0 to be newer than 1.2.9")
	}

	_, newer, err = CheckLatest(context.Background(), "stable", "1.3.0")
	if err != nil {
		t.Fatalf("CheckLatest error: %v", err)
	}
	if newer {
		t.Fatalf("equal versions must not report newer")
	}

	// Dev builds never consider themselves outdated.
	_, newer, err = CheckLatest(context.Background(), "stable", "dev")
	if err != nil {
		t.Fatalf("CheckLatest error: %v", err)
	}
	if newer {
		t.Fatalf("dev build must not report newer")
	}
}

func TestDownloadAndVerifySHA256(t *testing.T) {
	payload := []byte("binary payload")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write(payload)
	}))
	defer srv.Close()

	dst := filepath.Join(t.TempDir(), "bin", "sitelens-mcp")
	if err := DownloadToFile(context.Background(), srv.URL, dst); err != nil {
		t.Fatalf("download: %v", err)
	}

	sum := sha256.Sum256(payload)
	if err := VerifySHA256(dst, hex.EncodeToString(sum[:])); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if err := VerifySHA256(dst, "deadbeef"); err == nil {
		t.Fatalf("expected hash mismatch")
	}

	if _, err := os.Stat(dst + ".part"); !os.IsNotExist(err) {
		t.Fatalf("partial file left behind")
	}
}

func TestCompareVersions(t *testing.T) {
	cases := []struct {
		a, b   string
		expect int
		ok     bool
	}{
		{"1.2.3", "1.2.3", 0, true},
		{"v1.2.3", "1.2.3", 0, true},
		{"1.2.3", "1.2.4", -1, true},
		{"1.3.0", "1.2.9", 1, true},
		{"2.0.0", "1.9.9", 1, true},
		{"1.0", "1.0.0", 0, false},
		{"1.a.0", "1.0.0", 0, false},
	}

	for _, tc := range cases {
		got, err := CompareVersions(tc.a, tc.b)
		if tc.ok && err != nil {
			t.Fatalf("compare %s vs %s unexpected error: %v", tc.a, tc.b, err)
		}
		if !tc.ok {
			if err == nil {
				t.Fatalf("compare %s vs %s expected error", tc.a, tc.b)
			}
			continue
		}
		if got != tc.expect {
			t.Fatalf("compare %s vs %s expected %d got %d", tc.a, tc.b, tc.expect, got)
		}
	}
}

func TestStatusPersistence(t *testing.T) {
	t.Setenv("SITELENS_STATE_DIR", t.TempDir())

	var st Status
	st.MarkCheck("1.3.0")
	st.MarkApply("1.3.0")
	st.MarkError("boom")

	if err := SaveStatus(st); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := LoadStatus()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.LastCheckVersion != "1.3.0" || loaded.LastApplyVersion != "1.3.0" {
		t.Fatalf("version mismatch: %+v", loaded)
	}
	if loaded.LastCheckAt.IsZero() || loaded.LastApplyAt.IsZero() {
		t.Fatalf("expected timestamps")
	}
	if loaded.LastErrorMessage != "boom" {
		t.Fatalf("error mismatch: %+v", loaded)
	}
}

func TestLoadStatus_MissingFile(t *testing.T) {
	t.Setenv("SITELENS_STATE_DIR", t.TempDir())

	st, err := LoadStatus()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !st.LastCheckAt.IsZero() {
		t.Fatalf("expected zero value")
	}
}
