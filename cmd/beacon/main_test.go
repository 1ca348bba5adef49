package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/bft-labs/beacon/internal/cliconfig"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return runCLIContext(t, context.Background(), args...)
}

func runCLIContext(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, k := range []string{"DESTINATION", "BUNDLE_DIR", "HTTP_TIMEOUT", "LOG_LEVEL", "LOG_FORMAT", "PREVIEW", "DEBOUNCE_DELAY"} {
		t.Setenv(cliconfig.EnvPrefix+k, "")
	}

	var out bytes.Buffer
	c := &cli{cfg: cliconfig.DefaultConfig(), out: &out}
	root := c.rootCommand()
	root.SetArgs(append(args, "--log-level", "error", "--env-file", filepath.Join(t.TempDir(), "none.env")))
	root.SetOut(&out)
	root.SetErr(&out)

	err := root.ExecuteContext(ctx)
	return out.String(), err
}

func newServer(t *testing.T, status int) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(status)
	}))
	t.Cleanup(ts.Close)
	return ts, &hits
}

func TestSend_BuiltinBeacon(t *testing.T) {
	ts, hits := newServer(t, http.StatusOK)

	out, err := runCLI(t, "send", "a", "--destination", ts.URL)
	if err != nil {
		t.Fatalf("send a: %v", err)
	}
	if strings.TrimSpace(out) != "Status: 200" {
		t.Errorf("output = %q, want Status: 200", out)
	}
	if hits.Load() != 1 {
		t.Errorf("hits = %d, want 1", hits.Load())
	}
}

func TestSend_Preview(t *testing.T) {
	ts, _ := newServer(t, http.StatusOK)

	out, err := runCLI(t, "send", "b", "--destination", ts.URL, "--preview")
	if err != nil {
		t.Fatalf("send b: %v", err)
	}
	for _, want := range []string{"Sending…", `"type": "B"`, "→ " + ts.URL, "Status: 200"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestSend_PreviewSkippedForInvalidDestination(t *testing.T) {
	out, err := runCLI(t, "send", "a", "--destination", " ", "--preview")
	if !errors.Is(err, errSendFailed) {
		t.Errorf("err = %v, want errSendFailed", err)
	}
	if strings.Contains(out, "Sending…") {
		t.Errorf("output %q contains a preview for an invalid destination", out)
	}
	if strings.TrimSpace(out) != "Invalid URL" {
		t.Errorf("output = %q, want Invalid URL", out)
	}
}

func TestSendResource_PreviewSkippedForInvalidDestination(t *testing.T) {
	out, err := runCLI(t, "send-resource", "--destination", "ftp://example.com", "--preview")
	if !errors.Is(err, errSendFailed) {
		t.Errorf("err = %v, want errSendFailed", err)
	}
	if strings.Contains(out, "Sending…") {
		t.Errorf("output %q contains a preview for an invalid destination", out)
	}
}

func TestSend_UnknownBeacon(t *testing.T) {
	_, err := runCLI(t, "send", "c")
	if err == nil || errors.Is(err, errSendFailed) {
		t.Errorf("err = %v, want usage error", err)
	}
}

func TestSend_InvalidDestination(t *testing.T) {
	out, err := runCLI(t, "send", "a", "--destination", "   ")
	if !errors.Is(err, errSendFailed) {
		t.Errorf("err = %v, want errSendFailed", err)
	}
	if strings.TrimSpace(out) != "Invalid URL" {
		t.Errorf("output = %q, want Invalid URL", out)
	}
}

func TestSendResource_EmbeddedLogin(t *testing.T) {
	ts, hits := newServer(t, http.StatusCreated)

	out, err := runCLI(t, "send-resource", "--destination", ts.URL)
	if err != nil {
		t.Fatalf("send-resource: %v", err)
	}
	if strings.TrimSpace(out) != "Status: 201" {
		t.Errorf("output = %q, want Status: 201", out)
	}
	if hits.Load() != 1 {
		t.Errorf("hits = %d, want 1", hits.Load())
	}
}

func TestSendResource_NotFound(t *testing.T) {
	ts, hits := newServer(t, http.StatusOK)

	out, err := runCLI(t, "send-resource", "logout", "--destination", ts.URL)
	if !errors.Is(err, errSendFailed) {
		t.Errorf("err = %v, want errSendFailed", err)
	}
	if !strings.HasPrefix(out, "Failed to load logout.json") {
		t.Errorf("output = %q", out)
	}
	if hits.Load() != 0 {
		t.Errorf("hits = %d, want 0", hits.Load())
	}
}

func TestConfigFile(t *testing.T) {
	ts, _ := newServer(t, http.StatusAccepted)

	dir := t.TempDir()
	bundle := filepath.Join(dir, "bundle")
	if err := os.MkdirAll(bundle, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(bundle, "ping.json"), []byte(`{"type":"ping"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(dir, "config.toml")
	content := "destination = \"" + ts.URL + "\"\nbundle_dir = \"bundle\"\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "send-resource", "ping", "--config", cfgPath)
	if err != nil {
		t.Fatalf("send-resource: %v", err)
	}
	if strings.TrimSpace(out) != "Status: 202" {
		t.Errorf("output = %q, want Status: 202", out)
	}
}

func TestConfigFile_Missing(t *testing.T) {
	_, err := runCLI(t, "send", "a", "--config", filepath.Join(t.TempDir(), "absent.toml"))
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("err = %v, want config not found", err)
	}
}

func TestWatch_RequiresBundleDir(t *testing.T) {
	_, err := runCLI(t, "watch", "login")
	if err == nil || !strings.Contains(err.Error(), "--bundle-dir") {
		t.Errorf("err = %v, want --bundle-dir error", err)
	}
}

func TestWatch_PrintsResultBeforeExit(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "login.json"), []byte(`{"type":"login"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	// Already cancelled: the start-up send fails at once and Run returns.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := runCLIContext(t, ctx, "watch", "login", "--bundle-dir", dir, "--destination", "http://127.0.0.1:1")
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	if !strings.HasPrefix(strings.TrimSpace(out), "Error: ") {
		t.Errorf("output = %q, want the start-up result", out)
	}
}
