// Copyright (c) 2025 dbxkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package docsite

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dbxkit/cli/internal/testutil"
)

const indexHTML = "<!doctype html><html><body>dbt docs</body></html>"

// newSite lays out a small generated-docs tree and serves it.
func newSite(t *testing.T, withIndex bool) (*httptest.Server, string) {
	t.Helper()

	root := t.TempDir()
	if withIndex {
		require.NoError(t, os.WriteFile(filepath.Join(root, "index.html"), []byte(indexHTML), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(root, "manifest.json"), []byte(`{"nodes":{}}`), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "assets", "img"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "assets", "app.js"), []byte("console.log(1)\n"), 0o644))

	srv := httptest.NewServer(New(Options{Root: root, Logger: testutil.NewTestLogger(t)}).Handler())
	t.Cleanup(srv.Close)
	return srv, root
}

func get(t *testing.T, url string) (int, []byte) {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func TestServeIndexAtRoot(t *testing.T) {
	srv, _ := newSite(t, true)

	status, body := get(t, srv.URL+"/")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, indexHTML, string(body))
}

func TestServeFiles(t *testing.T) {
	srv, root := newSite(t, true)

	tests := []struct {
		name string
		path string
		file string
	}{
		{name: "top level json", path: "/manifest.json", file: "manifest.json"},
		{name: "nested asset", path: "/assets/app.js", file: filepath.Join("assets", "app.js")},
		{name: "index by name", path: "/index.html", file: "index.html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want, err := os.ReadFile(filepath.Join(root, tt.file))
			require.NoError(t, err)

			status, body := get(t, srv.URL+tt.path)
			assert.Equal(t, http.StatusOK, status)
			assert.Equal(t, want, body)
		})
	}
}

func TestServeNotFound(t *testing.T) {
	srv, root := newSite(t, true)

	outside := t.TempDir()
	secret := filepath.Join(outside, "secret.txt")
	require.NoError(t, os.WriteFile(secret, []byte("TOP-SECRET"), 0o644))
	require.NoError(t, os.Symlink(secret, filepath.Join(root, "leak.txt")))
	require.NoError(t, os.Symlink(outside, filepath.Join(root, "outside")))

	for _, p := range []string{
		"/missing.html",
		"/assets/missing.js",
		"/assets",
		"/assets/",
		"/assets/img",
		"/../../etc/passwd",
		"/leak.txt",
		"/outside/secret.txt",
	} {
		t.Run(p, func(t *testing.T) {
			status, _ := get(t, srv.URL+p)
			assert.Equal(t, http.StatusNotFound, status)
		})
	}
}

func TestServeSymlinkInsideRoot(t *testing.T) {
	srv, root := newSite(t, true)
	require.NoError(t, os.Symlink(filepath.Join("assets", "app.js"), filepath.Join(root, "app.js")))

	status, body := get(t, srv.URL+"/app.js")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "console.log(1)\n", string(body))
}

func TestServeMissingIndex(t *testing.T) {
	srv, _ := newSite(t, false)

	status, _ := get(t, srv.URL+"/")
	assert.Equal(t, http.StatusNotFound, status)

	status, body := get(t, srv.URL+"/manifest.json")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, `{"nodes":{}}`, string(body))
}

func TestCustomIndex(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "home.html"), []byte("home"), 0o644))

	srv := httptest.NewServer(New(Options{Root: root, Index: "home.html"}).Handler())
	defer srv.Close()

	status, body := get(t, srv.URL+"/")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "home", string(body))
}

func TestRequestsAreLogged(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "index.html"), []byte(indexHTML), 0o644))

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	rec := httptest.NewRecorder()
	New(Options{Root: root, Logger: logger}).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, buf.String(), "path=/nope")
	assert.Contains(t, buf.String(), "status=404")
}

func TestNewDefaults(t *testing.T) {
	s := New(Options{})
	assert.Equal(t, ":8000", s.Addr())
	assert.Equal(t, ".", s.root)
	assert.Equal(t, DefaultIndex, s.index)
}
