package media

import (
	"bytes"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))))
	return buf.Bytes()
}

func assetServer(t *testing.T, body []byte) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(body)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestArchiver_SaveFromURL(t *testing.T) {
	server := assetServer(t, pngBytes(t, 4, 3))
	assetsDir := t.TempDir()

	archiver, err := NewArchiver(assetsDir, "")
	require.NoError(t, err)
	archiver.HTTPClient = server.Client()

	filename, err := archiver.SaveFromURL(server.URL, "out.png")
	require.NoError(t, err)
	assert.Equal(t, "out.png", filename)

	info, err := ReadAssetInfo(filepath.Join(assetsDir, filename))
	require.NoError(t, err)
	require.NotNil(t, info.Width)
	assert.Equal(t, 4, *info.Width)
	assert.Equal(t, 3, *info.Height)
}

func TestArchiver_SaveFromURL_CollisionGetsUniqueName(t *testing.T) {
	server := assetServer(t, pngBytes(t, 2, 2))
	archiver, err := NewArchiver(t.TempDir(), "")
	require.NoError(t, err)
	archiver.HTTPClient = server.Client()

	first, err := archiver.SaveFromURL(server.URL, "out.png")
	require.NoError(t, err)
	second, err := archiver.SaveFromURL(server.URL, "out.png")
	require.NoError(t, err)

	assert.Equal(t, "out.png", first)
	assert.NotEqual(t, first, second)
	assert.Equal(t, ".png", filepath.Ext(second))
}

func TestArchiver_SaveFromURL_CleanCopy(t *testing.T) {
	server := assetServer(t, pngBytes(t, 2, 2))
	assetsDir := t.TempDir()
	cleanDir := filepath.Join(t.TempDir(), "clean")

	archiver, err := NewArchiver(assetsDir, cleanDir)
	require.NoError(t, err)
	archiver.HTTPClient = server.Client()

	filename, err := archiver.SaveFromURL(server.URL, "out.png")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(cleanDir, filename))
	assert.NoError(t, err, "clean copy should exist alongside the original")
}

func TestArchiver_SaveFromURL_DownloadFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	assetsDir := t.TempDir()
	archiver, err := NewArchiver(assetsDir, "")
	require.NoError(t, err)
	archiver.HTTPClient = server.Client()

	_, err = archiver.SaveFromURL(server.URL, "out.png")
	require.Error(t, err)

	entries, err := os.ReadDir(assetsDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "failed download must leave no partial file")
}
