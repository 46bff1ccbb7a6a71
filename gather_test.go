package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileURLs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	content := `Here are some pictures:
http://example.com/a.png
- see also [this one](https://example.com/b.jpg) inline
no url on this line
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	urls, err := fileURLs(path)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"http://example.com/a.png",
		"https://example.com/b.jpg",
	}, urls)
}

func TestFileURLsMissingFile(t *testing.T) {
	_, err := fileURLs(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestPageImageURLs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><img src="/one.png"><img src="two.jpg"></body></html>`))
	}))
	defer server.Close()

	urls, err := pageImageURLs(context.Background(), &http.Client{}, server.URL+"/album")
	require.NoError(t, err)

	assert.Equal(t, []string{
		server.URL + "/one.png",
		server.URL + "/two.jpg",
	}, urls)
}

func TestGatherURLsOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	require.NoError(t, os.WriteFile(path, []byte("http://example.com/from-file.png\n"), 0644))

	cfg := &Config{
		FromFile: path,
		URLs:     []string{"http://example.com/from-arg.png"},
	}

	urls, err := gatherURLs(context.Background(), cfg, &http.Client{})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"http://example.com/from-arg.png",
		"http://example.com/from-file.png",
	}, urls)
}
