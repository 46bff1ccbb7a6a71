package fetch

import (
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, raw string) *url.URL {
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestDeriveFilename(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		contentType string
		hash        string
		want        string
	}{
		{"url with extension", "http://x.com/pic.jpg", "image/jpeg", "aaaa", "pic.jpg"},
		{"nested path", "http://x.com/a/b/photo.png", "image/png", "aaaa", "photo.png"},
		{"query string ignored", "http://x.com/a/b.png?size=large", "image/png", "aaaa", "b.png"},
		{"segment without dot", "http://x.com/show", "image/png", "c0ffee", "c0ffee.png"},
		{"trailing slash", "http://x.com/images/", "image/gif", "c0ffee", "c0ffee.gif"},
		{"empty path", "http://x.com", "image/jpeg", "c0ffee", "c0ffee.jpg"},
		{"unrecognized type defaults to jpg", "http://x.com/show", "application/octet-stream", "c0ffee", "c0ffee.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := deriveFilename(mustParse(t, tt.url), tt.contentType, tt.hash)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeriveFilenameSanitizes(t *testing.T) {
	// Characters that are unsafe in filenames get replaced, not kept.
	got := deriveFilename(mustParse(t, "http://x.com/a%3Cb%3E.jpg"), "image/jpeg", "aaaa")
	assert.NotContains(t, got, "<")
	assert.NotContains(t, got, ">")
	assert.Contains(t, got, ".jpg")
}

func TestUniquePath(t *testing.T) {
	dir := t.TempDir()

	p := uniquePath(dir, "pic.jpg")
	assert.Equal(t, filepath.Join(dir, "pic.jpg"), p)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "pic.jpg"), []byte("a"), 0644))
	assert.Equal(t, filepath.Join(dir, "pic-1.jpg"), uniquePath(dir, "pic.jpg"))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "pic-1.jpg"), []byte("b"), 0644))
	assert.Equal(t, filepath.Join(dir, "pic-2.jpg"), uniquePath(dir, "pic.jpg"))
}
