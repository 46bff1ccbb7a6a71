package fetch

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/flytam/filenamify"
	log "github.com/sirupsen/logrus"

	"github.com/mtreece/imgfetch/fileutil"
)

// deriveFilename returns the local filename to save a fetched image under.
// It uses the last path segment of the url when that segment is non-empty
// and carries an extension; otherwise it synthesizes a name from the content
// hash and the declared content-type.
func deriveFilename(u *url.URL, contentType string, contentHash string) string {
	seg := u.Path
	if i := strings.LastIndex(seg, "/"); i >= 0 {
		seg = seg[i+1:]
	}

	if seg != "" && strings.Contains(seg, ".") {
		name, err := filenamify.Filenamify(seg, filenamify.Options{})
		if err == nil && name != "" {
			return name
		}
		log.WithError(err).Debugf("failed to sanitize url segment: seg=%s", seg)
	}

	return contentHash + "." + extForContentType(contentType)
}

// uniquePath joins dir and filename, disambiguating with a numeric suffix if
// a file with that name already exists. Content duplicates never get this
// far; an existing file with the same name necessarily holds different
// bytes, so it must not be overwritten.
func uniquePath(dir string, filename string) string {
	p := filepath.Join(dir, filename)
	if !fileutil.FileExists(p) {
		return p
	}

	ext := filepath.Ext(filename)
	stem := strings.TrimSuffix(filename, ext)

	for i := 1; ; i++ {
		cand := filepath.Join(dir, fmt.Sprintf("%s-%d%s", stem, i, ext))
		if !fileutil.FileExists(cand) {
			log.Debugf("filename collision: %s --> %s", p, cand)
			return cand
		}
	}
}
