package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/mtreece/imgfetch/download"
	"github.com/mtreece/imgfetch/fileutil"
)

// initJobs is the number of goroutines used to hash pre-existing files
// during warm start.
const initJobs = 4

// Fetcher downloads images into a destination directory, skipping content
// that is already present on disk.
type Fetcher struct {
	destDir string // constant

	hc *http.Client

	mtx    sync.Mutex          // Protects the "hashes" and "saved" fields.
	hashes map[string]struct{} // md5 digests of content already on disk.
	saved  []string            // Filenames saved by this fetcher, in order.
}

func New(destDir string) *Fetcher {
	return &Fetcher{
		destDir: destDir,
		hc:      &http.Client{},
		hashes:  map[string]struct{}{},
	}
}

// Init performs a warm start: it hashes every regular file directly inside
// the destination directory so that content already on disk is rejected as
// duplicate. Unreadable files are skipped. A missing destination directory
// is not an error; it gets created on first save.
func (f *Fetcher) Init(ctx context.Context) error {
	paths, err := fileutil.RegularFiles(f.destDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to scan destination directory: %v", err)
	}

	g := &errgroup.Group{}
	g.SetLimit(initJobs)

	for _, p := range paths {
		if ctx.Err() != nil {
			break
		}

		p := p
		g.Go(func() error {
			sum, err := fileutil.HashFile(p)
			if err != nil {
				log.WithError(err).Debugf("skipping unreadable file: %s", p)
				return nil
			}
			f.remember(sum)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	log.Debugf("warm start: dir=%s files=%d hashes=%d", f.destDir, len(paths), len(f.hashes))
	return ctx.Err()
}

// ValidateURL parses the given url and verifies that it uses the http or
// https scheme. Malformed urls and all other schemes are rejected.
func ValidateURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("unsafe/invalid scheme: %s", raw)
	}
	return u, nil
}

// FetchOne downloads a single image and saves it to the destination
// directory. Every failure category is folded into the returned result;
// nothing is fatal to the caller's run.
func (f *Fetcher) FetchOne(ctx context.Context, raw string) Result {
	u, err := ValidateURL(raw)
	if err != nil {
		return failure(raw, MsgBadScheme)
	}

	rsp, err := download.Get(ctx, f.hc, raw, nil)
	if err != nil {
		return failure(raw, fmt.Sprintf("Connection error: %v", err))
	}

	contentType := rsp.Header.Get("Content-Type")
	if !IsImage(contentType, rsp.Body) {
		return failure(raw, MsgNotImage)
	}

	sum := fileutil.HashBytes(rsp.Body)
	if f.known(sum) {
		log.Debugf("skipping %s: content already on disk: md5=%s", raw, sum)
		return failure(raw, MsgDuplicate)
	}

	err = os.MkdirAll(f.destDir, 0755)
	if err != nil {
		return failure(raw, err.Error())
	}

	destPath := uniquePath(f.destDir, deriveFilename(u, contentType, sum))
	err = os.WriteFile(destPath, rsp.Body, 0644)
	if err != nil {
		return failure(raw, err.Error())
	}

	filename := filepath.Base(destPath)
	f.record(sum, filename)

	log.Infof("saved %s --> %s", raw, destPath)
	return success(raw, filename)
}

// FetchMany calls FetchOne() for each url in the given slice, sequentially
// and in order. Blank entries are skipped after trimming. The input list
// itself is not deduplicated; a repeated url is rejected as a content
// duplicate once the first attempt succeeds.
func (f *Fetcher) FetchMany(ctx context.Context, urls []string) []Result {
	var results []Result

	for _, raw := range urls {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		results = append(results, f.FetchOne(ctx, raw))
	}

	return results
}

// Saved returns the filenames saved by this fetcher so far, in save order.
func (f *Fetcher) Saved() []string {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	return append([]string{}, f.saved...)
}

// HTTPClient returns the fetcher's http client.
func (f *Fetcher) HTTPClient() *http.Client {
	return f.hc
}

// known returns true if content with the given hash is already on disk.
func (f *Fetcher) known(sum string) bool {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	_, ok := f.hashes[sum]
	return ok
}

// remember marks the given content hash as present on disk.
func (f *Fetcher) remember(sum string) {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	f.hashes[sum] = struct{}{}
}

// record marks the given content hash as present on disk and appends the
// saved filename to the save log.
func (f *Fetcher) record(sum string, filename string) {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	f.hashes[sum] = struct{}{}
	f.saved = append(f.saved, filename)
}
