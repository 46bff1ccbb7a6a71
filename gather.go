package main

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"

	log "github.com/sirupsen/logrus"
	"golang.org/x/net/html"
	"mvdan.cc/xurls/v2"

	"github.com/mtreece/imgfetch/download"
	"github.com/mtreece/imgfetch/web"
)

// gatherURLs collects the urls to fetch from every configured source:
// command-line arguments, a text file, and an html page. Order is preserved
// (arguments first, then file, then page).
func gatherURLs(ctx context.Context, cfg *Config, hc *http.Client) ([]string, error) {
	urls := append([]string{}, cfg.URLs...)

	if cfg.FromFile != "" {
		fromFile, err := fileURLs(cfg.FromFile)
		if err != nil {
			return nil, err
		}
		urls = append(urls, fromFile...)
	}

	if cfg.PageURL != "" {
		fromPage, err := pageImageURLs(ctx, hc, cfg.PageURL)
		if err != nil {
			return nil, err
		}
		urls = append(urls, fromPage...)
	}

	return urls, nil
}

// fileURLs extracts all urls from the given text file. The file does not
// need any particular structure; anything url-shaped is picked up, so plain
// lists, markdown, and html sources all work.
func fileURLs(filename string) ([]string, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read url file: %v", err)
	}

	rx := xurls.Strict()
	urls := rx.FindAllString(string(b), -1)

	log.Debugf("extracted urls from file: file=%s count=%d", filename, len(urls))
	return urls, nil
}

// pageImageURLs downloads the html page at the given url and returns the
// urls of all images it embeds, resolved against the page url.
func pageImageURLs(ctx context.Context, hc *http.Client, pageURL string) ([]string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid page url: %v", err)
	}

	ctx, cancel := context.WithTimeout(ctx, download.Timeout)
	defer cancel()

	body, _, err := download.GetBody(ctx, hc, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %v", err)
	}
	defer body.Close()

	doc, err := html.Parse(download.NewContextReader(ctx, body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %v", err)
	}

	urls := web.EmbeddedImageURLs(doc, base)

	log.Debugf("extracted image urls from page: page=%s count=%d", pageURL, len(urls))
	return urls, nil
}
