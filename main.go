package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/mtreece/imgfetch/fetch"
	"github.com/mtreece/imgfetch/web"
)

func printFatalError(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
}

// printResults writes one line per fetch result to stdout, then a summary
// line. It returns the number of successful fetches.
func printResults(results []fetch.Result) int {
	numOK := 0
	for _, r := range results {
		status := "fail"
		if r.OK {
			status = "ok"
			numOK++
		}
		fmt.Printf("%-4s %s: %s\n", status, r.URL, r.Message)
	}

	fmt.Printf("%d saved, %d failed\n", numOK, len(results)-numOK)
	return numOK
}

// writeGallery writes an html page to the destination directory linking
// every file saved during this run.
func writeGallery(destDir string, filenames []string) error {
	gallery := web.BuildGallery(filenames)

	path := filepath.Join(destDir, "gallery.html")
	err := os.WriteFile(path, []byte(gallery), 0644)
	if err != nil {
		return fmt.Errorf("failed to write gallery: %v", err)
	}

	log.Infof("wrote gallery: %s", path)
	return nil
}

func main() {
	cfg, err := parseArgs()
	if err != nil {
		printFatalError(err)
		flag.Usage()
		os.Exit(1)
	}

	if cfg.Verbose {
		log.SetLevel(log.DebugLevel)
	}

	ctx := context.Background()

	f := fetch.New(cfg.DestDir)
	err = f.Init(ctx)
	if err != nil {
		printFatalError(err)
		os.Exit(2)
	}

	urls, err := gatherURLs(ctx, cfg, f.HTTPClient())
	if err != nil {
		printFatalError(err)
		os.Exit(2)
	}

	printResults(f.FetchMany(ctx, urls))

	if cfg.Gallery {
		err = writeGallery(cfg.DestDir, f.Saved())
		if err != nil {
			printFatalError(err)
			os.Exit(2)
		}
	}
}
