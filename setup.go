package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
)

type Config struct {
	DestDir  string   // Destination directory to save images to.
	FromFile string   // Path of a text file to extract urls from ("" for none).
	PageURL  string   // Url of an html page to pull embedded images from ("" for none).
	Gallery  bool     // True to write an html gallery of saved images.
	Verbose  bool     // True for verbose output.
	URLs     []string // Urls given directly on the command line.
}

func parseArgs() (*Config, error) {
	destDir := flag.String("o", "images", "destination directory")
	fromFile := flag.String("f", "", "extract urls from a text file")
	pageURL := flag.String("p", "", "fetch all images embedded in an html page")
	gallery := flag.Bool("gallery", false, "write gallery.html linking the saved images")
	verbose := flag.Bool("v", false, "verbose output")

	flag.Usage = usage
	flag.Parse()

	cfg := &Config{
		DestDir:  *destDir,
		FromFile: *fromFile,
		PageURL:  *pageURL,
		Gallery:  *gallery,
		Verbose:  *verbose,
		URLs:     flag.Args(),
	}

	if len(cfg.URLs) == 0 && cfg.FromFile == "" && cfg.PageURL == "" {
		return nil, fmt.Errorf("no urls given: supply url arguments, -f, or -p")
	}

	return cfg, nil
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [option]... [url]...\n", filepath.Base(os.Args[0]))
	fmt.Fprintf(flag.CommandLine.Output(), "Downloads images and saves them to a local directory, skipping duplicates.\n")
	flag.PrintDefaults()
}
