package fetch

import (
	"bytes"
	"strings"
)

// imageMIMETypes are the content-type fragments recognized as images. A
// declared content-type matches if it contains any of these (e.g.,
// "image/svg+xml; charset=utf-8" matches "image/svg").
var imageMIMETypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
	"image/bmp",
	"image/svg",
	"image/tiff",
}

// signature is a fixed byte pattern that identifies an image format when it
// appears at the given offset in a file.
type signature struct {
	format  string
	offset  int
	pattern []byte
}

// magicTable lists known image signatures, checked in order. The webp entry
// matches the format marker inside a RIFF container; the container tag
// itself is verified separately in matchesMagic().
var magicTable = []signature{
	{"jpeg", 0, []byte{0xFF, 0xD8, 0xFF}},
	{"png", 0, []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}},
	{"gif", 0, []byte("GIF87a")},
	{"gif", 0, []byte("GIF89a")},
	{"webp", 8, []byte("WEBP")},
	{"bmp", 0, []byte("BM")},
	{"tiff", 0, []byte{'I', 'I', 0x2A, 0x00}},
	{"tiff", 0, []byte{'M', 'M', 0x00, 0x2A}},
}

// matchesMagic returns true if the start of b carries the magic number of a
// known image format. Svg has no magic number; a document that starts with
// an svg or xml tag is accepted instead.
func matchesMagic(b []byte) bool {
	for _, sig := range magicTable {
		end := sig.offset + len(sig.pattern)
		if len(b) < end {
			continue
		}
		if !bytes.Equal(b[sig.offset:end], sig.pattern) {
			continue
		}
		if sig.format == "webp" && !bytes.HasPrefix(b, []byte("RIFF")) {
			continue
		}
		return true
	}

	trimmed := bytes.TrimLeft(b, " \t\r\n")
	return bytes.HasPrefix(trimmed, []byte("<svg")) ||
		bytes.HasPrefix(trimmed, []byte("<?xml"))
}

// IsImage reports whether an http response looks like an image. A declared
// content-type naming a recognized image format wins regardless of body
// content. When the content-type is absent or unrecognized, the first bytes
// of the body are checked against the magic number table. This is a
// heuristic sniff, not a guarantee of valid image structure.
func IsImage(contentType string, body []byte) bool {
	ct := strings.ToLower(contentType)
	for _, mt := range imageMIMETypes {
		if strings.Contains(ct, mt) {
			return true
		}
	}

	return matchesMagic(body)
}

// extForContentType returns the filename extension to use for a synthesized
// filename with the given content-type. Unrecognized types default to jpg.
func extForContentType(contentType string) string {
	ct := strings.ToLower(contentType)

	switch {
	case strings.Contains(ct, "image/png"):
		return "png"
	case strings.Contains(ct, "image/gif"):
		return "gif"
	default:
		return "jpg"
	}
}
