package client

import (
	"net/url"
	"regexp"
)

// DefaultFilename is used when the disposition header carries no usable name.
const DefaultFilename = "file"

var (
	filenameExtendedRe = regexp.MustCompile(`filename\*=(?:[^']*)'[^']*'(.+)`)
	filenameQuotedRe   = regexp.MustCompile(`filename="(.+?)"`)
)

// FilenameFromDisposition resolves the download filename from a
// Content-Disposition header value. The extended percent-encoded form
// (filename*=charset''value) is tried first, then the quoted simple form
// (filename="value"); if neither is present or parseable the literal
// DefaultFilename is returned.
func FilenameFromDisposition(header string) string {
	if header == "" {
		return DefaultFilename
	}

	if m := filenameExtendedRe.FindStringSubmatch(header); m != nil {
		if decoded, err := url.PathUnescape(m[1]); err == nil {
			return decoded
		}
	}

	if m := filenameQuotedRe.FindStringSubmatch(header); m != nil {
		return m[1]
	}

	return DefaultFilename
}
