package photos

import (
	"net/url"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

// supportedExts are the files picked up from series directories
var supportedExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true,
	".avif": true, ".svg": true, ".tif": true, ".tiff": true,
}

var (
	separatorRuns  = regexp.MustCompile(`[-_]+`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
)

// splitPublicURL decodes the segments of a public URL. Empty segments are
// dropped. Escaping segments ("..") and undecodable ones fail.
func splitPublicURL(publicURL string) ([]string, bool) {
	var segments []string
	for _, segment := range strings.Split(strings.TrimPrefix(publicURL, "/"), "/") {
		if segment == "" {
			continue
		}
		decoded, err := url.PathUnescape(segment)
		if err != nil || decoded == ".." || strings.ContainsAny(decoded, `/\`) {
			return nil, false
		}
		segments = append(segments, decoded)
	}
	return segments, true
}

// EncodePublicURL percent-encodes every segment the way browsers expect
// encodeURIComponent output
func EncodePublicURL(publicURL string) string {
	var encoded []string
	for _, segment := range strings.Split(publicURL, "/") {
		if segment == "" {
			continue
		}
		encoded = append(encoded, encodeComponent(segment))
	}
	joined := strings.Join(encoded, "/")
	if strings.HasPrefix(publicURL, "/") {
		return "/" + joined
	}
	return joined
}

const upperHex = "0123456789ABCDEF"

func encodeComponent(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperHex[c>>4])
		b.WriteByte(upperHex[c&15])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}

// webDerivative maps "/dir/name.ext" to "/dir/_web/name.jpg"
func webDerivative(publicURL string) string {
	base := path.Base(publicURL)
	base = strings.TrimSuffix(base, path.Ext(base))
	return path.Dir(publicURL) + "/_web/" + base + ".jpg"
}

// altFromFilename turns "neon_city-03.jpg" into "neon city 03"
func altFromFilename(publicURL string) string {
	base := path.Base(publicURL)
	base = strings.TrimSuffix(base, path.Ext(base))
	base = separatorRuns.ReplaceAllString(base, " ")
	return strings.TrimSpace(whitespaceRuns.ReplaceAllString(base, " "))
}

// toPublicURL converts a file path under root to a "/"-rooted URL
func toPublicURL(root, absolute string) (string, bool) {
	rel, err := filepath.Rel(root, absolute)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return "/" + filepath.ToSlash(rel), true
}
