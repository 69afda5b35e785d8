package pasteboard

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// NSUTF8StringEncoding.
const utf8StringEncoding Encoding = 4

// cString returns the payload of a filled buffer: everything before the first
// NUL, capped at n bytes.
func cString(buf []byte, n int) []byte {
	if n > len(buf) {
		n = len(buf)
	}
	buf = buf[:n]
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}
	return buf
}

// decodeLossy copies b into a Go string, replacing invalid UTF-8 with U+FFFD
// rather than failing.
func decodeLossy(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	out, _, err := transform.Bytes(unicode.UTF8.NewDecoder(), b)
	if err != nil {
		return strings.ToValidUTF8(string(b), string(utf8.RuneError))
	}
	return string(out)
}
