package textutil

import (
	"encoding/base64"
	"regexp"
	"strconv"
	"strings"
)

var (
	qpMarkerRe    = regexp.MustCompile(`=0A|=3D|=\r?\n`)
	qpSoftBreakRe = regexp.MustCompile(`=\r?\n`)
	qpEscapeRe    = regexp.MustCompile(`=([A-Fa-f0-9]{2})`)

	brTagRe      = regexp.MustCompile(`(?i)<br\s*/?>`)
	blockCloseRe = regexp.MustCompile(`(?i)</(p|div|li|tr|table|h[1-6])>`)
	scriptRe     = regexp.MustCompile(`(?is)<script.*?</script>`)
	styleRe      = regexp.MustCompile(`(?is)<style.*?</style>`)
	tagRe        = regexp.MustCompile(`<[^>]+>`)
	hSpaceRe     = regexp.MustCompile(`[ \t]+`)
	edgeSpaceRe  = regexp.MustCompile(` *\n *`)
	blankRunRe   = regexp.MustCompile(`\n{2,}`)

	bulletGlyphRe = regexp.MustCompile(`[|•▶︎▸]+`)
	wSpaceRe      = regexp.MustCompile(`\s+`)
)

// DecodeTransport decodes a base64url-encoded body chunk to UTF-8 text.
// If the decoded text still carries quoted-printable escapes (soft line
// breaks, =XX sequences) those are decoded as well. Malformed input
// yields an empty string, never an error.
func DecodeTransport(data string) string {
	if data == "" {
		return ""
	}
	raw, err := base64.URLEncoding.WithPadding(base64.NoPadding).DecodeString(strings.TrimRight(data, "="))
	if err != nil {
		return ""
	}
	s := string(raw)
	if qpMarkerRe.MatchString(s) {
		s = DecodeQuotedPrintable(s)
	}
	return s
}

// DecodeQuotedPrintable removes soft line breaks and decodes =XX escapes.
func DecodeQuotedPrintable(input string) string {
	if input == "" {
		return ""
	}
	s := qpSoftBreakRe.ReplaceAllString(input, "")
	s = qpEscapeRe.ReplaceAllStringFunc(s, func(m string) string {
		n, err := strconv.ParseUint(m[1:], 16, 8)
		if err != nil {
			return m
		}
		return string(rune(n))
	})
	return s
}

// HTMLToText converts HTML to line-aware plain text. Block-level closing
// tags and <br> become newlines before the remaining tags are stripped,
// so paragraph structure survives for the line-based heuristics.
func HTMLToText(html string) string {
	s := brTagRe.ReplaceAllString(html, "\n")
	s = blockCloseRe.ReplaceAllString(s, "\n")
	s = scriptRe.ReplaceAllString(s, " ")
	s = styleRe.ReplaceAllString(s, " ")
	s = tagRe.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, "&nbsp;", " ")
	s = strings.ReplaceAll(s, "&amp;", "&")
	s = strings.ReplaceAll(s, "&lt;", "<")
	s = strings.ReplaceAll(s, "&gt;", ">")
	s = hSpaceRe.ReplaceAllString(s, " ")
	s = edgeSpaceRe.ReplaceAllString(s, "\n")
	s = blankRunRe.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}

// CleanLine collapses whitespace and strips bullet/arrow glyphs.
// The '·' separator is preserved: card-style notifications use it
// between company and location.
func CleanLine(s string) string {
	s = wSpaceRe.ReplaceAllString(s, " ")
	s = bulletGlyphRe.ReplaceAllString(s, " ")
	s = wSpaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// SplitLines splits text into cleaned, non-empty lines.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r", "")
	var out []string
	for _, l := range strings.Split(text, "\n") {
		if cl := CleanLine(l); cl != "" {
			out = append(out, cl)
		}
	}
	return out
}
