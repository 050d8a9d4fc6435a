package extract

import (
	"strings"

	ingestdomain "jobtrail-backend/internal/ingest/domain"
	"jobtrail-backend/pkg/textutil"
)

// BodyText flattens a MIME part tree into one newline-joined plain-text
// string. Leaves with text/plain data are decoded as-is, text/html
// leaves are stripped to line-aware text, and nested parts are walked
// depth-first in order. A top-level part carrying inline data is used
// as the sole leaf when the tree has no other text leaf. Never fails.
func BodyText(payload *ingestdomain.MimePart) string {
	if payload == nil {
		return ""
	}

	var texts []string
	var walk func(part *ingestdomain.MimePart)
	walk = func(part *ingestdomain.MimePart) {
		if part == nil {
			return
		}
		if part.Data != "" && (strings.HasPrefix(part.MimeType, "text/plain") || strings.HasPrefix(part.MimeType, "text/html")) {
			raw := textutil.DecodeTransport(part.Data)
			if strings.HasPrefix(part.MimeType, "text/html") {
				raw = textutil.HTMLToText(raw)
			}
			texts = append(texts, raw)
		}
		for _, p := range part.Parts {
			walk(p)
		}
	}
	walk(payload)

	if len(texts) == 0 && payload.Data != "" {
		raw := textutil.DecodeTransport(payload.Data)
		if strings.HasPrefix(payload.MimeType, "text/html") {
			raw = textutil.HTMLToText(raw)
		}
		texts = append(texts, raw)
	}

	return strings.TrimSpace(strings.Join(texts, "\n"))
}
