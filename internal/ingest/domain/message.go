package domain

import (
	"context"
	"strings"

	trackerdomain "jobtrail-backend/internal/tracker/domain"

	"golang.org/x/oauth2"
)

// TokenUpdateFunc is a callback invoked when the oauth2 layer rotates
// the user's access token, so the new token can be persisted.
type TokenUpdateFunc func(token *oauth2.Token) error

// Header is a single message header as delivered by the source.
type Header struct {
	Name  string
	Value string
}

// MimePart is a node of the decoded MIME tree. A part is either a leaf
// carrying body data or a composite holding nested parts; body data is
// base64url-encoded, matching the Gmail API wire format.
type MimePart struct {
	MimeType string
	Data     string
	Parts    []*MimePart
}

// IsLeaf reports whether the part carries inline body data.
func (p *MimePart) IsLeaf() bool {
	return p != nil && p.Data != ""
}

// RawMessage is a transient fetched message: headers plus MIME tree.
// Only a handful of headers are ever consulted by the pipeline.
type RawMessage struct {
	ID       string
	ThreadID string
	Headers  []Header
	Payload  *MimePart
}

// Header returns the first header with the given name, case-insensitive.
func (m *RawMessage) Header(name string) string {
	for _, h := range m.Headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}

// ExtractedSignal is the per-message pipeline output before
// reconciliation. Produced fresh for every message, never persisted.
type ExtractedSignal struct {
	Status  trackerdomain.Status
	Source  string
	Role    string
	Company string
	JobURL  string
}

// MessageSource lists and fetches mailbox messages for one user.
// Implementations paginate internally; the pipeline never sees tokens.
type MessageSource interface {
	ListMessageIDs(ctx context.Context, accessToken, refreshToken, query string, max int, onTokenRefresh TokenUpdateFunc) ([]string, error)
	GetMessage(ctx context.Context, accessToken, refreshToken, id string, onTokenRefresh TokenUpdateFunc) (*RawMessage, error)
}
