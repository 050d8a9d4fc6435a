package imap

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	ingestdomain "jobtrail-backend/internal/ingest/domain"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"github.com/emersion/go-message"
)

var newerThanRe = regexp.MustCompile(`newer_than:(\d+)d`)

// Service fetches mailbox messages over IMAP for accounts linked with
// explicit credentials instead of Google OAuth. It implements
// ingestdomain.MessageSource; the token parameters of the interface are
// unused because credentials are bound at construction time.
type Service struct {
	host     string
	port     int
	username string
	password string
}

// NewService binds one user's decrypted IMAP credentials.
func NewService(host string, port int, username, password string) *Service {
	return &Service{
		host:     host,
		port:     port,
		username: username,
		password: password,
	}
}

func (s *Service) connect() (*client.Client, error) {
	address := fmt.Sprintf("%s:%d", s.host, s.port)
	tlsConfig := &tls.Config{ServerName: s.host}

	c, err := client.DialTLS(address, tlsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to IMAP server: %w", err)
	}
	if err := c.Login(s.username, s.password); err != nil {
		_ = c.Logout()
		return nil, fmt.Errorf("failed to login: %w", err)
	}
	if _, err := c.Select("INBOX", true); err != nil {
		_ = c.Logout()
		return nil, fmt.Errorf("failed to select INBOX: %w", err)
	}
	return c, nil
}

// ListMessageIDs searches the INBOX and returns up to max message UIDs,
// newest first. Only the newer_than:<N>d term of the query is honored;
// IMAP servers have no equivalent of Gmail's category filters.
func (s *Service) ListMessageIDs(_ context.Context, _, _, query string, max int, _ ingestdomain.TokenUpdateFunc) ([]string, error) {
	c, err := s.connect()
	if err != nil {
		return nil, err
	}
	defer func() { _ = c.Logout() }()

	criteria := imap.NewSearchCriteria()
	if days := newerThanDays(query); days > 0 {
		criteria.Since = time.Now().AddDate(0, 0, -days)
	}

	uids, err := c.UidSearch(criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	sort.Slice(uids, func(i, j int) bool { return uids[i] > uids[j] })
	if len(uids) > max {
		uids = uids[:max]
	}

	ids := make([]string, 0, len(uids))
	for _, uid := range uids {
		ids = append(ids, strconv.FormatUint(uint64(uid), 10))
	}
	return ids, nil
}

// GetMessage fetches one message by UID and parses its MIME structure
// into the source-neutral representation. The Message-Id header doubles
// as the thread identifier since IMAP exposes no thread ids.
func (s *Service) GetMessage(_ context.Context, _, _, id string, _ ingestdomain.TokenUpdateFunc) (*ingestdomain.RawMessage, error) {
	uid, err := strconv.ParseUint(id, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid message id %q: %w", id, err)
	}

	c, err := s.connect()
	if err != nil {
		return nil, err
	}
	defer func() { _ = c.Logout() }()

	seqset := new(imap.SeqSet)
	seqset.AddNum(uint32(uid))

	section := &imap.BodySectionName{Peek: true}
	items := []imap.FetchItem{imap.FetchUid, section.FetchItem()}

	messages := make(chan *imap.Message, 1)
	if err := c.UidFetch(seqset, items, messages); err != nil {
		return nil, fmt.Errorf("failed to fetch message: %w", err)
	}

	msg := <-messages
	if msg == nil {
		return nil, fmt.Errorf("message %s not found", id)
	}
	body := msg.GetBody(section)
	if body == nil {
		return nil, fmt.Errorf("message %s has no body", id)
	}

	entity, err := message.Read(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse MIME message: %w", err)
	}

	raw := &ingestdomain.RawMessage{ID: id}
	for _, name := range []string{"Subject", "From", "Date", "Message-Id"} {
		if v := entity.Header.Get(name); v != "" {
			raw.Headers = append(raw.Headers, ingestdomain.Header{Name: name, Value: v})
		}
	}
	raw.ThreadID = strings.Trim(entity.Header.Get("Message-Id"), "<>")
	raw.Payload = buildPart(entity)

	return raw, nil
}

// buildPart converts a parsed MIME entity into the part tree used by
// the pipeline, encoding leaf data the way the Gmail API does.
func buildPart(entity *message.Entity) *ingestdomain.MimePart {
	mediaType, _, _ := entity.Header.ContentType()
	part := &ingestdomain.MimePart{MimeType: mediaType}

	if strings.HasPrefix(mediaType, "multipart/") {
		mr := entity.MultipartReader()
		for {
			child, err := mr.NextPart()
			if err == io.EOF {
				break
			}
			if err != nil {
				break
			}
			part.Parts = append(part.Parts, buildPart(child))
		}
		return part
	}

	data, err := io.ReadAll(entity.Body)
	if err == nil && len(data) > 0 {
		part.Data = base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString(data)
	}
	return part
}

func newerThanDays(query string) int {
	m := newerThanRe.FindStringSubmatch(query)
	if m == nil {
		return 0
	}
	days, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return days
}
