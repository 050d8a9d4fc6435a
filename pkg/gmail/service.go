package gmail

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	ingestdomain "jobtrail-backend/internal/ingest/domain"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// TokenUpdateFunc is a callback function that handles token updates
type TokenUpdateFunc = ingestdomain.TokenUpdateFunc

const (
	pageSize = 100
	maxPages = 10
)

// Service fetches mailbox messages through the Gmail REST API. It
// implements ingestdomain.MessageSource.
type Service struct {
	clientID     string
	clientSecret string
}

type notifyTokenSource struct {
	src      oauth2.TokenSource
	current  *oauth2.Token
	callback TokenUpdateFunc
}

func (s *notifyTokenSource) Token() (*oauth2.Token, error) {
	t, err := s.src.Token()
	if err != nil {
		return nil, err
	}
	if s.callback != nil && s.current.AccessToken != t.AccessToken {
		s.current = t
		if err := s.callback(t); err != nil {
			log.Printf("[GMAIL] Failed to persist refreshed token: %v", err)
		}
	}
	return t, nil
}

func NewService(clientID, clientSecret string) *Service {
	return &Service{
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

// getGmailService creates a Gmail client with the user's tokens.
func (s *Service) getGmailService(ctx context.Context, accessToken, refreshToken string, onTokenRefresh TokenUpdateFunc) (*gmail.Service, error) {
	token := &oauth2.Token{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
	}

	// Only force refresh if we have a refresh token
	if refreshToken != "" {
		token.Expiry = time.Now()
	}

	config := &oauth2.Config{
		ClientID:     s.clientID,
		ClientSecret: s.clientSecret,
		Endpoint:     google.Endpoint,
	}

	tokenSource := config.TokenSource(ctx, token)

	// Wrap token source to detect refreshes
	wrappedSource := &notifyTokenSource{
		src:      tokenSource,
		current:  token,
		callback: onTokenRefresh,
	}

	client := oauth2.NewClient(ctx, wrappedSource)

	srv, err := gmail.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Gmail service: %v", err)
	}

	return srv, nil
}

// ListMessageIDs lists up to max message ids matching the Gmail search
// query, newest first, paging through at most 10 pages of 100.
func (s *Service) ListMessageIDs(ctx context.Context, accessToken, refreshToken, query string, max int, onTokenRefresh TokenUpdateFunc) ([]string, error) {
	srv, err := s.getGmailService(ctx, accessToken, refreshToken, onTokenRefresh)
	if err != nil {
		return nil, err
	}

	var ids []string
	pageToken := ""
	for page := 0; page < maxPages && len(ids) < max; page++ {
		call := srv.Users.Messages.List("me").Q(query).MaxResults(pageSize)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		resp, err := call.Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("unable to list messages: %v", err)
		}
		for _, m := range resp.Messages {
			ids = append(ids, m.Id)
			if len(ids) >= max {
				break
			}
		}
		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return ids, nil
}

// GetMessage fetches one message in full format and converts it to the
// source-neutral representation used by the pipeline.
func (s *Service) GetMessage(ctx context.Context, accessToken, refreshToken, id string, onTokenRefresh TokenUpdateFunc) (*ingestdomain.RawMessage, error) {
	srv, err := s.getGmailService(ctx, accessToken, refreshToken, onTokenRefresh)
	if err != nil {
		return nil, err
	}

	msg, err := srv.Users.Messages.Get("me", id).Format("full").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve message: %v", err)
	}

	raw := &ingestdomain.RawMessage{
		ID:       msg.Id,
		ThreadID: msg.ThreadId,
	}
	if msg.Payload != nil {
		for _, h := range msg.Payload.Headers {
			raw.Headers = append(raw.Headers, ingestdomain.Header{Name: h.Name, Value: h.Value})
		}
		raw.Payload = convertPart(msg.Payload)
	}

	return raw, nil
}

func convertPart(part *gmail.MessagePart) *ingestdomain.MimePart {
	if part == nil {
		return nil
	}
	out := &ingestdomain.MimePart{MimeType: part.MimeType}
	if part.Body != nil {
		out.Data = part.Body.Data
	}
	for _, p := range part.Parts {
		out.Parts = append(out.Parts, convertPart(p))
	}
	return out
}

// ValidateToken validates the access token by making a simple API call
func (s *Service) ValidateToken(ctx context.Context, accessToken, refreshToken string, onTokenRefresh TokenUpdateFunc) error {
	srv, err := s.getGmailService(ctx, accessToken, refreshToken, onTokenRefresh)
	if err != nil {
		return err
	}

	_, err = srv.Users.GetProfile("me").Do()
	if err != nil {
		return errors.New("invalid or expired access token")
	}

	return nil
}
