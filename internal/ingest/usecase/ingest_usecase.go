package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"strings"
	"time"

	authdomain "jobtrail-backend/internal/auth/domain"
	authrepo "jobtrail-backend/internal/auth/repository"
	"jobtrail-backend/internal/ingest/classify"
	ingestdomain "jobtrail-backend/internal/ingest/domain"
	"jobtrail-backend/internal/ingest/extract"
	trackerdomain "jobtrail-backend/internal/tracker/domain"
	trackerrepo "jobtrail-backend/internal/tracker/repository"
	"jobtrail-backend/pkg/config"
	"jobtrail-backend/pkg/crypto"
	"jobtrail-backend/pkg/imap"

	"golang.org/x/oauth2"
)

const (
	maxToFetch       = 600
	diagnoseQuery    = "newer_than:120d -category:promotions -category:social"
	diagnoseMaxRows  = 30
	gmailLinkPattern = "https://mail.google.com/mail/u/0/#all/%s"
)

var ErrNoMailboxLinked = errors.New("no_gmail_link")

// ingestUsecase implements IngestUsecase interface
type ingestUsecase struct {
	accountRepo authrepo.MailAccountRepository
	appRepo     trackerrepo.ApplicationRepository
	gmailSource ingestdomain.MessageSource
	classifier  *classify.Classifier
	extractor   extract.Extractor
	encryptor   *crypto.Encryptor
	config      *config.Config
}

// NewIngestUsecase creates a new instance of ingestUsecase
func NewIngestUsecase(
	accountRepo authrepo.MailAccountRepository,
	appRepo trackerrepo.ApplicationRepository,
	gmailSource ingestdomain.MessageSource,
	classifier *classify.Classifier,
	extractor extract.Extractor,
	encryptor *crypto.Encryptor,
	cfg *config.Config,
) IngestUsecase {
	return &ingestUsecase{
		accountRepo: accountRepo,
		appRepo:     appRepo,
		gmailSource: gmailSource,
		classifier:  classifier,
		extractor:   extractor,
		encryptor:   encryptor,
		config:      cfg,
	}
}

// mailboxSession binds a message source to one user's credentials.
type mailboxSession struct {
	source         ingestdomain.MessageSource
	accessToken    string
	refreshToken   string
	onTokenRefresh ingestdomain.TokenUpdateFunc
	isGmail        bool
}

// sessionForUser prefers the Gmail link and falls back to a linked
// IMAP account. ErrNoMailboxLinked when the user linked neither.
func (u *ingestUsecase) sessionForUser(userID string) (*mailboxSession, error) {
	token, err := u.accountRepo.GetGmailToken(userID)
	if err != nil {
		return nil, err
	}
	if token != nil {
		return &mailboxSession{
			source:       u.gmailSource,
			accessToken:  token.AccessToken,
			refreshToken: token.RefreshToken,
			onTokenRefresh: func(t *oauth2.Token) error {
				refreshed := &authdomain.GmailToken{
					UserID:       userID,
					AccessToken:  t.AccessToken,
					RefreshToken: t.RefreshToken,
					Expiry:       t.Expiry,
				}
				if refreshed.RefreshToken == "" {
					refreshed.RefreshToken = token.RefreshToken
				}
				return u.accountRepo.SaveGmailToken(refreshed)
			},
			isGmail: true,
		}, nil
	}

	account, err := u.accountRepo.GetImapAccount(userID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrNoMailboxLinked
	}
	password, err := u.encryptor.Decrypt(account.PasswordEnc)
	if err != nil {
		return nil, err
	}
	return &mailboxSession{
		source: imap.NewService(account.Host, account.Port, account.Username, password),
	}, nil
}

// IngestForUser scans the user's inbox and reconciles every surviving
// message into the application tracker. Messages are processed
// sequentially; per-message persistence failures are counted as skips
// instead of aborting the batch.
func (u *ingestUsecase) IngestForUser(ctx context.Context, userID string, days, limit int) (*IngestResult, error) {
	session, err := u.sessionForUser(userID)
	if err != nil {
		return nil, err
	}

	if days <= 0 {
		days = u.config.IngestDays
	}
	if limit <= 0 {
		limit = u.config.IngestLimit
	}
	if limit > maxToFetch {
		limit = maxToFetch
	}
	query := fmt.Sprintf("newer_than:%dd in:inbox -category:social -category:promotions", days)

	result := &IngestResult{
		SkippedBy: map[string]int{},
		UsedQuery: query,
	}

	ids, err := session.source.ListMessageIDs(ctx, session.accessToken, session.refreshToken, query, limit, session.onTokenRefresh)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		result.SkippedBy["no_ids_from_gmail"] = 1
		return result, nil
	}
	result.Scanned = len(ids)

	for _, id := range ids {
		raw, err := session.source.GetMessage(ctx, session.accessToken, session.refreshToken, id, session.onTokenRefresh)
		if err != nil {
			return nil, err
		}
		imported, skipReason := u.processMessage(userID, raw, session.isGmail)
		if skipReason != "" {
			result.SkippedBy[skipReason]++
			continue
		}
		if imported {
			result.Imported++
		}
	}

	return result, nil
}

// processMessage runs one message through classification, extraction
// and reconciliation. Returns whether a new application was created
// and, if the message was dropped, the skip reason.
func (u *ingestUsecase) processMessage(userID string, raw *ingestdomain.RawMessage, isGmail bool) (bool, string) {
	subject := raw.Header("Subject")
	from := raw.Header("From")
	returnPath := raw.Header("Return-Path")
	replyTo := raw.Header("Reply-To")
	dateStr := raw.Header("Date")

	body := extract.BodyText(raw.Payload)
	haystack := classify.Haystack(subject, body, from, returnPath, replyTo)
	fromDomain := extract.EmailDomain(from)

	if reason, excluded := u.classifier.Exclude(haystack, fromDomain); excluded {
		return false, reason
	}

	senderBlob := strings.ToLower(from + " " + returnPath + " " + replyTo)
	source, isATS := u.classifier.Source(fromDomain, senderBlob)
	status, ok := u.classifier.Lifecycle(haystack, isATS)
	if !ok {
		return false, classify.ReasonNoPositiveSignal
	}

	fields := u.extractor.Extract(extract.Input{
		Subject: subject,
		Body:    body,
		From:    from,
		Source:  source,
	})
	nRole := extract.NormalizeRole(fields.Role)
	if nRole == "" {
		nRole = trackerdomain.UnknownValue
	}
	nCompany := extract.NormalizeCompany(fields.Company, fields.Role)
	if nCompany == "" {
		nCompany = trackerdomain.UnknownValue
	}

	var applyDate, sentAt *time.Time
	if dateStr != "" {
		if t, err := mail.ParseDate(dateStr); err == nil {
			sentAt = &t
			day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			applyDate = &day
		}
	}

	existing := u.findExisting(userID, raw.ThreadID, nCompany, nRole, subject)

	var prevStatus trackerdomain.Status
	if existing != nil {
		prevStatus = existing.Status
	}
	finalStatus := trackerdomain.Promote(prevStatus, status)

	var applicationID string
	if existing == nil {
		app := &trackerdomain.Application{
			UserID:    userID,
			ThreadID:  raw.ThreadID,
			GmailID:   raw.ID,
			Company:   nCompany,
			Role:      nRole,
			Source:    source,
			Status:    finalStatus,
			ApplyDate: applyDate,
			JobURL:    fields.JobURL,
			Notes:     "Imported from Gmail: " + subject,
		}
		if err := u.appRepo.Create(app); err != nil {
			return false, "insert_error_" + pgCode(err)
		}
		applicationID = app.ID

		u.logEmail(userID, applicationID, raw.ID, subject, sentAt, isGmail)
		return true, ""
	}

	existing.Status = finalStatus
	existing.ApplyDate = applyDate
	if raw.ID != "" {
		existing.GmailID = raw.ID
	}
	// Known values survive: the sentinel never overwrites them, and the
	// platform name "linkedin" never replaces a real employer.
	if nCompany != trackerdomain.UnknownValue && !strings.EqualFold(nCompany, "linkedin") {
		existing.Company = nCompany
	}
	if nRole != trackerdomain.UnknownValue {
		existing.Role = nRole
	}
	if fields.JobURL != "" {
		existing.JobURL = fields.JobURL
	}
	if err := u.appRepo.Update(existing); err != nil {
		return false, "update_error_" + pgCode(err)
	}
	applicationID = existing.ID

	u.logEmail(userID, applicationID, raw.ID, subject, sentAt, isGmail)
	return false, ""
}

// logEmail appends the audit row. Failures are logged and swallowed:
// the audit trail is best-effort and must not fail the import.
func (u *ingestUsecase) logEmail(userID, applicationID, messageID, subject string, sentAt *time.Time, isGmail bool) {
	entry := &trackerdomain.ApplicationEmail{
		UserID:        userID,
		ApplicationID: applicationID,
		GmailID:       messageID,
		Subject:       subject,
		SentAt:        sentAt,
	}
	if isGmail && messageID != "" {
		entry.GmailLink = fmt.Sprintf(gmailLinkPattern, messageID)
	}
	if err := u.appRepo.CreateEmail(entry); err != nil {
		log.Printf("[INGEST] Failed to log application email: %v", err)
	}
}

// Diagnose classifies the most recent messages without persisting
// anything, returning the raw flag breakdown per message.
func (u *ingestUsecase) Diagnose(ctx context.Context, userID string) ([]DiagnoseRow, error) {
	session, err := u.sessionForUser(userID)
	if err != nil {
		return nil, err
	}

	ids, err := session.source.ListMessageIDs(ctx, session.accessToken, session.refreshToken, diagnoseQuery, diagnoseMaxRows, session.onTokenRefresh)
	if err != nil {
		return nil, err
	}

	rows := make([]DiagnoseRow, 0, len(ids))
	for _, id := range ids {
		raw, err := session.source.GetMessage(ctx, session.accessToken, session.refreshToken, id, session.onTokenRefresh)
		if err != nil {
			return nil, err
		}

		subject := raw.Header("Subject")
		from := raw.Header("From")
		body := extract.BodyText(raw.Payload)
		haystack := classify.Haystack(subject, body, from)
		fromDomain := extract.EmailDomain(from)
		senderBlob := strings.ToLower(from)
		hasListUnsubscribe := raw.Header("List-Unsubscribe") != ""

		preview := body
		if len(preview) > 160 {
			preview = preview[:160]
		}

		rows = append(rows, DiagnoseRow{
			ID:      raw.ID,
			Subject: subject,
			From:    from,
			Preview: preview,
			Flags:   u.classifier.Inspect(haystack, fromDomain, senderBlob, hasListUnsubscribe),
		})
	}

	return rows, nil
}

func pgCode(err error) string {
	if code := trackerrepo.PgErrorCode(err); code != "" {
		return code
	}
	return "unknown"
}
