package usecase

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	authdomain "jobtrail-backend/internal/auth/domain"
	"jobtrail-backend/internal/ingest/classify"
	ingestdomain "jobtrail-backend/internal/ingest/domain"
	"jobtrail-backend/internal/ingest/extract"
	trackerdomain "jobtrail-backend/internal/tracker/domain"
	"jobtrail-backend/pkg/config"
	"jobtrail-backend/pkg/crypto"
)

// fakeAccountRepo serves a single pre-linked Gmail token.
type fakeAccountRepo struct {
	gmailToken *authdomain.GmailToken
}

func (f *fakeAccountRepo) SaveGmailToken(token *authdomain.GmailToken) error {
	f.gmailToken = token
	return nil
}

func (f *fakeAccountRepo) GetGmailToken(userID string) (*authdomain.GmailToken, error) {
	return f.gmailToken, nil
}

func (f *fakeAccountRepo) DeleteGmailToken(userID string) error {
	f.gmailToken = nil
	return nil
}

func (f *fakeAccountRepo) SaveImapAccount(account *authdomain.ImapAccount) error { return nil }

func (f *fakeAccountRepo) GetImapAccount(userID string) (*authdomain.ImapAccount, error) {
	return nil, nil
}

func (f *fakeAccountRepo) DeleteImapAccount(userID string) error { return nil }

// fakeAppRepo is an in-memory ApplicationRepository.
type fakeAppRepo struct {
	apps   []*trackerdomain.Application
	emails []*trackerdomain.ApplicationEmail
	nextID int
}

func (f *fakeAppRepo) Create(app *trackerdomain.Application) error {
	f.nextID++
	app.ID = "app-" + itoa(f.nextID)
	app.CreatedAt = time.Now()
	app.UpdatedAt = time.Now()
	stored := *app
	f.apps = append(f.apps, &stored)
	return nil
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var b []byte
	for n > 0 {
		b = append([]byte{byte('0' + n%10)}, b...)
		n /= 10
	}
	return string(b)
}

func (f *fakeAppRepo) Update(app *trackerdomain.Application) error {
	for i, a := range f.apps {
		if a.ID == app.ID {
			stored := *app
			stored.UpdatedAt = time.Now()
			f.apps[i] = &stored
			return nil
		}
	}
	return errors.New("not found")
}

func (f *fakeAppRepo) FindByThread(userID, threadID string) (*trackerdomain.Application, error) {
	for _, a := range f.apps {
		if a.UserID == userID && a.ThreadID == threadID {
			copied := *a
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeAppRepo) FindByCompanySince(userID, company string, since time.Time, limit int) ([]trackerdomain.Application, error) {
	var out []trackerdomain.Application
	for _, a := range f.apps {
		if a.UserID == userID && a.CreatedAt.After(since) &&
			strings.Contains(strings.ToLower(a.Company), strings.ToLower(company)) {
			out = append(out, *a)
		}
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (f *fakeAppRepo) FindByRoleSince(userID, role string, since time.Time, limit int) ([]trackerdomain.Application, error) {
	var out []trackerdomain.Application
	for _, a := range f.apps {
		if a.UserID == userID && a.CreatedAt.After(since) &&
			strings.Contains(strings.ToLower(a.Role), strings.ToLower(role)) {
			out = append(out, *a)
		}
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (f *fakeAppRepo) ListByUser(userID string) ([]trackerdomain.Application, error) {
	var out []trackerdomain.Application
	for _, a := range f.apps {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAppRepo) GetByID(userID, id string) (*trackerdomain.Application, error) {
	for _, a := range f.apps {
		if a.UserID == userID && a.ID == id {
			copied := *a
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeAppRepo) Delete(userID, id string) error { return nil }

func (f *fakeAppRepo) CreateEmail(email *trackerdomain.ApplicationEmail) error {
	stored := *email
	f.emails = append(f.emails, &stored)
	return nil
}

func (f *fakeAppRepo) ListEmailsByApplication(userID, applicationID string) ([]trackerdomain.ApplicationEmail, error) {
	var out []trackerdomain.ApplicationEmail
	for _, e := range f.emails {
		if e.UserID == userID && e.ApplicationID == applicationID {
			out = append(out, *e)
		}
	}
	return out, nil
}

// fakeSource serves canned messages regardless of query.
type fakeSource struct {
	messages []*ingestdomain.RawMessage
}

func (f *fakeSource) ListMessageIDs(ctx context.Context, accessToken, refreshToken, query string, max int, onTokenRefresh ingestdomain.TokenUpdateFunc) ([]string, error) {
	var ids []string
	for _, m := range f.messages {
		ids = append(ids, m.ID)
		if len(ids) >= max {
			break
		}
	}
	return ids, nil
}

func (f *fakeSource) GetMessage(ctx context.Context, accessToken, refreshToken, id string, onTokenRefresh ingestdomain.TokenUpdateFunc) (*ingestdomain.RawMessage, error) {
	for _, m := range f.messages {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, errors.New("message not found")
}

func b64url(s string) string {
	return base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString([]byte(s))
}

func textMessage(id, threadID, subject, from, body string) *ingestdomain.RawMessage {
	return &ingestdomain.RawMessage{
		ID:       id,
		ThreadID: threadID,
		Headers: []ingestdomain.Header{
			{Name: "Subject", Value: subject},
			{Name: "From", Value: from},
			{Name: "Date", Value: "Tue, 02 Jan 2024 15:04:05 +0000"},
		},
		Payload: &ingestdomain.MimePart{
			MimeType: "text/plain",
			Data:     b64url(body),
		},
	}
}

func newTestUsecase(t *testing.T, source *fakeSource, appRepo *fakeAppRepo, accountRepo *fakeAccountRepo) IngestUsecase {
	t.Helper()
	enc, err := crypto.NewEncryptor("test-secret")
	if err != nil {
		t.Fatalf("NewEncryptor: %v", err)
	}
	cfg := &config.Config{IngestDays: 180, IngestLimit: 300}
	return NewIngestUsecase(
		accountRepo,
		appRepo,
		source,
		classify.NewClassifier(classify.DefaultRules()),
		extract.NewHeuristicExtractor(),
		enc,
		cfg,
	)
}

func linkedAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{gmailToken: &authdomain.GmailToken{
		UserID:      "user-1",
		AccessToken: "at",
	}}
}

func TestIngestCreatesApplicationFromConfirmationMail(t *testing.T) {
	source := &fakeSource{messages: []*ingestdomain.RawMessage{
		textMessage("m1", "t1",
			"Your application to Globex",
			"Globex Recruiting <no-reply@mail.greenhouse.io>",
			"Thank you for your application to Globex Inc. We will be in touch shortly."),
	}}
	appRepo := &fakeAppRepo{}
	u := newTestUsecase(t, source, appRepo, linkedAccountRepo())

	result, err := u.IngestForUser(context.Background(), "user-1", 0, 0)
	if err != nil {
		t.Fatalf("IngestForUser: %v", err)
	}

	if result.Imported != 1 {
		t.Fatalf("Imported = %d, want 1 (skippedBy=%v)", result.Imported, result.SkippedBy)
	}
	if result.Scanned != 1 {
		t.Errorf("Scanned = %d, want 1", result.Scanned)
	}
	if len(appRepo.apps) != 1 {
		t.Fatalf("stored %d applications, want 1", len(appRepo.apps))
	}

	app := appRepo.apps[0]
	if app.Company != "Globex Inc" {
		t.Errorf("Company = %q, want %q", app.Company, "Globex Inc")
	}
	if app.Status != trackerdomain.StatusApplied {
		t.Errorf("Status = %q, want Applied", app.Status)
	}
	if app.Source != "Greenhouse" {
		t.Errorf("Source = %q, want Greenhouse", app.Source)
	}
	if app.ThreadID != "t1" {
		t.Errorf("ThreadID = %q, want t1", app.ThreadID)
	}
	if app.ApplyDate == nil {
		t.Error("ApplyDate not set from the Date header")
	}
	if !strings.HasPrefix(app.Notes, "Imported from Gmail: ") {
		t.Errorf("Notes = %q", app.Notes)
	}

	if len(appRepo.emails) != 1 {
		t.Fatalf("stored %d audit emails, want 1", len(appRepo.emails))
	}
	if appRepo.emails[0].GmailLink != "https://mail.google.com/mail/u/0/#all/m1" {
		t.Errorf("GmailLink = %q", appRepo.emails[0].GmailLink)
	}
}

func TestIngestIsIdempotentAcrossRuns(t *testing.T) {
	source := &fakeSource{messages: []*ingestdomain.RawMessage{
		textMessage("m1", "t1",
			"Your application to Globex",
			"no-reply@mail.greenhouse.io",
			"Thank you for your application to Globex Inc. We will be in touch shortly."),
	}}
	appRepo := &fakeAppRepo{}
	u := newTestUsecase(t, source, appRepo, linkedAccountRepo())

	first, err := u.IngestForUser(context.Background(), "user-1", 0, 0)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := u.IngestForUser(context.Background(), "user-1", 0, 0)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if first.Imported != 1 || second.Imported != 0 {
		t.Errorf("Imported = %d then %d, want 1 then 0", first.Imported, second.Imported)
	}
	if len(appRepo.apps) != 1 {
		t.Errorf("stored %d applications, want 1", len(appRepo.apps))
	}
}

func TestIngestPromotesStatusAcrossThread(t *testing.T) {
	confirmation := textMessage("m1", "t1",
		"Your application to Globex",
		"no-reply@mail.greenhouse.io",
		"Thank you for your application to Globex Inc. We will be in touch shortly.")
	invite := textMessage("m2", "t1",
		"Next steps",
		"no-reply@mail.greenhouse.io",
		"We would like to invite you to a technical interview next week.")

	source := &fakeSource{messages: []*ingestdomain.RawMessage{confirmation}}
	appRepo := &fakeAppRepo{}
	u := newTestUsecase(t, source, appRepo, linkedAccountRepo())

	if _, err := u.IngestForUser(context.Background(), "user-1", 0, 0); err != nil {
		t.Fatalf("first run: %v", err)
	}

	source.messages = []*ingestdomain.RawMessage{invite}
	if _, err := u.IngestForUser(context.Background(), "user-1", 0, 0); err != nil {
		t.Fatalf("second run: %v", err)
	}

	if len(appRepo.apps) != 1 {
		t.Fatalf("stored %d applications, want 1", len(appRepo.apps))
	}
	if appRepo.apps[0].Status != trackerdomain.StatusInterview {
		t.Errorf("Status = %q, want Interview", appRepo.apps[0].Status)
	}

	// a late confirmation must not demote the interview
	source.messages = []*ingestdomain.RawMessage{confirmation}
	if _, err := u.IngestForUser(context.Background(), "user-1", 0, 0); err != nil {
		t.Fatalf("third run: %v", err)
	}
	if appRepo.apps[0].Status != trackerdomain.StatusInterview {
		t.Errorf("Status after stale confirmation = %q, want Interview", appRepo.apps[0].Status)
	}
}

func TestIngestKeepsKnownCompanyOverSentinel(t *testing.T) {
	confirmation := textMessage("m1", "t1",
		"Your application to Globex",
		"no-reply@mail.greenhouse.io",
		"Thank you for your application to Globex Inc. We will be in touch shortly.")
	// ATS platform sender, nothing extractable: company resolves to the sentinel
	followup := textMessage("m2", "t1",
		"Next steps",
		"no-reply@us.greenhouse.io",
		"Please pick a slot for your interview.")

	source := &fakeSource{messages: []*ingestdomain.RawMessage{confirmation}}
	appRepo := &fakeAppRepo{}
	u := newTestUsecase(t, source, appRepo, linkedAccountRepo())

	if _, err := u.IngestForUser(context.Background(), "user-1", 0, 0); err != nil {
		t.Fatalf("first run: %v", err)
	}

	source.messages = []*ingestdomain.RawMessage{followup}
	if _, err := u.IngestForUser(context.Background(), "user-1", 0, 0); err != nil {
		t.Fatalf("second run: %v", err)
	}

	if len(appRepo.apps) != 1 {
		t.Fatalf("stored %d applications, want 1", len(appRepo.apps))
	}
	if appRepo.apps[0].Company != "Globex Inc" {
		t.Errorf("Company = %q, sentinel must not overwrite a known value", appRepo.apps[0].Company)
	}
}

func TestIngestSkipsNewsletter(t *testing.T) {
	source := &fakeSource{messages: []*ingestdomain.RawMessage{
		textMessage("m1", "t1",
			"Your weekly newsletter",
			"news@example.com",
			"Here is the newsletter you signed up for."),
	}}
	appRepo := &fakeAppRepo{}
	u := newTestUsecase(t, source, appRepo, linkedAccountRepo())

	result, err := u.IngestForUser(context.Background(), "user-1", 0, 0)
	if err != nil {
		t.Fatalf("IngestForUser: %v", err)
	}

	if result.Imported != 0 {
		t.Errorf("Imported = %d, want 0", result.Imported)
	}
	if result.SkippedBy[classify.ReasonNewsletter] != 1 {
		t.Errorf("SkippedBy = %v, want newsletter:1", result.SkippedBy)
	}
	if len(appRepo.apps) != 0 {
		t.Errorf("stored %d applications, want 0", len(appRepo.apps))
	}
}

func TestIngestWithoutLinkedMailbox(t *testing.T) {
	u := newTestUsecase(t, &fakeSource{}, &fakeAppRepo{}, &fakeAccountRepo{})

	_, err := u.IngestForUser(context.Background(), "user-1", 0, 0)
	if !errors.Is(err, ErrNoMailboxLinked) {
		t.Errorf("err = %v, want ErrNoMailboxLinked", err)
	}
}
